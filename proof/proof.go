// Receipt inclusion proofs for Tempo burn events.
//
// Two commitment schemes live side by side in this package and must never be
// conflated:
//
//   - ComputeReceiptsRoot builds the real execution-layer receipts trie (an
//     ordered Merkle-Patricia trie keyed by RLP(txIndex)). It reproduces the
//     receiptsRoot of a block header byte for byte and is what the relayed
//     header carries.
//   - GenerateReceiptProof / VerifySimplifiedProof use a plain binary Merkle
//     tree over keccak(receipt encoding) leaves with duplicate-last padding.
//     The escrow contract replays this cheaper scheme on-chain; its root is
//     NOT the header receiptsRoot and a proof from one scheme never verifies
//     against the other.
package proof

import (
	"bytes"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/trie"
	logger "github.com/sirupsen/logrus"
)

// ProofElementLen is the wire size of one proof step: a 32-byte sibling hash
// followed by a 1-byte position flag (0x01 = current node is the left child).
const ProofElementLen = 33

// BurnProof carries everything the escrow contract needs to verify that a
// burn receipt was part of a finalized Tempo block.
type BurnProof struct {
	// Canonical (type-prefixed) encoding of the receipt with the burn log.
	ReceiptRLP []byte
	// Directional sibling path, ProofElementLen bytes per element. Empty for
	// a single-receipt block: the leaf hash is the root.
	ReceiptProof [][]byte
	// Index of the burn log within the receipt.
	LogIndex uint64
}

// ProofElement is one step of the simplified Merkle path.
type ProofElement struct {
	Sibling ethcommon.Hash
	// IsLeft reports that the current node is the left child, i.e. the
	// sibling sits on the right.
	IsLeft bool
}

// ComputeReceiptsRoot returns the execution-layer receipts root for the
// block, the empty-trie hash for an empty block.
func ComputeReceiptsRoot(receipts types.Receipts) ethcommon.Hash {
	if len(receipts) == 0 {
		return types.EmptyReceiptsHash
	}
	return types.DeriveSha(receipts, trie.NewStackTrie(nil))
}

// EncodeReceiptForTrie returns the canonical consensus encoding of receipt i:
// the RLP of its consensus fields, prefixed with the tx type byte for typed
// receipts. Both commitment schemes hash exactly these bytes.
func EncodeReceiptForTrie(receipts types.Receipts, i int) []byte {
	var buf bytes.Buffer
	receipts.EncodeIndex(i, &buf)
	return buf.Bytes()
}

// ReceiptLeafHash is the binary-scheme leaf for receipt i.
func ReceiptLeafHash(receipts types.Receipts, i int) ethcommon.Hash {
	return crypto.Keccak256Hash(EncodeReceiptForTrie(receipts, i))
}

// GenerateReceiptProof builds the simplified inclusion proof for the receipt
// at txIndex. logIndex is carried through untouched so the caller can point
// the escrow at the burn log inside the receipt.
func GenerateReceiptProof(receipts types.Receipts, txIndex int, logIndex uint64) (*BurnProof, error) {
	if txIndex < 0 || txIndex >= len(receipts) {
		return nil, fmt.Errorf("transaction index %d out of bounds (block has %d receipts)",
			txIndex, len(receipts))
	}

	receiptRLP := EncodeReceiptForTrie(receipts, txIndex)

	logger.WithFields(logger.Fields{
		"tx_index":        txIndex,
		"log_index":       logIndex,
		"receipt_rlp_len": len(receiptRLP),
	}).Debug("generating receipt proof")

	elements, err := generateSimplifiedProof(receipts, txIndex)
	if err != nil {
		return nil, err
	}

	return &BurnProof{
		ReceiptRLP:   receiptRLP,
		ReceiptProof: proofElementsToBytes(elements),
		LogIndex:     logIndex,
	}, nil
}

func generateSimplifiedProof(receipts types.Receipts, targetIndex int) ([]ProofElement, error) {
	if len(receipts) == 0 {
		return nil, fmt.Errorf("cannot generate proof for empty receipt list")
	}
	if targetIndex < 0 || targetIndex >= len(receipts) {
		return nil, fmt.Errorf("target index %d out of bounds (block has %d receipts)",
			targetIndex, len(receipts))
	}

	// single receipt: hash == root, nothing to prove
	if len(receipts) == 1 {
		return nil, nil
	}

	leaves := make([]ethcommon.Hash, len(receipts))
	for i := range receipts {
		leaves[i] = ReceiptLeafHash(receipts, i)
	}

	return buildMerkleProof(leaves, targetIndex)
}

// buildMerkleProof walks the binary tree from the target leaf to the root,
// recording each level's sibling. Odd node counts duplicate the last node at
// every level, both for the sibling lookup and for the next-level hashing.
func buildMerkleProof(leaves []ethcommon.Hash, targetIndex int) ([]ProofElement, error) {
	if len(leaves) == 0 {
		return nil, fmt.Errorf("cannot build proof for empty leaves")
	}
	if targetIndex < 0 || targetIndex >= len(leaves) {
		return nil, fmt.Errorf("target index out of bounds")
	}

	var elements []ProofElement
	currentLevel := leaves
	currentIndex := targetIndex

	for len(currentLevel) > 1 {
		isLeft := currentIndex%2 == 0
		siblingIndex := currentIndex - 1
		if isLeft {
			siblingIndex = currentIndex + 1
		}

		sibling := currentLevel[len(currentLevel)-1]
		if siblingIndex < len(currentLevel) {
			sibling = currentLevel[siblingIndex]
		}
		elements = append(elements, ProofElement{Sibling: sibling, IsLeft: isLeft})

		nextLevel := make([]ethcommon.Hash, 0, (len(currentLevel)+1)/2)
		for i := 0; i < len(currentLevel); i += 2 {
			left := currentLevel[i]
			right := left
			if i+1 < len(currentLevel) {
				right = currentLevel[i+1]
			}
			nextLevel = append(nextLevel, crypto.Keccak256Hash(left.Bytes(), right.Bytes()))
		}

		currentLevel = nextLevel
		currentIndex /= 2
	}

	return elements, nil
}

func proofElementsToBytes(elements []ProofElement) [][]byte {
	out := make([][]byte, 0, len(elements))
	for _, elem := range elements {
		data := make([]byte, 0, ProofElementLen)
		data = append(data, elem.Sibling.Bytes()...)
		if elem.IsLeft {
			data = append(data, 0x01)
		} else {
			data = append(data, 0x00)
		}
		out = append(out, data)
	}
	return out
}

// VerifySimplifiedProof replays the directional path from receiptHash and
// compares the result to expectedRoot. A misshapen element fails closed:
// the answer is false, never a panic or an error.
func VerifySimplifiedProof(receiptHash ethcommon.Hash, proof [][]byte, expectedRoot ethcommon.Hash) bool {
	computed := receiptHash

	for _, elem := range proof {
		if len(elem) != ProofElementLen {
			return false
		}
		sibling := ethcommon.BytesToHash(elem[:32])

		if elem[32] == 0x01 {
			// current is the left child
			computed = crypto.Keccak256Hash(computed.Bytes(), sibling.Bytes())
		} else {
			computed = crypto.Keccak256Hash(sibling.Bytes(), computed.Bytes())
		}
	}

	return computed == expectedRoot
}

// FlattenProof concatenates proof elements into the single bytes argument
// the escrow's unlockWithProof expects.
func FlattenProof(elements [][]byte) []byte {
	return bytes.Join(elements, nil)
}
