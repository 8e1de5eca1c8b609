package proof

import (
	"bytes"
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-io/bridge-go/common"
)

func mockReceipt(success bool, logsCount int) *types.Receipt {
	logs := make([]*types.Log, logsCount)
	for i := range logs {
		logs[i] = &types.Log{
			Address: ethcommon.BytesToAddress(bytes.Repeat([]byte{byte(i)}, 20)),
		}
	}

	status := types.ReceiptStatusSuccessful
	if !success {
		status = types.ReceiptStatusFailed
	}

	return &types.Receipt{
		Type:              types.DynamicFeeTxType,
		Status:            status,
		CumulativeGasUsed: 21000 * uint64(logsCount+1),
		Logs:              logs,
	}
}

func mockReceipts(n int) types.Receipts {
	receipts := make(types.Receipts, n)
	for i := range receipts {
		receipts[i] = mockReceipt(true, i)
	}
	return receipts
}

// computeBinaryRoot reduces leaves pairwise with duplicate-last padding,
// independently of buildMerkleProof.
func computeBinaryRoot(leaves []ethcommon.Hash) ethcommon.Hash {
	if len(leaves) == 1 {
		return leaves[0]
	}

	next := make([]ethcommon.Hash, 0, (len(leaves)+1)/2)
	for i := 0; i < len(leaves); i += 2 {
		left := leaves[i]
		right := left
		if i+1 < len(leaves) {
			right = leaves[i+1]
		}
		next = append(next, crypto.Keccak256Hash(left.Bytes(), right.Bytes()))
	}
	return computeBinaryRoot(next)
}

func leafHashes(receipts types.Receipts) []ethcommon.Hash {
	hashes := make([]ethcommon.Hash, len(receipts))
	for i := range receipts {
		hashes[i] = ReceiptLeafHash(receipts, i)
	}
	return hashes
}

func TestEmptyReceiptsRoot(t *testing.T) {
	assert.Equal(t, types.EmptyReceiptsHash, ComputeReceiptsRoot(nil))
	assert.Equal(t, types.EmptyReceiptsHash, ComputeReceiptsRoot(types.Receipts{}))

	// the canonical empty-trie hash
	assert.Equal(t,
		ethcommon.HexToHash("0x56e81f171bcc55a6ff8345e692c0f86e5b48e01b996cadc001622fb5e363b421"),
		ComputeReceiptsRoot(nil))
}

func TestReceiptsRootIsExecutionLayerRoot(t *testing.T) {
	receipts := mockReceipts(4)

	root := ComputeReceiptsRoot(receipts)
	assert.Equal(t, types.DeriveSha(receipts, trie.NewStackTrie(nil)), root)

	// deterministic across calls
	assert.Equal(t, root, ComputeReceiptsRoot(receipts))

	// sensitive to receipt content
	altered := mockReceipts(4)
	altered[2] = mockReceipt(false, 2)
	assert.NotEqual(t, root, ComputeReceiptsRoot(altered))
}

func TestEncodeReceiptForTrie(t *testing.T) {
	receipts := types.Receipts{mockReceipt(true, 2)}

	encoded1 := EncodeReceiptForTrie(receipts, 0)
	encoded2 := EncodeReceiptForTrie(receipts, 0)
	assert.Equal(t, encoded1, encoded2)
	assert.NotEmpty(t, encoded1)

	// typed receipts carry their envelope type byte up front
	assert.Equal(t, byte(types.DynamicFeeTxType), encoded1[0])

	legacy := types.Receipts{&types.Receipt{
		Type:              types.LegacyTxType,
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
	}}
	legacyEncoded := EncodeReceiptForTrie(legacy, 0)
	// legacy encoding is a bare RLP list, no type prefix
	assert.GreaterOrEqual(t, legacyEncoded[0], byte(0xc0))
}

func TestSingleReceiptProofIsEmpty(t *testing.T) {
	receipts := types.Receipts{mockReceipt(true, 1)}

	burnProof, err := GenerateReceiptProof(receipts, 0, 0)
	require.NoError(t, err)

	assert.Empty(t, burnProof.ReceiptProof)
	assert.Equal(t, EncodeReceiptForTrie(receipts, 0), burnProof.ReceiptRLP)

	// the leaf hash is the root
	leaf := ReceiptLeafHash(receipts, 0)
	assert.True(t, VerifySimplifiedProof(leaf, burnProof.ReceiptProof, leaf))
}

func TestMultipleReceiptsProof(t *testing.T) {
	receipts := types.Receipts{
		mockReceipt(true, 1),
		mockReceipt(true, 2),
		mockReceipt(false, 0),
		mockReceipt(true, 3),
	}

	burnProof, err := GenerateReceiptProof(receipts, 1, 0)
	require.NoError(t, err)
	assert.NotEmpty(t, burnProof.ReceiptProof)

	hashes := leafHashes(receipts)
	h01 := crypto.Keccak256Hash(hashes[0].Bytes(), hashes[1].Bytes())
	h23 := crypto.Keccak256Hash(hashes[2].Bytes(), hashes[3].Bytes())
	expectedRoot := crypto.Keccak256Hash(h01.Bytes(), h23.Bytes())

	assert.True(t, VerifySimplifiedProof(hashes[1], burnProof.ReceiptProof, expectedRoot))
}

func TestProofForEveryIndex(t *testing.T) {
	// odd and even leaf counts both exercise the duplicate-last padding
	for n := 1; n <= 9; n++ {
		receipts := mockReceipts(n)
		hashes := leafHashes(receipts)
		root := computeBinaryRoot(hashes)

		for i := 0; i < n; i++ {
			burnProof, err := GenerateReceiptProof(receipts, i, 7)
			require.NoError(t, err, "n=%d i=%d", n, i)
			assert.Equal(t, uint64(7), burnProof.LogIndex)

			ok := VerifySimplifiedProof(hashes[i], burnProof.ReceiptProof, root)
			assert.True(t, ok, "proof failed for n=%d i=%d", n, i)
		}
	}
}

func TestProofLengthIsLogarithmic(t *testing.T) {
	expected := map[int]int{1: 0, 2: 1, 3: 2, 4: 2, 5: 3, 6: 3, 7: 3, 8: 3, 9: 4}

	for n, steps := range expected {
		receipts := mockReceipts(n)
		burnProof, err := GenerateReceiptProof(receipts, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, steps, len(burnProof.ReceiptProof), "n=%d", n)
	}
}

func TestOutOfRangeIndexFails(t *testing.T) {
	receipts := types.Receipts{mockReceipt(true, 1)}

	_, err := GenerateReceiptProof(receipts, 5, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of bounds")

	_, err = GenerateReceiptProof(receipts, -1, 0)
	assert.Error(t, err)

	_, err = GenerateReceiptProof(types.Receipts{}, 0, 0)
	assert.Error(t, err)
}

func TestVerifyFailsClosed(t *testing.T) {
	receipts := mockReceipts(2)
	hashes := leafHashes(receipts)
	root := crypto.Keccak256Hash(hashes[0].Bytes(), hashes[1].Bytes())

	// 32-byte element, flag byte missing
	misshapen := [][]byte{common.RandBytes(32)}
	assert.False(t, VerifySimplifiedProof(hashes[0], misshapen, root))

	// 34-byte element
	tooLong := [][]byte{common.RandBytes(34)}
	assert.False(t, VerifySimplifiedProof(hashes[0], tooLong, root))

	// right length, wrong sibling
	wrong := append(common.RandBytes(32), 0x01)
	assert.False(t, VerifySimplifiedProof(hashes[0], [][]byte{wrong}, root))

	// correct sibling, flipped position flag
	flipped := append(hashes[1].Bytes(), 0x00)
	assert.False(t, VerifySimplifiedProof(hashes[0], [][]byte{flipped}, root))

	// the genuine proof still passes
	good := append(hashes[1].Bytes(), 0x01)
	assert.True(t, VerifySimplifiedProof(hashes[0], [][]byte{good}, root))
}

func TestTrieRootAndBinaryRootAreDifferentSchemes(t *testing.T) {
	receipts := mockReceipts(4)

	trieRoot := ComputeReceiptsRoot(receipts)
	binaryRoot := computeBinaryRoot(leafHashes(receipts))

	// the header root and the proof-scheme root must never be conflated
	assert.NotEqual(t, trieRoot, binaryRoot)
}

func TestFlattenProof(t *testing.T) {
	receipts := mockReceipts(5)

	burnProof, err := GenerateReceiptProof(receipts, 2, 0)
	require.NoError(t, err)

	flat := FlattenProof(burnProof.ReceiptProof)
	assert.Equal(t, ProofElementLen*len(burnProof.ReceiptProof), len(flat))

	for i, elem := range burnProof.ReceiptProof {
		assert.Equal(t, elem, flat[i*ProofElementLen:(i+1)*ProofElementLen])
	}

	assert.Empty(t, FlattenProof(nil))
}
