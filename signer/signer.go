// Validator attestation key for origin-chain deposits. The signer holds key
// material only; deciding whether a deposit should be attested at all is the
// caller's job.
package signer

import (
	"crypto/ecdsa"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tempo-io/bridge-go/common"
)

// BridgeSigner is backed by a single secp256k1 private key.
type BridgeSigner struct {
	sk *ecdsa.PrivateKey
}

// FromBytes creates a signer from a raw 32-byte private key.
func FromBytes(privkey []byte) (*BridgeSigner, error) {
	sk, err := crypto.ToECDSA(privkey)
	if err != nil {
		return nil, fmt.Errorf("invalid validator key: %w", err)
	}
	return &BridgeSigner{sk: sk}, nil
}

// FromHex creates a signer from a hex-encoded private key, 0x prefix optional.
func FromHex(privkeyHex string) (*BridgeSigner, error) {
	sk, err := crypto.HexToECDSA(common.Trim0xPrefix(privkeyHex))
	if err != nil {
		return nil, fmt.Errorf("invalid validator key: %w", err)
	}
	return &BridgeSigner{sk: sk}, nil
}

// Random generates a throwaway signer.
func Random() (*BridgeSigner, error) {
	sk, err := crypto.GenerateKey()
	if err != nil {
		return nil, err
	}
	return &BridgeSigner{sk: sk}, nil
}

// SignDeposit signs a 32-byte deposit id and returns the 65-byte
// [R || S || V] signature, V in {0, 1}. Nonces follow RFC 6979, so the same
// key and id yield byte-identical signatures across calls and processes;
// attestations deduplicate by value.
func (s *BridgeSigner) SignDeposit(depositID ethcommon.Hash) ([]byte, error) {
	return crypto.Sign(depositID.Bytes(), s.sk)
}

// Address of the validator key as registered with the Tempo mint precompile.
func (s *BridgeSigner) Address() ethcommon.Address {
	return crypto.PubkeyToAddress(s.sk.PublicKey)
}

// PublicKeyBytes returns the uncompressed 65-byte public key.
func (s *BridgeSigner) PublicKeyBytes() []byte {
	return crypto.FromECDSAPub(&s.sk.PublicKey)
}

// RecoverSigner returns the address whose key produced sig over depositID.
func RecoverSigner(depositID ethcommon.Hash, sig []byte) (ethcommon.Address, error) {
	pub, err := crypto.SigToPub(depositID.Bytes(), sig)
	if err != nil {
		return ethcommon.Address{}, err
	}
	return crypto.PubkeyToAddress(*pub), nil
}
