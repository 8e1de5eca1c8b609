package common

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

var (
	idTestToken     = ethcommon.HexToAddress("0x5FbDB2315678afecb367f032d93F642f64180aa3")
	idTestRecipient = ethcommon.HexToAddress("0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	idTestSender    = ethcommon.HexToAddress("0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC")
	idTestTxHash    = ethcommon.HexToHash("0x11d49f96de0e1d685f2f8dcb6db35c0db92c2a4be423ca365d2a12bc39d9255f")
)

func TestComputeDepositIDDeterministic(t *testing.T) {
	a := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 100)
	b := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 100)
	assert.Equal(t, a, b)
	assert.NotEqual(t, ethcommon.Hash{}, a)
}

func TestComputeDepositIDLogIndexDistinguishes(t *testing.T) {
	// two transfers in the same tx differ only by log index
	a := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 100)
	b := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 1, idTestRecipient, 1_000_000, 100)
	assert.NotEqual(t, a, b)
}

func TestComputeDepositIDFieldSensitivity(t *testing.T) {
	base := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 100)

	variants := map[string]ethcommon.Hash{
		"chainId":     ComputeDepositID(AnvilChainID+1, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 100),
		"token":       ComputeDepositID(AnvilChainID, RandEthAddress(), idTestTxHash, 0, idTestRecipient, 1_000_000, 100),
		"txHash":      ComputeDepositID(AnvilChainID, idTestToken, ethcommon.Hash(RandBytes32()), 0, idTestRecipient, 1_000_000, 100),
		"logIndex":    ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 7, idTestRecipient, 1_000_000, 100),
		"recipient":   ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, RandEthAddress(), 1_000_000, 100),
		"amount":      ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_001, 100),
		"blockNumber": ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 1_000_000, 101),
	}

	for field, id := range variants {
		assert.NotEqual(t, base, id, "changing %s must change the deposit id", field)
	}
}

func TestComputeBurnIDDeterministic(t *testing.T) {
	a := ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_000, 1, idTestSender)
	b := ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_000, 1, idTestSender)
	assert.Equal(t, a, b)
}

func TestComputeBurnIDFieldSensitivity(t *testing.T) {
	base := ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_000, 1, idTestSender)

	variants := map[string]ethcommon.Hash{
		"chainId":   ComputeBurnID(TempoChainID, idTestToken, idTestRecipient, 500_000, 1, idTestSender),
		"token":     ComputeBurnID(AnvilChainID, RandEthAddress(), idTestRecipient, 500_000, 1, idTestSender),
		"recipient": ComputeBurnID(AnvilChainID, idTestToken, RandEthAddress(), 500_000, 1, idTestSender),
		"amount":    ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_001, 1, idTestSender),
		"nonce":     ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_000, 2, idTestSender),
		"sender":    ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 500_000, 1, RandEthAddress()),
	}

	for field, id := range variants {
		assert.NotEqual(t, base, id, "changing %s must change the burn id", field)
	}
}

func TestDepositAndBurnDomainsDisjoint(t *testing.T) {
	// same scalar fields under both domains must never collide
	dep := ComputeDepositID(AnvilChainID, idTestToken, idTestTxHash, 0, idTestRecipient, 42, 0)
	burn := ComputeBurnID(AnvilChainID, idTestToken, idTestRecipient, 42, 0, idTestSender)
	assert.NotEqual(t, dep, burn)
}

func TestEncodePackedLayout(t *testing.T) {
	packed := EncodePacked("AB", uint64(0x0102030405060708), uint32(0x0A0B0C0D), idTestToken)

	assert.Equal(t, 2+8+4+20, len(packed))
	assert.Equal(t, []byte("AB"), packed[:2])
	// big-endian fixed width integers
	assert.Equal(t, []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}, packed[2:10])
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C, 0x0D}, packed[10:14])
	assert.Equal(t, idTestToken.Bytes(), packed[14:])
}

func TestDepositPreimageLength(t *testing.T) {
	packed := EncodePacked(
		DepositDomain,
		AnvilChainID,
		idTestToken,
		idTestTxHash,
		uint32(0),
		idTestRecipient,
		uint64(1_000_000),
		uint64(100),
	)
	// domain(23) + 8 + 20 + 32 + 4 + 20 + 8 + 8
	assert.Equal(t, 123, len(packed))
}
