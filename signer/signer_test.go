package signer

import (
	"testing"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-io/bridge-go/common"
)

// anvil account #0, test-only key
const testKeyHex = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestSignDepositDeterministic(t *testing.T) {
	s, err := FromHex(testKeyHex)
	require.NoError(t, err)

	id := ethcommon.Hash(common.RandBytes32())

	sig1, err := s.SignDeposit(id)
	require.NoError(t, err)
	sig2, err := s.SignDeposit(id)
	require.NoError(t, err)

	assert.Equal(t, 65, len(sig1))
	assert.Equal(t, sig1, sig2)

	// a fresh signer over the same key still produces the same bytes
	again, err := FromHex(testKeyHex)
	require.NoError(t, err)
	sig3, err := again.SignDeposit(id)
	require.NoError(t, err)
	assert.Equal(t, sig1, sig3)
}

func TestSignDepositRecoversAddress(t *testing.T) {
	s, err := FromHex(testKeyHex)
	require.NoError(t, err)

	id := ethcommon.Hash(common.RandBytes32())
	sig, err := s.SignDeposit(id)
	require.NoError(t, err)

	recovered, err := RecoverSigner(id, sig)
	require.NoError(t, err)
	assert.Equal(t, s.Address(), recovered)

	// anvil account #0
	assert.Equal(t, ethcommon.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), s.Address())
}

func TestDistinctKeysDistinctSignatures(t *testing.T) {
	a, err := Random()
	require.NoError(t, err)
	b, err := Random()
	require.NoError(t, err)

	id := ethcommon.Hash(common.RandBytes32())

	sigA, err := a.SignDeposit(id)
	require.NoError(t, err)
	sigB, err := b.SignDeposit(id)
	require.NoError(t, err)

	assert.NotEqual(t, sigA, sigB)
	assert.NotEqual(t, a.Address(), b.Address())
}

func TestDistinctIDsDistinctSignatures(t *testing.T) {
	s, err := FromHex(testKeyHex)
	require.NoError(t, err)

	sigA, err := s.SignDeposit(ethcommon.HexToHash("0x01"))
	require.NoError(t, err)
	sigB, err := s.SignDeposit(ethcommon.HexToHash("0x02"))
	require.NoError(t, err)

	assert.NotEqual(t, sigA, sigB)
}

func TestFromHexRejectsGarbage(t *testing.T) {
	_, err := FromHex("not a key")
	assert.Error(t, err)

	_, err = FromHex("0x1234")
	assert.Error(t, err)

	_, err = FromBytes([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestFromBytesMatchesFromHex(t *testing.T) {
	raw := common.HexStrToByteSlice(testKeyHex)
	a, err := FromBytes(raw)
	require.NoError(t, err)
	b, err := FromHex(testKeyHex)
	require.NoError(t, err)

	assert.Equal(t, a.Address(), b.Address())
	assert.Equal(t, a.PublicKeyBytes(), b.PublicKeyBytes())
	assert.Equal(t, 65, len(a.PublicKeyBytes()))
}
