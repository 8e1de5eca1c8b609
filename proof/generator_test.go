package proof

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tempo-io/bridge-go/common"
)

type fakeTempoBackend struct {
	header      *types.Header
	receipts    []*types.Receipt
	headerErr   error
	receiptsErr error

	gotHeaderNumber *big.Int
}

func (f *fakeTempoBackend) HeaderByNumber(_ context.Context, number *big.Int) (*types.Header, error) {
	f.gotHeaderNumber = number
	if f.headerErr != nil {
		return nil, f.headerErr
	}
	return f.header, nil
}

func (f *fakeTempoBackend) BlockReceipts(_ context.Context, _ rpc.BlockNumberOrHash) ([]*types.Receipt, error) {
	if f.receiptsErr != nil {
		return nil, f.receiptsErr
	}
	return f.receipts, nil
}

func TestGetBlockHeader(t *testing.T) {
	header := &types.Header{
		ParentHash:  ethcommon.Hash(common.RandBytes32()),
		Root:        ethcommon.Hash(common.RandBytes32()),
		ReceiptHash: ethcommon.Hash(common.RandBytes32()),
		Number:      big.NewInt(77),
	}
	backend := &fakeTempoBackend{header: header}
	gen := NewGenerator(backend)

	got, err := gen.GetBlockHeader(context.Background(), 77)
	require.NoError(t, err)

	assert.Equal(t, uint64(77), got.BlockNumber)
	assert.Equal(t, header.Hash(), got.BlockHash)
	assert.Equal(t, header.Root, got.StateRoot)
	assert.Equal(t, header.ReceiptHash, got.ReceiptsRoot)
	assert.Equal(t, big.NewInt(77), backend.gotHeaderNumber)
}

func TestGetBlockHeaderNotFound(t *testing.T) {
	backend := &fakeTempoBackend{headerErr: ethereum.NotFound}
	gen := NewGenerator(backend)

	_, err := gen.GetBlockHeader(context.Background(), 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block 5 not found")
}

func TestGetBlockReceipts(t *testing.T) {
	receipts := mockReceipts(3)
	backend := &fakeTempoBackend{receipts: receipts}
	gen := NewGenerator(backend)

	got, err := gen.GetBlockReceipts(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// the fetched list feeds straight into proof generation
	root := ComputeReceiptsRoot(got)
	assert.Equal(t, ComputeReceiptsRoot(receipts), root)
}

func TestGetBlockReceiptsNotFound(t *testing.T) {
	backend := &fakeTempoBackend{receiptsErr: ethereum.NotFound}
	gen := NewGenerator(backend)

	_, err := gen.GetBlockReceipts(context.Background(), 9)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "receipts for block 9 not found")
}
