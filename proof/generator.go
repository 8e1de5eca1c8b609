package proof

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tempo-io/bridge-go/retry"
)

// TempoBlockHeader is the read-only slice of a Tempo block header the bridge
// relays to origin chains.
type TempoBlockHeader struct {
	BlockNumber  uint64
	BlockHash    ethcommon.Hash
	StateRoot    ethcommon.Hash
	ReceiptsRoot ethcommon.Hash
}

// tempoBackend is the part of ethclient.Client the generator uses; tests
// substitute a fake.
type tempoBackend interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
	BlockReceipts(ctx context.Context, blockNrOrHash rpc.BlockNumberOrHash) ([]*types.Receipt, error)
}

// Generator fetches block headers and receipts from the Tempo execution RPC
// for proof construction.
type Generator struct {
	client tempoBackend
}

func NewGenerator(client tempoBackend) *Generator {
	return &Generator{client: client}
}

// DialGenerator connects to a Tempo execution JSON-RPC endpoint.
func DialGenerator(rawurl string) (*Generator, error) {
	client, err := ethclient.Dial(rawurl)
	if err != nil {
		return nil, err
	}
	return NewGenerator(client), nil
}

// GetBlockHeader fetches the header projection for blockNumber.
func (g *Generator) GetBlockHeader(ctx context.Context, blockNumber uint64) (*TempoBlockHeader, error) {
	header, err := retry.WithRetry(ctx, "eth_getBlockByNumber", func() (*types.Header, error) {
		return g.client.HeaderByNumber(ctx, new(big.Int).SetUint64(blockNumber))
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("block %d not found", blockNumber)
		}
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("block %d not found", blockNumber)
	}

	return &TempoBlockHeader{
		BlockNumber:  blockNumber,
		BlockHash:    header.Hash(),
		StateRoot:    header.Root,
		ReceiptsRoot: header.ReceiptHash,
	}, nil
}

// GetBlockReceipts fetches every receipt of blockNumber, in transaction
// order.
func (g *Generator) GetBlockReceipts(ctx context.Context, blockNumber uint64) (types.Receipts, error) {
	receipts, err := retry.WithRetry(ctx, "eth_getBlockReceipts", func() ([]*types.Receipt, error) {
		return g.client.BlockReceipts(ctx, rpc.BlockNumberOrHashWithNumber(rpc.BlockNumber(blockNumber)))
	})
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("receipts for block %d not found", blockNumber)
		}
		return nil, err
	}
	return types.Receipts(receipts), nil
}
