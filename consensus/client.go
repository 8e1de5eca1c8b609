// Client for the Tempo consensus JSON-RPC endpoint, which serves
// finalization certificates separately from the execution-layer RPC.
package consensus

import (
	"context"
	"errors"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/tempo-io/bridge-go/retry"
)

// CertifiedBlock is a finalized block as reported by the consensus layer.
// The certificate field carries the hex-encoded finalization certificate
// with the BLS threshold signature inside.
type CertifiedBlock struct {
	Epoch       uint64         `json:"epoch"`
	View        uint64         `json:"view"`
	Height      *uint64        `json:"height"`
	Digest      ethcommon.Hash `json:"digest"`
	Certificate string         `json:"certificate"`
}

type Client struct {
	rpc *rpc.Client
}

func Dial(rawurl string) (*Client, error) {
	return DialContext(context.Background(), rawurl)
}

func DialContext(ctx context.Context, rawurl string) (*Client, error) {
	c, err := rpc.DialContext(ctx, rawurl)
	if err != nil {
		return nil, err
	}
	return NewClient(c), nil
}

func NewClient(c *rpc.Client) *Client {
	return &Client{rpc: c}
}

func (c *Client) Close() {
	c.rpc.Close()
}

type heightQuery struct {
	Height uint64 `json:"height"`
}

// GetFinalization fetches the finalization certificate for height. A nil
// block with a nil error means the height is not finalized yet and the
// caller should poll again later.
func (c *Client) GetFinalization(ctx context.Context, height uint64) (*CertifiedBlock, error) {
	return c.call(ctx, "consensus_getFinalization", heightQuery{Height: height})
}

// GetLatestFinalization fetches the newest finalization certificate, nil if
// the chain has not finalized anything yet.
func (c *Client) GetLatestFinalization(ctx context.Context) (*CertifiedBlock, error) {
	return c.call(ctx, "consensus_getFinalization_latest", "latest")
}

func (c *Client) call(ctx context.Context, operation string, param interface{}) (*CertifiedBlock, error) {
	return retry.WithRetry(ctx, operation, func() (*CertifiedBlock, error) {
		var block *CertifiedBlock
		err := c.rpc.CallContext(ctx, &block, "consensus_getFinalization", param)
		switch {
		case errors.Is(err, rpc.ErrNoResult):
			// missing result means the same as null: not finalized
			return nil, nil
		case err != nil:
			return nil, err
		}
		return block, nil
	})
}
