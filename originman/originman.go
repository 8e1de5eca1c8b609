// Package originman submits relayed Tempo headers and unlock-with-proof
// transactions to the bridge contracts on an origin chain.
package originman

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	logger "github.com/sirupsen/logrus"

	"github.com/tempo-io/bridge-go/common"
	"github.com/tempo-io/bridge-go/retry"
)

type ethereumClient interface {
	bind.ContractBackend
	bind.DeployBackend
}

// headerReader is the slice of the client used for the secondary RPC, which
// only ever reads headers.
type headerReader interface {
	HeaderByNumber(ctx context.Context, number *big.Int) (*types.Header, error)
}

// OriginClient wraps the light client and escrow contracts of one origin
// chain. It holds network handles and key material only; all bridge state
// lives in the state manager.
type OriginClient struct {
	cfg *Config

	ethClient ethereumClient
	secondary headerReader

	auth        *bind.TransactOpts
	broadcaster *bind.TransactOpts

	lightClient *bind.BoundContract
	escrow      *bind.BoundContract
}

func New(cfg *Config) (*OriginClient, error) {
	ethClient, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", cfg.RPCURL, err)
	}

	var secondary headerReader
	if cfg.SecondaryRPCURL != "" {
		sec, err := ethclient.Dial(cfg.SecondaryRPCURL)
		if err != nil {
			return nil, fmt.Errorf("dial secondary %s: %w", cfg.SecondaryRPCURL, err)
		}
		secondary = sec
	}

	return newOriginClient(cfg, ethClient, secondary)
}

func newOriginClient(cfg *Config, ethClient ethereumClient, secondary headerReader) (*OriginClient, error) {
	chainID := new(big.Int).SetUint64(cfg.ChainID)

	sk, err := crypto.HexToECDSA(common.Trim0xPrefix(cfg.PrivateKey))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	auth, err := bind.NewKeyedTransactorWithChainID(sk, chainID)
	if err != nil {
		return nil, err
	}

	broadcaster := auth
	if cfg.BroadcasterKey != "" {
		bk, err := crypto.HexToECDSA(common.Trim0xPrefix(cfg.BroadcasterKey))
		if err != nil {
			return nil, fmt.Errorf("invalid broadcaster key: %w", err)
		}
		broadcaster, err = bind.NewKeyedTransactorWithChainID(bk, chainID)
		if err != nil {
			return nil, err
		}
	}

	return &OriginClient{
		cfg:         cfg,
		ethClient:   ethClient,
		secondary:   secondary,
		auth:        auth,
		broadcaster: broadcaster,
		lightClient: bind.NewBoundContract(cfg.LightClientAddress, lightClientABI, ethClient, ethClient, ethClient),
		escrow:      bind.NewBoundContract(cfg.EscrowAddress, escrowABI, ethClient, ethClient, ethClient),
	}, nil
}

func (oc *OriginClient) ChainName() string {
	return oc.cfg.ChainName
}

func (oc *OriginClient) ChainID() uint64 {
	return oc.cfg.ChainID
}

// SubmitterAddress is the address of the configured submitter key.
func (oc *OriginClient) SubmitterAddress() ethcommon.Address {
	return oc.auth.From
}

// BroadcasterAddress is the address transactions are actually sent from; it
// equals SubmitterAddress unless a broadcaster key is configured.
func (oc *OriginClient) BroadcasterAddress() ethcommon.Address {
	return oc.broadcaster.From
}

// SubmitHeader relays a certified Tempo header to the light client. An
// already-finalized height returns the zero hash without sending anything,
// so outer control loops can resubmit freely.
func (oc *OriginClient) SubmitHeader(
	ctx context.Context,
	height uint64,
	parentHash, stateRoot, receiptsRoot ethcommon.Hash,
	epoch uint64,
	signature []byte,
) (ethcommon.Hash, error) {
	finalized, err := oc.IsHeaderFinalized(ctx, height)
	if err != nil {
		return ethcommon.Hash{}, err
	}
	if finalized {
		logger.Debugf("header %d already finalized on %s", height, oc.cfg.ChainName)
		return ethcommon.Hash{}, nil
	}

	if err := oc.verifyBlockConsistency(ctx, height); err != nil {
		return ethcommon.Hash{}, err
	}

	logger.WithFields(logger.Fields{
		"chain":       oc.cfg.ChainName,
		"height":      height,
		"parent_hash": parentHash,
		"epoch":       epoch,
	}).Info("submitting tempo header to light client")

	tx, err := oc.lightClient.Transact(oc.txOpts(ctx), "submitHeader",
		height, parentHash, stateRoot, receiptsRoot, epoch, signature)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("submitHeader: %w", err)
	}

	if err := oc.awaitSuccess(ctx, tx); err != nil {
		return ethcommon.Hash{}, err
	}

	logger.WithFields(logger.Fields{
		"chain":   oc.cfg.ChainName,
		"tx_hash": tx.Hash(),
		"height":  height,
	}).Info("header submitted")

	return tx.Hash(), nil
}

// UnlockWithProof redeems a proven burn on the escrow. An already-unlocked
// burn id returns the zero hash without sending anything. originBlockNumber
// anchors the RPC consistency check.
func (oc *OriginClient) UnlockWithProof(
	ctx context.Context,
	burnID ethcommon.Hash,
	recipient ethcommon.Address,
	amount uint64,
	proof []byte,
	originBlockNumber uint64,
) (ethcommon.Hash, error) {
	unlocked, err := oc.IsUnlocked(ctx, burnID)
	if err != nil {
		return ethcommon.Hash{}, err
	}
	if unlocked {
		logger.Debugf("burn %s already unlocked on %s", common.Shorten(burnID.Hex(), 8), oc.cfg.ChainName)
		return ethcommon.Hash{}, nil
	}

	if err := oc.verifyBlockConsistency(ctx, originBlockNumber); err != nil {
		return ethcommon.Hash{}, err
	}

	logger.WithFields(logger.Fields{
		"chain":     oc.cfg.ChainName,
		"burn_id":   burnID,
		"recipient": recipient,
		"amount":    amount,
	}).Info("unlocking tokens on origin chain")

	tx, err := oc.escrow.Transact(oc.txOpts(ctx), "unlockWithProof",
		burnID, recipient, new(big.Int).SetUint64(amount), proof)
	if err != nil {
		return ethcommon.Hash{}, fmt.Errorf("unlockWithProof: %w", err)
	}

	if err := oc.awaitSuccess(ctx, tx); err != nil {
		return ethcommon.Hash{}, err
	}

	logger.WithFields(logger.Fields{
		"chain":   oc.cfg.ChainName,
		"tx_hash": tx.Hash(),
		"burn_id": burnID,
	}).Info("tokens unlocked")

	return tx.Hash(), nil
}

func (oc *OriginClient) IsHeaderFinalized(ctx context.Context, blockNumber uint64) (bool, error) {
	return retry.WithRetry(ctx, "is_header_finalized", func() (bool, error) {
		var out []interface{}
		if err := oc.lightClient.Call(&bind.CallOpts{Context: ctx}, &out, "isHeaderFinalized", blockNumber); err != nil {
			return false, err
		}
		return *abi.ConvertType(out[0], new(bool)).(*bool), nil
	})
}

func (oc *OriginClient) LatestFinalizedBlock(ctx context.Context) (uint64, error) {
	return retry.WithRetry(ctx, "latest_finalized_block", func() (uint64, error) {
		var out []interface{}
		if err := oc.lightClient.Call(&bind.CallOpts{Context: ctx}, &out, "latestFinalizedBlock"); err != nil {
			return 0, err
		}
		return *abi.ConvertType(out[0], new(uint64)).(*uint64), nil
	})
}

func (oc *OriginClient) IsUnlocked(ctx context.Context, burnID ethcommon.Hash) (bool, error) {
	return retry.WithRetry(ctx, "is_unlocked", func() (bool, error) {
		var out []interface{}
		if err := oc.escrow.Call(&bind.CallOpts{Context: ctx}, &out, "isUnlocked", burnID); err != nil {
			return false, err
		}
		return *abi.ConvertType(out[0], new(bool)).(*bool), nil
	})
}

// verifyBlockConsistency compares the block hash at blockNumber between the
// primary and secondary RPC. Without a secondary it is a no-op. A mismatch
// is fatal only when RequireQuorum is set; otherwise relaying proceeds on
// the primary's word and the mismatch is logged.
func (oc *OriginClient) verifyBlockConsistency(ctx context.Context, blockNumber uint64) error {
	if oc.secondary == nil {
		return nil
	}

	number := new(big.Int).SetUint64(blockNumber)

	primary, err := retry.WithRetry(ctx, "get_block_by_number_primary", func() (*types.Header, error) {
		return oc.headerAt(ctx, oc.ethClient, number, "primary")
	})
	if err != nil {
		return err
	}

	secondary, err := retry.WithRetry(ctx, "get_block_by_number_secondary", func() (*types.Header, error) {
		return oc.headerAt(ctx, oc.secondary, number, "secondary")
	})
	if err != nil {
		return err
	}

	primaryHash := primary.Hash()
	secondaryHash := secondary.Hash()

	if primaryHash != secondaryHash {
		if oc.cfg.RequireQuorum {
			return fmt.Errorf("rpc quorum verification failed: block %d hash mismatch (primary: %s, secondary: %s)",
				blockNumber, primaryHash, secondaryHash)
		}
		logger.WithFields(logger.Fields{
			"chain":          oc.cfg.ChainName,
			"block_number":   blockNumber,
			"primary_hash":   primaryHash,
			"secondary_hash": secondaryHash,
		}).Warn("rpc block hash mismatch detected")
	}

	return nil
}

func (oc *OriginClient) headerAt(ctx context.Context, client headerReader, number *big.Int, side string) (*types.Header, error) {
	header, err := client.HeaderByNumber(ctx, number)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, fmt.Errorf("block %d not found on %s RPC", number, side)
		}
		return nil, err
	}
	if header == nil {
		return nil, fmt.Errorf("block %d not found on %s RPC", number, side)
	}
	return header, nil
}

// txOpts clones the broadcaster auth so concurrent submissions don't share
// a mutable context field.
func (oc *OriginClient) txOpts(ctx context.Context) *bind.TransactOpts {
	opts := *oc.broadcaster
	opts.Context = ctx
	return &opts
}

func (oc *OriginClient) awaitSuccess(ctx context.Context, tx *types.Transaction) error {
	receipt, err := bind.WaitMined(ctx, oc.ethClient, tx)
	if err != nil {
		return err
	}
	if receipt.Status == types.ReceiptStatusFailed {
		return fmt.Errorf("tx %s reverted", tx.Hash())
	}
	return nil
}
