package common

import (
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Domain tags keep deposit ids and burn ids in disjoint keccak domains.
// They are baked into deployed contracts, never change them.
const (
	DepositDomain = "TEMPO_BRIDGE_DEPOSIT_V1"
	BurnDomain    = "TEMPO_BRIDGE_BURN_V1"
)

// Chain ids used by local deployments and tests.
const (
	AnvilChainID uint64 = 31337
	TempoChainID uint64 = 62049
)

// ComputeDepositID derives the canonical id of an origin-chain deposit.
// Validators sign this id, the Tempo mint precompile recomputes it, so the
// packed layout below is consensus-critical:
//
//	keccak256(domain || chainId:be8 || token:20 || txHash:32 ||
//	          logIndex:be4 || recipient:20 || amount:be8 || blockNumber:be8)
func ComputeDepositID(
	originChainID uint64,
	originToken ethcommon.Address,
	originTxHash ethcommon.Hash,
	originLogIndex uint32,
	tempoRecipient ethcommon.Address,
	amount uint64,
	originBlockNumber uint64,
) ethcommon.Hash {
	packed := EncodePacked(
		DepositDomain,
		originChainID,
		originToken,
		originTxHash,
		originLogIndex,
		tempoRecipient,
		amount,
		originBlockNumber,
	)
	return crypto.Keccak256Hash(packed)
}

// ComputeBurnID derives the canonical id of a Tempo-side burn. The origin
// escrow recomputes it before releasing funds:
//
//	keccak256(domain || chainId:be8 || token:20 || recipient:20 ||
//	          amount:be8 || nonce:be8 || sender:20)
func ComputeBurnID(
	originChainID uint64,
	originToken ethcommon.Address,
	originRecipient ethcommon.Address,
	amount uint64,
	nonce uint64,
	sender ethcommon.Address,
) ethcommon.Hash {
	packed := EncodePacked(
		BurnDomain,
		originChainID,
		originToken,
		originRecipient,
		amount,
		nonce,
		sender,
	)
	return crypto.Keccak256Hash(packed)
}
