package state

import (
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tempo-io/bridge-go/common"
)

func RandSignedDeposit() *SignedDeposit {
	return &SignedDeposit{
		RequestID:       common.RandBytes32(),
		OriginChainID:   common.AnvilChainID,
		OriginTxHash:    common.RandBytes32(),
		TempoRecipient:  common.RandEthAddress(),
		Amount:          1_000_000,
		SignatureTxHash: common.RandBytes32(),
		SignedAt:        time.Now().Unix(),
	}
}

func RandProcessedBurn(unlocked bool) *ProcessedBurn {
	b := &ProcessedBurn{
		BurnID:           common.RandBytes32(),
		OriginChainID:    common.AnvilChainID,
		OriginRecipient:  common.RandEthAddress(),
		Amount:           500_000,
		TempoBlockNumber: 100,
		ProcessedAt:      time.Now().Unix(),
	}

	if unlocked {
		h := ethcommon.Hash(common.RandBytes32())
		b.UnlockTxHash = &h
	}

	return b
}
