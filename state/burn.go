package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tempo-io/bridge-go/common"
)

// ProcessedBurn records a burn observed on Tempo together with the unlock
// transaction (if any) that was submitted on the origin chain for it.
// UnlockTxHash is nil when no unlock submission has landed yet.
type ProcessedBurn struct {
	BurnID           ethcommon.Hash
	OriginChainID    uint64
	OriginRecipient  ethcommon.Address
	Amount           uint64
	TempoBlockNumber uint64
	UnlockTxHash     *ethcommon.Hash
	ProcessedAt      int64
}

func (b *ProcessedBurn) String() string {
	return fmt.Sprintf("%+v", *b)
}

func (b *ProcessedBurn) MarshalJSON() ([]byte, error) {
	jb := &JSONProcessedBurn{
		BurnID:           b.BurnID.String(),
		OriginChainID:    b.OriginChainID,
		OriginRecipient:  b.OriginRecipient.String(),
		Amount:           b.Amount,
		TempoBlockNumber: b.TempoBlockNumber,
		ProcessedAt:      b.ProcessedAt,
	}
	if b.UnlockTxHash != nil {
		jb.UnlockTxHash = b.UnlockTxHash.String()
	}

	return json.Marshal(jb)
}

func (b *ProcessedBurn) UnmarshalJSON(data []byte) error {
	var jb JSONProcessedBurn
	if err := json.Unmarshal(data, &jb); err != nil {
		return err
	}

	b.BurnID = common.HexStrToBytes32(jb.BurnID)
	b.OriginChainID = jb.OriginChainID
	b.OriginRecipient = ethcommon.HexToAddress(jb.OriginRecipient)
	b.Amount = jb.Amount
	b.TempoBlockNumber = jb.TempoBlockNumber
	b.ProcessedAt = jb.ProcessedAt
	if jb.UnlockTxHash != "" {
		h := ethcommon.Hash(common.HexStrToBytes32(jb.UnlockTxHash))
		b.UnlockTxHash = &h
	}

	return nil
}

type sqlProcessedBurn struct {
	BurnID           string
	OriginChainID    uint64
	OriginRecipient  string
	Amount           uint64
	TempoBlockNumber uint64
	UnlockTxHash     sql.NullString
	ProcessedAt      int64
}

func (s *sqlProcessedBurn) encode(b *ProcessedBurn) (*sqlProcessedBurn, error) {
	s = &sqlProcessedBurn{}
	s.BurnID = b.BurnID.String()[2:]
	s.OriginChainID = b.OriginChainID
	s.OriginRecipient = b.OriginRecipient.String()[2:]
	s.Amount = b.Amount
	s.TempoBlockNumber = b.TempoBlockNumber
	if b.UnlockTxHash != nil {
		s.UnlockTxHash = sql.NullString{String: b.UnlockTxHash.String()[2:], Valid: true}
	}
	s.ProcessedAt = b.ProcessedAt

	return s, nil
}

func (s *sqlProcessedBurn) decode() (*ProcessedBurn, error) {
	b := &ProcessedBurn{
		BurnID:           common.HexStrToBytes32("0x" + s.BurnID),
		OriginChainID:    s.OriginChainID,
		OriginRecipient:  ethcommon.HexToAddress("0x" + s.OriginRecipient),
		Amount:           s.Amount,
		TempoBlockNumber: s.TempoBlockNumber,
		ProcessedAt:      s.ProcessedAt,
	}

	if s.UnlockTxHash.Valid {
		h := ethcommon.Hash(common.HexStrToBytes32("0x" + s.UnlockTxHash.String))
		b.UnlockTxHash = &h
	}

	return b, nil
}
