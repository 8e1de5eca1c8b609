package state

import (
	"database/sql"
	"encoding/json"
	"fmt"

	ethcommon "github.com/ethereum/go-ethereum/common"

	"github.com/tempo-io/bridge-go/common"
)

// SignedDeposit is one validator attestation over a deposit id. A row is
// written exactly once per request id and never mutated afterwards;
// finalization is tracked in a separate table keyed by the same id, so
// Finalized/FinalizedAt are filled in on reads and ignored on writes.
type SignedDeposit struct {
	RequestID       ethcommon.Hash
	OriginChainID   uint64
	OriginTxHash    ethcommon.Hash
	TempoRecipient  ethcommon.Address
	Amount          uint64
	SignatureTxHash ethcommon.Hash
	SignedAt        int64
	Finalized       bool
	FinalizedAt     int64
}

func (d *SignedDeposit) String() string {
	return fmt.Sprintf("%+v", *d)
}

func (d *SignedDeposit) MarshalJSON() ([]byte, error) {
	return json.Marshal(&JSONSignedDeposit{
		RequestID:       d.RequestID.String(),
		OriginChainID:   d.OriginChainID,
		OriginTxHash:    d.OriginTxHash.String(),
		TempoRecipient:  d.TempoRecipient.String(),
		Amount:          d.Amount,
		SignatureTxHash: d.SignatureTxHash.String(),
		SignedAt:        d.SignedAt,
		Finalized:       d.Finalized,
		FinalizedAt:     d.FinalizedAt,
	})
}

func (d *SignedDeposit) UnmarshalJSON(data []byte) error {
	var jd JSONSignedDeposit
	if err := json.Unmarshal(data, &jd); err != nil {
		return err
	}

	d.RequestID = common.HexStrToBytes32(jd.RequestID)
	d.OriginChainID = jd.OriginChainID
	d.OriginTxHash = common.HexStrToBytes32(jd.OriginTxHash)
	d.TempoRecipient = ethcommon.HexToAddress(jd.TempoRecipient)
	d.Amount = jd.Amount
	d.SignatureTxHash = common.HexStrToBytes32(jd.SignatureTxHash)
	d.SignedAt = jd.SignedAt
	d.Finalized = jd.Finalized
	d.FinalizedAt = jd.FinalizedAt

	return nil
}

type sqlSignedDeposit struct {
	RequestID       string
	OriginChainID   uint64
	OriginTxHash    string
	TempoRecipient  string
	Amount          uint64
	SignatureTxHash string
	SignedAt        int64
	FinalizedAt     sql.NullInt64
}

func (s *sqlSignedDeposit) encode(d *SignedDeposit) (*sqlSignedDeposit, error) {
	s = &sqlSignedDeposit{}
	s.RequestID = d.RequestID.String()[2:]
	s.OriginChainID = d.OriginChainID
	s.OriginTxHash = d.OriginTxHash.String()[2:]
	s.TempoRecipient = d.TempoRecipient.String()[2:]
	s.Amount = d.Amount
	s.SignatureTxHash = d.SignatureTxHash.String()[2:]
	s.SignedAt = d.SignedAt

	return s, nil
}

func (s *sqlSignedDeposit) decode() (*SignedDeposit, error) {
	d := &SignedDeposit{
		RequestID:       common.HexStrToBytes32("0x" + s.RequestID),
		OriginChainID:   s.OriginChainID,
		OriginTxHash:    common.HexStrToBytes32("0x" + s.OriginTxHash),
		TempoRecipient:  ethcommon.HexToAddress("0x" + s.TempoRecipient),
		Amount:          s.Amount,
		SignatureTxHash: common.HexStrToBytes32("0x" + s.SignatureTxHash),
		SignedAt:        s.SignedAt,
	}

	if s.FinalizedAt.Valid {
		d.Finalized = true
		d.FinalizedAt = s.FinalizedAt.Int64
	}

	return d, nil
}
