package state

import (
	"database/sql"
	"time"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const signedDepositColumns = `d.requestId, d.originChainId, d.originTxHash, d.tempoRecipient,
	d.amount, d.signatureTxHash, d.signedAt, f.finalizedAt`

func (m *Manager) HasSignedDeposit(requestID ethcommon.Hash) (bool, error) {
	query := `SELECT 1 FROM signed_deposit WHERE requestId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(requestID.String()[2:]).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RecordSignedDeposit inserts the attestation row keyed by d.RequestID.
// Recording an id that already exists is a no-op; the first row wins.
func (m *Manager) RecordSignedDeposit(d *SignedDeposit) error {
	query := `INSERT OR IGNORE INTO signed_deposit
		(requestId, originChainId, originTxHash, tempoRecipient, amount, signatureTxHash, signedAt)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	s := &sqlSignedDeposit{}
	s, err = s.encode(d)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(s.RequestID, s.OriginChainID, s.OriginTxHash,
		s.TempoRecipient, s.Amount, s.SignatureTxHash, s.SignedAt)
	return err
}

func (m *Manager) GetSignedDeposit(requestID ethcommon.Hash) (*SignedDeposit, bool, error) {
	query := `SELECT ` + signedDepositColumns + `
		FROM signed_deposit d
		LEFT JOIN finalized_deposit f ON f.requestId = d.requestId
		WHERE d.requestId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return nil, false, err
	}

	var s sqlSignedDeposit
	err = stmt.QueryRow(requestID.String()[2:]).Scan(
		&s.RequestID, &s.OriginChainID, &s.OriginTxHash, &s.TempoRecipient,
		&s.Amount, &s.SignatureTxHash, &s.SignedAt, &s.FinalizedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	d, err := s.decode()
	if err != nil {
		return nil, false, err
	}

	return d, true, nil
}

func (m *Manager) IsDepositFinalized(requestID ethcommon.Hash) (bool, error) {
	query := `SELECT 1 FROM finalized_deposit WHERE requestId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(requestID.String()[2:]).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// MarkDepositFinalized promotes a deposit id to finalized. Marking twice is
// a no-op and keeps the first timestamp.
func (m *Manager) MarkDepositFinalized(requestID ethcommon.Hash) error {
	query := `INSERT OR IGNORE INTO finalized_deposit (requestId, finalizedAt) VALUES (?, ?)`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(requestID.String()[2:], time.Now().Unix())
	return err
}

// ListSignedDeposits returns the newest deposits first. A negative limit
// returns all rows.
func (m *Manager) ListSignedDeposits(limit int) ([]*SignedDeposit, error) {
	query := `SELECT ` + signedDepositColumns + `
		FROM signed_deposit d
		LEFT JOIN finalized_deposit f ON f.requestId = d.requestId
		ORDER BY d.signedAt DESC, d.requestId LIMIT ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deposits := []*SignedDeposit{}
	for rows.Next() {
		var s sqlSignedDeposit
		if err := rows.Scan(&s.RequestID, &s.OriginChainID, &s.OriginTxHash, &s.TempoRecipient,
			&s.Amount, &s.SignatureTxHash, &s.SignedAt, &s.FinalizedAt); err != nil {
			return nil, err
		}

		d, err := s.decode()
		if err != nil {
			return nil, err
		}

		deposits = append(deposits, d)
	}

	return deposits, rows.Err()
}
