package state

import (
	"database/sql"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

const processedBurnColumns = `burnId, originChainId, originRecipient, amount,
	tempoBlockNumber, unlockTxHash, processedAt`

func (m *Manager) HasProcessedBurn(burnID ethcommon.Hash) (bool, error) {
	query := `SELECT 1 FROM processed_burn WHERE burnId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return false, err
	}

	var one int
	if err := stmt.QueryRow(burnID.String()[2:]).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// RecordProcessedBurn inserts the outcome row keyed by b.BurnID. Recording
// an id that already exists is a no-op; the first row wins.
func (m *Manager) RecordProcessedBurn(b *ProcessedBurn) error {
	query := `INSERT OR IGNORE INTO processed_burn
		(` + processedBurnColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	s := &sqlProcessedBurn{}
	s, err = s.encode(b)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(s.BurnID, s.OriginChainID, s.OriginRecipient,
		s.Amount, s.TempoBlockNumber, s.UnlockTxHash, s.ProcessedAt)
	return err
}

func (m *Manager) GetProcessedBurn(burnID ethcommon.Hash) (*ProcessedBurn, bool, error) {
	query := `SELECT ` + processedBurnColumns + ` FROM processed_burn WHERE burnId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return nil, false, err
	}

	var s sqlProcessedBurn
	err = stmt.QueryRow(burnID.String()[2:]).Scan(
		&s.BurnID, &s.OriginChainID, &s.OriginRecipient,
		&s.Amount, &s.TempoBlockNumber, &s.UnlockTxHash, &s.ProcessedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		return nil, false, err
	}

	b, err := s.decode()
	if err != nil {
		return nil, false, err
	}

	return b, true, nil
}

// ListProcessedBurns returns the newest burns first. A negative limit
// returns all rows.
func (m *Manager) ListProcessedBurns(limit int) ([]*ProcessedBurn, error) {
	query := `SELECT ` + processedBurnColumns + ` FROM processed_burn
		ORDER BY processedAt DESC, burnId LIMIT ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	burns := []*ProcessedBurn{}
	for rows.Next() {
		var s sqlProcessedBurn
		if err := rows.Scan(&s.BurnID, &s.OriginChainID, &s.OriginRecipient,
			&s.Amount, &s.TempoBlockNumber, &s.UnlockTxHash, &s.ProcessedAt); err != nil {
			return nil, err
		}

		b, err := s.decode()
		if err != nil {
			return nil, err
		}

		burns = append(burns, b)
	}

	return burns, rows.Err()
}
