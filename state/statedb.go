package state

import (
	"database/sql"

	"github.com/tempo-io/bridge-go/database"
)

// tempoWatermark is the reserved watermark key for the chain-wide Tempo
// block counter. Origin chains are keyed by their real chain ids, which
// are never 0.
const tempoWatermark = 0

// Manager owns every persisted piece of bridge state: signed deposits,
// finalization flags, processed burns and per-chain watermarks. Every
// record operation is idempotent, so at-least-once event redelivery and
// restart-after-crash cannot duplicate rows.
type Manager struct {
	db        *sql.DB
	stmtCache *database.StmtCache
	ownsDB    bool
}

func NewManager(db *sql.DB) (*Manager, error) {
	// 1. Create the tables.
	tables := signedDepositTable + finalizedDepositTable + processedBurnTable + watermarkTable
	if _, err := db.Exec(tables); err != nil {
		return nil, err
	}

	// 2. A stmt cache + db.
	return &Manager{
		db:        db,
		stmtCache: database.NewStmtCache(db),
	}, nil
}

// NewInMemory keeps state for the lifetime of the process only.
func NewInMemory() (*Manager, error) {
	db, err := database.OpenSQLiteInMemory()
	if err != nil {
		return nil, err
	}

	return newOwned(db)
}

// NewPersistent stores state in a single sqlite file at path, creating it
// on first open. Reopening the same path restores identical query results.
func NewPersistent(path string) (*Manager, error) {
	db, err := database.OpenSQLite(path)
	if err != nil {
		return nil, err
	}

	return newOwned(db)
}

func newOwned(db *sql.DB) (*Manager, error) {
	m, err := NewManager(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	m.ownsDB = true

	return m, nil
}

func (m *Manager) Close() {
	m.stmtCache.Clear()
	if m.ownsDB {
		m.db.Close()
	}
}

func (m *Manager) getWatermark(chainID uint64) (uint64, bool, error) {
	query := `SELECT blockNumber FROM watermark WHERE chainId = ?`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return 0, false, err
	}

	var blockNumber uint64
	if err := stmt.QueryRow(chainID).Scan(&blockNumber); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}

	return blockNumber, true, nil
}

func (m *Manager) setWatermark(chainID, blockNumber uint64) error {
	query := `INSERT OR REPLACE INTO watermark (chainId, blockNumber) VALUES (?, ?)`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(chainID, blockNumber)
	return err
}

// GetOriginChainBlock returns the last recorded block for chainID; ok is
// false when the chain has never been observed.
func (m *Manager) GetOriginChainBlock(chainID uint64) (uint64, bool, error) {
	return m.getWatermark(chainID)
}

func (m *Manager) UpdateOriginChainBlock(chainID, blockNumber uint64) error {
	return m.setWatermark(chainID, blockNumber)
}

// GetTempoBlock returns 0 until the first UpdateTempoBlock.
func (m *Manager) GetTempoBlock() (uint64, error) {
	blockNumber, _, err := m.getWatermark(tempoWatermark)
	return blockNumber, err
}

func (m *Manager) UpdateTempoBlock(blockNumber uint64) error {
	return m.setWatermark(tempoWatermark, blockNumber)
}

func (m *Manager) GetStats() (*Stats, error) {
	query := `SELECT
		(SELECT COUNT(*) FROM signed_deposit),
		(SELECT COUNT(*) FROM finalized_deposit),
		(SELECT COUNT(*) FROM processed_burn)`
	stmt, err := m.stmtCache.Prepare(query)
	if err != nil {
		return nil, err
	}

	stats := &Stats{}
	if err := stmt.QueryRow().Scan(
		&stats.SignedDeposits, &stats.FinalizedDeposits, &stats.ProcessedBurns); err != nil {
		return nil, err
	}

	tempoBlock, err := m.GetTempoBlock()
	if err != nil {
		return nil, err
	}
	stats.TempoBlock = tempoBlock

	return stats, nil
}
