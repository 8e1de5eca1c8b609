package database

import (
	"database/sql"
	"sync"
)

// StmtCache memoizes prepared statements per query string so hot paths do
// not re-prepare on every call. Safe for concurrent use.
type StmtCache struct {
	db *sql.DB
	m  sync.Map // query string -> *sql.Stmt
}

func NewStmtCache(db *sql.DB) *StmtCache {
	return &StmtCache{db: db}
}

func (sc *StmtCache) Prepare(query string) (*sql.Stmt, error) {
	if cached, ok := sc.m.Load(query); ok {
		return cached.(*sql.Stmt), nil
	}

	stmt, err := sc.db.Prepare(query)
	if err != nil {
		return nil, err
	}

	// a racing Prepare may have stored one first; keep that one
	if prev, loaded := sc.m.LoadOrStore(query, stmt); loaded {
		_ = stmt.Close()
		return prev.(*sql.Stmt), nil
	}
	return stmt, nil
}

// Clear closes every cached statement and empties the cache.
func (sc *StmtCache) Clear() {
	sc.m.Range(func(k, v interface{}) bool {
		_ = v.(*sql.Stmt).Close()
		sc.m.Delete(k)
		return true
	})
}
