package database

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// OpenSQLite opens (creating if absent) a single-file sqlite store at path.
// The pool is capped at one connection so all statements observe the same
// serialized writer.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// OpenSQLiteInMemory opens a fresh in-memory database. The one-connection
// cap is load-bearing here: every additional pool connection would get its
// own empty :memory: database.
func OpenSQLiteInMemory() (*sql.DB, error) {
	return OpenSQLite(":memory:")
}
