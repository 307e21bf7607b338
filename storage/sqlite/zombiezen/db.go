package zombiezen

import (
	"fmt"
	"runtime"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// NewPool opens a pool on the sense database at dbPath. Connections use WAL
// mode and enforce the foreign keys of the docs schema.
func NewPool(dbPath string) (*sqlitex.Pool, error) {
	pool, err := sqlitex.NewPool("file:"+dbPath, sqlitex.PoolOptions{
		PoolSize:    runtime.NumCPU(),
		PrepareConn: prepareConn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sense database at %s: %w", dbPath, err)
	}
	return pool, nil
}

// SQLite leaves foreign keys off unless enabled per connection.
func prepareConn(conn *sqlite.Conn) error {
	return sqlitex.ExecuteTransient(conn, "PRAGMA foreign_keys = ON;", nil)
}
