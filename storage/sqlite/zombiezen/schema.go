package zombiezen

import (
	"context"
	"embed"
	"fmt"
	"path"

	"zombiezen.com/go/sqlite/sqlitex"
)

// sqlFiles embeds all SQL scripts from the sql/ subdirectory.
//
//go:embed sql/*.sql
var sqlFiles embed.FS

const DocsSchema = "docs.sql"

// CreateSchemas reads a SQL script from the embedded filesystem (e.g. DocsSchema)
// and executes it using the provided connection pool. The scripts are idempotent.
func CreateSchemas(pool *sqlitex.Pool, schemaName string) error {
	scriptPath := path.Join("sql", schemaName)

	script, err := sqlFiles.ReadFile(scriptPath)
	if err != nil {
		return fmt.Errorf("failed to read embedded sql file %s: %w", scriptPath, err)
	}

	conn, err := pool.Take(context.TODO())
	if err != nil {
		return err
	}
	defer pool.Put(conn)

	// ExecuteScript handles multi-statement strings.
	if err := sqlitex.ExecuteScript(conn, string(script), nil); err != nil {
		return fmt.Errorf("failed to execute script %s: %w", schemaName, err)
	}

	return nil
}
