package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/revelaction/senseparse/storage"
	"github.com/revelaction/senseparse/storage/filesystem"
	"github.com/revelaction/senseparse/storage/sqlite/zombiezen"
)

// NewDocRepository opens an existing repository: a directory is a
// filesystem store, a file a SQLite store.
func NewDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("repository not found: %s", path)
	}

	if info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	return zombiezen.NewDocStore(pool), nil
}

// CreateDocRepository opens the repository at path for writing, creating
// it if needed. A missing path with a SQLite extension becomes a database,
// any other missing path a directory.
func CreateDocRepository(p *Pool, path string) (storage.DocRepository, error) {
	_, err := os.Stat(path)
	if os.IsNotExist(err) && !isSQLitePath(path) {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create target directory: %w", err)
		}
	} else if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	info, err := os.Stat(path)
	if err == nil && info.IsDir() {
		return filesystem.NewDocStore(path)
	}

	pool, err := p.Open(path)
	if err != nil {
		return nil, err
	}
	if err := zombiezen.CreateSchemas(pool, zombiezen.DocsSchema); err != nil {
		return nil, fmt.Errorf("failed to create docs tables: %w", err)
	}
	return zombiezen.NewDocStore(pool), nil
}

func isSQLitePath(path string) bool {
	switch filepath.Ext(path) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	}
	return false
}
