package storage

import (
	"github.com/revelaction/senseparse/sense"
)

// Cursor for paginated sense label queries
type Cursor int64

// SenseHit is an annotated token found by its sense label.
type SenseHit struct {
	RowID    int64
	DocId    int
	DocTitle string

	// index of the token in the doc
	Position int

	Token sense.Token
}

// DocReader defines read operations for document storage
type DocReader interface {
	// List returns the metadata (Id, Title, Labels) of documents.
	// If labelMatch is not empty, only documents with at least one label containing the string are returned.
	// Content (Tokens) is not loaded.
	List(labelMatch string) ([]sense.Doc, error)

	// Read returns a document by ID
	Read(id int) (sense.Doc, error)

	// FindBySense returns the annotated tokens having a sense with the given
	// label, resuming after the given cursor. A label ending in '*' matches
	// as a prefix. It calls onHit for each result.
	// Returns the new cursor and any error.
	FindBySense(label string, after Cursor, limit int, onHit func(SenseHit) error) (Cursor, error)

	// SenseLabels returns all unique sense labels found across all documents, sorted alphabetically.
	// If pattern is not empty, it returns labels that contain the pattern.
	SenseLabels(pattern string) ([]string, error)
}

// DocWriter defines write operations for document storage
type DocWriter interface {
	// Write persists a document and its sense index to storage.
	// It returns the id of the new document.
	Write(doc sense.Doc) (int, error)
}

// DocRepository combines read and write operations
type DocRepository interface {
	DocReader
	DocWriter
}

// Preloader defines an optional capability for repositories that require
// or support eager loading of data into memory.
type Preloader interface {
	Preload(cb func(current, total int, name string)) error
}

// MatchLabel reports whether a sense label matches a query label. A query
// ending in '*' is a prefix match.
func MatchLabel(query, label string) bool {
	if n := len(query); n > 0 && query[n-1] == '*' {
		return len(label) >= n-1 && label[:n-1] == query[:n-1]
	}
	return query == label
}
