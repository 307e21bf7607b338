package zombiezen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

type DocStore struct {
	pool *sqlitex.Pool
}

var _ storage.DocRepository = (*DocStore)(nil)

func NewDocStore(pool *sqlitex.Pool) *DocStore {
	return &DocStore{pool: pool}
}

func (h *DocStore) List(labelMatch string) ([]sense.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	var docs []sense.Doc
	err = sqlitex.Execute(conn, "SELECT id, title, labels FROM docs ORDER BY title", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels, err := decodeLabels(stmt.ColumnText(2))
			if err != nil {
				return err
			}
			doc := sense.Doc{
				Id:     stmt.ColumnInt(0),
				Title:  stmt.ColumnText(1),
				Labels: labels,
			}
			if labelMatch != "" && !hasLabel(doc.Labels, labelMatch) {
				return nil
			}
			docs = append(docs, doc)
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// doc labels are stored as a JSON array
func decodeLabels(s string) ([]string, error) {
	var labels []string
	if s == "" {
		return nil, nil
	}
	if err := json.Unmarshal([]byte(s), &labels); err != nil {
		return nil, fmt.Errorf("invalid doc labels %q: %w", s, err)
	}
	if len(labels) == 0 {
		return nil, nil
	}
	return labels, nil
}

func hasLabel(labels []string, match string) bool {
	for _, l := range labels {
		if strings.Contains(l, match) {
			return true
		}
	}
	return false
}

func (h *DocStore) Read(id int) (sense.Doc, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return sense.Doc{}, err
	}
	defer h.pool.Put(conn)

	doc := sense.Doc{Id: id}
	found := false

	err = sqlitex.Execute(conn, "SELECT title, labels FROM docs WHERE id = ?", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			found = true
			doc.Title = stmt.ColumnText(0)
			labels, err := decodeLabels(stmt.ColumnText(1))
			if err != nil {
				return err
			}
			doc.Labels = labels
			return nil
		},
	})
	if err != nil {
		return sense.Doc{}, err
	}
	if !found {
		return sense.Doc{}, fmt.Errorf("doc not found: %d", id)
	}

	err = sqlitex.Execute(conn, "SELECT data FROM tokens WHERE doc_id = ? ORDER BY position", &sqlitex.ExecOptions{
		Args: []interface{}{id},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			var token sense.Token
			if err := json.Unmarshal([]byte(stmt.ColumnText(0)), &token); err != nil {
				return err
			}
			doc.Tokens = append(doc.Tokens, token)
			return nil
		},
	})
	if err != nil {
		return sense.Doc{}, err
	}

	return doc, nil
}

// FindBySense uses the token_senses index. The cursor is the rowid of the
// last token returned.
func (h *DocStore) FindBySense(label string, after storage.Cursor, limit int, onHit func(storage.SenseHit) error) (storage.Cursor, error) {
	if label == "" {
		return after, nil
	}

	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return after, err
	}
	defer h.pool.Put(conn)

	if limit <= 0 {
		// no limit
		limit = -1
	}

	var (
		where string
		args  []interface{}
	)
	if prefix, ok := strings.CutSuffix(label, "*"); ok {
		where = "substr(s.label, 1, ?) = ?"
		args = append(args, utf8.RuneCountInString(prefix), prefix)
	} else {
		where = "s.label = ?"
		args = append(args, label)
	}
	args = append(args, after, limit)

	query := `SELECT DISTINCT t.rowid, t.doc_id, d.title, t.position, t.data
		FROM token_senses s
		JOIN tokens t ON t.rowid = s.token_rowid
		JOIN docs d ON d.id = t.doc_id
		WHERE ` + where + ` AND t.rowid > ?
		ORDER BY t.rowid
		LIMIT ?`

	newCursor := after
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			hit := storage.SenseHit{
				RowID:    stmt.ColumnInt64(0),
				DocId:    stmt.ColumnInt(1),
				DocTitle: stmt.ColumnText(2),
				Position: stmt.ColumnInt(3),
			}
			if err := json.Unmarshal([]byte(stmt.ColumnText(4)), &hit.Token); err != nil {
				return err
			}
			if err := onHit(hit); err != nil {
				return err
			}
			newCursor = storage.Cursor(hit.RowID)
			return nil
		},
	})
	if err != nil {
		return after, err
	}

	return newCursor, nil
}

func (h *DocStore) SenseLabels(pattern string) ([]string, error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return nil, err
	}
	defer h.pool.Put(conn)

	query := "SELECT DISTINCT label FROM token_senses ORDER BY label"
	var args []interface{}
	if pattern != "" {
		query = "SELECT DISTINCT label FROM token_senses WHERE instr(label, ?) > 0 ORDER BY label"
		args = append(args, pattern)
	}

	var labels []string
	err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
		Args: args,
		ResultFunc: func(stmt *sqlite.Stmt) error {
			labels = append(labels, stmt.ColumnText(0))
			return nil
		},
	})
	if err != nil {
		return nil, err
	}
	return labels, nil
}

// Write inserts the doc, its tokens and the sense index in one savepoint.
func (h *DocStore) Write(doc sense.Doc) (id int, err error) {
	conn, err := h.pool.Take(context.TODO())
	if err != nil {
		return 0, err
	}
	defer h.pool.Put(conn)

	// Start Transaction
	defer sqlitex.Save(conn)(&err)

	labels, err := json.Marshal(doc.Labels)
	if err != nil {
		return 0, err
	}
	err = sqlitex.Execute(conn, "INSERT INTO docs (title, labels) VALUES (?, ?)", &sqlitex.ExecOptions{
		Args: []interface{}{doc.Title, string(labels)},
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert doc: %w", err)
	}
	docID := conn.LastInsertRowID()

	for pos, token := range doc.Tokens {
		data, marshalErr := json.Marshal(token)
		if marshalErr != nil {
			return 0, marshalErr
		}

		err = sqlitex.Execute(conn, "INSERT INTO tokens (doc_id, position, data) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
			Args: []interface{}{docID, pos, string(data)},
		})
		if err != nil {
			return 0, fmt.Errorf("failed to insert token: %w", err)
		}
		tokenRowID := conn.LastInsertRowID()

		// highest probability per unique label
		best := map[string]float64{}
		for _, g := range token.Groups {
			for _, s := range g.Senses {
				if p, ok := best[s.Label]; !ok || s.Probability > p {
					best[s.Label] = s.Probability
				}
			}
		}

		for label, prob := range best {
			err = sqlitex.Execute(conn, "INSERT INTO token_senses (label, token_rowid, probability) VALUES (?, ?, ?)", &sqlitex.ExecOptions{
				Args: []interface{}{label, tokenRowID, prob},
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert sense: %w", err)
			}
		}
	}

	return int(docID), nil
}
