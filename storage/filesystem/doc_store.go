package filesystem

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
)

type DocStore struct {
	docDir string

	// In-memory cache. Tokens are nil until the doc is loaded.
	docs   []sense.Doc
	loaded []bool
}

var _ storage.DocRepository = (*DocStore)(nil)
var _ storage.Preloader = (*DocStore)(nil)

// NewDocStore creates a filesystem document store over the *.json files of
// docDir. Doc ids are the positions of the files in name order.
func NewDocStore(docDir string) (*DocStore, error) {
	files, err := os.ReadDir(docDir)
	if err != nil {
		return nil, err
	}

	docs := make([]sense.Doc, 0, len(files))

	idx := 0
	for _, file := range files {
		if file.IsDir() || filepath.Ext(file.Name()) != ".json" {
			continue
		}
		docs = append(docs, sense.Doc{
			Id:    idx,
			Title: file.Name(),
		})
		idx++
	}

	return &DocStore{
		docDir: docDir,
		docs:   docs,
		loaded: make([]bool, len(docs)),
	}, nil
}

// Preload loads all docs into memory.
func (h *DocStore) Preload(cb func(current, total int, name string)) error {
	total := len(h.docs)
	for i := range h.docs {
		if cb != nil {
			cb(i+1, total, h.docs[i].Title)
		}

		if err := h.load(i); err != nil {
			return err
		}
	}

	return nil
}

func (h *DocStore) load(id int) error {
	if h.loaded[id] {
		return nil
	}

	doc := &h.docs[id] // pointer to modify in place

	fullDoc, err := ReadDoc(filepath.Join(h.docDir, doc.Title))
	if err != nil {
		return fmt.Errorf("doc %s: %w", doc.Title, err)
	}

	// Title and Id are already set
	doc.Tokens = fullDoc.Tokens
	doc.Labels = fullDoc.Labels
	h.loaded[id] = true
	return nil
}

func (h *DocStore) List(labelMatch string) ([]sense.Doc, error) {
	docs := make([]sense.Doc, 0, len(h.docs))
	for i := range h.docs {
		if labelMatch != "" {
			if err := h.load(i); err != nil {
				return nil, err
			}
			if !hasLabel(h.docs[i].Labels, labelMatch) {
				continue
			}
		}

		docs = append(docs, sense.Doc{
			Id:     h.docs[i].Id,
			Title:  h.docs[i].Title,
			Labels: h.docs[i].Labels,
		})
	}
	return docs, nil
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
	if id < 0 || id >= len(h.docs) {
		return sense.Doc{}, fmt.Errorf("doc id out of range: %d", id)
	}
	if err := h.load(id); err != nil {
		return sense.Doc{}, err
	}
	return h.docs[id], nil
}

// FindBySense scans all docs in memory. The cursor is the running number of
// the hit over all docs.
func (h *DocStore) FindBySense(label string, after storage.Cursor, limit int, onHit func(storage.SenseHit) error) (storage.Cursor, error) {
	var n storage.Cursor
	found := 0
	for i := range h.docs {
		if err := h.load(i); err != nil {
			return after, err
		}

		doc := h.docs[i]
		for pos, token := range doc.Tokens {
			if !tokenHasLabel(token, label) {
				continue
			}

			n++
			if n <= after {
				continue
			}

			hit := storage.SenseHit{
				RowID:    int64(n),
				DocId:    doc.Id,
				DocTitle: doc.Title,
				Position: pos,
				Token:    token,
			}
			if err := onHit(hit); err != nil {
				return after, err
			}

			after = n
			found++
			if limit > 0 && found >= limit {
				return after, nil
			}
		}
	}

	return after, nil
}

func tokenHasLabel(t sense.Token, label string) bool {
	for _, l := range t.Labels() {
		if storage.MatchLabel(label, l) {
			return true
		}
	}
	return false
}

func (h *DocStore) SenseLabels(pattern string) ([]string, error) {
	unique := map[string]bool{}
	for i := range h.docs {
		if err := h.load(i); err != nil {
			return nil, err
		}
		for _, token := range h.docs[i].Tokens {
			for _, l := range token.Labels() {
				if pattern == "" || strings.Contains(l, pattern) {
					unique[l] = true
				}
			}
		}
	}

	labels := make([]string, 0, len(unique))
	for l := range unique {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels, nil
}

// Write stores doc as <title>.json in the doc directory. Existing files are
// not overwritten.
func (h *DocStore) Write(doc sense.Doc) (int, error) {
	if doc.Title == "" {
		return 0, errors.New("doc has no title")
	}

	name := filepath.Base(doc.Title)
	if filepath.Ext(name) != ".json" {
		name += ".json"
	}

	id := len(h.docs)
	doc.Id = id
	doc.Title = name

	if err := WriteDoc(filepath.Join(h.docDir, name), doc); err != nil {
		return 0, err
	}

	h.docs = append(h.docs, doc)
	h.loaded = append(h.loaded, true)
	return id, nil
}

// ReadDoc reads a Doc JSON from the given path and unmarshals it.
func ReadDoc(path string) (sense.Doc, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return sense.Doc{}, fmt.Errorf("IO error: %w", err)
	}

	var doc sense.Doc
	err = json.Unmarshal(f, &doc)
	if err != nil {
		return sense.Doc{}, fmt.Errorf("JSON decoding error: %w", err)
	}

	return doc, nil
}

// WriteDoc writes doc as indented JSON to path. It fails if path exists.
func WriteDoc(path string, doc sense.Doc) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", path, err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return f.Close()
}
