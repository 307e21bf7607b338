package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
)

func annotated(word string, labels ...string) sense.Token {
	g := sense.Group{Length: 1}
	for i, l := range labels {
		g.Senses = append(g.Senses, sense.Sense{Label: l, Probability: 1 / float64(i+2)})
	}
	return sense.Token{Word: word, Groups: []sense.Group{g}}
}

func testDocs() []sense.Doc {
	return []sense.Doc{
		{
			Title:  "a",
			Labels: []string{"speech", "en"},
			Tokens: []sense.Token{{Word: "I"}, annotated("am", "be%2:42:03::", "be%2:42:09::"), {Word: "here"}},
		},
		{
			Title:  "b.json",
			Labels: []string{"novel"},
			Tokens: []sense.Token{annotated("was", "be%2:42:03::"), annotated("bank", "bank%1:14:00::")},
		},
	}
}

func newStore(t *testing.T) (*DocStore, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := NewDocStore(dir)
	require.NoError(t, err)
	for _, d := range testDocs() {
		_, err := s.Write(d)
		require.NoError(t, err)
	}
	return s, dir
}

func TestWriteAndReopen(t *testing.T) {
	_, dir := newStore(t)

	// non json files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	s, err := NewDocStore(dir)
	require.NoError(t, err)

	docs, err := s.List("")
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "a.json", docs[0].Title)
	assert.Equal(t, "b.json", docs[1].Title)
	assert.Nil(t, docs[0].Tokens)

	doc, err := s.Read(0)
	require.NoError(t, err)
	assert.Equal(t, 0, doc.Id)
	assert.Equal(t, "I am here", doc.Text())
	assert.Equal(t, []string{"speech", "en"}, doc.Labels)

	_, err = s.Read(2)
	assert.Error(t, err)
}

func TestWriteDoesNotOverwrite(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Write(sense.Doc{Title: "a"})
	assert.Error(t, err)

	_, err = s.Write(sense.Doc{})
	assert.Error(t, err)
}

func TestListLabelMatch(t *testing.T) {
	_, dir := newStore(t)

	s, err := NewDocStore(dir)
	require.NoError(t, err)

	docs, err := s.List("nov")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "b.json", docs[0].Title)
}

func TestFindBySense(t *testing.T) {
	s, _ := newStore(t)

	var hits []storage.SenseHit
	collect := func(h storage.SenseHit) error {
		hits = append(hits, h)
		return nil
	}

	cursor, err := s.FindBySense("be%2:42:03::", 0, 1, collect)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "am", hits[0].Token.Word)
	assert.Equal(t, 1, hits[0].Position)
	assert.Equal(t, storage.Cursor(1), cursor)

	cursor, err = s.FindBySense("be%2:42:03::", cursor, 1, collect)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "was", hits[1].Token.Word)
	assert.Equal(t, 1, hits[1].DocId)

	next, err := s.FindBySense("be%2:42:03::", cursor, 1, collect)
	require.NoError(t, err)
	assert.Equal(t, cursor, next)
	assert.Len(t, hits, 2)
}

func TestFindBySensePrefix(t *testing.T) {
	s, _ := newStore(t)

	var words []string
	_, err := s.FindBySense("be%*", 0, 0, func(h storage.SenseHit) error {
		words = append(words, h.Token.Word)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"am", "was"}, words)
}

func TestSenseLabels(t *testing.T) {
	s, _ := newStore(t)

	labels, err := s.SenseLabels("")
	require.NoError(t, err)
	assert.Equal(t, []string{"bank%1:14:00::", "be%2:42:03::", "be%2:42:09::"}, labels)

	labels, err = s.SenseLabels("bank")
	require.NoError(t, err)
	assert.Equal(t, []string{"bank%1:14:00::"}, labels)
}
