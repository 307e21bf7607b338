package render

import (
	"bytes"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
)

var tokens = []sense.Token{
	{Word: "I"},
	{Word: "am", Groups: []sense.Group{
		{Length: 1, Senses: []sense.Sense{{Label: "be%2:42:03::", Probability: 0.194}, {Label: "be%2:42:09::", Probability: 0.085}}},
		{Length: 2, Senses: []sense.Sense{{Label: "be%2:42:06::", Probability: 0.3}}},
	}},
	{Word: "interested"},
}

func newTestRenderer(format string) (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	r := NewRenderer()
	r.W = &buf
	r.Format = format
	return r, &buf
}

func TestTokensFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"text", "✍  I am interested\n"},
		{"best", "✍  I am[be%2:42:06::] interested\n"},
		{"all", "✍  I am{1: be%2:42:03::=0.194 be%2:42:09::=0.085}{2: be%2:42:06::=0.300} interested\n"},
		{"label", "✍    1 am              be%2:42:06:: be%2:42:03:: be%2:42:09::\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			r, buf := newTestRenderer(tt.format)
			r.Tokens(tokens, "✍  ")
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestTokensColor(t *testing.T) {
	r, _ := newTestRenderer("text")
	r.HasColor = true
	assert.Equal(t, "I "+Green256+"am"+Off+" interested", r.TokensString(tokens))
}

func TestHits(t *testing.T) {
	r, buf := newTestRenderer("best")
	r.HasPrefix = true
	r.AddDocName(2, "speech.txt")

	r.Hits([]storage.SenseHit{{DocId: 2, Position: 7, Token: tokens[1]}}, "be%2:42:03::")
	assert.Equal(t, "[speech.txt            2     7] ✍  am[be%2:42:06::] (0.194)\n", buf.String())
}

func TestTitleTruncatesRunes(t *testing.T) {
	r, _ := newTestRenderer("best")
	r.AddDocName(1, "Cien años de soledad, García Márquez")
	r.AddDocName(2, "ñandú")

	got := r.title(1)
	assert.Equal(t, "Cien años de soledad", got)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "ñandú               ", r.title(2))
}

func TestNextFormat(t *testing.T) {
	r, _ := newTestRenderer("text")
	var got []string
	for range SupportedFormats() {
		r.NextFormat()
		got = append(got, r.Format)
	}
	assert.Equal(t, []string{"best", "all", "label", "text"}, got)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("all"))
	assert.False(t, IsSupportedFormat("aggr"))
}
