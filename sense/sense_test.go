package sense

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func annotated() Token {
	return Token{
		Word: "bank",
		Groups: []Group{
			{Length: 1, Senses: []Sense{{"bank%1:14:00::", 0.4}, {"bank%1:17:01::", 0.3}}},
			{Length: 2, Senses: []Sense{{"bank%1:04:00::", 0.5}, {"bank%1:14:00::", 0.1}}},
		},
	}
}

func TestTokenBest(t *testing.T) {
	best, ok := annotated().Best()
	require.True(t, ok)
	assert.Equal(t, Sense{"bank%1:04:00::", 0.5}, best)

	_, ok = Token{Word: "plain"}.Best()
	assert.False(t, ok)
}

func TestGroupBestFirstWinsTies(t *testing.T) {
	g := Group{Senses: []Sense{{"a", 0.5}, {"b", 0.5}}}
	best, ok := g.Best()
	require.True(t, ok)
	assert.Equal(t, "a", best.Label)
}

func TestTokenLabels(t *testing.T) {
	assert.Equal(t, []string{"bank%1:14:00::", "bank%1:17:01::", "bank%1:04:00::"}, annotated().Labels())
	assert.Nil(t, Token{Word: "plain"}.Labels())
}

func TestDocText(t *testing.T) {
	doc := Doc{Tokens: []Token{{Word: "I"}, {Word: "am", Groups: annotated().Groups}, {Word: "interested here"}}}
	assert.Equal(t, "I am interested here", doc.Text())
}

func TestTokenJSONOmitsGroupsForPlainText(t *testing.T) {
	b, err := json.Marshal(Token{Word: "plain words"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"word":"plain words"}`, string(b))
}
