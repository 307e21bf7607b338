package stat

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revelaction/senseparse/annotation"
	"github.com/revelaction/senseparse/sense"
)

func TestAggregate(t *testing.T) {
	tokens, err := annotation.Parse(`I really <x length="1 be%2:42:03::|0.194 be%2:42:09::|0.085">am</x> so <x length="1 glad%3:00:00::|0.7" length="2 glad%3:00:00::|0.2">glad</x>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	h := NewHandler()
	h.Aggregate(sense.Doc{Tokens: tokens})
	s := h.Get()

	assert.Equal(t, 4, s.NumTokens)
	assert.Equal(t, 5, s.NumWords)
	assert.Equal(t, 2, s.NumSpans)
	assert.Equal(t, 3, s.NumGroups)
	assert.Equal(t, 4, s.NumSenses)
	assert.InDelta(t, 2.0, s.SensesPerSpanMean, 1e-9)
	assert.Equal(t, map[int]int{2: 2}, s.SensesPerSpanDis)
	assert.Equal(t, 1, s.LabelFreq["glad%3:00:00::"])
	assert.Equal(t, 1, s.LabelFreq["be%2:42:09::"])
}

func TestAggregatePlainOnly(t *testing.T) {
	h := NewHandler()
	h.Aggregate(sense.Doc{Tokens: []sense.Token{{Word: "only plain words"}}})
	s := h.Get()

	assert.Equal(t, 3, s.NumWords)
	assert.Zero(t, s.NumSpans)
	assert.Zero(t, s.SensesPerSpanMean)
}

func TestAggregateSeveralDocs(t *testing.T) {
	doc := sense.Doc{Tokens: []sense.Token{{Word: "am", Groups: []sense.Group{{Senses: []sense.Sense{{Label: "be", Probability: 1}}}}}}}

	h := NewHandler()
	h.Aggregate(doc)
	h.Aggregate(doc)

	assert.Equal(t, 2, h.Get().NumSpans)
	assert.Equal(t, 2, h.Get().LabelFreq["be"])
}
