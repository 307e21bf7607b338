package stat

import (
	"github.com/revelaction/senseparse/sense"
)

type Handler struct {
	stats Stats
}

type Stats struct {
	NumTokens int

	// plain words plus annotated words
	NumWords  int
	NumSpans  int
	NumGroups int
	NumSenses int

	SensesPerSpanMean float64
	SensesPerSpanDis  map[int]int

	// number of spans in which each label appears
	LabelFreq map[string]int
}

func (h *Handler) Get() Stats {
	return h.stats
}

func NewHandler() *Handler {
	stats := Stats{SensesPerSpanDis: map[int]int{}, LabelFreq: map[string]int{}}
	return &Handler{
		stats: stats,
	}
}

// Aggregate adds the tokens of doc to the stats. It can be called for
// several docs.
func (h *Handler) Aggregate(doc sense.Doc) {
	h.stats.NumTokens += len(doc.Tokens)

	for _, token := range doc.Tokens {
		if !token.IsAnnotated() {
			h.stats.NumWords += countWords(token.Word)
			continue
		}

		h.stats.NumWords++
		h.stats.NumSpans++
		h.stats.NumGroups += len(token.Groups)

		n := 0
		for _, g := range token.Groups {
			n += len(g.Senses)
		}
		h.stats.NumSenses += n
		h.stats.SensesPerSpanDis[n]++

		for _, label := range token.Labels() {
			h.stats.LabelFreq[label]++
		}
	}

	if h.stats.NumSpans > 0 {
		h.stats.SensesPerSpanMean = float64(h.stats.NumSenses) / float64(h.stats.NumSpans)
	}
}

// plain runs are joined by single spaces
func countWords(s string) int {
	if s == "" {
		return 0
	}
	n := 1
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			n++
		}
	}
	return n
}
