package sense

import "strings"

type Doc struct {
	Id int `json:"id"`

	Title string `json:"title"`

	Labels []string `json:"labels,omitempty"`
	Tokens []Token  `json:"tokens"`
}

// Library is a collection of Doc
type Library []Doc

// Text returns the surface text of the doc, words separated by a single space.
func (d Doc) Text() string {
	words := make([]string, 0, len(d.Tokens))
	for _, t := range d.Tokens {
		words = append(words, t.Word)
	}
	return strings.Join(words, " ")
}

// Sense is one candidate meaning of an annotated word.
type Sense struct {
	// Opaque sense identifier, f.ex. be%2:42:03::
	Label string `json:"label"`

	// Confidence given by the annotator. Not normalized across a Group.
	Probability float64 `json:"probability"`
}

// Group is a batch of senses sharing one length="" marker.
type Group struct {
	// The candidate window size as written by the annotator. Informational only.
	Length int `json:"length"`

	Senses []Sense `json:"senses"`
}

// Best returns the sense with the highest probability. The first one wins ties.
func (g Group) Best() (Sense, bool) {
	if len(g.Senses) == 0 {
		return Sense{}, false
	}

	best := g.Senses[0]
	for _, s := range g.Senses[1:] {
		if s.Probability > best.Probability {
			best = s
		}
	}
	return best, true
}

// Token is the unit of parser output: either a run of plain words or one
// annotated word with its sense groups.
type Token struct {
	// The surface text. For plain runs, the words joined by a single space.
	Word string `json:"word"`

	// nil for plain text
	Groups []Group `json:"groups,omitempty"`
}

func (t Token) IsAnnotated() bool {
	return len(t.Groups) > 0
}

// Best returns the highest probability sense over all groups of the token.
func (t Token) Best() (Sense, bool) {
	var (
		best  Sense
		found bool
	)
	for _, g := range t.Groups {
		s, ok := g.Best()
		if !ok {
			continue
		}
		if !found || s.Probability > best.Probability {
			best = s
			found = true
		}
	}
	return best, found
}

// Labels returns the unique sense labels of the token, in source order.
func (t Token) Labels() []string {
	var labels []string
	seen := map[string]bool{}
	for _, g := range t.Groups {
		for _, s := range g.Senses {
			if seen[s.Label] {
				continue
			}
			seen[s.Label] = true
			labels = append(labels, s.Label)
		}
	}
	return labels
}
