package render

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/revelaction/senseparse/sense"
	"github.com/revelaction/senseparse/storage"
)

const Defaultformat = "best"

var (
	Black   = "\033[1;30m"
	Red     = "\033[1;31m"
	Green   = "\033[1;32m"
	Yellow  = "\033[0;33m"
	Purple  = "\033[1;34m"
	Magenta = "\033[1;35m"
	Teal    = "\033[1;36m"
	Gray    = "\033[0;37m"
	White   = "\033[1;37m"
	Off     = "\033[0m"
	//Yellow256  = "\033[1;38;5;202m"
	Yellow256 = "\033[1;38;5;130m"
	Grey256   = "\033[1;38;5;145m"
	Green256  = "\033[1;38;5;70m"
	ClearLine = "\033[K"
)

// SupportedFormats lists the formats in NextFormat order.
//
// text: the surface text only
// best: annotated words followed by the most probable sense
// all: annotated words followed by every group and sense
// label: one line per annotated word with its sense labels
func SupportedFormats() []string {
	return []string{"text", "best", "all", "label"}
}

func IsSupportedFormat(format string) bool {
	for _, f := range SupportedFormats() {
		if f == format {
			return true
		}
	}
	return false
}

type Renderer struct {
	HasColor bool

	HasPrefix bool

	Format string

	W io.Writer

	DocNames map[int]string
}

func NewRenderer() *Renderer {
	return &Renderer{
		Format:   Defaultformat,
		W:        os.Stdout,
		DocNames: map[int]string{},
	}
}

func (r *Renderer) AddDocName(docId int, name string) {
	r.DocNames[docId] = name
}

// Tokens writes the tokens of a parsed text, prefixed by prefix.
func (r *Renderer) Tokens(tokens []sense.Token, prefix string) {
	if r.Format == "label" {
		for i, t := range tokens {
			if !t.IsAnnotated() {
				continue
			}
			fmt.Fprintf(r.W, "%s%3d %s\n", prefix, i, r.labelLine(t))
		}
		return
	}

	fmt.Fprintf(r.W, "%s%s\n", prefix, r.TokensString(tokens))
}

// TokensString renders tokens in the current format as a single line.
func (r *Renderer) TokensString(tokens []sense.Token) string {
	parts := make([]string, 0, len(tokens))
	for _, t := range tokens {
		parts = append(parts, r.token(t))
	}
	return strings.Join(parts, " ")
}

// Hits writes sense index results, one per line.
func (r *Renderer) Hits(hits []storage.SenseHit, label string) {
	for _, h := range hits {
		prefix := ""
		if r.HasPrefix {
			prefix = fmt.Sprintf("[%s %2d %5d] ✍  ", r.title(h.DocId), h.DocId, h.Position)
		}

		var text string
		switch r.Format {
		case "label":
			text = r.labelLine(h.Token)
		default:
			text = r.token(h.Token)
		}

		fmt.Fprintf(r.W, "%s%s %s\n", prefix, text, r.probability(h.Token, label))
	}
}

func (r *Renderer) token(t sense.Token) string {
	if !t.IsAnnotated() {
		return t.Word
	}

	word := colorWord(t.Word, r.HasColor)

	switch r.Format {
	case "text":
		return word
	case "all":
		return word + r.groups(t.Groups)
	default:
		best, _ := t.Best()
		return word + "[" + colorLabel(best.Label, r.HasColor) + "]"
	}
}

// groups renders the senses of all groups, f.ex.
//
//	{1: be%2:42:03::=0.194 be%2:42:09::=0.085}{2: be%2:42:06::=0.02}
func (r *Renderer) groups(groups []sense.Group) string {
	var str strings.Builder
	for _, g := range groups {
		str.WriteString("{")
		str.WriteString(strconv.Itoa(g.Length))
		str.WriteString(":")
		for _, s := range g.Senses {
			str.WriteString(" ")
			str.WriteString(colorLabel(s.Label, r.HasColor))
			str.WriteString("=")
			str.WriteString(formatProbability(s.Probability))
		}
		str.WriteString("}")
	}
	return str.String()
}

// labelLine renders the word and its labels sorted by probability.
func (r *Renderer) labelLine(t sense.Token) string {
	var senses []sense.Sense
	for _, g := range t.Groups {
		senses = append(senses, g.Senses...)
	}

	sort.SliceStable(senses, func(i, j int) bool {
		return senses[i].Probability > senses[j].Probability
	})

	labels := make([]string, 0, len(senses))
	seen := map[string]bool{}
	for _, s := range senses {
		if seen[s.Label] {
			continue
		}
		seen[s.Label] = true
		labels = append(labels, colorLabel(s.Label, r.HasColor))
	}

	return fmt.Sprintf("%-15s %s", colorWord(t.Word, r.HasColor), strings.Join(labels, " "))
}

// probability returns the highest probability of the senses of t matching
// label, as text.
func (r *Renderer) probability(t sense.Token, label string) string {
	var (
		best  float64
		found bool
	)
	for _, g := range t.Groups {
		for _, s := range g.Senses {
			if storage.MatchLabel(label, s.Label) && (!found || s.Probability > best) {
				best = s.Probability
				found = true
			}
		}
	}

	if !found {
		return ""
	}
	return "(" + formatProbability(best) + ")"
}

func formatProbability(p float64) string {
	return strconv.FormatFloat(p, 'f', 3, 64)
}

func colorWord(word string, hasColor bool) string {
	if !hasColor {
		return word
	}
	return Green256 + word + Off
}

func colorLabel(label string, hasColor bool) string {
	if !hasColor {
		return label
	}
	return Yellow256 + label + Off
}

const titleWidth = 20

func (r *Renderer) title(docId int) string {
	// width in runes
	title := []rune(r.DocNames[docId])
	if len(title) > titleWidth {
		title = title[:titleWidth]
	}
	part := fmt.Sprintf("%-*s", titleWidth, string(title))

	if !r.HasColor {
		return part
	}
	return Grey256 + part + Off
}

// NextFormat sets the Renderer Format option to a different one, following
// the SupportedFormats() order.
func (r *Renderer) NextFormat() {

	supported := SupportedFormats()
	for i, format := range supported {
		if format == r.Format {
			switch i {
			case len(supported) - 1:
				r.Format = supported[0]
			default:
				r.Format = supported[i+1]
			}

			break
		}
	}
}

func (r *Renderer) NextPrefix() {

	// toggle
	r.HasPrefix = !r.HasPrefix
}
