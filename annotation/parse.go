// Package annotation parses the textual output of a word sense
// disambiguation annotator into sense.Token values.
//
// The annotator writes plain words as they are and wraps each annotated word
// in a span:
//
//	I <x length="1 be%2:42:03::|0.194 be%2:42:09::|0.085">am</x> interested
//
// A span holds one or more groups, each opened by length="<n>, with senses
// written as <label>|<probability>. The last sense of a group ends with a
// quote; the last sense of the span is followed by "> the word and </x>.
package annotation

import (
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/revelaction/senseparse/sense"
)

const (
	spanOpen   = "<x"
	groupOpen  = `length="`
	spanClose  = "</x>"
	wordMarker = `">`
	separator  = "|"
	quote      = `"`
)

// decimal is the only accepted probability syntax: no hex, no underscores.
var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

type state int

const (
	statePlain state = iota
	stateInSpan
)

// class is the role of a single whitespace delimited token.
type class int

const (
	classWord class = iota
	classSpanOpen
	classGroupOpen
	classSpanClose
	classSense
)

func classify(st state, tok string) class {
	if tok == spanOpen {
		return classSpanOpen
	}

	if st == statePlain {
		return classWord
	}

	switch {
	case strings.HasPrefix(tok, groupOpen):
		return classGroupOpen
	case strings.HasSuffix(tok, spanClose):
		return classSpanClose
	default:
		return classSense
	}
}

// parser holds the accumulators of one Parse call.
type parser struct {
	state state
	out   []sense.Token

	// pending plain words
	words []string

	// groups of the open span, and the group being filled
	groups []sense.Group
	cur    *sense.Group
}

// Parse converts raw annotator output into an ordered list of tokens. Runs
// of plain words become one Token without groups; every span becomes one
// Token with its sense groups.
//
// On failure it returns a *ParseError and no tokens.
func Parse(raw string) ([]sense.Token, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return nil, newError(EmptyInput, "", "nothing to parse", nil)
	}

	p := &parser{}
	for _, tok := range fields {
		if err := p.step(tok); err != nil {
			return nil, err
		}
	}

	if p.state == stateInSpan {
		return nil, newError(UnclosedSpan, "", "input ended inside a span", nil)
	}
	p.flushWords()

	return p.out, nil
}

// ParseReader reads r to the end and parses its content.
func ParseReader(r io.Reader) ([]sense.Token, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(string(b))
}

func (p *parser) step(tok string) error {
	switch classify(p.state, tok) {
	case classSpanOpen:
		if p.state == stateInSpan {
			return newError(UnclosedSpan, tok, "span opened inside another span", nil)
		}
		p.flushWords()
		p.state = stateInSpan
		p.groups = nil
		p.cur = nil

	case classGroupOpen:
		if strings.HasSuffix(tok, spanClose) {
			return newError(MalformedSense, tok, "group without senses", nil)
		}
		p.closeGroup()
		length, _ := strconv.Atoi(tok[len(groupOpen):])
		p.cur = &sense.Group{Length: length}

	case classSpanClose:
		mark := strings.Index(tok, wordMarker)
		if mark < 0 {
			return newError(MalformedSense, tok, "missing "+wordMarker+" before the word", nil)
		}
		word := tok[mark+len(wordMarker) : len(tok)-len(spanClose)]
		if word == "" {
			return newError(MalformedSense, tok, "empty word", nil)
		}
		if err := p.addSense(tok, tok[:mark]); err != nil {
			return err
		}
		p.closeGroup()

		p.out = append(p.out, sense.Token{Word: word, Groups: p.groups})
		p.state = statePlain
		p.groups = nil

	case classSense:
		text, closes := strings.CutSuffix(tok, quote)
		if err := p.addSense(tok, text); err != nil {
			return err
		}
		if closes {
			p.closeGroup()
		}

	case classWord:
		p.words = append(p.words, tok)
	}

	return nil
}

// addSense parses text as <label>|<probability> and appends it to the
// current group. tok is the full token, for error reporting.
func (p *parser) addSense(tok, text string) error {
	if p.cur == nil {
		return newError(MalformedSense, tok, "sense outside of a "+groupOpen+" group", nil)
	}

	i := strings.LastIndex(text, separator)
	if i < 0 {
		return newError(MalformedSense, tok, "missing "+separator+" separator", nil)
	}

	label := text[:i]
	if label == "" {
		return newError(MalformedSense, tok, "empty label", nil)
	}

	num := text[i+1:]
	prob, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return newError(MalformedSense, tok, "invalid probability", err)
	}
	if !decimal.MatchString(num) {
		return newError(MalformedSense, tok, "probability is not a decimal number", nil)
	}
	if math.IsNaN(prob) || math.IsInf(prob, 0) || prob < 0 {
		return newError(MalformedSense, tok, "probability must be a finite non-negative number", nil)
	}

	p.cur.Senses = append(p.cur.Senses, sense.Sense{Label: label, Probability: prob})
	return nil
}

// closeGroup moves the current group, if it has senses, to the span.
func (p *parser) closeGroup() {
	if p.cur != nil && len(p.cur.Senses) > 0 {
		p.groups = append(p.groups, *p.cur)
	}
	p.cur = nil
}

func (p *parser) flushWords() {
	if len(p.words) == 0 {
		return
	}
	p.out = append(p.out, sense.Token{Word: strings.Join(p.words, " ")})
	p.words = nil
}
