package query

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/c-bata/go-prompt"

	"github.com/revelaction/senseparse/render"
	"github.com/revelaction/senseparse/storage"
)

const (
	completionThreshold = 2

	maxSuggestions = 12
)

type Handler struct {
	DocRepo  storage.DocReader
	Renderer *render.Renderer

	// Limit is the maximum number of hits per lookup, BatchSize the number
	// of hits fetched per repository call.
	Limit     int
	BatchSize int

	labels []string
}

func NewHandler(dr storage.DocReader, r *render.Renderer) *Handler {
	return &Handler{
		DocRepo:   dr,
		Renderer:  r,
		Limit:     2000,
		BatchSize: 500,
	}
}

// Run presents the REPL. Each line is a sense label, or a label prefix
// ending in '*'. "quit" ends the loop.
func (h *Handler) Run() error {

	labels, err := h.DocRepo.SenseLabels("")
	if err != nil {
		return err
	}
	h.labels = labels

	if err := h.loadDocNames(); err != nil {
		return err
	}

	fmt.Fprintln(h.Renderer.W, "🔑 Ctrl+X: Toggle prefix, Ctrl+F: next Format, 🔧 quit")

	// initialize prompt history
	history := []string{}

	for {

		in := prompt.Input("      🔖 ", h.completer,
			prompt.OptionTitle("senseparse query"),
			prompt.OptionPrefixTextColor(prompt.Yellow),
			prompt.OptionPreviewSuggestionTextColor(prompt.Blue),
			prompt.OptionSelectedSuggestionBGColor(prompt.LightGray),
			prompt.OptionMaxSuggestion(maxSuggestions),
			prompt.OptionSuggestionBGColor(prompt.DarkGray),
			prompt.OptionHistory(history),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlF,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextFormat()
					fmt.Fprintln(h.Renderer.W, "Format set to: "+h.Renderer.Format)
				}}),
			prompt.OptionAddKeyBind(prompt.KeyBind{
				Key: prompt.ControlX,
				Fn: func(buf *prompt.Buffer) {
					h.Renderer.NextPrefix()
					fmt.Fprintf(h.Renderer.W, "Prefix set to %t\n", h.Renderer.HasPrefix)
				}}),
		)

		in = strings.TrimSpace(in)
		if in == "quit" {
			return nil
		}
		if in == "" {
			continue
		}

		history = append(history, in)

		hits, err := Collect(h.DocRepo, in, h.Limit, h.BatchSize)
		if err != nil {
			fmt.Fprintf(h.Renderer.W, "Error fetching hits: %v\n", err)
			continue
		}

		h.Renderer.Hits(hits, in)
	}
}

func (h *Handler) loadDocNames() error {
	docs, err := h.DocRepo.List("")
	if err != nil {
		return err
	}
	for _, d := range docs {
		h.Renderer.AddDocName(d.Id, d.Title)
	}
	return nil
}

func (h *Handler) completer(in prompt.Document) []prompt.Suggest {
	word := in.GetWordBeforeCursor()
	if len(word) < completionThreshold {
		return []prompt.Suggest{}
	}

	return Suggest(h.labels, word)
}

// Suggest returns the labels starting with word.
func Suggest(labels []string, word string) []prompt.Suggest {
	s := []prompt.Suggest{}
	for _, l := range labels {
		if strings.HasPrefix(l, word) {
			s = append(s, prompt.Suggest{Text: l, Description: lemma(l)})
		}
	}
	return s
}

// lemma returns the part of a WordNet style sense key before '%'.
func lemma(label string) string {
	if i := strings.IndexByte(label, '%'); i > 0 {
		return "🏷  " + label[:i]
	}
	return ""
}

// Collect fetches the hits for label in batches of batchSize until limit
// hits are read or the repository has no more.
func Collect(repo storage.DocReader, label string, limit, batchSize int) ([]storage.SenseHit, error) {
	var hits []storage.SenseHit

	cursor := storage.Cursor(0)
	for {
		batch := batchSize
		if rest := limit - len(hits); limit > 0 && rest < batch {
			batch = rest
		}

		fetched := 0
		newCursor, err := repo.FindBySense(label, cursor, batch, func(hit storage.SenseHit) error {
			fetched++
			hits = append(hits, hit)
			return nil
		})
		if err != nil {
			return nil, err
		}

		slog.Debug("fetched sense hits", slog.String("label", label), slog.Int("count", fetched), slog.Int64("cursor", int64(newCursor)))

		if newCursor == cursor || fetched == 0 {
			break // No more progress
		}
		if limit > 0 && len(hits) >= limit {
			break
		}
		cursor = newCursor
	}

	return hits, nil
}
