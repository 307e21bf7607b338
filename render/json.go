package render

import (
	"encoding/json"
	"io"

	"github.com/revelaction/senseparse/sense"
)

// JSONRenderer writes parsed tokens as JSON to a writer.
type JSONRenderer struct {
	W io.Writer

	Indent bool
}

// NewJSONRenderer creates a JSONRenderer writing to w.
func NewJSONRenderer(w io.Writer) *JSONRenderer {
	return &JSONRenderer{W: w}
}

// Render serializes the tokens as a JSON array.
func (r *JSONRenderer) Render(tokens []sense.Token) error {
	if tokens == nil {
		tokens = []sense.Token{}
	}

	enc := json.NewEncoder(r.W)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(tokens)
}

// RenderDoc serializes a whole document.
func (r *JSONRenderer) RenderDoc(doc sense.Doc) error {
	enc := json.NewEncoder(r.W)
	if r.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}
