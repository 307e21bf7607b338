package render

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/revelaction/senseparse/sense"
)

func TestJSONRendererRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(nil); err != nil {
		t.Fatalf("render: %v", err)
	}

	if got := buf.String(); got != "[]\n" {
		t.Fatalf("expected empty array, got %q", got)
	}
}

func TestJSONRendererRenderTokens(t *testing.T) {
	tokens := []sense.Token{
		{Word: "I"},
		{Word: "am", Groups: []sense.Group{{Length: 1, Senses: []sense.Sense{{Label: "be%2:42:03::", Probability: 0.194}}}}},
	}

	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	if err := r.Render(tokens); err != nil {
		t.Fatalf("render: %v", err)
	}

	var results []sense.Token
	if err := json.Unmarshal(buf.Bytes(), &results); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if results[0].Groups != nil {
		t.Errorf("expected no groups for plain token, got %v", results[0].Groups)
	}

	if results[1].Groups[0].Senses[0].Label != "be%2:42:03::" {
		t.Errorf("expected label 'be%%2:42:03::', got %q", results[1].Groups[0].Senses[0].Label)
	}
}

func TestJSONRendererRenderDoc(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)
	r.Indent = true
	if err := r.RenderDoc(sense.Doc{Id: 3, Title: "a.txt", Tokens: []sense.Token{{Word: "x"}}}); err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc sense.Doc
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}
	if doc.Id != 3 || doc.Title != "a.txt" {
		t.Errorf("unexpected doc %+v", doc)
	}
}
