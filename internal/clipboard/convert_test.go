package clipboard

import (
	"testing"

	"github.com/dshills/automath/internal/model"
)

type blockSummary struct {
	name string
	text string
}

func summarize(frag model.Fragment) []blockSummary {
	var out []blockSummary
	for _, b := range frag.Blocks() {
		name := ""
		if b.Container != nil {
			name = b.Container.Name
		}
		out = append(out, blockSummary{name: name, text: b.Inline.Text()})
	}
	return out
}

func equalSummaries(a, b []blockSummary) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPlainToFragment(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []blockSummary
	}{
		{"single line is inline", "$$x^2$$", []blockSummary{{"", "$$x^2$$"}}},
		{"lines are joined", "$$\nx^2\n$$", []blockSummary{{"", "$$ x^2 $$"}}},
		{"blank line splits", "one\n\ntwo", []blockSummary{{model.ElementParagraph, "one"}, {model.ElementParagraph, "two"}}},
		{"crlf", "one\r\n\r\ntwo", []blockSummary{{model.ElementParagraph, "one"}, {model.ElementParagraph, "two"}}},
		{"surrounding spaces kept", "  $$ a+b $$  ", []blockSummary{{"", "  $$ a+b $$  "}}},
		{"only newlines", "\n\n\n", nil},
		{"whitespace lines", " \n\t", nil},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(plainToFragment(tt.input))
			if !equalSummaries(got, tt.expected) {
				t.Errorf("plainToFragment(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownConvert(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []blockSummary
	}{
		{"paragraph keeps escapes", `\[x+1\]`, []blockSummary{{model.ElementParagraph, `\[x+1\]`}}},
		{"multi-line paragraph", "$$\nx\n$$", []blockSummary{{model.ElementParagraph, "$$ x $$"}}},
		{"heading", "## Title", []blockSummary{{model.ElementHeading, "Title"}}},
		{"fenced code", "```go\na\nb\n```", []blockSummary{{model.ElementCodeBlock, "a\nb"}}},
		{"tight list", "- a\n- b", []blockSummary{{model.ElementParagraph, "a"}, {model.ElementParagraph, "b"}}},
		{"quote", "> q", []blockSummary{{model.ElementParagraph, "q"}}},
		{"thematic break skipped", "a\n\n---\n\nb", []blockSummary{{model.ElementParagraph, "a"}, {model.ElementParagraph, "b"}}},
		{"empty", "", nil},
	}

	c := newMarkdownConverter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := summarize(c.convert(tt.input))
			if !equalSummaries(got, tt.expected) {
				t.Errorf("convert(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMarkdownConvert_Attributes(t *testing.T) {
	frag := newMarkdownConverter().convert("### H\n\n```tex\nx\n```")
	blocks := frag.Blocks()
	if len(blocks) != 2 {
		t.Fatalf("len(Blocks()) = %d, want 2", len(blocks))
	}
	if lvl, _ := blocks[0].Container.Attr(AttrLevel); lvl != 3 {
		t.Errorf("heading level = %v, want 3", lvl)
	}
	if got := blocks[1].Container.StringAttr(AttrLanguage); got != "tex" {
		t.Errorf("code language = %q, want tex", got)
	}
}
