package automath

import (
	"testing"

	"github.com/dshills/automath/internal/config"
)

func TestMatcher_Match(t *testing.T) {
	m := NewMatcher(config.DefaultMathOptions())

	tests := []struct {
		name     string
		input    string
		ok       bool
		equation string
		display  bool
	}{
		{"dollars", "$$x^2+1$$", true, "x^2+1", true},
		{"padded", "  $$ a+b $$  ", true, "a+b", true},
		{"display brackets", `\[\frac{1}{2}\]`, true, `\frac{1}{2}`, true},
		{"inline parens", `\( y \)`, true, "y", false},
		{"plain text", "plain text", false, "", false},
		{"empty", "", false, "", false},
		{"whitespace", " \t ", false, "", false},
		{"empty equation", "$$  $$", false, "", false},
		{"only delimiters", "$$$", false, "", false},
		{"unclosed", "$$x", false, "", false},
		{"mismatched pair", `\[x\)`, false, "", false},
		{"two equations", "$$a$$ and $$b$$", false, "", false},
		{"two bracket equations", `\[a\] \[b\]`, false, "", false},
		{"text around", "see $$x$$", false, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := m.Match(tt.input)
			if ok != tt.ok {
				t.Fatalf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !ok {
				return
			}
			if got.Equation != tt.equation {
				t.Errorf("Match(%q).Equation = %q, want %q", tt.input, got.Equation, tt.equation)
			}
			if got.Display != tt.display {
				t.Errorf("Match(%q).Display = %v, want %v", tt.input, got.Display, tt.display)
			}
			if got.OutputType != config.OutputScript {
				t.Errorf("Match(%q).OutputType = %q, want script", tt.input, got.OutputType)
			}
		})
	}
}

func TestMatcher_Options(t *testing.T) {
	m := NewMatcher(config.MathOptions{
		OutputType: config.OutputSpan,
		Delimiters: []config.Delimiter{
			{Open: "$", Close: "$", Display: false},
			{Open: "$$", Close: "$$", Display: true},
			{Open: "", Close: "]"},
		},
	})

	tests := []struct {
		input    string
		ok       bool
		equation string
		display  bool
	}{
		{"$$x$$", true, "x", true},
		{"$x$", true, "x", false},
		{"$a$ $b$", false, "", false},
		{`\[x\]`, false, "", false},
		{"x]", false, "", false},
	}

	for _, tt := range tests {
		got, ok := m.Match(tt.input)
		if ok != tt.ok {
			t.Errorf("Match(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && (got.Equation != tt.equation || got.Display != tt.display || got.OutputType != config.OutputSpan) {
			t.Errorf("Match(%q) = %+v", tt.input, got)
		}
	}
}

func TestMatcher_EmptyOutputTypeDefaultsToScript(t *testing.T) {
	m := NewMatcher(config.MathOptions{Delimiters: config.DefaultDelimiters()})
	got, ok := m.Match("$$x$$")
	if !ok || got.OutputType != config.OutputScript {
		t.Errorf("Match() = %+v, %v, want script output", got, ok)
	}
}
