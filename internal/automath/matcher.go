package automath

import (
	"sort"
	"strings"

	"github.com/dshills/automath/internal/config"
)

// EquationMatch is an equation extracted from pasted text.
type EquationMatch struct {
	Equation   string
	Display    bool
	OutputType config.OutputType
}

// Matcher recognizes text that is exactly one delimited equation.
// A Matcher is immutable and safe for concurrent use.
type Matcher struct {
	delimiters []config.Delimiter
	outputType config.OutputType
}

// NewMatcher creates a matcher for opts. Delimiters with a longer
// opener are tried first so "$$" wins over "$".
func NewMatcher(opts config.MathOptions) *Matcher {
	delims := make([]config.Delimiter, 0, len(opts.Delimiters))
	for _, d := range opts.Delimiters {
		if d.Open != "" && d.Close != "" {
			delims = append(delims, d)
		}
	}
	sort.SliceStable(delims, func(i, j int) bool {
		return len(delims[i].Open) > len(delims[j].Open)
	})

	outputType := opts.OutputType
	if outputType == "" {
		outputType = config.OutputScript
	}
	return &Matcher{delimiters: delims, outputType: outputType}
}

// Match returns the equation in text. The trimmed text must start with
// an opener, end with the matching closer and contain no other closer,
// so two equations in one paste do not match.
func (m *Matcher) Match(text string) (EquationMatch, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return EquationMatch{}, false
	}

	for _, d := range m.delimiters {
		if len(text) < len(d.Open)+len(d.Close) {
			continue
		}
		if !strings.HasPrefix(text, d.Open) || !strings.HasSuffix(text, d.Close) {
			continue
		}
		inner := text[len(d.Open) : len(text)-len(d.Close)]
		if strings.Contains(inner, d.Close) {
			continue
		}
		inner = strings.TrimSpace(inner)
		if inner == "" {
			continue
		}
		return EquationMatch{
			Equation:   inner,
			Display:    d.Display,
			OutputType: m.outputType,
		}, true
	}
	return EquationMatch{}, false
}
