package config

import (
	"fmt"
	"time"
)

// OutputType selects how a math node is rendered in output data.
type OutputType string

const (
	// OutputScript renders <script type="math/tex">.
	OutputScript OutputType = "script"

	// OutputSpan renders <span class="math-tex">.
	OutputSpan OutputType = "span"
)

// ParseOutputType validates an output type name.
func ParseOutputType(s string) (OutputType, error) {
	switch OutputType(s) {
	case OutputScript, OutputSpan:
		return OutputType(s), nil
	default:
		return "", fmt.Errorf("output type %q: %w", s, ErrInvalidValue)
	}
}

// Delimiter is an opening/closing pair that marks an equation.
type Delimiter struct {
	Open    string
	Close   string
	Display bool
}

// MathOptions configures equation detection and conversion.
type MathOptions struct {
	// OutputType is copied onto every created math node.
	OutputType OutputType

	// Delimiters lists the recognized equation delimiters.
	Delimiters []Delimiter

	// Delay is the grace period between detection and conversion.
	Delay time.Duration
}

// Default values.
const (
	DefaultDelay      = 100 * time.Millisecond
	DefaultMaxEntries = 1000
	DefaultLogLevel   = "info"
)

// DefaultDelimiters returns the built-in delimiter pairs.
func DefaultDelimiters() []Delimiter {
	return []Delimiter{
		{Open: `\[`, Close: `\]`, Display: true},
		{Open: `\(`, Close: `\)`, Display: false},
		{Open: `$$`, Close: `$$`, Display: true},
	}
}

// DefaultMathOptions returns the built-in math options.
func DefaultMathOptions() MathOptions {
	return MathOptions{
		OutputType: OutputScript,
		Delimiters: DefaultDelimiters(),
		Delay:      DefaultDelay,
	}
}

// Config is the decoded configuration.
type Config struct {
	Math    MathOptions
	Logging LoggingOptions
	History HistoryOptions
}

// LoggingOptions configures the logger.
type LoggingOptions struct {
	Level string
}

// HistoryOptions configures the undo history.
type HistoryOptions struct {
	MaxEntries int
}

// Defaults returns the built-in configuration as a settings map.
func Defaults() map[string]any {
	delims := make([]any, 0, 3)
	for _, d := range DefaultDelimiters() {
		delims = append(delims, map[string]any{"open": d.Open, "close": d.Close, "display": d.Display})
	}
	return map[string]any{
		"math": map[string]any{
			"outputType": string(OutputScript),
			"delay":      DefaultDelay.String(),
			"delimiters": delims,
		},
		"logging": map[string]any{
			"level": DefaultLogLevel,
		},
		"history": map[string]any{
			"maxEntries": DefaultMaxEntries,
		},
	}
}
