package export

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/automath/internal/model"
)

// ErrUnknownFormat indicates an unsupported export format.
var ErrUnknownFormat = errors.New("export: unknown format")

// Format is an export format.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatCBOR     Format = "cbor"
)

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatMarkdown, FormatHTML, FormatText, FormatCBOR:
		return f, nil
	case "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// IsBinary returns true for formats that are not text.
func (f Format) IsBinary() bool {
	return f == FormatCBOR
}

// Exporter renders documents.
type Exporter struct {
	html *htmlRenderer
}

// New creates an exporter.
func New() *Exporter {
	return &Exporter{html: newHTMLRenderer()}
}

// Render renders the main root of doc in format f.
func (e *Exporter) Render(doc *model.Document, f Format) ([]byte, error) {
	blocks := Blocks(doc)
	switch f {
	case FormatMarkdown:
		return []byte(Markdown(blocks)), nil
	case FormatHTML:
		return e.html.render(blocks)
	case FormatText:
		return []byte(Text(blocks)), nil
	case FormatCBOR:
		return EncodeSnapshot(NewSnapshot(doc.Version(), blocks))
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

// Block is a top-level element with its inline content.
type Block struct {
	Element *model.Element
	Inline  []Inline
}

// Inline is a text run or a math node.
type Inline struct {
	Text string
	Math *model.Element
}

// Blocks splits the main root of doc into blocks. Adjacent text items are
// merged into one run.
func Blocks(doc *model.Document) []Block {
	var blocks []Block
	var cur *Block
	var run strings.Builder

	flush := func() {
		if cur != nil && run.Len() > 0 {
			cur.Inline = append(cur.Inline, Inline{Text: run.String()})
			run.Reset()
		}
	}

	for _, it := range doc.Items(model.MainRoot) {
		switch it.Kind {
		case model.ItemOpen:
			blocks = append(blocks, Block{Element: it.Element})
			cur = &blocks[len(blocks)-1]
		case model.ItemClose:
			flush()
			cur = nil
		case model.ItemText:
			if cur != nil {
				run.WriteRune(it.Rune)
			}
		case model.ItemObject:
			if cur != nil {
				flush()
				cur.Inline = append(cur.Inline, Inline{Math: it.Element})
			}
		}
	}
	return blocks
}
