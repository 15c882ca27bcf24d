package export

import (
	"bytes"
	"fmt"
	"strings"

	chromahtml "github.com/alecthomas/chroma/formatters/html"
	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting"
	"github.com/yuin/goldmark/extension"

	"github.com/dshills/automath/internal/model"
)

// htmlRenderer converts blocks to HTML through goldmark. Raw HTML in the
// Markdown source is not passed through; math data markup is spliced in
// after rendering in place of placeholder tokens.
type htmlRenderer struct {
	md goldmark.Markdown
}

func newHTMLRenderer() *htmlRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true),
				),
			),
		),
	)
	return &htmlRenderer{md: md}
}

func (r *htmlRenderer) render(blocks []Block) ([]byte, error) {
	// Tokens are plain alphanumerics so goldmark copies them verbatim.
	nonce := strings.ReplaceAll(uuid.NewString(), "-", "")
	var pairs []string
	source := markdown(blocks, func(el *model.Element) string {
		token := fmt.Sprintf("am%sx%dx", nonce, len(pairs)/2)
		pairs = append(pairs, token, MathData(el))
		return token
	})

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	if len(pairs) == 0 {
		return buf.Bytes(), nil
	}
	return []byte(strings.NewReplacer(pairs...).Replace(buf.String())), nil
}
