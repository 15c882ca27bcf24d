package clipboard

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dshills/automath/internal/model"
)

// Element attribute names set by the markdown converter.
const (
	AttrLevel    = "level"
	AttrLanguage = "language"
)

// plainToFragment converts plain text. Blank lines separate paragraphs;
// lines within a paragraph are joined with a space. A single paragraph
// becomes inline text so it merges into the paste target.
func plainToFragment(s string) model.Fragment {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var paras []string
	var cur []string
	flush := func() {
		if len(cur) > 0 {
			paras = append(paras, strings.Join(cur, " "))
			cur = nil
		}
	}
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		cur = append(cur, line)
	}
	flush()

	switch len(paras) {
	case 0:
		return nil
	case 1:
		return model.TextFragment(paras[0])
	}
	var frag model.Fragment
	for _, p := range paras {
		frag = append(frag, model.ParagraphFragment(p)...)
	}
	return frag
}

// markdownConverter builds fragments from a goldmark AST.
type markdownConverter struct {
	md goldmark.Markdown
}

func newMarkdownConverter() *markdownConverter {
	return &markdownConverter{md: goldmark.New()}
}

// convert parses src and maps paragraphs, headings and code blocks to
// document blocks. Container blocks such as lists and quotes contribute
// their children.
func (c *markdownConverter) convert(src string) model.Fragment {
	source := []byte(src)
	doc := c.md.Parser().Parse(text.NewReader(source))

	var frag model.Fragment
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Paragraph, *ast.TextBlock, *ast.HTMLBlock:
			if s := joinLines(node.Lines(), source, " "); s != "" {
				frag = append(frag, model.ParagraphFragment(s)...)
			}
			return ast.WalkSkipChildren, nil

		case *ast.Heading:
			el := model.NewElement(model.ElementHeading, map[string]any{AttrLevel: node.Level})
			frag = append(frag, model.BlockFragment(el, model.TextFragment(joinLines(node.Lines(), source, " ")))...)
			return ast.WalkSkipChildren, nil

		case *ast.FencedCodeBlock:
			el := model.NewElement(model.ElementCodeBlock, map[string]any{AttrLanguage: string(node.Language(source))})
			frag = append(frag, model.BlockFragment(el, model.TextFragment(joinLines(node.Lines(), source, "\n")))...)
			return ast.WalkSkipChildren, nil

		case *ast.CodeBlock:
			el := model.NewElement(model.ElementCodeBlock, nil)
			frag = append(frag, model.BlockFragment(el, model.TextFragment(joinLines(node.Lines(), source, "\n")))...)
			return ast.WalkSkipChildren, nil

		case *ast.ThematicBreak:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return frag
}

// joinLines returns the raw source of lines, each stripped of its line
// ending, joined with sep.
func joinLines(lines *text.Segments, source []byte, sep string) string {
	parts := make([]string, 0, lines.Len())
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		parts = append(parts, strings.TrimRight(string(seg.Value(source)), "\r\n"))
	}
	return strings.Join(parts, sep)
}
