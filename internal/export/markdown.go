package export

import (
	"fmt"
	"html"
	"strings"

	"github.com/dshills/automath/internal/clipboard"
	"github.com/dshills/automath/internal/command"
	"github.com/dshills/automath/internal/config"
	"github.com/dshills/automath/internal/model"
)

// Markdown renders blocks as Markdown. Text is escaped so it reads back
// literally; math nodes become math data markup (a math/tex script
// element or a math-tex span).
func Markdown(blocks []Block) string {
	return markdown(blocks, MathData)
}

func markdown(blocks []Block, math func(*model.Element) string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, markdownBlock(b, math))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, "\n\n") + "\n"
}

func markdownBlock(b Block, math func(*model.Element) string) string {
	switch b.Element.Name {
	case model.ElementHeading:
		level := 1
		if v, ok := b.Element.Attr(clipboard.AttrLevel); ok {
			if n, ok := v.(int); ok && n >= 1 && n <= 6 {
				level = n
			}
		}
		return strings.Repeat("#", level) + " " + inline(b.Inline, escapeText, math)
	case model.ElementCodeBlock:
		code := inline(b.Inline, plain, MathTeX)
		fence := codeFence(code)
		lang := b.Element.StringAttr(clipboard.AttrLanguage)
		return fence + lang + "\n" + code + "\n" + fence
	default:
		return guardLineStart(inline(b.Inline, escapeText, math))
	}
}

func inline(runs []Inline, text func(string) string, math func(*model.Element) string) string {
	var sb strings.Builder
	for _, r := range runs {
		if r.Math != nil {
			sb.WriteString(math(r.Math))
			continue
		}
		sb.WriteString(text(r.Text))
	}
	return sb.String()
}

func plain(s string) string { return s }

// markdownSpecial lists the characters that start inline Markdown or HTML
// constructs anywhere in a line.
const markdownSpecial = "\\`*_[]<>&#~"

// escapeText backslash-escapes s so it renders as literal text.
func escapeText(s string) string {
	if !strings.ContainsAny(s, markdownSpecial) {
		return s
	}
	var sb strings.Builder
	for _, r := range s {
		if strings.ContainsRune(markdownSpecial, r) {
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// guardLineStart keeps a paragraph from being read as a list item,
// thematic break or indented code block.
func guardLineStart(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '-', '+', '=':
		return "\\" + s
	case ' ', '\t':
		if strings.HasPrefix(s, "    ") || s[0] == '\t' {
			return fmt.Sprintf("&#%d;", s[0]) + s[1:]
		}
		return s
	}
	digits := 0
	for digits < len(s) && digits < 10 && s[digits] >= '0' && s[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(s) && (s[digits] == '.' || s[digits] == ')') {
		return s[:digits] + "\\" + s[digits:]
	}
	return s
}

// codeFence returns a backtick fence longer than any backtick run in code.
func codeFence(code string) string {
	longest, run := 0, 0
	for i := 0; i < len(code); i++ {
		if code[i] == '`' {
			run++
			longest = max(longest, run)
			continue
		}
		run = 0
	}
	return strings.Repeat("`", max(3, longest+1))
}

// MathData renders a math node as data markup for its output type:
// a math/tex script element, or a math-tex span around delimited TeX.
func MathData(el *model.Element) string {
	eq := el.StringAttr(command.AttrEquation)
	display := el.BoolAttr(command.AttrDisplay)

	if config.OutputType(el.StringAttr(command.AttrType)) == config.OutputSpan {
		return `<span class="math-tex">` + html.EscapeString(delimit(eq, display)) + `</span>`
	}
	mode := "math/tex"
	if display {
		mode += "; mode=display"
	}
	// A script body ends at the first "</", so it must not appear.
	return fmt.Sprintf(`<script type="%s">%s</script>`, mode, strings.ReplaceAll(eq, "</", `<\/`))
}

// MathTeX renders a math node as delimited TeX.
func MathTeX(el *model.Element) string {
	return delimit(el.StringAttr(command.AttrEquation), el.BoolAttr(command.AttrDisplay))
}

func delimit(eq string, display bool) string {
	if display {
		return `\[` + eq + `\]`
	}
	return `\(` + eq + `\)`
}

// Text renders blocks as plain lines with math as delimited TeX.
func Text(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		sb.WriteString(inline(b.Inline, plain, MathTeX))
		sb.WriteByte('\n')
	}
	return sb.String()
}
