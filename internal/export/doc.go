// Package export renders documents for output.
//
// Supported formats:
//   - markdown: escaped Markdown text, math as a math/tex script element
//     or a math-tex span holding the delimited equation
//   - html: the Markdown rendered with goldmark, math markup spliced in
//   - text: blocks as lines, math as delimited TeX
//   - cbor: a structural snapshot of the document
package export
