package model

import "strings"

// Well-known element names.
const (
	ElementParagraph = "paragraph"
	ElementHeading   = "heading"
	ElementCodeBlock = "codeBlock"
	ElementMath      = "mathtex"
)

// ItemKind classifies an item in a root's sequence.
type ItemKind uint8

const (
	// ItemText is a single character of text.
	ItemText ItemKind = iota

	// ItemOpen starts a container element.
	ItemOpen

	// ItemClose ends the nearest open container element.
	ItemClose

	// ItemObject is a self-contained element occupying one offset.
	ItemObject

	// ItemTombstone fills the holding area where restored content used to
	// be, so holding area offsets never shift.
	ItemTombstone
)

// String returns the item kind name.
func (k ItemKind) String() string {
	switch k {
	case ItemText:
		return "text"
	case ItemOpen:
		return "open"
	case ItemClose:
		return "close"
	case ItemObject:
		return "object"
	case ItemTombstone:
		return "tombstone"
	default:
		return "unknown"
	}
}

// Element is a named node with attributes.
type Element struct {
	Name  string
	Attrs map[string]any
}

// NewElement creates an element with a copy of attrs.
func NewElement(name string, attrs map[string]any) *Element {
	el := &Element{Name: name, Attrs: make(map[string]any, len(attrs))}
	for k, v := range attrs {
		el.Attrs[k] = v
	}
	return el
}

// Attr returns an attribute value.
func (e *Element) Attr(key string) (any, bool) {
	if e == nil || e.Attrs == nil {
		return nil, false
	}
	v, ok := e.Attrs[key]
	return v, ok
}

// StringAttr returns a string attribute or "".
func (e *Element) StringAttr(key string) string {
	v, _ := e.Attr(key)
	s, _ := v.(string)
	return s
}

// BoolAttr returns a bool attribute or false.
func (e *Element) BoolAttr(key string) bool {
	v, _ := e.Attr(key)
	b, _ := v.(bool)
	return b
}

// Item is one entry in a root's sequence.
// Element is set for ItemOpen and ItemObject.
type Item struct {
	Kind    ItemKind
	Rune    rune
	Element *Element
}

// TextItem returns a text item.
func TextItem(r rune) Item {
	return Item{Kind: ItemText, Rune: r}
}

// Fragment is a detached sequence of items ready to be inserted.
type Fragment []Item

// TextFragment returns the runes of s as text items.
func TextFragment(s string) Fragment {
	frag := make(Fragment, 0, len(s))
	for _, r := range s {
		frag = append(frag, TextItem(r))
	}
	return frag
}

// BlockFragment wraps inline content in a container element.
func BlockFragment(el *Element, inline Fragment) Fragment {
	frag := make(Fragment, 0, len(inline)+2)
	frag = append(frag, Item{Kind: ItemOpen, Element: el})
	frag = append(frag, inline...)
	frag = append(frag, Item{Kind: ItemClose})
	return frag
}

// ParagraphFragment returns a paragraph containing text.
func ParagraphFragment(text string) Fragment {
	return BlockFragment(NewElement(ElementParagraph, nil), TextFragment(text))
}

func tombstones(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		items[i].Kind = ItemTombstone
	}
	return items
}

// ObjectFragment returns a fragment holding a single object element.
func ObjectFragment(el *Element) Fragment {
	return Fragment{{Kind: ItemObject, Element: el}}
}

// Text returns the concatenated text items of the fragment.
func (f Fragment) Text() string {
	var sb strings.Builder
	for _, it := range f {
		if it.Kind == ItemText {
			sb.WriteRune(it.Rune)
		}
	}
	return sb.String()
}

// Blocks splits a fragment into top-level blocks. Inline runs that are
// not wrapped in a container are returned as one block each with
// Container == nil.
func (f Fragment) Blocks() []Block {
	var blocks []Block
	var inline Fragment
	flush := func() {
		if len(inline) > 0 {
			blocks = append(blocks, Block{Inline: inline})
			inline = nil
		}
	}

	for i := 0; i < len(f); i++ {
		it := f[i]
		if it.Kind != ItemOpen {
			if it.Kind != ItemClose {
				inline = append(inline, it)
			}
			continue
		}
		flush()
		end := matchClose(f, i)
		if end < 0 {
			end = len(f)
		}
		inner := f[i+1 : min(end, len(f))]
		blocks = append(blocks, Block{Container: it.Element, Inline: append(Fragment(nil), inner...)})
		i = end
	}
	flush()
	return blocks
}

// Block is a top-level unit of a fragment.
type Block struct {
	Container *Element
	Inline    Fragment
}

// matchClose returns the index of the close token matching the open token
// at i, or -1.
func matchClose(items []Item, i int) int {
	depth := 0
	for j := i; j < len(items); j++ {
		switch items[j].Kind {
		case ItemOpen:
			depth++
		case ItemClose:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}

// matchOpen returns the index of the open token matching the close token
// at i, or -1.
func matchOpen(items []Item, i int) int {
	depth := 0
	for j := i; j >= 0; j-- {
		switch items[j].Kind {
		case ItemClose:
			depth++
		case ItemOpen:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return -1
}
