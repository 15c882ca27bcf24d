package model

// ElementRule describes where an element may appear.
type ElementRule struct {
	// Block elements live directly under a root.
	Block bool

	// Object elements occupy a single item and have no children.
	Object bool

	// AllowText lets a block contain text.
	AllowText bool

	// AllowIn lists the containers an object may be placed in.
	AllowIn []string
}

// Schema holds the element rules of a document.
type Schema struct {
	rules map[string]ElementRule
}

// NewSchema creates an empty schema.
func NewSchema() *Schema {
	return &Schema{rules: make(map[string]ElementRule)}
}

// DefaultSchema returns the schema used by editor documents:
// paragraphs, headings and code blocks hold text, math objects are
// allowed in paragraphs and headings but not in code blocks.
func DefaultSchema() *Schema {
	s := NewSchema()
	s.Register(ElementParagraph, ElementRule{Block: true, AllowText: true})
	s.Register(ElementHeading, ElementRule{Block: true, AllowText: true})
	s.Register(ElementCodeBlock, ElementRule{Block: true, AllowText: true})
	s.Register(ElementMath, ElementRule{Object: true, AllowIn: []string{ElementParagraph, ElementHeading}})
	return s
}

// Register adds or replaces the rule for an element name.
func (s *Schema) Register(name string, rule ElementRule) {
	s.rules[name] = rule
}

// Rule returns the rule for an element name.
func (s *Schema) Rule(name string) (ElementRule, bool) {
	r, ok := s.rules[name]
	return r, ok
}

// IsBlock returns true for registered block elements.
func (s *Schema) IsBlock(name string) bool {
	r, ok := s.rules[name]
	return ok && r.Block
}

// IsObject returns true for registered object elements.
func (s *Schema) IsObject(name string) bool {
	r, ok := s.rules[name]
	return ok && r.Object
}

// AllowsText reports whether text may be placed in container.
// A nil container means the root level.
func (s *Schema) AllowsText(container *Element) bool {
	if container == nil {
		return false
	}
	r, ok := s.rules[container.Name]
	return ok && r.AllowText
}

// AllowsItem reports whether item may be a direct child of container.
func (s *Schema) AllowsItem(container *Element, item Item) bool {
	switch item.Kind {
	case ItemText:
		return s.AllowsText(container)
	case ItemOpen:
		return container == nil && item.Element != nil && s.IsBlock(item.Element.Name)
	case ItemObject:
		if container == nil || item.Element == nil {
			return false
		}
		r, ok := s.rules[item.Element.Name]
		if !ok || !r.Object {
			return false
		}
		for _, name := range r.AllowIn {
			if name == container.Name {
				return true
			}
		}
		return false
	default:
		return true
	}
}

// AllowsInline reports whether every item of inline may be placed in container.
func (s *Schema) AllowsInline(container *Element, inline Fragment) bool {
	for _, it := range inline {
		if !s.AllowsItem(container, it) {
			return false
		}
	}
	return true
}
