// Package style resolves cascading style rules against a parsed document and
// builds the styled tree the layout engine consumes.
package style

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
)

// DefaultFontSize is the pixel size used when font-size is unset or
// unparseable.
const DefaultFontSize = 10

// DisplayValue is the decoded form of the display property.
type DisplayValue int

const (
	DisplayNone DisplayValue = iota
	DisplayInline
	DisplayBlock
)

// FontStyleValue is the decoded form of the font-style property.
type FontStyleValue int

const (
	FontStyleNormal FontStyleValue = iota
	FontStyleItalic
	FontStyleOblique
)

// StyledNode pairs one document element with the declarations that matched it.
// The DOM node is borrowed: the document tree must stay alive and unmodified
// for as long as this tree (and any layout trees derived from it) is in use.
//
// Properties keeps every matching declaration in cascade order. Duplicates are
// allowed; lookup takes the last entry, which is what gives later rules their
// override power.
type StyledNode struct {
	Node       *html.Node
	Properties []css.Declaration
	Children   []*StyledNode
	Parent     *StyledNode
}

// GetRaw returns the last declaration value recorded for the property. It
// never consults the parent chain: unset properties are unset, full stop.
func (sn *StyledNode) GetRaw(id css.PropertyID) (string, bool) {
	for i := len(sn.Properties) - 1; i >= 0; i-- {
		if sn.Properties[i].Property == id {
			return sn.Properties[i].Value, true
		}
	}
	return "", false
}

// Lookup is GetRaw with a caller-supplied fallback.
func (sn *StyledNode) Lookup(id css.PropertyID, fallback string) string {
	if v, ok := sn.GetRaw(id); ok {
		return v
	}
	return fallback
}

// GetColor decodes a color-valued property. Malformed or unset values fall
// back to opaque black; decoding never fails.
func (sn *StyledNode) GetColor(id css.PropertyID) Color {
	raw, ok := sn.GetRaw(id)
	if !ok {
		return Color{A: 255}
	}
	c, ok := ParseColor(raw)
	if !ok {
		return Color{A: 255}
	}
	return c
}

// Display decodes the display property. Unset and unrecognized values map to
// inline, the natural flow behavior of most elements.
func (sn *StyledNode) Display() DisplayValue {
	switch sn.Lookup(css.Display, "") {
	case "none":
		return DisplayNone
	case "block":
		return DisplayBlock
	default:
		return DisplayInline
	}
}

// FontFamilies splits the font-family list on commas, trimming surrounding
// whitespace and dropping empty segments.
func (sn *StyledNode) FontFamilies() []string {
	raw, ok := sn.GetRaw(css.FontFamily)
	if !ok {
		return nil
	}
	var families []string
	for _, f := range strings.Split(raw, ",") {
		f = strings.TrimSpace(f)
		if f != "" {
			families = append(families, f)
		}
	}
	return families
}

// FontSize decodes font-size as an integer pixel count. A trailing unit is
// tolerated; anything that does not start with digits falls back to
// DefaultFontSize.
func (sn *StyledNode) FontSize() int {
	raw, ok := sn.GetRaw(css.FontSize)
	if !ok {
		return DefaultFontSize
	}
	raw = strings.TrimSpace(raw)

	end := 0
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	size, err := strconv.Atoi(raw[:end])
	if err != nil {
		return DefaultFontSize
	}
	return size
}

// FontStyle decodes font-style; unknown values fall back to normal.
func (sn *StyledNode) FontStyle() FontStyleValue {
	switch sn.Lookup(css.FontStyle, "normal") {
	case "italic":
		return FontStyleItalic
	case "oblique":
		return FontStyleOblique
	default:
		return FontStyleNormal
	}
}

// TagName returns the element name of the wrapped DOM node, or "" for
// non-element nodes.
func (sn *StyledNode) TagName() string {
	if sn.Node == nil || sn.Node.Type != html.ElementNode {
		return ""
	}
	return sn.Node.Data
}

// Equal reports value equality: same DOM node, same properties, same
// children. Parent identity is deliberately excluded so that two independent
// builds over one document compare equal.
func (sn *StyledNode) Equal(other *StyledNode) bool {
	if sn == nil || other == nil {
		return sn == other
	}
	if sn.Node != other.Node || len(sn.Properties) != len(other.Properties) || len(sn.Children) != len(other.Children) {
		return false
	}
	for i := range sn.Properties {
		if sn.Properties[i] != other.Properties[i] {
			return false
		}
	}
	for i := range sn.Children {
		if !sn.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// CheckParents verifies the construction invariant that every child's Parent
// pointer refers to its actual owner, recursively.
func (sn *StyledNode) CheckParents() bool {
	for _, child := range sn.Children {
		if child.Parent != sn || !child.CheckParents() {
			return false
		}
	}
	return true
}
