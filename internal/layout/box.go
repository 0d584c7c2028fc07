// Package layout turns a styled tree and a containing width into a tree of
// positioned, sized boxes, and answers geometric queries against it.
package layout

import (
	"github.com/kestrelweb/kestrel/internal/css"
	"github.com/kestrelweb/kestrel/internal/style"
)

// Rect is an axis-aligned rectangle. X/Y locate the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// ExpandedBy returns the rectangle grown outward by the edge thicknesses.
func (r Rect) ExpandedBy(e Edges) Rect {
	return Rect{
		X:      r.X - e.Left,
		Y:      r.Y - e.Top,
		Width:  r.Width + e.Left + e.Right,
		Height: r.Height + e.Top + e.Bottom,
	}
}

// Contains reports whether the point falls within the rectangle.
func (r Rect) Contains(p Position) bool {
	return p.X >= r.X && p.X <= r.X+r.Width && p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// Edges holds a thickness for each of the four sides of a box.
type Edges struct {
	Top, Right, Bottom, Left float64
}

// Position is a point in the same coordinate space as the layout tree.
type Position struct {
	X, Y float64
}

// Dimensions is the box-model geometry of one layout box: the content
// rectangle plus the padding, border, and margin thicknesses around it. The
// derived boxes are pure functions of those pieces.
type Dimensions struct {
	Content Rect
	Padding Edges
	Border  Edges
	Margin  Edges
}

// PaddingBox returns the rectangle enclosing content and padding.
func (d Dimensions) PaddingBox() Rect {
	return d.Content.ExpandedBy(d.Padding)
}

// BorderBox returns the rectangle enclosing content, padding, and border.
func (d Dimensions) BorderBox() Rect {
	return d.PaddingBox().ExpandedBy(d.Border)
}

// MarginBox returns the rectangle enclosing the whole box, margins included.
func (d Dimensions) MarginBox() Rect {
	return d.BorderBox().ExpandedBy(d.Margin)
}

// BoxType classifies the boxes in a layout tree.
type BoxType int

const (
	// Inline boxes flow horizontally inside an anonymous block.
	Inline BoxType = iota
	// Block boxes stack vertically and span their containing width.
	Block
	// AnonymousBlock boxes hold groups of sequential inline boxes so block
	// layout can treat every child of a block as block-level.
	AnonymousBlock
)

func (t BoxType) String() string {
	switch t {
	case Inline:
		return "inline"
	case Block:
		return "block"
	case AnonymousBlock:
		return "anonymous-block"
	default:
		return "unknown"
	}
}

// Box is one node of the layout tree. StyledNode is borrowed from the styled
// tree and is nil exactly when the box is an AnonymousBlock.
type Box struct {
	StyledNode *style.StyledNode
	Type       BoxType
	Dimensions Dimensions
	Children   []*Box
}

// GetRaw exposes the underlying styled node's property lookup; anonymous
// boxes have no properties, so every lookup on them reports unset.
func (b *Box) GetRaw(id css.PropertyID) (string, bool) {
	if b.StyledNode == nil {
		return "", false
	}
	return b.StyledNode.GetRaw(id)
}

// Equal reports value equality of two layout trees: same shape, same box
// types, same borrowed styled nodes, same geometry.
func (b *Box) Equal(other *Box) bool {
	if b == nil || other == nil {
		return b == other
	}
	if b.Type != other.Type || b.StyledNode != other.StyledNode ||
		b.Dimensions != other.Dimensions || len(b.Children) != len(other.Children) {
		return false
	}
	for i := range b.Children {
		if !b.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}
