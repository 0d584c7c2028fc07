package layout

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
	"github.com/kestrelweb/kestrel/internal/style"
)

// CreateLayout builds and lays out the box tree for a styled tree within the
// given containing width. A display:none root yields nil; every other input
// yields a fully laid-out tree. Layout never fails: malformed property values
// fall back to zero-equivalent defaults.
func CreateLayout(styled *style.StyledNode, width int) *Box {
	root := buildBoxTree(styled)
	if root == nil {
		return nil
	}

	containing := Dimensions{Content: Rect{Width: float64(width)}}
	root.layout(&containing)
	return root
}

// buildBoxTree decides each node's box type and synthesizes anonymous blocks.
// display:none prunes the subtree entirely.
func buildBoxTree(sn *style.StyledNode) *Box {
	if sn == nil {
		return nil
	}

	var box *Box
	switch sn.Display() {
	case style.DisplayNone:
		return nil
	case style.DisplayBlock:
		box = &Box{Type: Block, StyledNode: sn}
	default:
		box = &Box{Type: Inline, StyledNode: sn}
	}

	for _, child := range sn.Children {
		childBox := buildBoxTree(child)
		if childBox != nil {
			box.appendChild(childBox)
		}
	}
	return box
}

// appendChild places a child box, grouping consecutive inline children of a
// block into a shared anonymous block. Block children reset the run, so each
// maximal run of inline siblings ends up under exactly one anonymous box and
// a block never directly mixes inline and block children.
func (b *Box) appendChild(child *Box) {
	if b.Type == Block && child.Type == Inline {
		container := b.inlineContainer()
		container.Children = append(container.Children, child)
		return
	}
	b.Children = append(b.Children, child)
}

// inlineContainer returns the open anonymous block at the end of the child
// list, creating one when the previous child was block-level (or absent).
func (b *Box) inlineContainer() *Box {
	if n := len(b.Children); n > 0 && b.Children[n-1].Type == AnonymousBlock {
		return b.Children[n-1]
	}
	anon := &Box{Type: AnonymousBlock}
	b.Children = append(b.Children, anon)
	return anon
}

// layout computes this box's geometry inside the containing block. The
// containing dimensions double as a layout cursor: Content.Height tracks how
// much vertical space earlier siblings consumed.
func (b *Box) layout(containing *Dimensions) {
	switch b.Type {
	case Block:
		b.layoutBlock(containing)
	case AnonymousBlock:
		b.layoutAnonymous(containing)
	case Inline:
		// An inline box reaching flow layout directly (an inline root, or an
		// inline child of an inline parent) is laid out as a row of one.
		b.layoutInline(containing, 0)
	}
}

func (b *Box) layoutBlock(containing *Dimensions) {
	b.calculateWidth(containing)
	b.calculatePosition(containing)
	b.layoutChildren()
	// A leaf block wraps its own text: one line at the node's font metrics.
	if len(b.Children) == 0 {
		fontSize := style.DefaultFontSize
		if b.StyledNode != nil {
			fontSize = b.StyledNode.FontSize()
		}
		_, textHeight := measureText(b.ownText(), fontSize)
		b.Dimensions.Content.Height = textHeight
	}
	// An explicit parseable height overrides the content-driven one.
	if h, ok := b.lengthProperty(css.Height); ok {
		b.Dimensions.Content.Height = h
	}
}

// calculateWidth resolves the content width top-down: an explicit parseable
// width wins, otherwise the box fills its containing width minus its own
// horizontal margin, border, and padding.
func (b *Box) calculateWidth(containing *Dimensions) {
	d := &b.Dimensions
	d.Margin = b.edges(css.MarginTop, css.MarginRight, css.MarginBottom, css.MarginLeft)
	d.Border = b.edges(css.BorderTopWidth, css.BorderRightWidth, css.BorderBottomWidth, css.BorderLeftWidth)
	d.Padding = b.edges(css.PaddingTop, css.PaddingRight, css.PaddingBottom, css.PaddingLeft)

	if w, ok := b.lengthProperty(css.Width); ok {
		d.Content.Width = w
		return
	}
	d.Content.Width = containing.Content.Width -
		d.Margin.Left - d.Margin.Right -
		d.Border.Left - d.Border.Right -
		d.Padding.Left - d.Padding.Right
}

func (b *Box) calculatePosition(containing *Dimensions) {
	d := &b.Dimensions
	d.Content.X = containing.Content.X + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containing.Content.Y + containing.Content.Height +
		d.Margin.Top + d.Border.Top + d.Padding.Top
}

// layoutChildren lays out each child against this box's content area and
// grows the content height by the child's margin box, so blocks stack and a
// height-less block ends up wrapping its children.
func (b *Box) layoutChildren() {
	for _, child := range b.Children {
		child.layout(&b.Dimensions)
		b.Dimensions.Content.Height += child.Dimensions.MarginBox().Height
	}
}

// layoutAnonymous lays the grouped inline run out as a single line: children
// advance left to right and the anonymous box is as tall as its tallest
// child. Anonymous boxes have no styled node, so no edges of their own.
func (b *Box) layoutAnonymous(containing *Dimensions) {
	d := &b.Dimensions
	d.Content.Width = containing.Content.Width
	d.Content.X = containing.Content.X
	d.Content.Y = containing.Content.Y + containing.Content.Height

	cursor := 0.0
	for _, child := range b.Children {
		child.layoutInline(d, cursor)
		mb := child.Dimensions.MarginBox()
		cursor += mb.Width
		if mb.Height > d.Content.Height {
			d.Content.Height = mb.Height
		}
	}
}

// layoutInline sizes an inline box at a horizontal offset within its line.
// Width is intrinsic (own text plus inline children) unless an explicit
// parseable width is set; height comes from font metrics when the box has
// text and no children, otherwise from its children.
func (b *Box) layoutInline(containing *Dimensions, offsetX float64) {
	d := &b.Dimensions
	d.Margin = b.edges(css.MarginTop, css.MarginRight, css.MarginBottom, css.MarginLeft)
	d.Border = b.edges(css.BorderTopWidth, css.BorderRightWidth, css.BorderBottomWidth, css.BorderLeftWidth)
	d.Padding = b.edges(css.PaddingTop, css.PaddingRight, css.PaddingBottom, css.PaddingLeft)

	d.Content.X = containing.Content.X + offsetX + d.Margin.Left + d.Border.Left + d.Padding.Left
	d.Content.Y = containing.Content.Y + d.Margin.Top + d.Border.Top + d.Padding.Top

	fontSize := style.DefaultFontSize
	if b.StyledNode != nil {
		fontSize = b.StyledNode.FontSize()
	}
	textWidth, textHeight := measureText(b.ownText(), fontSize)

	cursor := textWidth
	maxChildHeight := 0.0
	for _, child := range b.Children {
		child.layoutInline(d, cursor)
		mb := child.Dimensions.MarginBox()
		cursor += mb.Width
		if mb.Height > maxChildHeight {
			maxChildHeight = mb.Height
		}
	}

	if w, ok := b.lengthProperty(css.Width); ok {
		d.Content.Width = w
	} else {
		d.Content.Width = cursor
	}

	if h, ok := b.lengthProperty(css.Height); ok {
		d.Content.Height = h
	} else if maxChildHeight > textHeight {
		d.Content.Height = maxChildHeight
	} else {
		d.Content.Height = textHeight
	}
}

// ownText concatenates the direct text children of the underlying DOM node.
// Text nodes have no styled nodes of their own; this is where they re-enter
// the picture for layout.
func (b *Box) ownText() string {
	if b.StyledNode == nil || b.StyledNode.Node == nil {
		return ""
	}
	var sb strings.Builder
	for c := b.StyledNode.Node.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.TrimSpace(sb.String())
}

// edges reads the four thickness properties for one edge set, each falling
// back to 0 when unset or unparseable.
func (b *Box) edges(top, right, bottom, left css.PropertyID) Edges {
	at := func(id css.PropertyID) float64 {
		v, _ := b.lengthProperty(id)
		return v
	}
	return Edges{Top: at(top), Right: at(right), Bottom: at(bottom), Left: at(left)}
}

// lengthProperty decodes a pixel length. Only px and unitless numbers are
// understood; "auto", other units, and junk all report false so the caller's
// default applies. Decoding never aborts layout.
func (b *Box) lengthProperty(id css.PropertyID) (float64, bool) {
	raw, ok := b.GetRaw(id)
	if !ok {
		return 0, false
	}
	return parseLength(raw)
}

func parseLength(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "auto" {
		return 0, false
	}
	raw = strings.TrimSuffix(raw, "px")
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
