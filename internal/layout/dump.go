package layout

import (
	"fmt"
	"strings"
)

// Dump renders the layout tree as an indented text outline, one box per
// line with its type, originating element, and content rectangle.
func Dump(b *Box) string {
	var sb strings.Builder
	dumpBox(&sb, b, 0)
	return sb.String()
}

func dumpBox(sb *strings.Builder, b *Box, depth int) {
	if b == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))

	name := ""
	if b.StyledNode != nil {
		name = b.StyledNode.TagName()
	}
	if name == "" {
		sb.WriteString(b.Type.String())
	} else {
		fmt.Fprintf(sb, "%s <%s>", b.Type, name)
	}

	c := b.Dimensions.Content
	fmt.Fprintf(sb, " {%g,%g,%g,%g}\n", c.X, c.Y, c.Width, c.Height)

	for _, child := range b.Children {
		dumpBox(sb, child, depth+1)
	}
}
