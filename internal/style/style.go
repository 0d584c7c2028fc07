package style

import (
	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
)

// MatchingRules collects, in cascade order, every declaration from every rule
// with at least one selector matching the element. Rules contribute in
// stylesheet order and declarations in rule order; that ordering is what
// makes the last-entry-wins lookup in StyledNode the cascade.
func MatchingRules(el *html.Node, sheet css.Stylesheet) []css.Declaration {
	var matched []css.Declaration
	for _, rule := range sheet.Rules {
		for _, selector := range rule.Selectors {
			if IsMatch(el, selector) {
				matched = append(matched, rule.Declarations...)
				break
			}
		}
	}
	return matched
}

// StyleTree builds the styled tree for the element subtree rooted at el.
//
// Only element nodes get styled nodes; text children stay reachable through
// the borrowed DOM node and are picked up again during layout. Each node is
// heap-allocated before its parent pointer is handed out, so the
// back-references are stable for the life of the tree. The tree is immutable
// once built; restyling means rebuilding.
func StyleTree(el *html.Node, sheet css.Stylesheet) *StyledNode {
	if el == nil {
		return nil
	}

	node := &StyledNode{
		Node:       el,
		Properties: MatchingRules(el, sheet),
	}

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		child := StyleTree(c, sheet)
		child.Parent = node
		node.Children = append(node.Children, child)
	}

	return node
}
