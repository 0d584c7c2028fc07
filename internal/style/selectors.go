package style

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// IsMatch reports whether a single compound selector matches the element.
//
// Supported grammar: `*`, a bare tag name, `.class`, `#id`, and any of those
// followed by one `:pseudo-class`. No combinators. Anything the grammar does
// not cover simply fails to match; selector matching is total over its
// inputs.
func IsMatch(el *html.Node, selector string) bool {
	if el == nil || el.Type != html.ElementNode {
		return false
	}

	if idx := strings.IndexByte(selector, ':'); idx != -1 {
		if !matchesPseudoClass(el, selector[idx+1:]) {
			return false
		}
		selector = selector[:idx]
		if selector == "" {
			return true
		}
	}

	switch {
	case selector == "*":
		return true
	case strings.HasPrefix(selector, "."):
		return hasClass(el, selector[1:])
	case strings.HasPrefix(selector, "#"):
		id, ok := attr(el, "id")
		return ok && id == selector[1:]
	default:
		return el.Data == selector
	}
}

// matchesPseudoClass handles the pseudo-classes this engine knows about.
// :link and :any-link are intentionally identical: all hyperlinks are treated
// as unvisited. Unrecognized pseudo-classes never match.
func matchesPseudoClass(el *html.Node, pseudo string) bool {
	switch pseudo {
	case "link", "any-link":
		if el.Data != "a" && el.Data != "area" {
			return false
		}
		_, ok := attr(el, "href")
		return ok
	default:
		return false
	}
}

// hasClass checks the whitespace-separated class attribute for an exact word.
func hasClass(el *html.Node, name string) bool {
	classes, ok := attr(el, "class")
	if !ok {
		return false
	}
	for _, c := range strings.FieldsFunc(classes, unicode.IsSpace) {
		if c == name {
			return true
		}
	}
	return false
}

func attr(el *html.Node, key string) (string, bool) {
	for _, a := range el.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
