package style

import (
	"github.com/kestrelweb/kestrel/internal/css"
)

// DefaultUserAgentCSS gives common elements their natural display types.
// The engine's selector grammar has no combinators, so the sheet sticks to
// plain type selectors.
const DefaultUserAgentCSS = `
html, body, div, p, h1, h2, h3, h4, h5, h6, ul, ol, li, form,
header, footer, section, article, nav, main, hr, pre, blockquote {
    display: block;
}

head, script, style, title, meta, link, base {
    display: none;
}

a {
    color: #0000ee;
}
`

// UserAgentStylesheet parses DefaultUserAgentCSS. Callers prepend it to the
// author rules so author declarations win on conflict.
func UserAgentStylesheet() css.Stylesheet {
	return css.NewParser(DefaultUserAgentCSS).Parse()
}
