// Package css defines the stylesheet data model consumed by the style and
// layout engines, plus the parser that assembles Stylesheet values from CSS
// text.
package css

// PropertyID identifies a CSS property (e.g. "display"). Properties the
// engine never decodes specially still round-trip as raw strings.
type PropertyID string

const (
	BackgroundColor PropertyID = "background-color"

	BorderTopColor    PropertyID = "border-top-color"
	BorderRightColor  PropertyID = "border-right-color"
	BorderBottomColor PropertyID = "border-bottom-color"
	BorderLeftColor   PropertyID = "border-left-color"

	Color PropertyID = "color"

	Display PropertyID = "display"

	FontFamily PropertyID = "font-family"
	FontSize   PropertyID = "font-size"
	FontStyle  PropertyID = "font-style"

	Width  PropertyID = "width"
	Height PropertyID = "height"

	MarginTop    PropertyID = "margin-top"
	MarginRight  PropertyID = "margin-right"
	MarginBottom PropertyID = "margin-bottom"
	MarginLeft   PropertyID = "margin-left"

	PaddingTop    PropertyID = "padding-top"
	PaddingRight  PropertyID = "padding-right"
	PaddingBottom PropertyID = "padding-bottom"
	PaddingLeft   PropertyID = "padding-left"

	BorderTopWidth    PropertyID = "border-top-width"
	BorderRightWidth  PropertyID = "border-right-width"
	BorderBottomWidth PropertyID = "border-bottom-width"
	BorderLeftWidth   PropertyID = "border-left-width"
)

// Declaration is a single property/value pair inside a rule.
type Declaration struct {
	Property PropertyID
	Value    string
}

// Rule binds a set of selectors to an ordered list of declarations. The rule
// applies to an element when any one of its selectors matches. Declaration
// order is meaningful: later entries win on duplicate properties at lookup
// time.
type Rule struct {
	Selectors    []string
	Declarations []Declaration
}

// Stylesheet is an ordered list of rules. Rule order is meaningful for the
// same reason declaration order is.
type Stylesheet struct {
	Rules []Rule
}
