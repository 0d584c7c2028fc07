package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
)

func mustParseHTML(t *testing.T, input string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(input))
	require.NoError(t, err)
	root := findElement(doc, "html")
	require.NotNil(t, root)
	return root
}

func findStyled(n *StyledNode, tag string) *StyledNode {
	if n == nil {
		return nil
	}
	if n.TagName() == tag {
		return n
	}
	for _, c := range n.Children {
		if found := findStyled(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func TestMatchingRules(t *testing.T) {
	sheet := css.Stylesheet{Rules: []css.Rule{
		{
			Selectors:    []string{"span", "p"},
			Declarations: []css.Declaration{{Property: css.Width, Value: "80px"}},
		},
		{
			Selectors:    []string{"span", "hr"},
			Declarations: []css.Declaration{{Property: css.Height, Value: "auto"}},
		},
	}}

	doc := `<div>x</div><span>x</span><p>x</p><hr>`

	assert.Empty(t, MatchingRules(parseHTMLAndFind(t, doc, "div"), sheet))
	assert.Equal(t, []css.Declaration{
		{Property: css.Width, Value: "80px"},
		{Property: css.Height, Value: "auto"},
	}, MatchingRules(parseHTMLAndFind(t, doc, "span"), sheet))
	assert.Equal(t, []css.Declaration{
		{Property: css.Width, Value: "80px"},
	}, MatchingRules(parseHTMLAndFind(t, doc, "p"), sheet))
	assert.Equal(t, []css.Declaration{
		{Property: css.Height, Value: "auto"},
	}, MatchingRules(parseHTMLAndFind(t, doc, "hr"), sheet))
}

func TestMatchingRulesStylesheetOrder(t *testing.T) {
	sheet := css.Stylesheet{Rules: []css.Rule{
		{Selectors: []string{"p"}, Declarations: []css.Declaration{{Property: css.Color, Value: "red"}}},
		{Selectors: []string{".x"}, Declarations: []css.Declaration{{Property: css.Color, Value: "blue"}}},
	}}

	el := parseHTMLAndFind(t, `<p class="x">hi</p>`, "p")
	got := MatchingRules(el, sheet)
	require.Len(t, got, 2)
	assert.Equal(t, "red", got[0].Value)
	assert.Equal(t, "blue", got[1].Value)
}

func TestMatchingRulesOneContributionPerRule(t *testing.T) {
	// Both selectors match, but the rule's declarations appear once.
	sheet := css.Stylesheet{Rules: []css.Rule{
		{
			Selectors:    []string{"p", ".x"},
			Declarations: []css.Declaration{{Property: css.Color, Value: "red"}},
		},
	}}

	el := parseHTMLAndFind(t, `<p class="x">hi</p>`, "p")
	assert.Len(t, MatchingRules(el, sheet), 1)
}

func TestStyleTreeStructure(t *testing.T) {
	root := mustParseHTML(t, `<html><head></head><body><p>hello</p></body></html>`)
	sheet := css.Stylesheet{Rules: []css.Rule{
		{Selectors: []string{"body"}, Declarations: []css.Declaration{{Property: css.FontSize, Value: "14px"}}},
		{Selectors: []string{"p"}, Declarations: []css.Declaration{{Property: css.Height, Value: "20px"}}},
	}}

	styled := StyleTree(root, sheet)
	require.NotNil(t, styled)
	assert.Equal(t, "html", styled.TagName())
	require.Len(t, styled.Children, 2)

	head, body := styled.Children[0], styled.Children[1]
	assert.Equal(t, "head", head.TagName())
	assert.Equal(t, "body", body.TagName())

	// Declarations land exactly where their selectors matched, nowhere else.
	assert.Empty(t, styled.Properties)
	assert.Empty(t, head.Properties)
	assert.Equal(t, []css.Declaration{{Property: css.FontSize, Value: "14px"}}, body.Properties)

	p := findStyled(styled, "p")
	require.NotNil(t, p)
	assert.Equal(t, []css.Declaration{{Property: css.Height, Value: "20px"}}, p.Properties)
	// Text children live in the DOM, not the styled tree.
	assert.Empty(t, p.Children)
}

func TestStyleTreeParents(t *testing.T) {
	root := mustParseHTML(t, `<html><body><div><p>x</p></div></body></html>`)
	styled := StyleTree(root, css.Stylesheet{})

	assert.Nil(t, styled.Parent)
	assert.True(t, styled.CheckParents())

	p := findStyled(styled, "p")
	require.NotNil(t, p)
	assert.Equal(t, "div", p.Parent.TagName())
	assert.Equal(t, "body", p.Parent.Parent.TagName())
}

func TestStyleTreeNoInheritance(t *testing.T) {
	root := mustParseHTML(t, `<html><body><p>x</p></body></html>`)
	sheet := css.Stylesheet{Rules: []css.Rule{
		{Selectors: []string{"body"}, Declarations: []css.Declaration{{Property: css.Color, Value: "red"}}},
	}}

	styled := StyleTree(root, sheet)
	p := findStyled(styled, "p")
	require.NotNil(t, p)
	_, ok := p.GetRaw(css.Color)
	assert.False(t, ok, "properties must not inherit from ancestors")
}

func TestStyleTreeLastDeclarationWins(t *testing.T) {
	root := mustParseHTML(t, `<html><body><p class="x">x</p></body></html>`)
	sheet := css.Stylesheet{Rules: []css.Rule{
		{Selectors: []string{"p"}, Declarations: []css.Declaration{{Property: css.Color, Value: "red"}}},
		{Selectors: []string{".x"}, Declarations: []css.Declaration{{Property: css.Color, Value: "blue"}}},
	}}

	p := findStyled(StyleTree(root, sheet), "p")
	require.NotNil(t, p)
	assert.Equal(t, "blue", p.Lookup(css.Color, ""))
}

func TestStyleTreeDeterministic(t *testing.T) {
	root := mustParseHTML(t, `<html><body><div><p class="x">x</p><p>y</p></div></body></html>`)
	sheet := css.Stylesheet{Rules: []css.Rule{
		{Selectors: []string{"p"}, Declarations: []css.Declaration{{Property: css.Display, Value: "block"}}},
		{Selectors: []string{".x"}, Declarations: []css.Declaration{{Property: css.Color, Value: "red"}}},
	}}

	first := StyleTree(root, sheet)
	second := StyleTree(root, sheet)
	assert.True(t, first.Equal(second))
}

func TestStyleTreeNilInput(t *testing.T) {
	assert.Nil(t, StyleTree(nil, css.Stylesheet{}))
}
