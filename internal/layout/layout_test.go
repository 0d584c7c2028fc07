package layout

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/kestrelweb/kestrel/internal/css"
	"github.com/kestrelweb/kestrel/internal/style"
)

// buildStyled parses an HTML fragment and a stylesheet and returns the styled
// tree rooted at <html>.
func buildStyled(t *testing.T, htmlSrc, cssSrc string) *style.StyledNode {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(htmlSrc))
	require.NoError(t, err)

	var root *html.Node
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			root = c
			break
		}
	}
	require.NotNil(t, root)

	sheet := css.NewParser(cssSrc).Parse()
	return style.StyleTree(root, sheet)
}

func findBox(b *Box, tag string) *Box {
	if b == nil {
		return nil
	}
	if b.StyledNode != nil && b.StyledNode.TagName() == tag {
		return b
	}
	for _, c := range b.Children {
		if found := findBox(c, tag); found != nil {
			return found
		}
	}
	return nil
}

const baseCSS = `html, body, div, p { display: block } head { display: none } `

func TestCreateLayoutDisplayNoneRoot(t *testing.T) {
	styled := buildStyled(t, `<html><body></body></html>`, `html { display: none }`)
	assert.Nil(t, CreateLayout(styled, 100))
}

func TestCreateLayoutPrunesDisplayNoneSubtree(t *testing.T) {
	styled := buildStyled(t, `<html><body><div><p>x</p></div></body></html>`,
		baseCSS+`div { display: none }`)

	root := CreateLayout(styled, 100)
	require.NotNil(t, root)
	assert.Nil(t, findBox(root, "div"))
	assert.Nil(t, findBox(root, "p"))
}

func TestAnonymousBlockGrouping(t *testing.T) {
	styled := buildStyled(t,
		`<html><body><span>a</span><em>b</em><div>c</div><span>d</span></body></html>`,
		baseCSS)

	root := CreateLayout(styled, 100)
	body := findBox(root, "body")
	require.NotNil(t, body)

	// The two leading inlines share one anonymous box; the trailing inline
	// gets its own after the block breaks the run.
	require.Len(t, body.Children, 3)
	assert.Equal(t, AnonymousBlock, body.Children[0].Type)
	assert.Equal(t, Block, body.Children[1].Type)
	assert.Equal(t, AnonymousBlock, body.Children[2].Type)

	require.Len(t, body.Children[0].Children, 2)
	assert.Equal(t, Inline, body.Children[0].Children[0].Type)
	assert.Equal(t, Inline, body.Children[0].Children[1].Type)

	// Anonymous boxes carry no styled node.
	assert.Nil(t, body.Children[0].StyledNode)

	// No block box directly mixes inline and block children.
	var check func(b *Box)
	check = func(b *Box) {
		if b.Type != Inline {
			hasInline, hasBlock := false, false
			for _, c := range b.Children {
				hasInline = hasInline || c.Type == Inline
				hasBlock = hasBlock || c.Type != Inline
			}
			assert.False(t, hasInline && hasBlock)
		}
		for _, c := range b.Children {
			check(c)
		}
	}
	check(root)
}

func TestBlockWidth(t *testing.T) {
	t.Run("fills containing minus edges", func(t *testing.T) {
		styled := buildStyled(t, `<html><body><div></div></body></html>`,
			baseCSS+`div { margin-left: 10px; border-left-width: 2px; padding-left: 5px }`)

		div := findBox(CreateLayout(styled, 100), "div")
		require.NotNil(t, div)
		assert.Equal(t, 83.0, div.Dimensions.Content.Width)
		assert.Equal(t, 17.0, div.Dimensions.Content.X)
	})

	t.Run("explicit width wins", func(t *testing.T) {
		styled := buildStyled(t, `<html><body><div></div></body></html>`,
			baseCSS+`div { width: 50px; margin-left: 10px }`)

		div := findBox(CreateLayout(styled, 100), "div")
		require.NotNil(t, div)
		assert.Equal(t, 50.0, div.Dimensions.Content.Width)
	})

	t.Run("auto behaves as unset", func(t *testing.T) {
		styled := buildStyled(t, `<html><body><div></div></body></html>`,
			baseCSS+`div { width: auto }`)

		div := findBox(CreateLayout(styled, 100), "div")
		require.NotNil(t, div)
		assert.Equal(t, 100.0, div.Dimensions.Content.Width)
	})
}

func TestBlockHeightSumsChildren(t *testing.T) {
	styled := buildStyled(t, `<html><body><div></div><div></div></body></html>`,
		baseCSS+`div { height: 10px; margin-bottom: 4px }`)

	root := CreateLayout(styled, 100)
	body := findBox(root, "body")
	require.NotNil(t, body)
	assert.Equal(t, 28.0, body.Dimensions.Content.Height)

	// Blocks stack: the second div starts below the first's margin box.
	second := body.Children[1]
	assert.Equal(t, 14.0, second.Dimensions.Content.Y)
}

func TestBlockWithTextHeight(t *testing.T) {
	styled := buildStyled(t, `<html><body><p>hello</p></body></html>`, baseCSS)

	root := CreateLayout(styled, 100)
	p := findBox(root, "p")
	require.NotNil(t, p)

	// A leaf block takes one line at the default 10px font: 10 * 1.2.
	assert.Equal(t, 12.0, p.Dimensions.Content.Height)

	// The text-driven height propagates through the ancestor chain.
	body := findBox(root, "body")
	require.NotNil(t, body)
	assert.Equal(t, 12.0, body.Dimensions.Content.Height)
	assert.Equal(t, 12.0, root.Dimensions.Content.Height)
}

func TestBlockWithTextFontSize(t *testing.T) {
	styled := buildStyled(t, `<html><body><p>hello</p></body></html>`,
		baseCSS+`p { font-size: 20px }`)

	p := findBox(CreateLayout(styled, 100), "p")
	require.NotNil(t, p)
	assert.Equal(t, 24.0, p.Dimensions.Content.Height)
}

func TestBlockExplicitHeightOverridesText(t *testing.T) {
	styled := buildStyled(t, `<html><body><p>hello</p></body></html>`,
		baseCSS+`p { height: 5px }`)

	p := findBox(CreateLayout(styled, 100), "p")
	require.NotNil(t, p)
	assert.Equal(t, 5.0, p.Dimensions.Content.Height)
}

func TestBlockExplicitHeightOverrides(t *testing.T) {
	styled := buildStyled(t, `<html><body><div><p></p></div></body></html>`,
		baseCSS+`div { height: 5px } p { height: 50px }`)

	div := findBox(CreateLayout(styled, 100), "div")
	require.NotNil(t, div)
	assert.Equal(t, 5.0, div.Dimensions.Content.Height)
}

func TestInlineTextMetrics(t *testing.T) {
	styled := buildStyled(t, `<html><body><span>hello</span></body></html>`,
		baseCSS+`span { font-size: 10px }`)

	root := CreateLayout(styled, 100)
	span := findBox(root, "span")
	require.NotNil(t, span)

	// Five glyphs at 10px: width 5*10*0.6, height 10*1.2.
	assert.Equal(t, 30.0, span.Dimensions.Content.Width)
	assert.Equal(t, 12.0, span.Dimensions.Content.Height)

	// The line box wraps the run and propagates its height upward.
	body := findBox(root, "body")
	require.NotNil(t, body)
	assert.Equal(t, 12.0, body.Dimensions.Content.Height)
}

func TestInlineRunAdvancesHorizontally(t *testing.T) {
	styled := buildStyled(t, `<html><body><span>ab</span><span>cd</span></body></html>`,
		baseCSS)

	root := CreateLayout(styled, 100)
	body := findBox(root, "body")
	require.NotNil(t, body)
	require.Len(t, body.Children, 1)

	anon := body.Children[0]
	require.Len(t, anon.Children, 2)
	first, second := anon.Children[0], anon.Children[1]

	assert.Equal(t, 0.0, first.Dimensions.Content.X)
	assert.Equal(t, first.Dimensions.Content.Width, second.Dimensions.Content.X)
	assert.Equal(t, first.Dimensions.Content.Y, second.Dimensions.Content.Y)
}

func TestNestedInlineWidth(t *testing.T) {
	styled := buildStyled(t, `<html><body><span>ab<em>cd</em></span></body></html>`,
		baseCSS+`span, em { font-size: 10px }`)

	span := findBox(CreateLayout(styled, 100), "span")
	require.NotNil(t, span)

	// Own text plus the nested inline's advance.
	assert.Equal(t, 24.0, span.Dimensions.Content.Width)

	em := findBox(span, "em")
	require.NotNil(t, em)
	assert.Equal(t, 12.0, em.Dimensions.Content.X)
}

func TestLayoutDeterministic(t *testing.T) {
	styled := buildStyled(t,
		`<html><body><span>a</span><div><p>b</p></div></body></html>`,
		baseCSS+`div { margin-left: 3px } p { height: 7px }`)

	first := CreateLayout(styled, 100)
	second := CreateLayout(styled, 100)
	require.NotNil(t, first)
	assert.True(t, first.Equal(second))
}

func TestDump(t *testing.T) {
	styled := buildStyled(t, `<html><body><div></div></body></html>`,
		baseCSS+`div { height: 10px }`)

	root := CreateLayout(styled, 100)
	out := Dump(root)

	assert.Contains(t, out, "block <html> {0,0,100,10}")
	assert.Contains(t, out, "  block <body> {0,0,100,10}")
	assert.Contains(t, out, "    block <div> {0,0,100,10}")
}
