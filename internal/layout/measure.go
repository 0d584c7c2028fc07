package layout

import "unicode/utf8"

// lineHeightFactor is the multiplier applied to the font size for a line of
// text, matching the common 'normal' line-height.
const lineHeightFactor = 1.2

// averageGlyphFactor approximates the advance width of one glyph relative to
// the font size.
const averageGlyphFactor = 0.6

// measureText estimates the rendered size of a run of text. Real font
// shaping is a collaborator this engine does not own; the estimate keeps the
// seam small so a text stack can replace it.
func measureText(text string, fontSize int) (width, height float64) {
	if text == "" {
		return 0, 0
	}
	runes := utf8.RuneCountInString(text)
	return float64(runes) * float64(fontSize) * averageGlyphFactor,
		float64(fontSize) * lineHeightFactor
}
