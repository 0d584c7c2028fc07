package layout

// BoxAtPosition finds the deepest box whose content rectangle contains the
// point. Padding, border, and margin are not part of the hit area. When
// sibling boxes at the same depth overlap the point, the later one in
// traversal order wins. Returns nil when no box contains the point, including
// for a nil tree.
func BoxAtPosition(b *Box, p Position) *Box {
	if b == nil || !b.Dimensions.Content.Contains(p) {
		return nil
	}

	hit := b
	for _, child := range b.Children {
		if deeper := BoxAtPosition(child, p); deeper != nil {
			hit = deeper
		}
	}
	return hit
}
