package app

// Layout computes the dimensions for each panel.
type Layout struct {
	CatalogueWidth int
	ReaderWidth    int
	OutlineWidth   int
	Height         int
	StatusHeight   int
}

// ComputeLayout calculates panel dimensions based on total width/height
// and whether each side panel is visible. Side panels never take more than
// a third of the remaining width.
func ComputeLayout(totalWidth, totalHeight int, showCatalogue, showOutline bool, catalogueWidth, outlineWidth int) Layout {
	// Some terminals momentarily report 0 (or negative) sizes while resizing.
	if totalWidth < 1 {
		totalWidth = 1
	}
	if totalHeight < 2 { // need at least 1 row for content + 1 for status
		totalHeight = 2
	}

	l := Layout{
		StatusHeight: 1,
		Height:       totalHeight - 1,
	}

	remaining := totalWidth

	if showCatalogue {
		l.CatalogueWidth = catalogueWidth
		if l.CatalogueWidth > remaining/3 {
			l.CatalogueWidth = remaining / 3
		}
		remaining -= l.CatalogueWidth - 1 // -1 for border overlap
	}

	if showOutline {
		l.OutlineWidth = outlineWidth
		if l.OutlineWidth > remaining/3 {
			l.OutlineWidth = remaining / 3
		}
		remaining -= l.OutlineWidth - 1 // -1 for border overlap
	}

	l.ReaderWidth = remaining
	if l.ReaderWidth < 1 {
		l.ReaderWidth = 1
	}

	return l
}
