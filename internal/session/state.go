package session

// State represents persisted session state.
type State struct {
	LastID         int  `json:"last_id"`
	ShowCatalogue  bool `json:"show_catalogue"`
	ShowOutline    bool `json:"show_outline"`
	CatalogueWidth int  `json:"catalogue_width,omitempty"`
	OutlineWidth   int  `json:"outline_width,omitempty"`
	// Offset is the reader scroll position within LastID.
	Offset int `json:"offset,omitempty"`
}

// Default returns the default session state. LastID is -1 when no
// regulation has been opened.
func Default() State {
	return State{
		LastID:         -1,
		ShowCatalogue:  true,
		ShowOutline:    true,
		CatalogueWidth: 34,
		OutlineWidth:   30,
	}
}
