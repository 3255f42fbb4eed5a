// Package style loads JSON style presets and batch specs and resolves them
// into concrete render parameters. Presets carry the global defaults; batch
// items may override individual fields per image.
package style

// Preset is the top-level structure of a preset.json file.
type Preset struct {
	Font           string   `json:"font"`           // catalog key, e.g. "sans"
	FontSizePx     float64  `json:"fontSizePx"`     // body size; UI range is 40–120
	HighlightColor string   `json:"highlightColor"` // "#rrggbb"
	GradientStart  *float64 `json:"gradientStart,omitempty"` // fade start in [0,1]
	ArtistName     string   `json:"artistName"`
	Position       string   `json:"position"` // "top" or "bottom"
}

// Item is one quote in a batch. Pointer fields are per-item overrides;
// nil means inherit the preset value.
type Item struct {
	Image           string   `json:"image"` // path to the background photo
	Text            string   `json:"text"`
	HighlightedWord string   `json:"highlightedWord,omitempty"`
	FontSizePx      *float64 `json:"fontSizePx,omitempty"`
	GradientStart   *float64 `json:"gradientStart,omitempty"`
	Position        *string  `json:"position,omitempty"`
}

// BatchSpec is the top-level structure of a batch.json file.
type BatchSpec struct {
	Items []Item `json:"items"`
}
