// Package render is the quote-card layout and compositing engine.
//
// One render pass takes a decoded background photo plus a quote and style
// parameters, and produces a 1080×1350 raster: cover-crop the photo, overlay
// a directional gradient, wrap the uppercased quote into centered lines, and
// draw the glyphs with a decorative opening quote mark, per-word highlight
// color, and an artist caption.
package render

import "image"

// Canvas and layout constants. The output size is fixed for the 4:5
// social-media format; everything else scales off the body font size.
const (
	CanvasWidth  = 1080
	CanvasHeight = 1350

	// MaxLineWidth bounds wrapped lines in pixels, independent of font size.
	MaxLineWidth = 900

	// LineHeightFactor converts font size to line advance.
	LineHeightFactor = 1.3

	TopPadding    = 200
	BottomPadding = 200

	// Caption geometry is fixed regardless of text position.
	CaptionOffset   = 100
	CaptionFontSize = 36

	// The opening quotation mark scales with the body size and sits a fixed
	// gap left of the first line.
	QuoteMarkFactor = 1.57
	QuoteMarkGap    = 16

	// GradientAlpha is the opacity of the dark end of the overlay.
	GradientAlpha = 0.85
)

// Defaults applied when a style or request field is left unset.
const (
	DefaultFontSize       = 70.0
	DefaultGradientStart  = 0.5
	DefaultHighlightColor = "#FFD700"
)

// Position selects which edge of the canvas the quote block hugs.
type Position int

const (
	PositionBottom Position = iota
	PositionTop
)

// String returns the position's wire name ("bottom" or "top").
func (p Position) String() string {
	if p == PositionTop {
		return "top"
	}
	return "bottom"
}

// ParsePosition maps a wire name to a Position. Unknown values fall back to
// bottom, the default placement.
func ParsePosition(s string) Position {
	if s == "top" {
		return PositionTop
	}
	return PositionBottom
}

// Style holds the caller's global defaults. A Request field left unset falls
// back to the matching Style field at the start of the render pass, so the
// core never reads ambient state.
type Style struct {
	FontKey        string  // catalog key for the body face
	FontSizePx     float64 // body font size in pixels
	HighlightColor string  // "#rrggbb" for the matched word
	GradientStart  float64 // fraction in [0,1] where the fade begins
	ArtistName     string  // caption, uppercased at render time
	Position       Position
}

// Request describes one image to render. The image is read-only to the
// engine; optional fields override the renderer's Style for this call only.
type Request struct {
	Image           image.Image
	Text            string
	HighlightedWord string

	// CropRect is the subject-detector's window in source-image pixels.
	// Nil means the engine computes its own centered cover crop.
	CropRect *image.Rectangle

	FontSizePx    *float64
	GradientStart *float64
	Position      *Position
}
