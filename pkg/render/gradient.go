// gradient.go — Directional darkening overlay behind the quote block.
package render

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Stop is one color stop of the top-to-bottom overlay gradient.
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// GradientStops builds the overlay stops for the given text position.
// start marks where the fade transition begins and is clamped to [0,1].
// Top-positioned text gets a dark header fading to clear; bottom-positioned
// text (the default) gets a clear top fading to a dark footer.
func GradientStops(pos Position, start float64) []Stop {
	start = clamp01(start)
	dark := color.NRGBA{A: uint8(math.Round(GradientAlpha * 255))}
	clear := color.NRGBA{}

	if pos == PositionTop {
		return []Stop{
			{Offset: 0, Color: dark},
			{Offset: start, Color: clear},
			{Offset: 1, Color: clear},
		}
	}
	return []Stop{
		{Offset: 0, Color: clear},
		{Offset: start, Color: clear},
		{Offset: 1, Color: dark},
	}
}

// fillGradient paints the overlay across the whole canvas, after the
// background and before any text.
func fillGradient(dc *gg.Context, pos Position, start float64) {
	grad := gg.NewLinearGradient(0, 0, 0, CanvasHeight)
	for _, s := range GradientStops(pos, start) {
		grad.AddColorStop(s.Offset, s.Color)
	}
	dc.SetFillStyle(grad)
	dc.DrawRectangle(0, 0, CanvasWidth, CanvasHeight)
	dc.Fill()
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
