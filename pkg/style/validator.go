// validator.go — Sanity checks on presets and batches. Everything here is a
// warning, never a fatal error: the engine resolves bad values to defaults,
// so validation exists to tell the user, not to stop them.
package style

import (
	"fmt"
	"image/color"

	"github.com/seleste/quoteframe/pkg/fontcat"
	"github.com/seleste/quoteframe/pkg/render"
)

// sizeMin/sizeMax mirror the UI slider range. Sizes outside still render.
const (
	sizeMin = 40
	sizeMax = 120
)

// ValidatePreset returns warnings for preset values the engine will replace
// or accept unclamped.
func ValidatePreset(p *Preset, fonts *fontcat.Catalog) []string {
	var warnings []string

	if p.Font != "" && !fonts.Has(p.Font) {
		warnings = append(warnings, fmt.Sprintf("unknown font %q, falling back to %q", p.Font, fontcat.DefaultKey))
	}
	if p.FontSizePx != 0 && (p.FontSizePx < sizeMin || p.FontSizePx > sizeMax) {
		warnings = append(warnings, fmt.Sprintf("fontSizePx %.0f outside the usual %d–%d range", p.FontSizePx, sizeMin, sizeMax))
	}
	if p.GradientStart != nil && (*p.GradientStart < 0 || *p.GradientStart > 1) {
		warnings = append(warnings, fmt.Sprintf("gradientStart %.2f outside [0,1], will be clamped", *p.GradientStart))
	}
	if p.HighlightColor != "" {
		sentinel := color.RGBA{R: 1, G: 2, B: 3, A: 255}
		if render.ParseHexColor(p.HighlightColor, sentinel) == sentinel {
			warnings = append(warnings, fmt.Sprintf("malformed highlightColor %q, using default", p.HighlightColor))
		}
	}
	if p.Position != "" && p.Position != "top" && p.Position != "bottom" {
		warnings = append(warnings, fmt.Sprintf("unknown position %q, using %q", p.Position, "bottom"))
	}

	return warnings
}

// ValidateBatch returns warnings for items that will fail or be skipped at
// render time.
func ValidateBatch(b *BatchSpec) []string {
	var warnings []string
	for i, it := range b.Items {
		if it.Image == "" {
			warnings = append(warnings, fmt.Sprintf("item %d: no image path, it will fail to render", i))
		}
		if it.Text == "" {
			warnings = append(warnings, fmt.Sprintf("item %d: empty text, only the quote mark and caption will draw", i))
		}
		if it.Position != nil && *it.Position != "top" && *it.Position != "bottom" {
			warnings = append(warnings, fmt.Sprintf("item %d: unknown position %q, using %q", i, *it.Position, "bottom"))
		}
	}
	return warnings
}
