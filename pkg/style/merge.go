// merge.go — Resolve preset defaults and per-item overrides into render
// parameters. Item fields win over preset fields; unset preset fields fall
// through to the engine's documented defaults.
package style

import "github.com/seleste/quoteframe/pkg/render"

// ToStyle maps a preset onto the renderer's global style. Zero-valued fields
// stay zero here; render.New applies the engine defaults.
func ToStyle(p *Preset) render.Style {
	s := render.Style{
		FontKey:        p.Font,
		FontSizePx:     p.FontSizePx,
		HighlightColor: p.HighlightColor,
		ArtistName:     p.ArtistName,
		Position:       render.ParsePosition(p.Position),
	}
	if p.GradientStart != nil {
		s.GradientStart = *p.GradientStart
	}
	return s
}

// ToRequest maps a batch item onto a render request, carrying its optional
// overrides through untouched. The caller supplies Image and CropRect after
// decoding and (optionally) subject detection.
func ToRequest(it Item) render.Request {
	req := render.Request{
		Text:            it.Text,
		HighlightedWord: it.HighlightedWord,
		FontSizePx:      it.FontSizePx,
		GradientStart:   it.GradientStart,
	}
	if it.Position != nil {
		pos := render.ParsePosition(*it.Position)
		req.Position = &pos
	}
	return req
}
