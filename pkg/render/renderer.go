// renderer.go — The render pipeline: crop, background, gradient, glyphs.
package render

import (
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/seleste/quoteframe/pkg/fontcat"
)

// openQuote is the decorative mark drawn left of the first line.
const openQuote = "“"

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Renderer draws quote cards using one shared font catalog and a set of
// style defaults. It keeps no per-render state, so the same request always
// produces the same pixels.
type Renderer struct {
	fonts *fontcat.Catalog
	style Style
}

// New creates a Renderer. Unset style fields get the documented defaults;
// a zero GradientStart is treated as unset (a request can still force 0
// through its override field).
func New(fonts *fontcat.Catalog, style Style) *Renderer {
	if style.FontSizePx <= 0 {
		style.FontSizePx = DefaultFontSize
	}
	if style.HighlightColor == "" {
		style.HighlightColor = DefaultHighlightColor
	}
	if style.GradientStart <= 0 {
		style.GradientStart = DefaultGradientStart
	}
	return &Renderer{fonts: fonts, style: style}
}

// params is the fully resolved per-render style: request override if
// present, else the renderer's default.
type params struct {
	fontKey   string
	fontSize  float64
	highlight color.RGBA
	gradStart float64
	pos       Position
	artist    string
}

func (r *Renderer) resolve(req Request) params {
	p := params{
		fontKey:   r.style.FontKey,
		fontSize:  r.style.FontSizePx,
		highlight: ParseHexColor(r.style.HighlightColor, ParseHexColor(DefaultHighlightColor, white)),
		gradStart: clamp01(r.style.GradientStart),
		pos:       r.style.Position,
		artist:    r.style.ArtistName,
	}
	if req.FontSizePx != nil && *req.FontSizePx > 0 {
		p.fontSize = *req.FontSizePx
	}
	if req.GradientStart != nil {
		p.gradStart = clamp01(*req.GradientStart)
	}
	if req.Position != nil {
		p.pos = *req.Position
	}
	return p
}

// Render produces the 1080×1350 card for one request. The source image is
// only read; the returned RGBA is freshly allocated per call.
func (r *Renderer) Render(req Request) (*image.RGBA, error) {
	if req.Image == nil {
		return nil, errors.New("render: nil source image")
	}
	b := req.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, errors.New("render: source image has no pixels")
	}

	p := r.resolve(req)

	// Background: sample the selected source window, scaled to the canvas.
	crop := SelectCrop(b.Dx(), b.Dy(), CanvasWidth, CanvasHeight, req.CropRect)
	bg := imaging.Resize(imaging.Crop(req.Image, crop), CanvasWidth, CanvasHeight, imaging.Lanczos)

	dc := gg.NewContext(CanvasWidth, CanvasHeight)
	dc.DrawImage(bg, 0, 0)
	fillGradient(dc, p.pos, p.gradStart)

	body := r.fonts.BodyFace(p.fontKey, p.fontSize)
	lines := WrapLines(strings.ToUpper(req.Text), body, MaxLineWidth)
	lh := LineHeight(p.fontSize)
	startY := StartY(p.pos, len(lines), p.fontSize)

	r.drawQuoteMark(dc, body, lines, startY, p.fontSize)
	r.drawLines(dc, body, lines, req.HighlightedWord, p.highlight, startY, lh)
	r.drawCaption(dc, p.artist)

	return dc.Image().(*image.RGBA), nil
}

// drawQuoteMark places the opening quotation mark right-aligned a fixed gap
// left of the first line's leftmost glyph, vertically centered on the first
// baseline. It always uses the catalog's decorative face, not the body face.
func (r *Renderer) drawQuoteMark(dc *gg.Context, body font.Face, lines []string, startY, fontSize float64) {
	first := ""
	if len(lines) > 0 {
		first = lines[0]
	}
	leftX := (CanvasWidth - measure(body, first)) / 2

	dc.SetFontFace(r.fonts.MarkFace(fontSize * QuoteMarkFactor))
	dc.SetColor(white)
	dc.DrawStringAnchored(openQuote, leftX-QuoteMarkGap, startY, 1, 0.5)
}

// drawLines centers each wrapped line as a unit, then draws its words
// individually so the highlighted word can take the accent color. The cursor
// advances by each word's measured width plus one measured space.
func (r *Renderer) drawLines(dc *gg.Context, body font.Face, lines []string, target string, highlight color.RGBA, startY, lh float64) {
	dc.SetFontFace(body)
	spaceW := measure(body, " ")

	for i, line := range lines {
		y := startY + float64(i)*lh
		x := (CanvasWidth - measure(body, line)) / 2
		for _, word := range strings.Fields(line) {
			if IsHighlighted(word, target) {
				dc.SetColor(highlight)
			} else {
				dc.SetColor(white)
			}
			dc.DrawStringAnchored(word, x, y, 0, 0.5)
			x += measure(body, word) + spaceW
		}
	}
}

// drawCaption writes the uppercased artist name centered near the bottom
// edge. Its position and size are fixed regardless of text position.
func (r *Renderer) drawCaption(dc *gg.Context, artist string) {
	if artist == "" {
		return
	}
	dc.SetFontFace(r.fonts.CaptionFace(CaptionFontSize))
	dc.SetColor(white)
	dc.DrawStringAnchored(strings.ToUpper(artist), CanvasWidth/2, CanvasHeight-CaptionOffset, 0.5, 0.5)
}

// measure returns a string's advance width in pixels for the given face.
// Layout and drawing share this single measurement path.
func measure(face font.Face, s string) float64 {
	return float64(font.MeasureString(face, s)) / 64
}
