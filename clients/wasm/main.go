//go:build js && wasm

// QuoteFrame WASM — client-side card renderer.
// Compiled with: GOOS=js GOARCH=wasm go build -o quoteframe.wasm ./clients/wasm/
package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"syscall/js"

	"github.com/disintegration/imaging"

	"github.com/seleste/quoteframe/pkg/detect"
	"github.com/seleste/quoteframe/pkg/export"
	"github.com/seleste/quoteframe/pkg/fontcat"
	"github.com/seleste/quoteframe/pkg/render"
)

var (
	fonts    = fontcat.Default()
	detector = detect.NewSmartCrop()
)

func main() {
	fmt.Println("QuoteFrame WASM loaded")

	js.Global().Set("goRenderQuote", js.FuncOf(renderQuote))
	js.Global().Set("goListFonts", js.FuncOf(listFonts))
	js.Global().Set("goReady", js.ValueOf(true))

	// Block forever (WASM must not exit).
	select {}
}

// renderParams mirrors the HTTP API's form fields.
type renderParams struct {
	Text            string   `json:"text"`
	HighlightedWord string   `json:"highlightedWord"`
	Font            string   `json:"font"`
	FontSizePx      float64  `json:"fontSizePx"`
	HighlightColor  string   `json:"highlightColor"`
	GradientStart   *float64 `json:"gradientStart,omitempty"`
	ArtistName      string   `json:"artistName"`
	Position        string   `json:"position"`
	SmartCrop       bool     `json:"smartcrop"`
}

// goRenderQuote(imageBase64, paramsJSON) — render and return a base64 PNG.
func renderQuote(this js.Value, args []js.Value) interface{} {
	if len(args) < 2 {
		return js.ValueOf("error: need imageBase64, paramsJSON")
	}

	raw, err := base64.StdEncoding.DecodeString(args[0].String())
	if err != nil {
		return js.ValueOf("error: invalid base64: " + err.Error())
	}
	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return js.ValueOf("error: decode image: " + err.Error())
	}

	var p renderParams
	if err := json.Unmarshal([]byte(args[1].String()), &p); err != nil {
		return js.ValueOf("error: parse params: " + err.Error())
	}

	style := render.Style{
		FontKey:        p.Font,
		FontSizePx:     p.FontSizePx,
		HighlightColor: p.HighlightColor,
		ArtistName:     p.ArtistName,
		Position:       render.ParsePosition(p.Position),
	}

	// A present gradientStart is an explicit choice, 0 included, so it rides
	// the request override rather than the style default.
	req := render.Request{
		Image:           img,
		Text:            p.Text,
		HighlightedWord: p.HighlightedWord,
		GradientStart:   p.GradientStart,
	}
	if p.SmartCrop {
		// Detection failure falls through to the engine's cover crop.
		if rect, err := detector.BestCrop(context.Background(), img, render.CanvasWidth, render.CanvasHeight); err == nil {
			req.CropRect = &rect
		}
	}

	card, err := render.New(fonts, style).Render(req)
	if err != nil {
		return js.ValueOf("error: render: " + err.Error())
	}

	var buf bytes.Buffer
	if err := export.WriteTo(&buf, ".png", card); err != nil {
		return js.ValueOf("error: encode: " + err.Error())
	}
	return js.ValueOf(base64.StdEncoding.EncodeToString(buf.Bytes()))
}

// goListFonts() — return the catalog as JSON [{key, name}].
func listFonts(this js.Value, args []js.Value) interface{} {
	opts := fonts.Options()
	list := make([]map[string]string, 0, len(opts))
	for _, o := range opts {
		list = append(list, map[string]string{"key": o.Key, "name": o.Name})
	}
	data, err := json.Marshal(list)
	if err != nil {
		return js.ValueOf("error: " + err.Error())
	}
	return js.ValueOf(string(data))
}
