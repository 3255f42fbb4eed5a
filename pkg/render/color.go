// color.go — Hex color parsing with a drawable fallback.
package render

import (
	"image/color"
	"strconv"
	"strings"
)

// ParseHexColor converts a "#rrggbb" string to color.RGBA. Malformed values
// return fallback so a bad style setting never aborts a render.
func ParseHexColor(s string, fallback color.RGBA) color.RGBA {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return fallback
	}

	r, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	g, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	b, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return fallback
	}

	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
}
