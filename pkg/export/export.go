// Package export writes rendered cards to disk or a stream. The render
// engine stops at pixels; this package owns encoding. The format is inferred
// from the file extension: .png, .jpg/.jpeg, or .bmp.
package export

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// jpegQuality matches the usual export quality for photographic cards.
const jpegQuality = 90

// Write encodes img to a file at path, choosing the format from the
// extension.
func Write(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTo(f, filepath.Ext(path), img); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

// WriteTo encodes img to w in the format named by ext. Useful for in-memory
// output (HTTP responses, tests).
func WriteTo(w io.Writer, ext string, img image.Image) error {
	switch strings.ToLower(ext) {
	case ".png":
		return png.Encode(w, img)
	case ".jpg", ".jpeg":
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	case ".bmp":
		return bmp.Encode(w, img)
	default:
		return fmt.Errorf("unsupported format %q: use .png, .jpg or .bmp", ext)
	}
}
