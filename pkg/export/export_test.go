package export

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
)

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 20, 25))
	for i := range img.Pix {
		img.Pix[i] = 255
	}
	return img
}

func TestWriteToPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, ".png", testImage()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	decoded, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 20 || b.Dy() != 25 {
		t.Errorf("decoded %dx%d, want 20x25", b.Dx(), b.Dy())
	}
}

func TestWriteToBMP(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, ".bmp", testImage()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if _, err := bmp.Decode(&buf); err != nil {
		t.Errorf("decode: %v", err)
	}
}

func TestWriteToJPEGCaseInsensitive(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, ".JPG", testImage()); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("no JPEG bytes written")
	}
}

func TestWriteToUnknownExtension(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, ".gif", testImage()); err == nil {
		t.Fatal("want error for unsupported format")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	if err := Write(path, testImage()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("decode written file: %v", err)
	}
}

func TestWriteBadPath(t *testing.T) {
	if err := Write(filepath.Join(t.TempDir(), "missing", "out.png"), testImage()); err == nil {
		t.Fatal("want error for unwritable path")
	}
}
