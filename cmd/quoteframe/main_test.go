package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/seleste/quoteframe/pkg/render"
)

func writeTestPhoto(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 500))
	for y := 0; y < 500; y++ {
		for x := 0; x < 400; x++ {
			img.SetRGBA(x, y, color.RGBA{R: 200, G: 200, B: 200, A: 255})
		}
	}
	path := filepath.Join(dir, "photo.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func renderedMidRed(t *testing.T, out string) uint8 {
	t.Helper()
	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	card, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode output: %v", err)
	}
	r, _, _, _ := card.At(5, render.CanvasHeight/2).RGBA()
	return uint8(r >> 8)
}

func TestRunExplicitGradientStartZero(t *testing.T) {
	dir := t.TempDir()
	src := writeTestPhoto(t, dir)

	// An explicit 0 spans the bottom fade over the whole card, so the
	// midpoint darkens; the default keeps the fade below it.
	zeroOut := filepath.Join(dir, "zero.png")
	if err := run([]string{"-o", zeroOut, "--image", src, "--text", "dusk", "--gradient-start", "0"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	defOut := filepath.Join(dir, "default.png")
	if err := run([]string{"-o", defOut, "--image", src, "--text", "dusk"}); err != nil {
		t.Fatalf("run: %v", err)
	}

	if got := renderedMidRed(t, zeroOut); got >= 160 {
		t.Errorf("--gradient-start 0 swallowed: midpoint R=%d, want darkened", got)
	}
	if got := renderedMidRed(t, defOut); got <= 180 {
		t.Errorf("default fade reaches the midpoint: R=%d", got)
	}
}
