package server

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/seleste/quoteframe/pkg/fontcat"
	"github.com/seleste/quoteframe/pkg/render"
)

type stubDetector struct{}

func (stubDetector) BestCrop(ctx context.Context, img image.Image, w, h int) (image.Rectangle, error) {
	b := img.Bounds()
	return image.Rect(0, 0, b.Dx()/2, b.Dy()/2), nil
}

func testServer() *srv {
	return &srv{
		log:      zerolog.Nop(),
		fonts:    fontcat.Default(),
		detector: stubDetector{},
		images:   newImageStore(),
	}
}

func testPhoto() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 120, 150))
	for i := range img.Pix {
		img.Pix[i] = 200
	}
	return img
}

func multipartBody(t *testing.T, fields map[string]string, withImage bool) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if withImage {
		fw, err := mw.CreateFormFile("image", "photo.png")
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(fw, testPhoto()); err != nil {
			t.Fatal(err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	mw.Close()
	return &buf, mw.FormDataContentType()
}

func TestHealth(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}
}

func TestFontsList(t *testing.T) {
	s := testServer()
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/fonts", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200", rec.Code)
	}

	var fonts []map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&fonts); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(fonts) != 4 {
		t.Errorf("got %d fonts, want 4", len(fonts))
	}
}

func TestRender(t *testing.T) {
	s := testServer()
	body, contentType := multipartBody(t, map[string]string{
		"text":      "the only way out is through",
		"highlight": "through",
		"artist":    "someone",
		"position":  "top",
		"size":      "70",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type %q, want image/png", ct)
	}

	card, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("decode card: %v", err)
	}
	if b := card.Bounds(); b.Dx() != render.CanvasWidth || b.Dy() != render.CanvasHeight {
		t.Errorf("card %dx%d, want %dx%d", b.Dx(), b.Dy(), render.CanvasWidth, render.CanvasHeight)
	}
}

func TestRenderMissingImage(t *testing.T) {
	s := testServer()
	body, contentType := multipartBody(t, map[string]string{"text": "hello"}, false)

	req := httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestRenderBadImageBytes(t *testing.T) {
	s := testServer()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("image", "broken.png")
	fw.Write([]byte("this is not a png"))
	mw.WriteField("text", "hello")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/render", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", rec.Code)
	}
}

func TestUploadRenderDeleteFlow(t *testing.T) {
	s := testServer()
	router := s.router()

	// Upload.
	body, contentType := multipartBody(t, nil, true)
	req := httptest.NewRequest(http.MethodPost, "/api/images", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("upload status %d: %s", rec.Code, rec.Body.String())
	}

	var uploaded struct {
		ID     string `json:"id"`
		Width  int    `json:"width"`
		Height int    `json:"height"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&uploaded); err != nil {
		t.Fatalf("decode upload response: %v", err)
	}
	if uploaded.ID == "" || uploaded.Width != 120 || uploaded.Height != 150 {
		t.Fatalf("upload response = %+v", uploaded)
	}

	// Render by reference.
	body, contentType = multipartBody(t, map[string]string{
		"imageId": uploaded.ID,
		"text":    "hello again",
	}, false)
	req = httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("render-by-id status %d: %s", rec.Code, rec.Body.String())
	}

	// Delete, then the reference goes stale.
	req = httptest.NewRequest(http.MethodDelete, "/api/images/"+uploaded.ID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status %d", rec.Code)
	}

	body, contentType = multipartBody(t, map[string]string{
		"imageId": uploaded.ID,
		"text":    "gone",
	}, false)
	req = httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", contentType)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("stale id status %d, want 400", rec.Code)
	}
}

func TestRenderExplicitGradientStartZero(t *testing.T) {
	s := testServer()

	// renderMidRed renders with the given fields and samples a pixel left of
	// the text, halfway down the card.
	renderMidRed := func(fields map[string]string) uint8 {
		t.Helper()
		body, contentType := multipartBody(t, fields, true)
		req := httptest.NewRequest(http.MethodPost, "/api/render", body)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()
		s.router().ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
		}
		card, err := png.Decode(rec.Body)
		if err != nil {
			t.Fatalf("decode card: %v", err)
		}
		r, _, _, _ := card.At(5, render.CanvasHeight/2).RGBA()
		return uint8(r >> 8)
	}

	// gradientStart=0 means the bottom fade spans the whole card, so the
	// midpoint is darkened; the 0.5 default leaves it untouched.
	zero := renderMidRed(map[string]string{"text": "dusk", "gradientStart": "0"})
	def := renderMidRed(map[string]string{"text": "dusk"})
	if zero >= 160 {
		t.Errorf("explicit gradientStart=0 swallowed: midpoint R=%d, want darkened", zero)
	}
	if def <= 180 {
		t.Errorf("default fade reaches the midpoint: R=%d", def)
	}
}

func TestParseServeFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args keeps default", nil, "8080"},
		{"long flag", []string{"--port", "9000"}, "9000"},
		{"short flag", []string{"-p", "9001"}, "9001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseServeFlags(tt.args, "8080")
			if err != nil {
				t.Fatalf("parseServeFlags: %v", err)
			}
			if got != tt.want {
				t.Fatalf("port %q, want %q", got, tt.want)
			}
		})
	}
	if _, err := parseServeFlags([]string{"--bogus"}, "8080"); err == nil {
		t.Error("want error for unknown flag")
	}
}

func TestRenderSmartcropUsesDetector(t *testing.T) {
	s := testServer()
	body, contentType := multipartBody(t, map[string]string{
		"text":      "cropped",
		"smartcrop": "1",
	}, true)

	req := httptest.NewRequest(http.MethodPost, "/api/render", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	s.router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
	}
}
