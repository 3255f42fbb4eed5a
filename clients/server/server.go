// Package server provides the QuoteFrame HTTP render API: upload a photo,
// post quote text and style fields, get a finished card back as PNG.
package server

import (
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/seleste/quoteframe/pkg/detect"
	"github.com/seleste/quoteframe/pkg/export"
	"github.com/seleste/quoteframe/pkg/fontcat"
	"github.com/seleste/quoteframe/pkg/render"
)

// ── Config ──

type config struct {
	Port    string
	FontDir string
}

func loadConfig() config {
	// .env is optional; a missing file is fine.
	_ = godotenv.Load(".env")
	return config{
		Port:    getenv("QUOTEFRAME_PORT", "8080"),
		FontDir: getenv("QUOTEFRAME_FONT_DIR", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ── Image store ──

// Uploaded photos are kept decoded in memory so repeated renders against the
// same photo skip the decode step.

type storedImage struct {
	Name string
	Img  image.Image
}

type imageStore struct {
	mu     sync.RWMutex
	images map[string]*storedImage
}

func newImageStore() *imageStore {
	return &imageStore{images: make(map[string]*storedImage)}
}

func (st *imageStore) add(name string, img image.Image) string {
	id := uuid.NewString()
	st.mu.Lock()
	st.images[id] = &storedImage{Name: name, Img: img}
	st.mu.Unlock()
	return id
}

func (st *imageStore) get(id string) (*storedImage, bool) {
	st.mu.RLock()
	s, ok := st.images[id]
	st.mu.RUnlock()
	return s, ok
}

func (st *imageStore) remove(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.images[id]; !ok {
		return false
	}
	delete(st.images, id)
	return true
}

func (st *imageStore) list() []map[string]any {
	st.mu.RLock()
	defer st.mu.RUnlock()
	out := make([]map[string]any, 0, len(st.images))
	for id, s := range st.images {
		b := s.Img.Bounds()
		out = append(out, map[string]any{
			"id":     id,
			"name":   s.Name,
			"width":  b.Dx(),
			"height": b.Dy(),
		})
	}
	return out
}

// ── Server ──

type srv struct {
	log      zerolog.Logger
	fonts    *fontcat.Catalog
	detector detect.Detector
	images   *imageStore
}

// parseServeFlags resolves the listen port: the --port/-p flag wins over the
// env-configured default.
func parseServeFlags(args []string, def string) (string, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	var port string
	fs.StringVar(&port, "port", def, "HTTP listen port")
	fs.StringVar(&port, "p", def, "HTTP listen port")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return port, nil
}

// RunServe starts the render API. A --port flag overrides the env config.
func RunServe(args []string) error {
	cfg := loadConfig()
	port, err := parseServeFlags(args, cfg.Port)
	if err != nil {
		return err
	}
	cfg.Port = port

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	fonts := fontcat.Default()
	if cfg.FontDir != "" {
		warnings, err := fonts.LoadDir(cfg.FontDir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.FontDir).Msg("font dir not loaded")
		}
		for _, w := range warnings {
			logger.Warn().Str("dir", cfg.FontDir).Msg(w)
		}
	}

	s := &srv{
		log:      logger,
		fonts:    fonts,
		detector: detect.NewSmartCrop(),
		images:   newImageStore(),
	}

	addr := ":" + cfg.Port
	logger.Info().Str("addr", addr).Msg("quoteframe API listening")
	return http.ListenAndServe(addr, s.router())
}

func (s *srv) router() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/fonts", s.handleFonts)
	r.Post("/api/render", s.handleRender)
	r.Post("/api/images", s.handleUploadImage)
	r.Get("/api/images", s.handleListImages)
	r.Delete("/api/images/{id}", s.handleDeleteImage)

	return r
}

func requestLogger(l zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)
			l.Info().Msgf("%s %s %d %s", r.Method, r.URL.Path, rw.status, time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// ── Handlers ──

func (s *srv) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *srv) handleFonts(w http.ResponseWriter, r *http.Request) {
	opts := s.fonts.Options()
	out := make([]map[string]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, map[string]string{"key": o.Key, "name": o.Name})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleRender accepts multipart form data: an "image" file (or an "imageId"
// referencing an earlier upload) plus the style fields the CLI exposes as
// flags. The response is the finished 1080×1350 card as PNG. A failed decode
// is a 400 for this request only; the server keeps serving.
func (s *srv) handleRender(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	img, err := s.sourceImage(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rend := render.New(s.fonts, render.Style{
		FontKey:        r.FormValue("font"),
		FontSizePx:     parseFloat(r.FormValue("size"), render.DefaultFontSize),
		HighlightColor: r.FormValue("color"),
		ArtistName:     r.FormValue("artist"),
		Position:       render.ParsePosition(r.FormValue("position")),
	})

	req := render.Request{
		Image:           img,
		Text:            r.FormValue("text"),
		HighlightedWord: r.FormValue("highlight"),
	}
	// A present gradientStart field is an explicit choice, 0 included, so it
	// goes through the request override rather than the style default.
	if v := r.FormValue("gradientStart"); v != "" {
		if gs, err := strconv.ParseFloat(v, 64); err == nil {
			req.GradientStart = &gs
		}
	}

	if isTrue(r.FormValue("smartcrop")) {
		rect, err := s.detector.BestCrop(r.Context(), img, render.CanvasWidth, render.CanvasHeight)
		if err != nil {
			// Cover-crop fallback; the render still succeeds.
			s.log.Warn().Err(err).Msg("smartcrop failed, using cover crop")
		} else {
			req.CropRect = &rect
		}
	}

	card, err := rend.Render(req)
	if err != nil {
		http.Error(w, "render: "+err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := export.WriteTo(w, ".png", card); err != nil {
		s.log.Error().Err(err).Msg("write response")
	}
}

func (s *srv) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		http.Error(w, "parse form: "+err.Error(), http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "no image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	img, err := imaging.Decode(file, imaging.AutoOrientation(true))
	if err != nil {
		http.Error(w, "decode image: "+err.Error(), http.StatusBadRequest)
		return
	}

	id := s.images.add(header.Filename, img)
	b := img.Bounds()
	writeJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"name":   header.Filename,
		"width":  b.Dx(),
		"height": b.Dy(),
	})
}

func (s *srv) handleListImages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.images.list())
}

func (s *srv) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if !s.images.remove(id) {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// ── Helpers ──

// sourceImage resolves the photo for a render request: inline upload first,
// then a stored image reference.
func (s *srv) sourceImage(r *http.Request) (image.Image, error) {
	if file, _, err := r.FormFile("image"); err == nil {
		defer file.Close()
		img, err := imaging.Decode(file, imaging.AutoOrientation(true))
		if err != nil {
			return nil, fmt.Errorf("decode image: %w", err)
		}
		return img, nil
	}

	if id := r.FormValue("imageId"); id != "" {
		if stored, ok := s.images.get(id); ok {
			return stored.Img, nil
		}
		return nil, fmt.Errorf("unknown imageId %q", id)
	}

	return nil, fmt.Errorf("missing image: attach an %q file or an %q field", "image", "imageId")
}

func parseFloat(s string, def float64) float64 {
	if s == "" {
		return def
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return v
}

func isTrue(s string) bool {
	return s == "1" || s == "true" || s == "yes"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
