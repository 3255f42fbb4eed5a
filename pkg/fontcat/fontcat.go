// Package fontcat provides the fixed catalog of selectable fonts plus the
// two special-role faces (decorative quote mark, caption), with a shared
// face cache. The embedded Go fonts make every binary self-contained; custom
// TTF files can extend the catalog at startup.
package fontcat

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultKey is the catalog entry used when a requested key is unknown.
const DefaultKey = "sans"

// Option is one selectable catalog entry. Body text renders with the bold
// companion; entries without one fall back to their regular weight, resolved
// once at registration.
type Option struct {
	Key  string
	Name string

	body *truetype.Font
}

// Catalog resolves font keys to faces. Face construction is cached per
// (font, size) behind a mutex, so a Catalog is safe for concurrent use.
type Catalog struct {
	mu      sync.Mutex
	options map[string]*Option
	order   []string
	deco    *truetype.Font
	caption *truetype.Font
	faces   map[faceKey]font.Face
}

type faceKey struct {
	fnt  *truetype.Font
	size float64
}

// Default builds the embedded catalog. The Go fonts are compiled in, so a
// parse failure here is a build defect, not a runtime condition.
func Default() *Catalog {
	c := &Catalog{
		options: make(map[string]*Option),
		faces:   make(map[faceKey]font.Face),
		deco:    mustParse(goitalic.TTF),
		caption: mustParse(goregular.TTF),
	}
	c.add("sans", "Go Sans", mustParse(goregular.TTF), mustParse(gobold.TTF))
	c.add("slab", "Go Medium", mustParse(gomedium.TTF), nil)
	c.add("mono", "Go Mono", mustParse(gomono.TTF), mustParse(gomonobold.TTF))
	c.add("italic", "Go Italic", mustParse(goitalic.TTF), mustParse(gobolditalic.TTF))
	return c
}

func mustParse(ttf []byte) *truetype.Font {
	f, err := truetype.Parse(ttf)
	if err != nil {
		panic(fmt.Errorf("fontcat: parse embedded font: %w", err))
	}
	return f
}

func (c *Catalog) add(key, name string, regular, bold *truetype.Font) {
	if bold == nil {
		bold = regular
	}
	c.options[key] = &Option{Key: key, Name: name, body: bold}
	c.order = append(c.order, key)
}

// LoadDir registers every .ttf file in dir as a catalog entry keyed by its
// lowercased base name. Files that fail to parse are skipped with a warning
// string; the embedded entries always remain available.
func (c *Catalog) LoadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read font dir %s: %w", dir, err)
	}

	var warnings []string
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".ttf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("read %s: %v", e.Name(), err))
			continue
		}
		f, err := truetype.Parse(data)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("parse %s: %v", e.Name(), err))
			continue
		}
		key := strings.ToLower(strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())))
		if _, exists := c.options[key]; exists {
			warnings = append(warnings, fmt.Sprintf("font %q already registered, skipped", key))
			continue
		}
		c.options[key] = &Option{Key: key, Name: key, body: f}
		c.order = append(c.order, key)
	}
	return warnings, nil
}

// Options lists the catalog entries in registration order.
func (c *Catalog) Options() []Option {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Option, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, *c.options[key])
	}
	return out
}

// Has reports whether key names a catalog entry.
func (c *Catalog) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.options[key]
	return ok
}

// BodyFace returns the bold body face for key at the given size. Unknown
// keys silently resolve to the default entry so layout is always drawable.
func (c *Catalog) BodyFace(key string, size float64) font.Face {
	c.mu.Lock()
	opt, ok := c.options[key]
	if !ok {
		opt = c.options[DefaultKey]
	}
	fnt := opt.body
	c.mu.Unlock()
	return c.face(fnt, size)
}

// MarkFace returns the decorative quotation-mark face at the given size,
// independent of the body font selection.
func (c *Catalog) MarkFace(size float64) font.Face {
	return c.face(c.deco, size)
}

// CaptionFace returns the caption face at the given size.
func (c *Catalog) CaptionFace(size float64) font.Face {
	return c.face(c.caption, size)
}

func (c *Catalog) face(fnt *truetype.Font, size float64) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := faceKey{fnt: fnt, size: size}
	if f, ok := c.faces[key]; ok {
		return f
	}
	f := truetype.NewFace(fnt, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[key] = f
	return f
}
