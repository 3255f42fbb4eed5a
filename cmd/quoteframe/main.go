// QuoteFrame — quote-overlay cards for social media.
//
// Usage:
//
//	quoteframe -o <file> --image <photo> --text "<quote>" [options]
//	quoteframe batch --preset <path> --batch <path> --out-dir <dir>
//	quoteframe fonts
//	quoteframe serve [--port 8080]
//	quoteframe init
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/seleste/quoteframe/clients/server"
	"github.com/seleste/quoteframe/pkg/detect"
	"github.com/seleste/quoteframe/pkg/export"
	"github.com/seleste/quoteframe/pkg/fontcat"
	"github.com/seleste/quoteframe/pkg/render"
	"github.com/seleste/quoteframe/pkg/style"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "batch":
		if err := runBatch(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "fonts":
		runFonts()
	case "init":
		if err := runInit(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "serve":
		if err := server.RunServe(os.Args[2:]); err != nil {
			fatal(err)
		}
	case "help", "-h", "--help":
		printUsage()
	default:
		// Default: single-card render mode (all flags on root).
		if err := run(os.Args[1:]); err != nil {
			fatal(err)
		}
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("quoteframe", flag.ExitOnError)

	var (
		output    string
		imagePath string
		text      string
		highlight string
		position  string
		fontKey   string
		fontDir   string
		artist    string
		color     string
		size      float64
		gradStart float64
		smart     bool
	)

	fs.StringVar(&output, "o", "", "Output file path (.png, .jpg or .bmp)")
	fs.StringVar(&output, "output", "", "Output file path (.png, .jpg or .bmp)")
	fs.StringVar(&imagePath, "image", "", "Background photo (JPEG or PNG)")
	fs.StringVar(&text, "text", "", "Quote text")
	fs.StringVar(&highlight, "highlight", "", "Word to render in the highlight color")
	fs.StringVar(&position, "position", "bottom", "Text position: top or bottom")
	fs.StringVar(&fontKey, "font", fontcat.DefaultKey, "Body font key (see 'quoteframe fonts')")
	fs.StringVar(&fontDir, "font-dir", "", "Directory of extra .ttf fonts")
	fs.StringVar(&artist, "artist", "", "Artist caption")
	fs.StringVar(&color, "color", render.DefaultHighlightColor, "Highlight color (#rrggbb)")
	fs.Float64Var(&size, "size", render.DefaultFontSize, "Body font size in pixels")
	fs.Float64Var(&gradStart, "gradient-start", render.DefaultGradientStart, "Gradient fade start in [0,1]")
	fs.BoolVar(&smart, "smartcrop", false, "Use subject detection to pick the crop window")

	fs.Usage = printUsage
	if err := fs.Parse(args); err != nil {
		return err
	}

	if output == "" || imagePath == "" {
		printUsage()
		return fmt.Errorf("both -o and --image are required")
	}

	img, err := imaging.Open(imagePath, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("open %s: %w", imagePath, err)
	}

	fonts, err := loadFonts(fontDir)
	if err != nil {
		return err
	}

	r := render.New(fonts, render.Style{
		FontKey:        fontKey,
		FontSizePx:     size,
		HighlightColor: color,
		ArtistName:     artist,
		Position:       render.ParsePosition(position),
	})

	// The flag always carries a concrete value, so it goes through the
	// request override; an explicit 0 stays 0.
	req := render.Request{Image: img, Text: text, HighlightedWord: highlight, GradientStart: &gradStart}
	if smart {
		req.CropRect = detectCrop(detect.NewSmartCrop(), img)
	}

	card, err := r.Render(req)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if err := export.Write(output, card); err != nil {
		return err
	}
	fmt.Printf("Done: %s\n", output)
	return nil
}

func runBatch(args []string) error {
	fs := flag.NewFlagSet("batch", flag.ExitOnError)

	var (
		presetPath string
		batchPath  string
		outDir     string
		fontDir    string
		smart      bool
	)

	fs.StringVar(&presetPath, "preset", "", "Path to preset.json (optional)")
	fs.StringVar(&batchPath, "batch", "", "Path to batch.json")
	fs.StringVar(&outDir, "out-dir", ".", "Directory for rendered cards")
	fs.StringVar(&fontDir, "font-dir", "", "Directory of extra .ttf fonts")
	fs.BoolVar(&smart, "smartcrop", false, "Use subject detection to pick crop windows")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if batchPath == "" {
		return fmt.Errorf("--batch is required")
	}

	fonts, err := loadFonts(fontDir)
	if err != nil {
		return err
	}

	preset := &style.Preset{}
	if presetPath != "" {
		var warnings []string
		preset, warnings, err = style.LoadPreset(presetPath)
		if err != nil {
			return err
		}
		warnings = append(warnings, style.ValidatePreset(preset, fonts)...)
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}

	batch, err := style.LoadBatch(batchPath)
	if err != nil {
		return err
	}
	for _, w := range style.ValidateBatch(batch) {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", outDir, err)
	}

	r := render.New(fonts, style.ToStyle(preset))

	var detector *detect.SmartCrop
	if smart {
		detector = detect.NewSmartCrop()
	}

	rendered := 0
	for i, item := range batch.Items {
		img, err := imaging.Open(item.Image, imaging.AutoOrientation(true))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: item %d: open %s: %v, skipped\n", i, item.Image, err)
			continue
		}

		req := style.ToRequest(item)
		req.Image = img
		if detector != nil {
			req.CropRect = detectCrop(detector, img)
		}

		card, err := r.Render(req)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: item %d: render: %v, skipped\n", i, err)
			continue
		}

		out := filepath.Join(outDir, fmt.Sprintf("quote_%03d.png", i+1))
		if err := export.Write(out, card); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: item %d: %v, skipped\n", i, err)
			continue
		}
		rendered++
		fmt.Printf("Rendered: %s\n", out)
	}

	fmt.Printf("Done: %d/%d cards\n", rendered, len(batch.Items))
	return nil
}

func runFonts() {
	fmt.Println("Available fonts:")
	for _, opt := range fontcat.Default().Options() {
		fmt.Printf("  %-8s %s\n", opt.Key, opt.Name)
	}
}

func runInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	var presetOut, batchOut string
	fs.StringVar(&presetOut, "preset", "preset.json", "Output path for sample preset")
	fs.StringVar(&batchOut, "batch", "batch.json", "Output path for sample batch")
	if err := fs.Parse(args); err != nil {
		return err
	}

	p, b := style.ExampleJSON()

	if err := os.WriteFile(presetOut, []byte(p), 0644); err != nil {
		return fmt.Errorf("write preset: %w", err)
	}
	if err := os.WriteFile(batchOut, []byte(b), 0644); err != nil {
		return fmt.Errorf("write batch: %w", err)
	}

	fmt.Printf("Created: %s, %s\n", presetOut, batchOut)
	fmt.Println("Run: quoteframe batch --preset preset.json --batch batch.json --out-dir cards")
	return nil
}

// loadFonts builds the embedded catalog, optionally extended from a
// directory of .ttf files.
func loadFonts(dir string) (*fontcat.Catalog, error) {
	fonts := fontcat.Default()
	if dir != "" {
		warnings, err := fonts.LoadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}
	return fonts, nil
}

// detectCrop runs subject detection. On failure it returns nil so the engine
// falls back to its own cover crop; detection is never fatal.
func detectCrop(d *detect.SmartCrop, img image.Image) *image.Rectangle {
	rect, err := d.BestCrop(context.Background(), img, render.CanvasWidth, render.CanvasHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: smartcrop: %v, using cover crop\n", err)
		return nil
	}
	return &rect
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func printUsage() {
	fmt.Print(`QuoteFrame — Quote-Overlay Cards (Pure Go)

USAGE:
    quoteframe -o <file> --image <photo> --text "<quote>" [options]
    quoteframe batch --preset <path> --batch <path> --out-dir <dir>
    quoteframe fonts
    quoteframe serve [--port 8080]
    quoteframe init [options]

RENDER MODE:
    -o, --output <path>      Output file (.png, .jpg or .bmp)
    --image <path>           Background photo (JPEG or PNG)
    --text <quote>           Quote text
    --highlight <word>       Word drawn in the highlight color
    --position top|bottom    Text placement (default: bottom)
    --font <key>             Body font key (default: sans)
    --size <px>              Body font size (default: 70)
    --color <#rrggbb>        Highlight color (default: #FFD700)
    --gradient-start <f>     Fade start in [0,1] (default: 0.5)
    --artist <name>          Caption, uppercased on the card
    --smartcrop              Pick the crop window by subject detection
    --font-dir <dir>         Extra .ttf fonts to register

BATCH MODE:
    --preset <path>          preset.json with shared style defaults
    --batch <path>           batch.json listing quotes and photos
    --out-dir <dir>          Output directory (default: .)

UI SERVER:
    quoteframe serve [--port 8080]      Start the HTTP render API

EXAMPLES:
    quoteframe init
    quoteframe fonts
    quoteframe -o card.png --image beach.jpg --text "The only way out is through" --highlight through
    quoteframe batch --preset preset.json --batch batch.json --out-dir cards --smartcrop
`)
}
