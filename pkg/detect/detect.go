// Package detect wraps subject-aware crop detection. The render engine never
// imports this package; callers run detection up front and pass the resulting
// rectangle into the render request. Any failure here simply means the engine
// falls back to its own centered cover crop.
package detect

import (
	"context"
	"fmt"
	"image"

	"github.com/muesli/smartcrop"
	"github.com/muesli/smartcrop/nfnt"
)

// Detector finds the most interesting source window for a target aspect.
type Detector interface {
	BestCrop(ctx context.Context, img image.Image, width, height int) (image.Rectangle, error)
}

// SmartCrop implements Detector with smartcrop's saliency analyzer.
type SmartCrop struct {
	analyzer smartcrop.Analyzer
}

// NewSmartCrop builds a detector with the default resizer.
func NewSmartCrop() *SmartCrop {
	return &SmartCrop{analyzer: smartcrop.NewAnalyzer(nfnt.NewDefaultResizer())}
}

// BestCrop returns the detected crop window in source-image pixels.
func (s *SmartCrop) BestCrop(ctx context.Context, img image.Image, width, height int) (image.Rectangle, error) {
	if err := ctx.Err(); err != nil {
		return image.Rectangle{}, err
	}
	rect, err := s.analyzer.FindBestCrop(img, width, height)
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("smartcrop: %w", err)
	}
	return rect, nil
}
