// crop.go — Source-rectangle selection for the fixed-aspect canvas.
package render

import "image"

// SelectCrop returns the source-image rectangle to sample when filling a
// canvasW×canvasH output. A non-nil override (typically from the subject
// detector) is trusted as pre-validated and returned unchanged. Otherwise a
// centered cover crop is computed: the image is scaled to fully cover the
// canvas and the overflow axis is center-cropped.
func SelectCrop(imgW, imgH, canvasW, canvasH int, override *image.Rectangle) image.Rectangle {
	if override != nil {
		return *override
	}

	imgAspect := float64(imgW) / float64(imgH)
	canvasAspect := float64(canvasW) / float64(canvasH)

	// Initial fit, in canvas space: pin the tighter dimension.
	var drawW, drawH float64
	if imgAspect > canvasAspect {
		drawH = float64(canvasH)
		drawW = drawH * imgAspect
	} else {
		drawW = float64(canvasW)
		drawH = drawW / imgAspect
	}

	// Guard passes, kept in this order: if either dimension still falls
	// short of the canvas, refit it exactly and rescale the other.
	if drawW < float64(canvasW) {
		drawW = float64(canvasW)
		drawH = drawW / imgAspect
	}
	if drawH < float64(canvasH) {
		drawH = float64(canvasH)
		drawW = drawH * imgAspect
	}

	// Map the visible canvas window back into source pixels.
	scale := float64(imgW) / drawW
	srcW := float64(canvasW) * scale
	srcH := float64(canvasH) * scale
	srcX := (float64(imgW) - srcW) / 2
	srcY := (float64(imgH) - srcH) / 2

	rect := image.Rect(int(srcX), int(srcY), int(srcX+srcW), int(srcY+srcH))

	// Truncation can collapse the window for tiny images; the contract is a
	// non-degenerate rectangle for any positive dimensions.
	if rect.Dx() < 1 {
		rect.Max.X = rect.Min.X + 1
	}
	if rect.Dy() < 1 {
		rect.Max.Y = rect.Min.Y + 1
	}
	return rect
}
