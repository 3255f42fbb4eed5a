// batch.go — Sequential multi-image rendering with per-item isolation.
package render

import "image"

// Result is the outcome of one batch item. Either Image or Err is set.
type Result struct {
	Image *image.RGBA
	Err   error
}

// RenderBatch renders each request in order. One item's failure (typically a
// missing or undecodable image) never aborts the rest: the error is recorded
// in that item's Result and rendering continues. Only completed renders carry
// a non-nil Image.
func (r *Renderer) RenderBatch(reqs []Request) []Result {
	results := make([]Result, len(reqs))
	for i, req := range reqs {
		img, err := r.Render(req)
		if err != nil {
			results[i] = Result{Err: err}
			continue
		}
		results[i] = Result{Image: img}
	}
	return results
}
