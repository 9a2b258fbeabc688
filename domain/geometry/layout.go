package geometry

import "math"

// Layout constants in device-independent pixels.
const (
	Space              = 16
	CaptureButtonSize  = 72
	CaptureWrapperSize = CaptureButtonSize + Space
	SmallPreviewSize   = Space * 7
)

// PreviewSize returns the preview image box for a viewport of width
// viewportW. Collapsed previews are a fixed square thumbnail; expanded
// previews span the viewport minus side margins and keep the artifact aspect
// (width/height). An unknown aspect renders square.
func PreviewSize(viewportW int, aspect float64, expanded bool) (w, h int) {
	if !expanded {
		return SmallPreviewSize, SmallPreviewSize
	}
	w = viewportW - Space*2
	if w < 1 {
		w = 1
	}
	if aspect <= 0 || math.IsNaN(aspect) || math.IsInf(aspect, 0) {
		return w, w
	}
	h = int(math.Round(float64(w) / aspect))
	if h < 1 {
		h = 1
	}
	return w, h
}
