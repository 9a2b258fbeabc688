package model

import (
	"github.com/soocke/viewfinder-go/domain/geometry"
)

// ViewportModel holds the viewport dimensions and the capture geometry
// selected at mount. The selection is fixed once set.
// No synchronization needed: it is written once before the UI starts.
type ViewportModel struct {
	width, height int
	selection     geometry.Selection
	selected      bool
}

// NewViewportModel runs the geometry selection for a w x h viewport.
func NewViewportModel(w, h int, candidates []geometry.AspectRatio) *ViewportModel {
	return &ViewportModel{width: w, height: h, selection: geometry.Select(w, h, candidates), selected: true}
}

// Selection returns the chosen ratio and camera height.
func (m *ViewportModel) Selection() geometry.Selection {
	if m == nil || !m.selected {
		return geometry.Selection{Ratio: geometry.Fallback}
	}
	return m.selection
}

// Size returns the viewport dimensions.
func (m *ViewportModel) Size() (w, h int) {
	if m == nil {
		return 0, 0
	}
	return m.width, m.height
}

// CameraSize is the on-screen viewfinder area: full width, selected height,
// clamped so the shutter row below it stays inside the viewport.
func (m *ViewportModel) CameraSize() (w, h int) {
	if m == nil {
		return 0, 0
	}
	h = m.Selection().CameraHeight
	if limit := m.height - geometry.CaptureWrapperSize; h > limit {
		h = limit
	}
	if h < 1 {
		h = 1
	}
	return m.width, h
}

// PreviewSize returns the preview geometry for an artifact aspect.
func (m *ViewportModel) PreviewSize(aspect float64, expanded bool) (w, h int) {
	if m == nil {
		return geometry.PreviewSize(0, aspect, expanded)
	}
	return geometry.PreviewSize(m.width, aspect, expanded)
}
