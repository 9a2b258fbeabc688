// Package capture grabs desktop screen pixels. The screen stands in for the
// camera sensor on machines without one.
package capture

import (
	"fmt"
	"image"

	"github.com/vova616/screenshot"

	domain "github.com/soocke/viewfinder-go/domain/capture"
)

// Screen grabs the primary display.
type Screen struct{}

var _ domain.Grabber = Screen{}

// Grab returns a screen capture of the current active monitor.
func (Screen) Grab() (*image.RGBA, error) {
	img, err := screenshot.CaptureScreen()
	if err != nil {
		return nil, fmt.Errorf("capture: screen: %w", err)
	}
	return img, nil
}

// GrabRect captures r, clipped to the screen bounds.
func (Screen) GrabRect(r image.Rectangle) (*image.RGBA, error) {
	bounds, err := screenshot.ScreenRect()
	if err != nil {
		return nil, fmt.Errorf("capture: screen rect: %w", err)
	}
	clipped := r.Intersect(bounds)
	if clipped.Empty() {
		return nil, fmt.Errorf("capture: selection out of bounds sel=%v screen=%v", r, bounds)
	}
	img, err := screenshot.CaptureRect(clipped)
	if err != nil {
		return nil, fmt.Errorf("capture: rect %v: %w", clipped, err)
	}
	return img, nil
}

// Bounds reports the primary screen rectangle.
func Bounds() (image.Rectangle, error) {
	r, err := screenshot.ScreenRect()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("capture: screen rect: %w", err)
	}
	return r, nil
}
