package capture

import (
	"image"
	"log/slog"
	"sync"

	"github.com/soocke/viewfinder-go/domain/geometry"
	"github.com/soocke/viewfinder-go/ui/images"
)

// AspectRegion returns a region provider that limits grabs to the centered
// box of the given ratio. bounds is read on first use, from the capture
// goroutine; when it fails the provider returns nil and the service keeps
// grabbing the full screen.
func AspectRegion(ratio geometry.AspectRatio, bounds func() (image.Rectangle, error), logger *slog.Logger) func() *image.Rectangle {
	if !ratio.Valid() {
		ratio = geometry.Fallback
	}
	var (
		once   sync.Once
		region *image.Rectangle
	)
	return func() *image.Rectangle {
		once.Do(func() {
			b, err := bounds()
			if err != nil {
				if logger != nil {
					logger.Warn("capture region unavailable, grabbing full screen", "error", err)
				}
				return
			}
			r := images.CropRect(b, ratio.X, ratio.Y)
			region = &r
			if logger != nil {
				logger.Info("capture region", "ratio", ratio.String(), "region", r.String(), "screen", b.String())
			}
		})
		return region
	}
}
