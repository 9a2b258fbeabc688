package session

import (
	"time"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// DefaultUserComment is written into every still capture.
const DefaultUserComment = "Captured with viewfinder-go"

// BuildMetadata maps the current position into the still-capture field set.
// Altitude and speed are always zero. A nil source yields 0,0.
func BuildMetadata(pos camera.PositionSource, now time.Time, comment string) camera.Metadata {
	var lng, lat float64
	if pos != nil {
		lng, lat = pos.CurrentPosition()
	}
	return camera.Metadata{
		GPSLatitude:  lat,
		GPSLongitude: lng,
		GPSAltitude:  0,
		GPSSpeed:     0,
		GPSTimeStamp: now.UnixMilli(),
		UserComment:  comment,
	}
}
