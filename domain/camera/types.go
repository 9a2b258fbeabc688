package camera

import (
	"time"
)

// Kind distinguishes still photos from video recordings.
type Kind int

const (
	KindPhoto Kind = iota
	KindVideo
)

func (k Kind) String() string {
	switch k {
	case KindPhoto:
		return "photo"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

// Metadata is the EXIF-like field set attached to a still capture.
type Metadata struct {
	GPSLatitude  float64 `json:"GPSLatitude"`
	GPSLongitude float64 `json:"GPSLongitude"`
	GPSAltitude  float64 `json:"GPSAltitude"`
	GPSSpeed     float64 `json:"GPSSpeed"`
	GPSTimeStamp int64   `json:"GPSTimeStamp"` // unix milliseconds
	UserComment  string  `json:"UserComment"`
}

// Artifact describes a captured photo or video produced by a Camera.
type Artifact struct {
	ID         string
	Kind       Kind
	URI        string
	Width      int
	Height     int
	CapturedAt time.Time
	Duration   time.Duration // video only
	Frames     int           // video only
	Metadata   *Metadata     // photo only
}

// AspectRatio returns width/height, or 0 when the dimensions are unknown.
func (a Artifact) AspectRatio() float64 {
	if a.Width <= 0 || a.Height <= 0 {
		return 0
	}
	return float64(a.Width) / float64(a.Height)
}

// RecordingHandle identifies an in-flight recording.
type RecordingHandle struct {
	ID        string
	StartedAt time.Time
}

// Zero reports whether the handle was never issued.
func (h RecordingHandle) Zero() bool { return h.ID == "" }

// ImpactStyle selects the strength of a haptic impact. ImpactNone requests
// a selection-style pulse instead.
type ImpactStyle int

const (
	ImpactNone ImpactStyle = iota
	ImpactLight
	ImpactMedium
	ImpactHeavy
)

func (s ImpactStyle) String() string {
	switch s {
	case ImpactLight:
		return "light"
	case ImpactMedium:
		return "medium"
	case ImpactHeavy:
		return "heavy"
	default:
		return "selection"
	}
}
