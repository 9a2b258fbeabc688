package camera

import "context"

// Camera is the hardware capability behind the capture session.
type Camera interface {
	// Initialize starts the device. Readiness is reported through Ready.
	Initialize(ctx context.Context) error
	Ready() bool
	CapturePhoto(ctx context.Context, meta Metadata) (*Artifact, error)
	StartRecording(ctx context.Context) (RecordingHandle, error)
	StopRecording(ctx context.Context, h RecordingHandle) (*Artifact, error)
}

// PermissionRequester asks the platform for camera access.
type PermissionRequester interface {
	RequestCameraAccess(ctx context.Context) (bool, error)
}

// PositionSource returns the current (longitude, latitude).
type PositionSource interface {
	CurrentPosition() (lng, lat float64)
}

// Haptics emits fire-and-forget tactile pulses.
type Haptics interface {
	Impact(style ImpactStyle)
	Selection()
}

// Pulse triggers an impact for a concrete style and a selection pulse for
// ImpactNone. A nil Haptics is ignored.
func Pulse(h Haptics, style ImpactStyle) {
	if h == nil {
		return
	}
	if style == ImpactNone {
		h.Selection()
		return
	}
	h.Impact(style)
}
