package capture

import "image"

// FrameSource provides read-only access to captured frames.
// LatestFrame returns the freshest snapshot while Running reports activity.
type FrameSource interface {
	LatestFrame() FrameSnapshot
	Running() bool
}

// Grabber reads pixels from the sensor: the full surface or a region of it.
type Grabber interface {
	Grab() (*image.RGBA, error)
	GrabRect(r image.Rectangle) (*image.RGBA, error)
}

// ServiceContract exposes basic lifecycle control for capture services.
type ServiceContract interface {
	Start()
	Stop()
	Running() bool
}
