package capture

import (
	"image"
	"time"
)

// FrameSnapshot is the latest frame published by the capture loop.
type FrameSnapshot struct {
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Empty reports whether no frame has been captured yet.
func (s FrameSnapshot) Empty() bool { return s.Image == nil || s.Sequence == 0 }

// Fresh reports whether the frame was captured within maxAge of now.
// A non-positive maxAge only requires a frame.
func (s FrameSnapshot) Fresh(now time.Time, maxAge time.Duration) bool {
	if s.Empty() {
		return false
	}
	return maxAge <= 0 || now.Sub(s.CapturedAt) <= maxAge
}

// CaptureStats summarises the capture loop for debug logs.
type CaptureStats struct {
	Captures       uint64
	Skipped        uint64
	Failures       uint64
	AvgCapture     time.Duration
	LastCapture    time.Time
	LatestFrameAge time.Duration
	Sequence       uint64
	Pool           PoolStats
}
