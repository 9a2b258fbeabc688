package camera

import "errors"

var (
	// ErrPermissionDenied means camera access was refused. Terminal for the
	// session until restart.
	ErrPermissionDenied = errors.New("camera: permission denied")
	// ErrCaptureFailed wraps any still or video capture rejection.
	ErrCaptureFailed = errors.New("camera: capture failed")
	// ErrUnsupportedDevice means the environment has no usable camera.
	ErrUnsupportedDevice = errors.New("camera: unsupported device")
	// ErrNotRecording is returned when stopping an unknown recording.
	ErrNotRecording = errors.New("camera: not recording")
	// ErrNoArtifact is returned when a capture resolves without a result.
	ErrNoArtifact = errors.New("camera: capture produced no artifact")
)
