package session

import (
	"github.com/soocke/viewfinder-go/domain/camera"
)

// Phase enumerates the capture session states.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseReady
	PhaseCapturing
	PhaseRecording
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseCapturing:
		return "capturing"
	case PhaseRecording:
		return "recording"
	default:
		return "unknown"
	}
}

// Snapshot is an immutable copy of the session state.
type Snapshot struct {
	Phase    Phase
	Artifact *camera.Artifact
	Expanded bool
	// StopPending is set when a stop was requested before the recording
	// handle arrived.
	StopPending bool
}

// CaptureEnabled reports whether the capture control accepts a press that
// starts a new capture.
func (s Snapshot) CaptureEnabled() bool { return s.Phase == PhaseReady && !s.Expanded }

// ShutterEnabled reports whether the shutter accepts a press at all: to
// start a capture when Ready, or to stop a recording. An expanded preview
// disables it in every phase.
func (s Snapshot) ShutterEnabled() bool {
	return (s.Phase == PhaseReady || s.Phase == PhaseRecording) && !s.Expanded
}

// Reviewing reports whether the expanded preview is covering the viewfinder.
func (s Snapshot) Reviewing() bool { return s.Expanded && s.Artifact != nil }

// Listener is called on each phase transition.
type Listener func(prev, next Phase)

// OutcomeKind classifies capability results.
type OutcomeKind int

const (
	OutcomePhotoCaptured OutcomeKind = iota + 1
	OutcomeCaptureFailed
	OutcomeRecordingStarted
	OutcomeRecordingFailed
	OutcomeRecordingSaved
	OutcomeStopFailed
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomePhotoCaptured:
		return "photo_captured"
	case OutcomeCaptureFailed:
		return "capture_failed"
	case OutcomeRecordingStarted:
		return "recording_started"
	case OutcomeRecordingFailed:
		return "recording_failed"
	case OutcomeRecordingSaved:
		return "recording_saved"
	case OutcomeStopFailed:
		return "stop_failed"
	default:
		return "unknown"
	}
}

// Outcome reports the result of a camera capability call.
type Outcome struct {
	Kind     OutcomeKind
	Artifact *camera.Artifact
	Err      error
}

// OutcomeHandler receives every Outcome on the session loop goroutine.
type OutcomeHandler func(Outcome)
