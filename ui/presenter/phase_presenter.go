package presenter

import (
	"sync/atomic"
	"time"

	"github.com/soocke/viewfinder-go/domain/session"
	"github.com/soocke/viewfinder-go/ui/model"
)

// SnapshotSource provides read access to the session state.
type SnapshotSource interface {
	Snapshot() session.Snapshot
}

// PhaseView shows the phase and the shutter state.
type PhaseView interface {
	SetStatus(text string)
	SetShutter(enabled, recording bool)
}

// PhasePresenter receives phase transitions from the session listener and
// reflects the latest snapshot on the next Tick.
type PhasePresenter struct {
	src     SnapshotSource
	shutter *model.ShutterModel
	view    PhaseView

	dirty   atomic.Bool
	latest  session.Snapshot
	painted bool
}

func NewPhasePresenter(src SnapshotSource, shutter *model.ShutterModel, view PhaseView) *PhasePresenter {
	return &PhasePresenter{src: src, shutter: shutter, view: view}
}

// OnState switches the shutter mode as soon as the session enters or
// leaves Recording, so a hold that begins before the next Tick is classified
// against the new mode. Called from the session goroutine.
func (p *PhasePresenter) OnState(prev, next session.Phase) {
	if p == nil {
		return
	}
	if p.shutter != nil {
		p.shutter.SetRecording(next == session.PhaseRecording)
	}
	p.dirty.Store(true)
}

// Tick repaints after a transition or when the snapshot changed.
func (p *PhasePresenter) Tick(now time.Time) {
	if p == nil || p.src == nil || p.view == nil {
		return
	}
	dirty := p.dirty.Swap(false)
	snap := p.src.Snapshot()
	if !dirty && p.painted && snap.Phase == p.latest.Phase && snap.Expanded == p.latest.Expanded && snap.StopPending == p.latest.StopPending {
		return
	}
	p.latest = snap
	p.painted = true

	recording := snap.Phase == session.PhaseRecording
	enabled := snap.ShutterEnabled()
	if p.shutter != nil {
		p.shutter.SetEnabled(enabled)
		p.shutter.SetRecording(recording)
	}
	p.view.SetShutter(enabled, recording)
	p.view.SetStatus(statusText(snap))
}

func statusText(s session.Snapshot) string {
	switch s.Phase {
	case session.PhaseIdle:
		return "Starting camera…"
	case session.PhaseCapturing:
		return "Capturing…"
	case session.PhaseRecording:
		return "Recording · tap to stop"
	}
	if s.StopPending {
		return "Saving recording…"
	}
	if s.Expanded {
		return "Reviewing"
	}
	return "Ready · hold to record"
}
