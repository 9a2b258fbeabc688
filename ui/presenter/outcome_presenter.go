package presenter

import (
	"errors"
	"path"
	"sync"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/session"
)

// NoticeView shows a transient message line.
type NoticeView interface{ SetNotice(text string) }

// OutcomePresenter turns session outcomes into user-facing notices. Handle
// is called from the session goroutine; Tick paints on the UI thread.
type OutcomePresenter struct {
	view    NoticeView
	haptics camera.Haptics

	mu     sync.Mutex
	latest *session.Outcome
}

func NewOutcomePresenter(view NoticeView, haptics camera.Haptics) *OutcomePresenter {
	return &OutcomePresenter{view: view, haptics: haptics}
}

// Handle queues o; only the newest unpainted outcome is kept.
func (p *OutcomePresenter) Handle(o session.Outcome) {
	if p == nil {
		return
	}
	p.mu.Lock()
	p.latest = &o
	p.mu.Unlock()
}

// Tick paints the queued outcome, if any.
func (p *OutcomePresenter) Tick() {
	if p == nil || p.view == nil {
		return
	}
	p.mu.Lock()
	o := p.latest
	p.latest = nil
	p.mu.Unlock()
	if o == nil {
		return
	}
	if o.Err != nil {
		camera.Pulse(p.haptics, camera.ImpactHeavy)
	}
	p.view.SetNotice(noticeText(*o))
}

func noticeText(o session.Outcome) string {
	name := ""
	if o.Artifact != nil {
		name = path.Base(o.Artifact.URI)
	}
	switch o.Kind {
	case session.OutcomePhotoCaptured:
		return "Saved " + name
	case session.OutcomeRecordingStarted:
		return "Recording started"
	case session.OutcomeRecordingSaved:
		return "Saved " + name
	case session.OutcomeCaptureFailed:
		return "Capture failed: " + reason(o.Err)
	case session.OutcomeRecordingFailed:
		return "Could not start recording: " + reason(o.Err)
	case session.OutcomeStopFailed:
		return "Could not save recording: " + reason(o.Err)
	}
	return o.Kind.String()
}

func reason(err error) string {
	switch {
	case err == nil:
		return "unknown error"
	case errors.Is(err, camera.ErrUnsupportedDevice):
		return "no camera"
	case errors.Is(err, camera.ErrNoArtifact):
		return "nothing captured"
	case errors.Is(err, camera.ErrNotRecording):
		return "not recording"
	}
	return err.Error()
}
