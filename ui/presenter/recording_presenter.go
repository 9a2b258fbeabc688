package presenter

import (
	"time"

	"github.com/soocke/viewfinder-go/domain/session"
	"github.com/soocke/viewfinder-go/ui/model"
)

// PhaseSource reports the current session phase.
type PhaseSource interface{ Current() session.Phase }

// RecordingView displays the recording indicator and clip timer.
type RecordingView interface {
	SetRecording(active bool, clip string)
}

// RecordingPresenter advances the recording model and pushes the timer.
type RecordingPresenter struct {
	rec   *model.RecordingModel
	phase PhaseSource
	view  RecordingView
}

// NewRecordingPresenter returns a new RecordingPresenter.
func NewRecordingPresenter(rec *model.RecordingModel, phase PhaseSource, view RecordingView) *RecordingPresenter {
	return &RecordingPresenter{rec: rec, phase: phase, view: view}
}

// Tick advances the model and updates the view.
func (p *RecordingPresenter) Tick(now time.Time) {
	if p == nil || p.rec == nil || p.phase == nil || p.view == nil {
		return
	}
	p.rec.OnTick(p.phase.Current() == session.PhaseRecording, now)
	clip, _ := p.rec.Values()
	p.view.SetRecording(p.rec.Active(), model.FormatClock(clip))
}
