package presenter

import "time"

// Loop aggregates feature presenters and drives periodic updates.
//
// It calls Tick/ProcessFrame on the sub-presenters and invokes a
// scheduler callback. The zero value is usable (methods are nil-safe).
type Loop struct {
	Phase      *PhasePresenter
	Recording  *RecordingPresenter
	Viewfinder *ViewfinderPresenter
	Preview    *PreviewPresenter
	Outcome    *OutcomePresenter
	Schedule   func()
}

func NewLoop(phase *PhasePresenter, rec *RecordingPresenter, vf *ViewfinderPresenter, preview *PreviewPresenter, outcome *OutcomePresenter, schedule func()) *Loop {
	return &Loop{Phase: phase, Recording: rec, Viewfinder: vf, Preview: preview, Outcome: outcome, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	now := time.Now()
	if l.Phase != nil {
		l.Phase.Tick(now)
	}
	if l.Recording != nil {
		l.Recording.Tick(now)
	}
	if l.Viewfinder != nil {
		l.Viewfinder.ProcessFrame()
	}
	if l.Preview != nil {
		l.Preview.Tick()
	}
	if l.Outcome != nil {
		l.Outcome.Tick()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
