package presenter

import (
	"time"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/ui/model"
)

// ShutterSession is the slice of the capture session the shutter drives.
type ShutterSession interface {
	Press()
	LongPress()
}

// Scheduler runs fn after d on the UI thread and returns a cancel func.
type Scheduler func(d time.Duration, fn func()) (cancel func())

// ShutterPresenter turns raw button down/up events into short and long
// presses. A press held for the threshold fires LongPress immediately;
// releasing a short press fires Press. While recording every release fires
// Press, however long the hold.
type ShutterPresenter struct {
	model     *model.ShutterModel
	session   ShutterSession
	haptics   camera.Haptics
	threshold time.Duration
	schedule  Scheduler
	now       func() time.Time

	cancelHold func()
}

func NewShutterPresenter(m *model.ShutterModel, session ShutterSession, haptics camera.Haptics, threshold time.Duration, schedule Scheduler) *ShutterPresenter {
	return &ShutterPresenter{model: m, session: session, haptics: haptics, threshold: threshold, schedule: schedule, now: time.Now}
}

// Down starts a press gesture when the control is enabled.
func (p *ShutterPresenter) Down() {
	if p == nil || p.model == nil || p.session == nil {
		return
	}
	if !p.model.Enabled() || !p.model.Down(p.now()) {
		return
	}
	if p.schedule != nil {
		p.cancelHold = p.schedule(p.threshold, p.Hold)
	}
}

// Hold checks whether the press has become a long press.
func (p *ShutterPresenter) Hold() {
	if p == nil || p.model == nil || p.session == nil {
		return
	}
	if p.model.MarkLong(p.now(), p.threshold) {
		camera.Pulse(p.haptics, camera.ImpactMedium)
		p.session.LongPress()
	}
}

// Up ends the gesture. A release that already fired as a long press does
// nothing else.
func (p *ShutterPresenter) Up() {
	if p == nil || p.model == nil || p.session == nil {
		return
	}
	if p.cancelHold != nil {
		p.cancelHold()
		p.cancelHold = nil
	}
	wasDown, long := p.model.Up()
	if !wasDown || long {
		return
	}
	camera.Pulse(p.haptics, camera.ImpactLight)
	p.session.Press()
}
