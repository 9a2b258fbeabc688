package model

import (
	"fmt"
	"time"
)

// RecordingModel tracks the running clip length and the accumulated time
// spent recording. Presenters poll Values() and push them to the timer view.
// The zero value is ready to use.
type RecordingModel struct {
	active      bool
	clipStart   time.Time
	lastClip    time.Duration
	accumulated time.Duration
	clips       int
}

// NewRecordingModel returns a pointer to a ready-to-use RecordingModel.
func NewRecordingModel() *RecordingModel { return &RecordingModel{} }

// OnTick advances the model from the current recording flag.
func (m *RecordingModel) OnTick(recording bool, now time.Time) {
	if m == nil {
		return
	}
	if recording {
		if !m.active {
			m.active = true
			m.clipStart = now
			m.lastClip = 0
			m.clips++
		}
		m.lastClip = now.Sub(m.clipStart)
	} else if m.active {
		m.lastClip = now.Sub(m.clipStart)
		m.accumulated += m.lastClip
		m.active = false
	}
}

// Active reports whether a clip is running.
func (m *RecordingModel) Active() bool { return m != nil && m.active }

// Clips returns how many recordings were started.
func (m *RecordingModel) Clips() int {
	if m == nil {
		return 0
	}
	return m.clips
}

// Values returns the current (or last) clip length and the total recorded
// time, including the running clip.
func (m *RecordingModel) Values() (clip, total time.Duration) {
	if m == nil {
		return 0, 0
	}
	clip = m.lastClip
	total = m.accumulated
	if m.active {
		total += clip
	}
	return
}

// FormatClock renders d as mm:ss.
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
