package model

import (
	"sync"
	"time"
)

// ShutterModel tracks the shutter control: whether it is enabled and the
// state of the current press gesture. Safe for concurrent use because Tk
// callbacks and presenter ticks may interleave.
type ShutterModel struct {
	mu        sync.Mutex
	enabled   bool
	recording bool
	down      bool
	pressedAt time.Time
	longFired bool
}

// Enabled reports whether the control accepts new captures.
func (m *ShutterModel) Enabled() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

// SetEnabled stores the enabled flag and reports whether it changed.
func (m *ShutterModel) SetEnabled(b bool) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.enabled == b {
		return false
	}
	m.enabled = b
	return true
}

// Recording reports whether the shutter is acting as the stop control.
func (m *ShutterModel) Recording() bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.recording
}

// SetRecording switches the shutter between capture and stop modes.
func (m *ShutterModel) SetRecording(b bool) {
	if m == nil {
		return
	}
	m.mu.Lock()
	m.recording = b
	m.mu.Unlock()
}

// Down records the start of a press. A second Down without Up is ignored.
func (m *ShutterModel) Down(now time.Time) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.down {
		return false
	}
	m.down = true
	m.pressedAt = now
	m.longFired = false
	return true
}

// MarkLong flags the current press as a long press once it has been held
// for at least threshold. Returns true the first time only. Presses on the
// stop control never become long.
func (m *ShutterModel) MarkLong(now time.Time, threshold time.Duration) bool {
	if m == nil {
		return false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.down || m.longFired || m.recording || now.Sub(m.pressedAt) < threshold {
		return false
	}
	m.longFired = true
	return true
}

// Up ends the press. wasDown is false when no press was in progress; long
// reports whether the press already fired as a long press.
func (m *ShutterModel) Up() (wasDown, long bool) {
	if m == nil {
		return false, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	wasDown, long = m.down, m.longFired
	m.down = false
	m.longFired = false
	return
}
