package presenter

import (
	"image"
	"sync"
	"time"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/domain/session"
)

type fakeSession struct {
	mu                               sync.Mutex
	snap                             session.Snapshot
	presses, longPresses, toggles    int
	resets, readies                  int
}

func (f *fakeSession) Snapshot() session.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSession) Current() session.Phase {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap.Phase
}

func (f *fakeSession) set(s session.Snapshot) {
	f.mu.Lock()
	f.snap = s
	f.mu.Unlock()
}

func (f *fakeSession) Press()     { f.mu.Lock(); f.presses++; f.mu.Unlock() }
func (f *fakeSession) LongPress() { f.mu.Lock(); f.longPresses++; f.mu.Unlock() }
func (f *fakeSession) ToggleExpanded() {
	f.mu.Lock()
	f.toggles++
	if f.snap.Artifact != nil || f.snap.Expanded {
		f.snap.Expanded = !f.snap.Expanded
	}
	f.mu.Unlock()
}
func (f *fakeSession) Reset() {
	f.mu.Lock()
	f.resets++
	f.snap.Artifact = nil
	f.snap.Expanded = false
	f.mu.Unlock()
}
func (f *fakeSession) EventCameraReady() {
	f.mu.Lock()
	f.readies++
	if f.snap.Phase == session.PhaseIdle {
		f.snap.Phase = session.PhaseReady
	}
	f.mu.Unlock()
}

func (f *fakeSession) counts() (presses, longs, toggles, resets, readies int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.presses, f.longPresses, f.toggles, f.resets, f.readies
}

type fakeHaptics struct {
	mu         sync.Mutex
	impacts    []camera.ImpactStyle
	selections int
}

func (h *fakeHaptics) Impact(s camera.ImpactStyle) { h.mu.Lock(); h.impacts = append(h.impacts, s); h.mu.Unlock() }
func (h *fakeHaptics) Selection()                  { h.mu.Lock(); h.selections++; h.mu.Unlock() }

type fakeFrames struct {
	mu      sync.Mutex
	snap    capture.FrameSnapshot
	running bool
}

func (f *fakeFrames) Running() bool { f.mu.Lock(); defer f.mu.Unlock(); return f.running }
func (f *fakeFrames) LatestFrame() capture.FrameSnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}
func (f *fakeFrames) push(img *image.RGBA) {
	f.mu.Lock()
	f.snap = capture.FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: f.snap.Sequence + 1}
	f.mu.Unlock()
}

// manualScheduler records scheduled callbacks for tests to fire.
type manualScheduler struct {
	pending   []func()
	cancelled int
}

func (s *manualScheduler) schedule(d time.Duration, fn func()) func() {
	idx := len(s.pending)
	s.pending = append(s.pending, fn)
	return func() {
		s.cancelled++
		s.pending[idx] = nil
	}
}

func (s *manualScheduler) fireAll() {
	for i, fn := range s.pending {
		if fn != nil {
			s.pending[i] = nil
			fn()
		}
	}
}
