package presenter

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/soocke/viewfinder-go/domain/session"
)

// ReadySession narrows the session contract needed by the ready watcher.
type ReadySession interface {
	Current() session.Phase
	EventCameraReady()
}

// ReadyProbe reports whether the camera can deliver frames.
type ReadyProbe interface{ Ready() bool }

// ReadyWatcher polls the camera while the session is Idle and fires
// EventCameraReady once the camera reports ready.
type ReadyWatcher struct {
	Session  ReadySession
	Camera   ReadyProbe
	Logger   *slog.Logger
	interval time.Duration

	mu      sync.Mutex
	running atomic.Bool
	fired   atomic.Bool
	done    chan struct{}
}

// NewReadyWatcher constructs a watcher polling every interval (250ms when
// zero).
func NewReadyWatcher(s ReadySession, cam ReadyProbe, logger *slog.Logger, interval time.Duration) *ReadyWatcher {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	return &ReadyWatcher{Session: s, Camera: cam, Logger: logger, interval: interval}
}

// Start begins polling. No-op once fired or while running.
func (w *ReadyWatcher) Start() {
	if w == nil || w.fired.Load() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running.Load() {
		return
	}
	w.done = make(chan struct{})
	w.running.Store(true)
	go w.loop(w.done)
}

// Stop ends polling.
func (w *ReadyWatcher) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.running.Load() {
		return
	}
	close(w.done)
	w.running.Store(false)
}

// Fired reports whether readiness was delivered.
func (w *ReadyWatcher) Fired() bool { return w != nil && w.fired.Load() }

func (w *ReadyWatcher) loop(done chan struct{}) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if w.poll(done) {
			w.mu.Lock()
			if w.done == done && w.running.Load() {
				close(done)
				w.running.Store(false)
			}
			w.mu.Unlock()
			return
		}
		select {
		case <-ticker.C:
		case <-done:
			return
		}
	}
}

// poll returns true when the watcher is finished.
func (w *ReadyWatcher) poll(done chan struct{}) bool {
	if w.Session == nil || w.Camera == nil {
		return true
	}
	if w.Session.Current() != session.PhaseIdle {
		return true
	}
	if !w.Camera.Ready() {
		return false
	}
	w.mu.Lock()
	stopped := w.done != done || !w.running.Load()
	w.mu.Unlock()
	if stopped {
		return true
	}
	w.fired.Store(true)
	w.Session.EventCameraReady()
	if w.Logger != nil {
		w.Logger.Debug("camera ready")
	}
	return true
}
