package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// Capabilities are the external collaborators the session drives.
type Capabilities struct {
	Camera   camera.Camera
	Position camera.PositionSource
}

// Options tune the session. The zero value is usable.
type Options struct {
	UserComment string
	Now         func() time.Time
	OnOutcome   OutcomeHandler
}

// Session manages the capture lifecycle. All state changes happen on a
// single loop goroutine; camera calls run in their own goroutines and post
// their results back as events.
type Session struct {
	mu           sync.RWMutex
	phase        Phase
	artifact     *camera.Artifact
	expanded     bool
	pendingStops int

	// loop-owned
	rec       *recording
	listeners []Listener

	logger    *slog.Logger
	caps      Capabilities
	comment   string
	now       func() time.Time
	onOutcome OutcomeHandler

	ctx       context.Context
	cancel    context.CancelFunc
	events    chan any
	done      chan struct{}
	closeOnce sync.Once
}

type recording struct {
	handle        camera.RecordingHandle
	started       bool
	stopRequested bool
}

// New constructs a session in PhaseIdle and starts its event loop.
func New(logger *slog.Logger, caps Capabilities, opts Options) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.UserComment == "" {
		opts.UserComment = DefaultUserComment
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		phase:     PhaseIdle,
		logger:    logger,
		caps:      caps,
		comment:   opts.UserComment,
		now:       opts.Now,
		onOutcome: opts.OnOutcome,
		ctx:       ctx,
		cancel:    cancel,
		events:    make(chan any, 64),
		done:      make(chan struct{}),
	}
	go s.loop()
	return s
}

// events
type (
	evtCameraReady      struct{}
	evtPress            struct{}
	evtLongPress        struct{}
	evtToggleExpanded   struct{}
	evtReset            struct{}
	evtAddListener      struct{ l Listener }
	evtSync             struct{ ack chan struct{} }
	evtCaptureDone      struct {
		art *camera.Artifact
		err error
	}
	evtRecordingStarted struct {
		rec *recording
		h   camera.RecordingHandle
		err error
	}
	evtRecordingStopped struct {
		art *camera.Artifact
		err error
	}
)

func (s *Session) loop() {
	for {
		select {
		case ev := <-s.events:
			s.dispatch(ev)
		case <-s.done:
			return
		}
	}
}

func (s *Session) dispatch(ev any) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("session panic", "error", r, "stack", string(debug.Stack()))
		}
	}()
	switch e := ev.(type) {
	case evtAddListener:
		s.listeners = append(s.listeners, e.l)
	case evtSync:
		close(e.ack)
	case evtCameraReady:
		if s.phase == PhaseIdle {
			s.transition(PhaseReady)
		}
	case evtPress:
		s.handlePress()
	case evtLongPress:
		s.handleLongPress()
	case evtToggleExpanded:
		s.mu.Lock()
		if s.artifact != nil || s.expanded {
			s.expanded = !s.expanded
		}
		s.mu.Unlock()
	case evtReset:
		s.mu.Lock()
		s.artifact = nil
		s.expanded = false
		s.mu.Unlock()
	case evtCaptureDone:
		s.handleCaptureDone(e.art, e.err)
	case evtRecordingStarted:
		s.handleRecordingStarted(e)
	case evtRecordingStopped:
		s.handleRecordingStopped(e.art, e.err)
	}
}

func (s *Session) handlePress() {
	switch {
	case s.expanded:
		s.logger.Debug("press ignored while preview expanded", "phase", s.phase.String())
	case s.phase == PhaseRecording:
		s.stopRecording()
	case s.phase == PhaseReady:
		s.startCapture()
	default:
		s.logger.Debug("press ignored", "phase", s.phase.String(), "expanded", s.expanded)
	}
}

func (s *Session) handleLongPress() {
	if s.phase != PhaseReady || s.expanded {
		s.logger.Debug("long press ignored", "phase", s.phase.String(), "expanded", s.expanded)
		return
	}
	rec := &recording{}
	s.rec = rec
	s.transition(PhaseRecording)
	cam := s.caps.Camera
	go func() {
		defer recoverLog(s.logger, "start recording goroutine panic")
		if cam == nil {
			s.post(evtRecordingStarted{rec: rec, err: camera.ErrUnsupportedDevice})
			return
		}
		h, err := cam.StartRecording(s.ctx)
		s.post(evtRecordingStarted{rec: rec, h: h, err: err})
	}()
}

func (s *Session) startCapture() {
	meta := BuildMetadata(s.caps.Position, s.now(), s.comment)
	s.transition(PhaseCapturing)
	cam := s.caps.Camera
	go func() {
		defer recoverLog(s.logger, "capture goroutine panic")
		if cam == nil {
			s.post(evtCaptureDone{err: camera.ErrUnsupportedDevice})
			return
		}
		art, err := cam.CapturePhoto(s.ctx, meta)
		s.post(evtCaptureDone{art: art, err: err})
	}()
}

func (s *Session) handleCaptureDone(art *camera.Artifact, err error) {
	if err == nil && art == nil {
		err = camera.ErrNoArtifact
	}
	if err != nil {
		err = asCaptureFailure(err)
		s.logger.Error("photo capture failed", "error", err)
		s.emit(Outcome{Kind: OutcomeCaptureFailed, Err: err})
	} else {
		s.mu.Lock()
		s.artifact = art
		s.mu.Unlock()
		s.logger.Info("photo captured", "id", art.ID, "uri", art.URI, "width", art.Width, "height", art.Height)
		s.emit(Outcome{Kind: OutcomePhotoCaptured, Artifact: art})
	}
	if s.phase == PhaseCapturing {
		s.transition(PhaseReady)
	}
}

// stopRecording flips the local phase to Ready without waiting for the
// camera to confirm the stop.
func (s *Session) stopRecording() {
	rec := s.rec
	s.rec = nil
	s.transition(PhaseReady)
	if rec == nil {
		return
	}
	if !rec.started {
		rec.stopRequested = true
		s.mu.Lock()
		s.pendingStops++
		s.mu.Unlock()
		return
	}
	s.issueStop(rec.handle)
}

func (s *Session) issueStop(h camera.RecordingHandle) {
	cam := s.caps.Camera
	go func() {
		defer recoverLog(s.logger, "stop recording goroutine panic")
		art, err := cam.StopRecording(s.ctx, h)
		s.post(evtRecordingStopped{art: art, err: err})
	}()
}

func (s *Session) handleRecordingStarted(e evtRecordingStarted) {
	if e.rec.stopRequested {
		s.mu.Lock()
		s.pendingStops--
		s.mu.Unlock()
	}
	if e.err != nil {
		err := asCaptureFailure(e.err)
		s.logger.Error("start recording failed", "error", err)
		s.emit(Outcome{Kind: OutcomeRecordingFailed, Err: err})
		if s.rec == e.rec {
			s.rec = nil
			if s.phase == PhaseRecording {
				s.transition(PhaseReady)
			}
		}
		return
	}
	e.rec.handle = e.h
	e.rec.started = true
	s.logger.Info("recording started", "id", e.h.ID)
	s.emit(Outcome{Kind: OutcomeRecordingStarted})
	if e.rec.stopRequested {
		s.issueStop(e.h)
	}
}

func (s *Session) handleRecordingStopped(art *camera.Artifact, err error) {
	if err == nil && art == nil {
		err = camera.ErrNoArtifact
	}
	if err != nil {
		err = asCaptureFailure(err)
		s.logger.Error("stop recording failed", "error", err)
		s.emit(Outcome{Kind: OutcomeStopFailed, Err: err})
		return
	}
	s.mu.Lock()
	s.artifact = art
	s.mu.Unlock()
	s.logger.Info("recording saved", "id", art.ID, "uri", art.URI, "frames", art.Frames, "duration", art.Duration)
	s.emit(Outcome{Kind: OutcomeRecordingSaved, Artifact: art})
}

func (s *Session) transition(next Phase) {
	s.mu.Lock()
	prev := s.phase
	if prev == next {
		s.mu.Unlock()
		return
	}
	s.phase = next
	s.mu.Unlock()
	s.logger.Debug("session phase transition", "from", prev.String(), "to", next.String())
	for _, l := range s.listeners {
		l(prev, next)
	}
}

func (s *Session) emit(o Outcome) {
	if s.onOutcome == nil {
		return
	}
	defer recoverLog(s.logger, "outcome handler panic")
	s.onOutcome(o)
}

func (s *Session) post(ev any) {
	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func asCaptureFailure(err error) error {
	if errors.Is(err, camera.ErrCaptureFailed) {
		return err
	}
	return fmt.Errorf("%w: %w", camera.ErrCaptureFailed, err)
}

// Public API

func (s *Session) AddListener(l Listener) { s.post(evtAddListener{l: l}) }
func (s *Session) EventCameraReady()      { s.post(evtCameraReady{}) }
func (s *Session) Press()                 { s.post(evtPress{}) }
func (s *Session) LongPress()             { s.post(evtLongPress{}) }
func (s *Session) ToggleExpanded()        { s.post(evtToggleExpanded{}) }
func (s *Session) Reset()                 { s.post(evtReset{}) }

// Current returns the phase.
func (s *Session) Current() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Snapshot returns a copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{Phase: s.phase, Expanded: s.expanded, StopPending: s.pendingStops > 0}
	if s.artifact != nil {
		a := *s.artifact
		snap.Artifact = &a
	}
	return snap
}

// Sync blocks until every event posted before the call has been handled.
// It does not wait for in-flight camera calls.
func (s *Session) Sync() {
	ack := make(chan struct{})
	s.post(evtSync{ack: ack})
	select {
	case <-ack:
	case <-s.done:
	}
}

// Close stops the loop and cancels in-flight camera calls. Idempotent.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.cancel()
		close(s.done)
	})
}

func recoverLog(logger *slog.Logger, msg string) {
	if r := recover(); r != nil {
		if logger != nil {
			logger.Error(msg, "error", r)
		}
	}
}
