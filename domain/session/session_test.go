package session

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// fakeCamera hands out sequential artifacts. Gates, when set, block the
// matching call until closed.
type fakeCamera struct {
	mu        sync.Mutex
	photoErr  error
	startErr  error
	stopErr   error
	photoGate chan struct{}
	startGate chan struct{}
	metas     []camera.Metadata
	photos    int
	starts    int
	stops     []camera.RecordingHandle
	seq       int
}

func (c *fakeCamera) Initialize(context.Context) error { return nil }
func (c *fakeCamera) Ready() bool                      { return true }

func (c *fakeCamera) CapturePhoto(ctx context.Context, meta camera.Metadata) (*camera.Artifact, error) {
	c.mu.Lock()
	gate := c.photoGate
	c.photos++
	c.metas = append(c.metas, meta)
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.photoErr != nil {
		return nil, c.photoErr
	}
	c.seq++
	return &camera.Artifact{ID: fmt.Sprintf("photo-%d", c.seq), Kind: camera.KindPhoto, URI: "file:///tmp/p.jpg", Width: 300, Height: 400}, nil
}

func (c *fakeCamera) StartRecording(ctx context.Context) (camera.RecordingHandle, error) {
	c.mu.Lock()
	gate := c.startGate
	c.starts++
	c.mu.Unlock()
	if gate != nil {
		<-gate
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.startErr != nil {
		return camera.RecordingHandle{}, c.startErr
	}
	return camera.RecordingHandle{ID: fmt.Sprintf("rec-%d", c.starts), StartedAt: time.Now()}, nil
}

func (c *fakeCamera) StopRecording(ctx context.Context, h camera.RecordingHandle) (*camera.Artifact, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stops = append(c.stops, h)
	if c.stopErr != nil {
		return nil, c.stopErr
	}
	c.seq++
	return &camera.Artifact{ID: fmt.Sprintf("video-%d", c.seq), Kind: camera.KindVideo, URI: "file:///tmp/v.gif", Width: 480, Height: 640}, nil
}

func (c *fakeCamera) photoCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.photos
}

func (c *fakeCamera) stopCalls() []camera.RecordingHandle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]camera.RecordingHandle(nil), c.stops...)
}

type fixedPosition struct{ lng, lat float64 }

func (p fixedPosition) CurrentPosition() (float64, float64) { return p.lng, p.lat }

type harness struct {
	s        *Session
	cam      *fakeCamera
	outcomes chan Outcome
	rec      *transitionRecorder
}

type transitionRecorder struct {
	mu  sync.Mutex
	seq []Phase
}

func (r *transitionRecorder) listener(prev, next Phase) {
	r.mu.Lock()
	r.seq = append(r.seq, next)
	r.mu.Unlock()
}

func (r *transitionRecorder) phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Phase(nil), r.seq...)
}

func newHarness(t *testing.T, cam *fakeCamera) *harness {
	t.Helper()
	h := &harness{cam: cam, outcomes: make(chan Outcome, 64), rec: &transitionRecorder{}}
	h.s = New(nil, Capabilities{Camera: cam, Position: fixedPosition{lng: 13.4, lat: 52.5}}, Options{
		OnOutcome: func(o Outcome) { h.outcomes <- o },
	})
	h.s.AddListener(h.rec.listener)
	t.Cleanup(h.s.Close)
	return h
}

func (h *harness) ready(t *testing.T) {
	t.Helper()
	h.s.EventCameraReady()
	h.s.Sync()
	require.Equal(t, PhaseReady, h.s.Current())
}

func (h *harness) nextOutcome(t *testing.T) Outcome {
	t.Helper()
	select {
	case o := <-h.outcomes:
		return o
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for outcome")
		return Outcome{}
	}
}

func (h *harness) waitPhase(t *testing.T, want Phase) {
	t.Helper()
	require.Eventually(t, func() bool { return h.s.Current() == want }, time.Second, 2*time.Millisecond,
		"expected phase %v, got %v", want, h.s.Current())
}

func (h *harness) capture(t *testing.T) Outcome {
	t.Helper()
	h.s.Press()
	o := h.nextOutcome(t)
	h.waitPhase(t, PhaseReady)
	return o
}

func TestSession_CameraReadyIsOneWay(t *testing.T) {
	h := newHarness(t, &fakeCamera{})
	assert.Equal(t, PhaseIdle, h.s.Current())
	h.ready(t)
	h.s.EventCameraReady()
	h.s.Sync()
	assert.Equal(t, PhaseReady, h.s.Current())
	assert.Equal(t, []Phase{PhaseReady}, h.rec.phases())
}

func TestSession_PressIgnoredUntilReady(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.s.Press()
	h.s.LongPress()
	h.s.Sync()
	assert.Equal(t, PhaseIdle, h.s.Current())
	assert.Zero(t, cam.photoCalls())
	assert.False(t, h.s.Snapshot().CaptureEnabled())
}

func TestSession_SuccessfulCaptureReplacesArtifact(t *testing.T) {
	h := newHarness(t, &fakeCamera{})
	h.ready(t)

	o := h.capture(t)
	require.Equal(t, OutcomePhotoCaptured, o.Kind)
	first := h.s.Snapshot().Artifact
	require.NotNil(t, first)
	assert.Equal(t, "photo-1", first.ID)

	o = h.capture(t)
	require.Equal(t, OutcomePhotoCaptured, o.Kind)
	second := h.s.Snapshot().Artifact
	require.NotNil(t, second)
	assert.Equal(t, "photo-2", second.ID)

	assert.Equal(t, []Phase{PhaseReady, PhaseCapturing, PhaseReady, PhaseCapturing, PhaseReady}, h.rec.phases())
}

func TestSession_FailedCapturePreservesArtifact(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.ready(t)
	h.capture(t)
	prior := h.s.Snapshot().Artifact
	require.NotNil(t, prior)

	cam.mu.Lock()
	cam.photoErr = errors.New("sensor busy")
	cam.mu.Unlock()

	o := h.capture(t)
	assert.Equal(t, OutcomeCaptureFailed, o.Kind)
	assert.ErrorIs(t, o.Err, camera.ErrCaptureFailed)
	assert.Equal(t, prior, h.s.Snapshot().Artifact)
	assert.Equal(t, PhaseReady, h.s.Current())
}

func TestSession_EmptyCaptureResultIsFailure(t *testing.T) {
	h := newHarness(t, &fakeCamera{})
	h.ready(t)
	h.s.post(evtCaptureDone{})
	o := h.nextOutcome(t)
	assert.ErrorIs(t, o.Err, camera.ErrNoArtifact)
	assert.Nil(t, h.s.Snapshot().Artifact)
}

func TestSession_CaptureControlDisabledWhileCapturing(t *testing.T) {
	gate := make(chan struct{})
	cam := &fakeCamera{photoGate: gate}
	h := newHarness(t, cam)
	h.ready(t)

	h.s.Press()
	h.s.Sync()
	require.Equal(t, PhaseCapturing, h.s.Current())
	assert.False(t, h.s.Snapshot().CaptureEnabled())

	h.s.Press()
	h.s.LongPress()
	h.s.Sync()
	require.Eventually(t, func() bool { return cam.photoCalls() == 1 }, time.Second, 2*time.Millisecond)

	close(gate)
	o := h.nextOutcome(t)
	assert.Equal(t, OutcomePhotoCaptured, o.Kind)
	h.waitPhase(t, PhaseReady)
	assert.Equal(t, 1, cam.photoCalls())
}

func TestSession_ExpandedPreviewSuppressesCapture(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.ready(t)
	h.capture(t)

	h.s.ToggleExpanded()
	h.s.Sync()
	snap := h.s.Snapshot()
	require.True(t, snap.Expanded)
	assert.True(t, snap.Reviewing())
	assert.False(t, snap.CaptureEnabled())

	h.s.Press()
	h.s.LongPress()
	h.s.Sync()
	assert.Equal(t, PhaseReady, h.s.Current())
	assert.Equal(t, 1, cam.photoCalls())

	h.s.ToggleExpanded()
	h.s.Sync()
	assert.False(t, h.s.Snapshot().Expanded)
	assert.True(t, h.s.Snapshot().CaptureEnabled())
}

func TestSession_ExpandedPreviewBlocksStop(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.ready(t)
	h.capture(t)

	h.s.LongPress()
	h.s.Sync()
	require.Equal(t, PhaseRecording, h.s.Current())
	assert.Equal(t, OutcomeRecordingStarted, h.nextOutcome(t).Kind)

	h.s.ToggleExpanded()
	h.s.Sync()
	snap := h.s.Snapshot()
	require.True(t, snap.Expanded)
	assert.False(t, snap.ShutterEnabled())

	h.s.Press()
	h.s.Sync()
	assert.Equal(t, PhaseRecording, h.s.Current(), "press with the preview expanded is ignored")
	assert.Empty(t, cam.stopCalls())

	h.s.ToggleExpanded()
	h.s.Sync()
	require.True(t, h.s.Snapshot().ShutterEnabled())
	h.s.Press()
	h.s.Sync()
	assert.Equal(t, PhaseReady, h.s.Current())
	assert.Equal(t, OutcomeRecordingSaved, h.nextOutcome(t).Kind)
	assert.Len(t, cam.stopCalls(), 1)
}

func TestSession_ToggleWithoutArtifactIgnored(t *testing.T) {
	h := newHarness(t, &fakeCamera{})
	h.ready(t)
	h.s.ToggleExpanded()
	h.s.Sync()
	assert.False(t, h.s.Snapshot().Expanded)
}

func TestSession_ResetClearsArtifactAndPreview(t *testing.T) {
	h := newHarness(t, &fakeCamera{})
	h.ready(t)
	h.capture(t)
	h.s.ToggleExpanded()
	h.s.Reset()
	h.s.Sync()
	snap := h.s.Snapshot()
	assert.Nil(t, snap.Artifact)
	assert.False(t, snap.Expanded)
	assert.Equal(t, PhaseReady, snap.Phase)
}

func TestSession_LongPressRecordsAndPressStops(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.ready(t)

	h.s.LongPress()
	h.s.Sync()
	require.Equal(t, PhaseRecording, h.s.Current())
	assert.Equal(t, OutcomeRecordingStarted, h.nextOutcome(t).Kind)

	h.s.Press()
	h.s.Sync()
	assert.Equal(t, PhaseReady, h.s.Current())

	o := h.nextOutcome(t)
	require.Equal(t, OutcomeRecordingSaved, o.Kind)
	require.NotNil(t, o.Artifact)
	assert.Equal(t, camera.KindVideo, o.Artifact.Kind)
	assert.Equal(t, o.Artifact.ID, h.s.Snapshot().Artifact.ID)
	require.Len(t, cam.stopCalls(), 1)
	assert.Equal(t, "rec-1", cam.stopCalls()[0].ID)
	assert.Equal(t, []Phase{PhaseReady, PhaseRecording, PhaseReady}, h.rec.phases())
}

func TestSession_StopFailureStillReturnsToReady(t *testing.T) {
	cam := &fakeCamera{stopErr: errors.New("encoder crashed")}
	h := newHarness(t, cam)
	h.ready(t)
	h.capture(t)
	prior := h.s.Snapshot().Artifact

	h.s.LongPress()
	assert.Equal(t, OutcomeRecordingStarted, h.nextOutcome(t).Kind)
	h.s.Press()
	h.s.Sync()
	assert.Equal(t, PhaseReady, h.s.Current())

	o := h.nextOutcome(t)
	assert.Equal(t, OutcomeStopFailed, o.Kind)
	assert.ErrorIs(t, o.Err, camera.ErrCaptureFailed)
	assert.Equal(t, prior, h.s.Snapshot().Artifact)
}

func TestSession_StartFailureReturnsToReady(t *testing.T) {
	cam := &fakeCamera{startErr: errors.New("no encoder")}
	h := newHarness(t, cam)
	h.ready(t)
	h.s.LongPress()
	o := h.nextOutcome(t)
	assert.Equal(t, OutcomeRecordingFailed, o.Kind)
	h.waitPhase(t, PhaseReady)
	assert.Empty(t, cam.stopCalls())
}

func TestSession_StopBeforeStartResolvesIsDeferred(t *testing.T) {
	gate := make(chan struct{})
	cam := &fakeCamera{startGate: gate}
	h := newHarness(t, cam)
	h.ready(t)

	h.s.LongPress()
	h.s.Press()
	h.s.Sync()
	snap := h.s.Snapshot()
	assert.Equal(t, PhaseReady, snap.Phase)
	assert.True(t, snap.StopPending)
	assert.Empty(t, cam.stopCalls())

	close(gate)
	assert.Equal(t, OutcomeRecordingStarted, h.nextOutcome(t).Kind)
	assert.Equal(t, OutcomeRecordingSaved, h.nextOutcome(t).Kind)
	assert.Len(t, cam.stopCalls(), 1)
	assert.False(t, h.s.Snapshot().StopPending)
}

func TestSession_MetadataPayload(t *testing.T) {
	cam := &fakeCamera{}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	outcomes := make(chan Outcome, 4)
	s := New(nil, Capabilities{Camera: cam, Position: fixedPosition{lng: -122.4, lat: 37.8}}, Options{
		UserComment: "hello",
		Now:         func() time.Time { return now },
		OnOutcome:   func(o Outcome) { outcomes <- o },
	})
	defer s.Close()
	s.EventCameraReady()
	s.Press()
	<-outcomes

	cam.mu.Lock()
	defer cam.mu.Unlock()
	require.Len(t, cam.metas, 1)
	assert.Equal(t, camera.Metadata{
		GPSLatitude:  37.8,
		GPSLongitude: -122.4,
		GPSTimeStamp: now.UnixMilli(),
		UserComment:  "hello",
	}, cam.metas[0])
}

func TestSession_NilCameraDegradesToReady(t *testing.T) {
	outcomes := make(chan Outcome, 4)
	s := New(nil, Capabilities{}, Options{OnOutcome: func(o Outcome) { outcomes <- o }})
	defer s.Close()
	s.EventCameraReady()
	s.Press()
	o := <-outcomes
	assert.ErrorIs(t, o.Err, camera.ErrUnsupportedDevice)
	require.Eventually(t, func() bool { return s.Current() == PhaseReady }, time.Second, 2*time.Millisecond)
}

func TestSession_CloseIsIdempotent(t *testing.T) {
	s := New(nil, Capabilities{Camera: &fakeCamera{}}, Options{})
	s.Close()
	s.Close()
	s.Press() // must not block after close
	s.Sync()
}

// Random walks over the user events check that a press starts a capture
// exactly when the control is enabled.
func TestSession_PressAcceptedIffCaptureEnabled(t *testing.T) {
	cam := &fakeCamera{}
	h := newHarness(t, cam)
	h.ready(t)
	rng := rand.New(rand.NewPCG(1, 2))

	for i := 0; i < 200; i++ {
		before := h.s.Snapshot()
		require.Equal(t, before.Phase == PhaseReady && !before.Expanded, before.CaptureEnabled())
		if before.Expanded {
			require.False(t, before.ShutterEnabled())
		}
		calls := cam.photoCalls()
		switch rng.IntN(4) {
		case 0:
			h.s.Press()
			h.s.Sync()
			switch {
			case before.CaptureEnabled():
				require.Equal(t, OutcomePhotoCaptured, h.nextOutcome(t).Kind)
				h.waitPhase(t, PhaseReady)
				require.Equal(t, calls+1, cam.photoCalls())
			case before.Phase == PhaseRecording && !before.Expanded:
				require.Equal(t, PhaseReady, h.s.Current())
				require.Equal(t, OutcomeRecordingSaved, h.nextOutcome(t).Kind)
			default:
				require.Equal(t, calls, cam.photoCalls())
				require.Equal(t, before.Phase, h.s.Current())
			}
		case 1:
			h.s.LongPress()
			h.s.Sync()
			if before.CaptureEnabled() {
				require.Equal(t, PhaseRecording, h.s.Current())
				require.Equal(t, OutcomeRecordingStarted, h.nextOutcome(t).Kind)
			} else {
				require.Equal(t, before.Phase, h.s.Current())
			}
		case 2:
			h.s.ToggleExpanded()
			h.s.Sync()
			if before.Artifact != nil {
				require.Equal(t, !before.Expanded, h.s.Snapshot().Expanded)
			}
		case 3:
			h.s.Sync()
		}
	}
}
