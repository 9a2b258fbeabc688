package screencam

import (
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/domain/geometry"
)

type staticFrames struct {
	img     *image.RGBA
	running bool
	seq     atomic.Uint64
}

func newStaticFrames(w, h int) *staticFrames {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{uint8(x), uint8(y), 0x80, 0xff})
		}
	}
	return &staticFrames{img: img, running: true}
}

func (s *staticFrames) LatestFrame() capture.FrameSnapshot {
	if s.img == nil {
		return capture.FrameSnapshot{}
	}
	return capture.FrameSnapshot{Image: s.img, CapturedAt: time.Now(), Sequence: s.seq.Add(1)}
}

func (s *staticFrames) Running() bool { return s.running }

type countingService struct{ starts int }

func (c *countingService) Start()        { c.starts++ }
func (c *countingService) Stop()         {}
func (c *countingService) Running() bool { return c.starts > 0 }

func newTestCamera(t *testing.T, src capture.FrameSource) *Camera {
	t.Helper()
	fixed := time.Date(2026, 10, 19, 12, 30, 0, 0, time.UTC)
	return New(nil, src, nil, Options{
		OutputDir: t.TempDir(),
		Ratio:     geometry.AspectRatio{X: 3, Y: 4},
		FPS:       50,
		MaxWidth:  64,
		Now:       func() time.Time { return fixed },
	})
}

func TestInitialize_StartsServiceAndCreatesDir(t *testing.T) {
	svc := &countingService{}
	dir := t.TempDir() + "/nested/out"
	c := New(nil, newStaticFrames(8, 8), svc, Options{OutputDir: dir})
	require.NoError(t, c.Initialize(context.Background()))
	assert.Equal(t, 1, svc.starts)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestInitialize_NoFrameSourceIsUnsupported(t *testing.T) {
	c := New(nil, nil, nil, Options{OutputDir: t.TempDir()})
	err := c.Initialize(context.Background())
	assert.ErrorIs(t, err, camera.ErrUnsupportedDevice)
}

func TestReady(t *testing.T) {
	src := &staticFrames{running: true}
	c := newTestCamera(t, src)
	assert.False(t, c.Ready(), "no frame yet")
	src.img = image.NewRGBA(image.Rect(0, 0, 4, 4))
	assert.True(t, c.Ready())
	src.running = false
	assert.False(t, c.Ready())
}

func TestCapturePhoto_WritesCroppedJPEGAndSidecar(t *testing.T) {
	c := newTestCamera(t, newStaticFrames(400, 300))
	meta := camera.Metadata{GPSLatitude: 52.5, GPSLongitude: 13.4, GPSTimeStamp: 1700000000000, UserComment: "hi"}

	art, err := c.CapturePhoto(context.Background(), meta)
	require.NoError(t, err)
	assert.Equal(t, camera.KindPhoto, art.Kind)
	assert.Equal(t, 225, art.Width)
	assert.Equal(t, 300, art.Height)
	require.NotNil(t, art.Metadata)
	assert.Equal(t, meta, *art.Metadata)
	assert.True(t, strings.HasPrefix(art.URI, "file://"))

	path, err := PathFromURI(art.URI)
	require.NoError(t, err)
	assert.Contains(t, path, "IMG_20261019_123000_")
	img, err := imaging.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 225, img.Bounds().Dx())

	raw, err := os.ReadFile(strings.TrimSuffix(path, ".jpg") + ".json")
	require.NoError(t, err)
	var got camera.Metadata
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, meta, got)
}

func TestCapturePhoto_NoFrameFails(t *testing.T) {
	c := newTestCamera(t, &staticFrames{running: true})
	_, err := c.CapturePhoto(context.Background(), camera.Metadata{})
	assert.ErrorIs(t, err, camera.ErrCaptureFailed)
}

func TestRecording_ProducesGIF(t *testing.T) {
	c := newTestCamera(t, newStaticFrames(200, 200))
	ctx := context.Background()

	h, err := c.StartRecording(ctx)
	require.NoError(t, err)
	require.False(t, h.Zero())

	_, err = c.StartRecording(ctx)
	assert.Error(t, err, "second recording must be rejected")

	time.Sleep(80 * time.Millisecond)
	art, err := c.StopRecording(ctx, h)
	require.NoError(t, err)
	assert.Equal(t, camera.KindVideo, art.Kind)
	assert.Equal(t, h.ID, art.ID)
	assert.GreaterOrEqual(t, art.Frames, 1)
	assert.Equal(t, 48, art.Width)
	assert.Equal(t, 64, art.Height)

	path, err := PathFromURI(art.URI)
	require.NoError(t, err)
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	anim, err := gif.DecodeAll(f)
	require.NoError(t, err)
	assert.Len(t, anim.Image, art.Frames)
}

func TestStopRecording_WrongHandle(t *testing.T) {
	c := newTestCamera(t, newStaticFrames(20, 20))
	_, err := c.StopRecording(context.Background(), camera.RecordingHandle{ID: "nope"})
	assert.ErrorIs(t, err, camera.ErrNotRecording)

	h, err := c.StartRecording(context.Background())
	require.NoError(t, err)
	_, err = c.StopRecording(context.Background(), camera.RecordingHandle{ID: "other"})
	assert.ErrorIs(t, err, camera.ErrNotRecording)
	_, err = c.StopRecording(context.Background(), h)
	assert.NoError(t, err)
}

func TestStopRecording_NoFramesIsNoArtifact(t *testing.T) {
	c := newTestCamera(t, &staticFrames{running: true})
	h, err := c.StartRecording(context.Background())
	require.NoError(t, err)
	_, err = c.StopRecording(context.Background(), h)
	assert.ErrorIs(t, err, camera.ErrNoArtifact)
}

func TestPathFromURI_RejectsOtherSchemes(t *testing.T) {
	_, err := PathFromURI("https://example.com/a.jpg")
	assert.Error(t, err)
}
