// Package screencam implements camera.Camera on top of the screen frame
// service: the display is the sensor.
package screencam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/domain/geometry"
	"github.com/soocke/viewfinder-go/ui/images"
)

const (
	defaultJPEGQuality = 90
	defaultFPS         = 10
	defaultMaxFrames   = 300
	defaultMaxWidth    = 480
)

// Options configure output and encoding.
type Options struct {
	OutputDir   string
	Ratio       geometry.AspectRatio
	JPEGQuality int
	FPS         int
	MaxFrames   int
	MaxWidth    int
	Now         func() time.Time
}

func (o *Options) normalize() {
	if !o.Ratio.Valid() {
		o.Ratio = geometry.Fallback
	}
	if o.JPEGQuality <= 0 || o.JPEGQuality > 100 {
		o.JPEGQuality = defaultJPEGQuality
	}
	if o.FPS <= 0 {
		o.FPS = defaultFPS
	}
	if o.MaxFrames <= 0 {
		o.MaxFrames = defaultMaxFrames
	}
	if o.MaxWidth <= 0 {
		o.MaxWidth = defaultMaxWidth
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Camera captures stills and GIF recordings from a frame source.
type Camera struct {
	logger  *slog.Logger
	frames  capture.FrameSource
	service capture.ServiceContract
	opts    Options

	mu  sync.Mutex
	rec *recorder
}

// New builds a camera reading frames. service is optional; when present
// Initialize starts it.
func New(logger *slog.Logger, frames capture.FrameSource, service capture.ServiceContract, opts Options) *Camera {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	opts.normalize()
	return &Camera{logger: logger, frames: frames, service: service, opts: opts}
}

// Initialize prepares the output directory and starts the frame service.
func (c *Camera) Initialize(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if c.frames == nil {
		return fmt.Errorf("screencam: no frame source: %w", camera.ErrUnsupportedDevice)
	}
	if err := os.MkdirAll(c.opts.OutputDir, 0o755); err != nil {
		return fmt.Errorf("screencam: create output dir: %w", err)
	}
	if c.service != nil {
		c.service.Start()
	}
	c.logger.Info("screen camera initialized", "output_dir", c.opts.OutputDir, "ratio", c.opts.Ratio.String())
	return nil
}

// Ready reports whether at least one frame is available.
func (c *Camera) Ready() bool {
	if c.frames == nil || !c.frames.Running() {
		return false
	}
	return !c.frames.LatestFrame().Empty()
}

// CapturePhoto writes the latest frame, cropped to the configured ratio, as
// JPEG with a JSON sidecar holding meta.
func (c *Camera) CapturePhoto(ctx context.Context, meta camera.Metadata) (*camera.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := c.frames.LatestFrame()
	if snap.Empty() {
		return nil, fmt.Errorf("screencam: no frame available: %w", camera.ErrCaptureFailed)
	}
	crop, _, err := images.CropToAspect(snap.Image, c.opts.Ratio.X, c.opts.Ratio.Y)
	if err != nil {
		return nil, fmt.Errorf("screencam: crop: %w", err)
	}

	id := uuid.NewString()
	now := c.opts.Now()
	path := filepath.Join(c.opts.OutputDir, fileName("IMG", now, id, "jpg"))
	if err := imaging.Save(crop, path, imaging.JPEGQuality(c.opts.JPEGQuality)); err != nil {
		return nil, fmt.Errorf("screencam: write photo: %w", err)
	}
	if err := writeSidecar(path, meta); err != nil {
		return nil, err
	}

	m := meta
	b := crop.Bounds()
	return &camera.Artifact{
		ID:         id,
		Kind:       camera.KindPhoto,
		URI:        fileURI(path),
		Width:      b.Dx(),
		Height:     b.Dy(),
		CapturedAt: now,
		Metadata:   &m,
	}, nil
}

// StartRecording begins sampling frames. Only one recording may run.
func (c *Camera) StartRecording(ctx context.Context) (camera.RecordingHandle, error) {
	if err := ctx.Err(); err != nil {
		return camera.RecordingHandle{}, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rec != nil {
		return camera.RecordingHandle{}, fmt.Errorf("screencam: recording %s already running", c.rec.handle.ID)
	}
	h := camera.RecordingHandle{ID: uuid.NewString(), StartedAt: c.opts.Now()}
	c.rec = startRecorder(ctx, c.logger, c.frames, h, c.opts)
	c.logger.Debug("recording sampler started", "id", h.ID, "fps", c.opts.FPS)
	return h, nil
}

// StopRecording ends the recording identified by h and writes it as GIF.
func (c *Camera) StopRecording(ctx context.Context, h camera.RecordingHandle) (*camera.Artifact, error) {
	c.mu.Lock()
	rec := c.rec
	if rec == nil || rec.handle.ID != h.ID {
		c.mu.Unlock()
		return nil, fmt.Errorf("screencam: stop %q: %w", h.ID, camera.ErrNotRecording)
	}
	c.rec = nil
	c.mu.Unlock()

	frames := rec.stop()
	defer func() {
		for _, f := range frames {
			capture.RecycleFrame(f)
		}
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("screencam: no frames recorded: %w", camera.ErrNoArtifact)
	}

	path := filepath.Join(c.opts.OutputDir, fileName("VID", h.StartedAt, h.ID, "gif"))
	if err := writeGIF(path, frames, c.opts.FPS); err != nil {
		return nil, err
	}
	b := frames[0].Bounds()
	return &camera.Artifact{
		ID:         h.ID,
		Kind:       camera.KindVideo,
		URI:        fileURI(path),
		Width:      b.Dx(),
		Height:     b.Dy(),
		CapturedAt: h.StartedAt,
		Duration:   time.Duration(len(frames)) * time.Second / time.Duration(c.opts.FPS),
		Frames:     len(frames),
	}, nil
}

func fileName(prefix string, t time.Time, id, ext string) string {
	short := id
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("%s_%s_%s.%s", prefix, t.Format("20060102_150405"), short, ext)
}

func fileURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

// PathFromURI returns the filesystem path of a file:// URI.
func PathFromURI(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("screencam: unsupported uri scheme %q", u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func writeSidecar(photoPath string, meta camera.Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("screencam: encode metadata: %w", err)
	}
	side := photoPath[:len(photoPath)-len(filepath.Ext(photoPath))] + ".json"
	if err := os.WriteFile(side, data, 0o644); err != nil {
		return fmt.Errorf("screencam: write metadata: %w", err)
	}
	return nil
}

var _ camera.Camera = (*Camera)(nil)
