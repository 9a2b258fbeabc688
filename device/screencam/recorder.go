package screencam

import (
	"context"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/gif"
	"log/slog"
	"os"
	"time"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/ui/images"
)

// recorder samples the frame source at a fixed rate into pooled buffers.
type recorder struct {
	handle camera.RecordingHandle
	quit   chan struct{}
	done   chan struct{}
	frames []*image.RGBA
}

func startRecorder(ctx context.Context, logger *slog.Logger, src capture.FrameSource, h camera.RecordingHandle, opts Options) *recorder {
	r := &recorder{handle: h, quit: make(chan struct{}), done: make(chan struct{})}
	go r.run(ctx, logger, src, opts)
	return r
}

func (r *recorder) run(ctx context.Context, logger *slog.Logger, src capture.FrameSource, opts Options) {
	defer close(r.done)
	defer func() {
		if rec := recover(); rec != nil {
			logger.Error("recorder panic", "error", rec)
		}
	}()
	ticker := time.NewTicker(time.Second / time.Duration(opts.FPS))
	defer ticker.Stop()

	r.sample(src, opts)
	for {
		select {
		case <-ticker.C:
			if len(r.frames) >= opts.MaxFrames {
				continue
			}
			r.sample(src, opts)
		case <-r.quit:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *recorder) sample(src capture.FrameSource, opts Options) {
	snap := src.LatestFrame()
	if snap.Empty() {
		return
	}
	crop := images.CropRect(snap.Image.Bounds(), opts.Ratio.X, opts.Ratio.Y)
	w, h := images.FitSize(crop.Dx(), crop.Dy(), opts.MaxWidth, opts.MaxWidth)
	if w == 0 || h == 0 {
		return
	}
	dst := capture.AcquireFrame(image.Rect(0, 0, w, h))
	images.ScaleInto(dst, snap.Image.SubImage(crop))
	r.frames = append(r.frames, dst)
}

// stop ends sampling and hands ownership of the frames to the caller.
func (r *recorder) stop() []*image.RGBA {
	close(r.quit)
	<-r.done
	out := r.frames
	r.frames = nil
	return out
}

func writeGIF(path string, frames []*image.RGBA, fps int) error {
	delay := 100 / fps
	if delay < 2 {
		delay = 2
	}
	anim := &gif.GIF{}
	for _, f := range frames {
		b := f.Bounds()
		p := image.NewPaletted(b, palette.Plan9)
		draw.FloydSteinberg.Draw(p, b, f, b.Min)
		anim.Image = append(anim.Image, p)
		anim.Delay = append(anim.Delay, delay)
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("screencam: create video: %w", err)
	}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return fmt.Errorf("screencam: encode video: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("screencam: close video: %w", err)
	}
	return nil
}
