package presenter

import (
	"image"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/domain/geometry"
	"github.com/soocke/viewfinder-go/ui/images"
)

// FrameSource supplies the most recent frame captured from the screen.
type FrameSource interface {
	Running() bool
	LatestFrame() capture.FrameSnapshot
}

// ViewfinderView receives the prepared live image.
type ViewfinderView interface {
	UpdateViewfinder(img image.Image)
}

type viewfinderTask struct {
	snapshot capture.FrameSnapshot
}

type viewfinderResult struct {
	sequence uint64
	img      image.Image
	err      error
	duration time.Duration
}

// ViewfinderPresenter crops live frames to the selected aspect ratio and
// scales them to the camera area. Scaling runs on a worker goroutine so the
// Tk thread only uploads finished images.
type ViewfinderPresenter struct {
	Source FrameSource
	View   ViewfinderView
	Ratio  geometry.AspectRatio
	Width  int
	Height int
	logger *slog.Logger

	workerOnce sync.Once
	closeOnce  sync.Once
	workCh     chan viewfinderTask
	resultCh   chan viewfinderResult

	lastSeq      uint64
	lastDispatch time.Time
	minInterval  time.Duration
	maxAge       time.Duration
}

// NewViewfinderPresenter constructs a viewfinder presenter rendering into a
// w x h camera area.
func NewViewfinderPresenter(source FrameSource, view ViewfinderView, ratio geometry.AspectRatio, w, h int, logger *slog.Logger) *ViewfinderPresenter {
	if !ratio.Valid() {
		ratio = geometry.Fallback
	}
	return &ViewfinderPresenter{
		Source:      source,
		View:        view,
		Ratio:       ratio,
		Width:       w,
		Height:      h,
		logger:      logger,
		workCh:      make(chan viewfinderTask, 1),
		resultCh:    make(chan viewfinderResult, 1),
		minInterval: 40 * time.Millisecond,
		maxAge:      time.Second,
	}
}

// ProcessFrame hands finished images to the view and schedules the latest
// frame for preparation.
func (p *ViewfinderPresenter) ProcessFrame() {
	if p == nil || p.Source == nil || p.View == nil {
		return
	}
	p.ensureWorker()

	for {
		select {
		case res := <-p.resultCh:
			p.handleResult(res)
		default:
			goto drained
		}
	}

drained:
	if !p.Source.Running() {
		return
	}
	snapshot := p.Source.LatestFrame()
	// A stalled grabber leaves the last frame on screen rather than
	// repainting it.
	if !snapshot.Fresh(time.Now(), p.maxAge) || snapshot.Sequence == p.lastSeq {
		return
	}
	if !p.lastDispatch.IsZero() && time.Since(p.lastDispatch) < p.minInterval {
		return
	}
	p.lastSeq = snapshot.Sequence
	p.lastDispatch = time.Now()
	p.dispatch(viewfinderTask{snapshot: snapshot})
}

func (p *ViewfinderPresenter) ensureWorker() {
	p.workerOnce.Do(func() {
		go p.runWorker()
	})
}

func (p *ViewfinderPresenter) runWorker() {
	for task := range p.workCh {
		res := p.prepare(task)
		select {
		case p.resultCh <- res:
		default:
			select {
			case <-p.resultCh:
			default:
			}
			select {
			case p.resultCh <- res:
			default:
			}
		}
	}
}

func (p *ViewfinderPresenter) dispatch(task viewfinderTask) {
	select {
	case p.workCh <- task:
	default:
		select {
		case <-p.workCh:
		default:
		}
		select {
		case p.workCh <- task:
		default:
		}
	}
}

func (p *ViewfinderPresenter) prepare(task viewfinderTask) viewfinderResult {
	res := viewfinderResult{sequence: task.snapshot.Sequence}
	start := time.Now()
	crop, _, err := images.CropToAspect(task.snapshot.Image, p.Ratio.X, p.Ratio.Y)
	if err != nil {
		res.err = err
		return res
	}
	res.img = images.ScaleToFit(crop, p.Width, p.Height)
	res.duration = time.Since(start)
	return res
}

func (p *ViewfinderPresenter) handleResult(res viewfinderResult) {
	if res.err != nil {
		if p.logger != nil {
			p.logger.Error("viewfinder", "error", res.err)
		}
		return
	}
	if res.img != nil {
		p.View.UpdateViewfinder(res.img)
	}
}

// Close stops the worker. ProcessFrame must not be called afterwards.
func (p *ViewfinderPresenter) Close() {
	if p == nil {
		return
	}
	p.closeOnce.Do(func() {
		p.workerOnce.Do(func() {})
		close(p.workCh)
	})
}
