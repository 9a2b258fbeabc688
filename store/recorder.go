package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// Sink persists artifacts. *Journal implements it.
type Sink interface {
	Record(ctx context.Context, art *camera.Artifact) error
}

// Recorder writes artifacts to a Sink on its own goroutine so callers on
// latency-sensitive loops never block on disk.
type Recorder struct {
	sink   Sink
	logger *slog.Logger
	ch     chan *camera.Artifact
	done   chan struct{}
	once   sync.Once
}

// NewRecorder starts the writer goroutine with a queue of buf entries.
func NewRecorder(logger *slog.Logger, sink Sink, buf int) *Recorder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if buf <= 0 {
		buf = 16
	}
	r := &Recorder{sink: sink, logger: logger, ch: make(chan *camera.Artifact, buf), done: make(chan struct{})}
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer close(r.done)
	for art := range r.ch {
		if err := r.sink.Record(context.Background(), art); err != nil {
			r.logger.Error("journal record failed", "id", art.ID, "error", err)
			continue
		}
		r.logger.Debug("journal recorded", "id", art.ID, "kind", art.Kind.String())
	}
}

// Submit queues art. It never blocks; a full queue drops the entry and
// returns false.
func (r *Recorder) Submit(art *camera.Artifact) bool {
	if r == nil || art == nil {
		return false
	}
	select {
	case r.ch <- art:
		return true
	default:
		r.logger.Warn("journal queue full, dropping entry", "id", art.ID)
		return false
	}
}

// Close flushes the queue and waits for the writer. Submit must not be
// called afterwards.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	r.once.Do(func() { close(r.ch) })
	<-r.done
}
