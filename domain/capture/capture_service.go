package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"
)

const (
	captureStatsLogInterval = 5 * time.Second
	defaultFrameInterval    = 33 * time.Millisecond
)

// CaptureService acquires frames from a Grabber (an optional region or the
// full surface) and exposes the latest capture alongside instrumentation
// data. Use NewCaptureService to construct an instance.
type CaptureService interface {
	Start()
	Stop()
	LatestFrame() FrameSnapshot
	Running() bool
	SetRegionProvider(func() *image.Rectangle)
	Stats() CaptureStats
}

type captureService struct {
	running      atomic.Bool
	latest       atomic.Pointer[FrameSnapshot]
	regionFn     atomic.Pointer[func() *image.Rectangle]
	grabber      Grabber
	interval     time.Duration
	logger       *slog.Logger
	captures     atomic.Uint64
	skipped      atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

func newCaptureService(logger *slog.Logger, grabber Grabber, interval time.Duration) *captureService {
	if interval <= 0 {
		interval = defaultFrameInterval
	}
	return &captureService{grabber: grabber, interval: interval, logger: logger}
}

// NewCaptureService constructs a capture service polling grabber every
// interval (about 30 fps when interval is zero).
func NewCaptureService(logger *slog.Logger, grabber Grabber, interval time.Duration) CaptureService {
	return newCaptureService(logger, grabber, interval)
}

func (s *captureService) SetRegionProvider(fn func() *image.Rectangle) {
	if fn == nil {
		s.regionFn.Store(nil)
		return
	}
	s.regionFn.Store(&fn)
}

func (s *captureService) LatestFrame() FrameSnapshot {
	snap := s.latest.Load()
	if snap == nil {
		return FrameSnapshot{}
	}
	return *snap
}

func (s *captureService) Running() bool { return s.running.Load() }

func (s *captureService) Stats() CaptureStats {
	captures := s.captures.Load()
	skipped := s.skipped.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 && total > 0 {
		avg = time.Duration(total / captures)
	}
	snapshot := s.LatestFrame()
	age := time.Duration(0)
	if !snapshot.CapturedAt.IsZero() {
		age = time.Since(snapshot.CapturedAt)
	}
	return CaptureStats{
		Captures:       captures,
		Skipped:        skipped,
		Failures:       s.failures.Load(),
		AvgCapture:     avg,
		LastCapture:    snapshot.CapturedAt,
		LatestFrameAge: age,
		Sequence:       snapshot.Sequence,
		Pool:           FramePoolStats(),
	}
}

func (s *captureService) Start() {
	if s.grabber == nil || !s.running.CompareAndSwap(false, true) {
		return
	}
	go s.loop()
}

func (s *captureService) Stop() { s.running.Store(false) }

func (s *captureService) loop() {
	logTicker := time.NewTicker(captureStatsLogInterval)
	defer logTicker.Stop()
	for s.running.Load() {
		start := time.Now()
		img := s.grabOnce()
		if img == nil {
			s.skipped.Add(1)
			time.Sleep(s.interval)
			continue
		}

		elapsed := time.Since(start)
		s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
		s.captures.Add(1)
		seq := s.sequence.Add(1)
		s.latest.Store(&FrameSnapshot{Image: img, CapturedAt: time.Now(), Sequence: seq})

		select {
		case <-logTicker.C:
			s.logStats()
		default:
		}

		if rest := s.interval - elapsed; rest > 0 {
			time.Sleep(rest)
		}
	}
}

func (s *captureService) grabOnce() *image.RGBA {
	if fn := s.regionFn.Load(); fn != nil {
		if r := (*fn)(); r != nil && !r.Empty() {
			out, err := s.grabber.GrabRect(*r)
			if err == nil {
				return out
			}
			s.failures.Add(1)
			if s.logger != nil {
				s.logger.Error("capture region", "error", err)
			}
		}
	}
	full, err := s.grabber.Grab()
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("capture full", "error", err)
		}
		return nil
	}
	return full
}

func (s *captureService) logStats() {
	if s.logger == nil {
		return
	}
	stats := s.Stats()
	s.logger.Debug("capture.stats",
		"captures", stats.Captures,
		"skipped", stats.Skipped,
		"failures", stats.Failures,
		"pool_hits", stats.Pool.Hits,
		"pool_allocs", stats.Pool.Allocs,
		"avg_capture", stats.AvgCapture,
		"age", stats.LatestFrameAge,
	)
}
