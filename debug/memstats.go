package debug

// Memory logger enabled when config.Debug is true. Logs the resident set
// size alongside Go heap stats to correlate native and heap growth (frame
// buffers and Tk photos live outside the Go heap).

import (
	"log/slog"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
)

// StartMemLogger launches a goroutine that logs memory stats every interval
// until stop is closed. RSS failures are logged once and suppressed.
func StartMemLogger(interval time.Duration, logger *slog.Logger, stop <-chan struct{}) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for {
			select {
			case <-ticker.C:
			case <-stop:
				return
			}
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			rss, err := residentSetSize()
			if err != nil && !rssErrLogged {
				logger.Warn("memlog: rss query failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logger.Debug("memstats", memAttrs(ms, rss)...)
		}
	}()
}

func memAttrs(ms runtime.MemStats, rss uint64) []any {
	return []any{
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.String("heap_alloc", humanize.IBytes(ms.HeapAlloc)),
		slog.String("heap_inuse", humanize.IBytes(ms.HeapInuse)),
		slog.String("heap_sys", humanize.IBytes(ms.HeapSys)),
		slog.String("next_gc", humanize.IBytes(ms.NextGC)),
		slog.String("rss", humanize.IBytes(rss)),
		slog.String("num_gc", humanize.Comma(int64(ms.NumGC))),
	}
}
