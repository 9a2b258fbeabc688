//go:build unix

package debug

import (
	"runtime"

	"golang.org/x/sys/unix"
)

// residentSetSize reports the peak RSS; getrusage has no current value.
func residentSetSize() (uint64, error) {
	var ru unix.Rusage
	if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err != nil {
		return 0, err
	}
	rss := uint64(ru.Maxrss)
	if runtime.GOOS != "darwin" {
		rss *= 1024 // kilobytes outside darwin
	}
	return rss, nil
}
