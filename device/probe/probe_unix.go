//go:build linux || freebsd || netbsd || openbsd || dragonfly

package probe

import (
	"os"

	"golang.org/x/sys/unix"
)

func platformProbe() (kernel string, displays int) {
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		kernel = unix.ByteSliceToString(u.Sysname[:]) + " " + unix.ByteSliceToString(u.Release[:])
	}
	return kernel, displayCount(os.Getenv("DISPLAY"), os.Getenv("WAYLAND_DISPLAY"))
}

// displayCount counts the display servers advertised by the environment.
func displayCount(x11, wayland string) int {
	n := 0
	if x11 != "" {
		n++
	}
	if wayland != "" {
		n++
	}
	return n
}
