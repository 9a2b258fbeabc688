//go:build darwin

package probe

import "golang.org/x/sys/unix"

func platformProbe() (kernel string, displays int) {
	var u unix.Utsname
	if err := unix.Uname(&u); err == nil {
		kernel = unix.ByteSliceToString(u.Sysname[:]) + " " + unix.ByteSliceToString(u.Release[:])
	}
	// Quartz always has a main display when a user session exists.
	return kernel, 1
}
