//go:build !linux && !freebsd && !netbsd && !openbsd && !dragonfly && !darwin && !windows

package probe

func platformProbe() (kernel string, displays int) { return "", 0 }
