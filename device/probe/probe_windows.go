//go:build windows

package probe

import (
	"fmt"

	"golang.org/x/sys/windows"
)

const smCMonitors = 80

func platformProbe() (kernel string, displays int) {
	v := windows.RtlGetVersion()
	kernel = fmt.Sprintf("windows %d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)

	user32 := windows.NewLazySystemDLL("user32.dll")
	getSystemMetrics := user32.NewProc("GetSystemMetrics")
	if err := getSystemMetrics.Find(); err != nil {
		return kernel, 0
	}
	n, _, _ := getSystemMetrics.Call(uintptr(smCMonitors))
	return kernel, int(n)
}
