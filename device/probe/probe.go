// Package probe decides whether this machine can act as a camera: the
// screen is the sensor, so at least one display must be attached.
package probe

import (
	"fmt"
	"runtime"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// Report describes the host as seen by the probe.
type Report struct {
	OS       string
	Arch     string
	Kernel   string
	Displays int
}

// Check probes the host and returns camera.ErrUnsupportedDevice when no
// display is available.
func Check() (Report, error) {
	r := Report{OS: runtime.GOOS, Arch: runtime.GOARCH}
	r.Kernel, r.Displays = platformProbe()
	return r, Evaluate(r)
}

// Evaluate applies the support rules to a report.
func Evaluate(r Report) error {
	if r.Displays <= 0 {
		return fmt.Errorf("probe: no display on %s/%s: %w", r.OS, r.Arch, camera.ErrUnsupportedDevice)
	}
	return nil
}
