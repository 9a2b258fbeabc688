// Package startup decides, before any capture session exists, whether the
// camera screen can be shown at all.
package startup

import (
	"context"
	"errors"
	"log/slog"

	"github.com/soocke/viewfinder-go/device/probe"
	"github.com/soocke/viewfinder-go/domain/camera"
)

// Verdict is the outcome of the startup gates.
type Verdict int

const (
	Proceed Verdict = iota
	Unsupported
	Denied
)

func (v Verdict) String() string {
	switch v {
	case Proceed:
		return "proceed"
	case Unsupported:
		return "unsupported"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Notice texts for the static screens.
const (
	UnsupportedTitle   = "Camera unavailable"
	UnsupportedMessage = "This device has no display to use as a camera."
	DeniedTitle        = "No access to camera"
	DeniedMessage      = "Camera access was denied. Change camera_access in the settings file to try again."
)

// Result carries the verdict and, when blocked, the reason.
type Result struct {
	Verdict Verdict
	Report  probe.Report
	Err     error
}

// Gates are the checks run in order: device support, then camera access.
type Gates struct {
	Probe  func() (probe.Report, error)
	Access camera.PermissionRequester
	Logger *slog.Logger
}

// Evaluate runs the gates. Access is never requested on an unsupported
// device.
func (g Gates) Evaluate(ctx context.Context) Result {
	logger := g.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	var res Result
	if g.Probe != nil {
		report, err := g.Probe()
		res.Report = report
		if err != nil {
			logger.Warn("unsupported device", "os", report.OS, "arch", report.Arch, "kernel", report.Kernel, "error", err)
			res.Verdict, res.Err = Unsupported, err
			return res
		}
		logger.Info("device probed", "os", report.OS, "kernel", report.Kernel, "displays", report.Displays)
	}
	if g.Access == nil {
		return res
	}
	granted, err := g.Access.RequestCameraAccess(ctx)
	if err == nil && !granted {
		err = camera.ErrPermissionDenied
	}
	if err != nil {
		if !errors.Is(err, camera.ErrPermissionDenied) {
			err = errors.Join(camera.ErrPermissionDenied, err)
		}
		logger.Warn("camera access denied", "error", err)
		res.Verdict, res.Err = Denied, err
	}
	return res
}

// Run evaluates the gates and then either builds the camera screen or shows
// a static notice. build is never called when a gate blocks.
func (g Gates) Run(ctx context.Context, build func(), notice func(title, message string)) Result {
	res := g.Evaluate(ctx)
	switch res.Verdict {
	case Proceed:
		if build != nil {
			build()
		}
	case Unsupported:
		if notice != nil {
			notice(UnsupportedTitle, UnsupportedMessage)
		}
	case Denied:
		if notice != nil {
			notice(DeniedTitle, DeniedMessage)
		}
	}
	return res
}
