// Package permission resolves camera access from the configured mode.
package permission

import (
	"context"
	"fmt"

	"github.com/soocke/viewfinder-go/config"
	"github.com/soocke/viewfinder-go/domain/camera"
)

// Requester grants or denies camera access per Mode. In ask mode the Ask
// prompt decides; a missing prompt denies.
type Requester struct {
	Mode string
	Ask  func() bool
}

func (r Requester) RequestCameraAccess(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	switch r.Mode {
	case config.AccessGranted:
		return true, nil
	case config.AccessDenied:
		return false, nil
	case config.AccessAsk, "":
		if r.Ask == nil {
			return false, nil
		}
		return r.Ask(), nil
	}
	return false, fmt.Errorf("permission: unknown camera access mode %q", r.Mode)
}

var _ camera.PermissionRequester = Requester{}
