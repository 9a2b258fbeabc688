package view

import (
	"log/slog"

	"github.com/soocke/viewfinder-go/domain/camera"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// BellHaptics approximates haptic impacts with the Tk bell. Selection pulses
// are silent. Must be used from the Tk thread.
type BellHaptics struct {
	Logger *slog.Logger
	// MinStyle is the weakest impact that rings; lighter impacts are dropped.
	MinStyle camera.ImpactStyle
}

func (h BellHaptics) Impact(style camera.ImpactStyle) {
	if h.Logger != nil {
		h.Logger.Debug("haptic impact", "style", style.String())
	}
	if style < h.MinStyle {
		return
	}
	Bell()
}

func (h BellHaptics) Selection() {
	if h.Logger != nil {
		h.Logger.Debug("haptic selection")
	}
}

var _ camera.Haptics = BellHaptics{}
