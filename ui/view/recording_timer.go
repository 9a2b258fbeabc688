package view

import (
	"github.com/soocke/viewfinder-go/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// RecordingTimer shows a red clip timer while recording.
type RecordingTimer interface {
	SetRecording(active bool, clip string)
}

type recordingTimer struct {
	lbl    *LabelWidget
	active bool
}

// NewRecordingTimer creates the timer label in parent at (row, col).
func NewRecordingTimer(parent *FrameWidget, row, col int) RecordingTimer {
	p := theme.CurrentPalette()
	t := &recordingTimer{lbl: Label(Width(8), Txt("00:00"), Background(p.AppBg), Foreground(p.TextMuted))}
	if parent != nil {
		Grid(t.lbl, In(parent), Row(row), Column(col), Sticky("e"), Padx("0.2m"))
	} else {
		Grid(t.lbl, Row(row), Column(col), Sticky("e"), Padx("0.2m"))
	}
	return t
}

func (t *recordingTimer) SetRecording(active bool, clip string) {
	if t == nil || t.lbl == nil {
		return
	}
	p := theme.CurrentPalette()
	if active {
		t.lbl.Configure(Txt("● "+clip), Foreground(p.Danger))
	} else if t.active {
		t.lbl.Configure(Txt(clip), Foreground(p.TextMuted))
	}
	t.active = active
}
