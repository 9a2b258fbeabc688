package view

import (
	"image"
	"log/slog"

	"github.com/soocke/viewfinder-go/config"
	"github.com/soocke/viewfinder-go/domain/geometry"
	"github.com/soocke/viewfinder-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// RootView composes the top-level camera layout and wires UI callbacks.
// It owns the subviews and exposes the view contracts the presenters need.
type RootView struct {
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	// Subviews
	Viewfinder  Viewfinder
	Timer       RecordingTimer
	ConfigPanel ConfigPanel

	// Widgets
	StatusLabel *LabelWidget
	NoticeLabel *LabelWidget
	Shutter     *TButtonWidget
}

// UI abstracts the subset of view operations needed by presenters, enabling decoupling
// from the concrete RootView implementation.
type UI interface {
	SetStatus(text string)
	SetShutter(enabled, recording bool)
	SetRecording(active bool, clip string)
	SetNotice(text string)
	UpdateViewfinder(img image.Image)
	ShowPreview(img image.Image, expanded bool, caption string)
	HidePreview()
}

// Handlers are invoked on user actions.
type Handlers struct {
	ShutterDown   func()
	ShutterUp     func()
	TogglePreview func()
	Dismiss       func()
	Exit          func()
}

func NewRootView(cfg *config.Config, cfgPath string, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, cfgPath: cfgPath, logger: logger}
}

// Build constructs the layout for a camera area of camW x camH.
func (rv *RootView) Build(camW, camH int, h Handlers) {
	if rv == nil {
		return
	}
	p := theme.CurrentPalette()
	GridColumnConfigure(App, 1, Weight(1))

	// Row 0: status line
	rv.StatusLabel = Label(Txt("Starting camera…"), Background(p.AppBg), Foreground(p.Text), Anchor("w"))
	Grid(rv.StatusLabel, Row(0), Column(0), Columnspan(3), Sticky("we"), Padx("2m"), Pady("1m"))

	// Row 1: camera with the preview overlaid in the same cell
	rv.Viewfinder = NewViewfinder(1, camW, camH, h.TogglePreview, h.Dismiss)

	// Row 2: controls
	controls := Frame(Background(p.AppBg))
	Grid(controls, Row(2), Column(0), Columnspan(3), Sticky("we"), Pady(geometry.Space))
	GridColumnConfigure(controls.Window, 1, Weight(1))

	settings := Button(Txt("Settings"), Command(func() { rv.openSettings() }))
	Grid(settings, In(controls), Row(0), Column(0), Sticky("w"), Padx("2m"))

	rv.Shutter = TButton(Txt("●"), Width(4), State("disabled"), Style(theme.StyleShutterButton))
	Grid(rv.Shutter, In(controls), Row(0), Column(1))
	Bind(rv.Shutter, "<ButtonPress-1>", Command(h.ShutterDown))
	Bind(rv.Shutter, "<ButtonRelease-1>", Command(h.ShutterUp))

	rv.Timer = NewRecordingTimer(controls, 0, 2)

	// Row 3: notices and exit
	rv.NoticeLabel = Label(Txt(""), Background(p.AppBg), Foreground(p.TextMuted), Anchor("w"))
	Grid(rv.NoticeLabel, Row(3), Column(0), Columnspan(2), Sticky("we"), Padx("2m"))
	exitBtn := Button(Txt("Exit"), Command(h.Exit))
	Grid(exitBtn, Row(3), Column(2), Sticky("e"), Padx("2m"), Pady("1m"))

	rv.ConfigPanel = NewConfigPanel(rv.cfg, rv.cfgPath, rv.logger)
}

func (rv *RootView) openSettings() {
	if rv.ConfigPanel != nil {
		rv.ConfigPanel.OpenOrFocus()
	}
}

// SetStatus updates the status line.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.StatusLabel != nil {
		rv.StatusLabel.Configure(Txt(text))
	}
}

// SetShutter enables the shutter and switches it to the stop glyph while
// recording.
func (rv *RootView) SetShutter(enabled, recording bool) {
	if rv == nil || rv.Shutter == nil {
		return
	}
	state := "disabled"
	if enabled {
		state = "normal"
	}
	if recording {
		rv.Shutter.Configure(State(state), Txt("■"), Style(theme.StyleRecordButton))
		return
	}
	rv.Shutter.Configure(State(state), Txt("●"), Style(theme.StyleShutterButton))
}

// SetRecording proxies to the recording timer.
func (rv *RootView) SetRecording(active bool, clip string) {
	if rv != nil && rv.Timer != nil {
		rv.Timer.SetRecording(active, clip)
	}
}

// SetNotice shows the last outcome message.
func (rv *RootView) SetNotice(text string) {
	if rv != nil && rv.NoticeLabel != nil {
		rv.NoticeLabel.Configure(Txt(text))
	}
}

// UpdateViewfinder proxies to the viewfinder.
func (rv *RootView) UpdateViewfinder(img image.Image) {
	if rv != nil && rv.Viewfinder != nil {
		rv.Viewfinder.UpdateViewfinder(img)
	}
}

// ShowPreview proxies to the viewfinder.
func (rv *RootView) ShowPreview(img image.Image, expanded bool, caption string) {
	if rv != nil && rv.Viewfinder != nil {
		rv.Viewfinder.ShowPreview(img, expanded, caption)
	}
}

// HidePreview proxies to the viewfinder.
func (rv *RootView) HidePreview() {
	if rv != nil && rv.Viewfinder != nil {
		rv.Viewfinder.HidePreview()
	}
}

var _ UI = (*RootView)(nil)
