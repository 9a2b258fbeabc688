package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/soocke/viewfinder-go/app/startup"
	"github.com/soocke/viewfinder-go/config"
	"github.com/soocke/viewfinder-go/debug"
	"github.com/soocke/viewfinder-go/device/permission"
	"github.com/soocke/viewfinder-go/device/probe"
	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/ui/presenter"
	"github.com/soocke/viewfinder-go/ui/theme"
	"github.com/soocke/viewfinder-go/ui/view"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const tick = 50 * time.Millisecond

type app struct {
	title   string
	cfg     *config.Config
	cfgPath string
	logger  *slog.Logger

	ctx     context.Context
	cancel  context.CancelFunc
	c       *AppContainer
	afterID string
	stop    chan struct{}
}

// NewApp prepares the main window.
func NewApp(title string, cfg *config.Config, cfgPath string, logger *slog.Logger) *app {
	ctx, cancel := context.WithCancel(context.Background())
	a := &app{title: title, cfg: cfg, cfgPath: cfgPath, logger: logger, ctx: ctx, cancel: cancel, stop: make(chan struct{})}
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowWidth, cfg.WindowHeight))
	return a
}

// Start runs the gates (device, permission), builds the camera screen and
// blocks in the Tk event loop until the window closes.
func (a *app) Start() {
	theme.SetDark(a.cfg.DarkMode)
	if a.cfg.Debug {
		debug.StartGoroutineLogger(5*time.Second, a.logger, a.stop)
		debug.StartMemLogger(5*time.Second, a.logger, a.stop)
	}
	defer a.shutdown()

	gates := startup.Gates{
		Probe:  probe.Check,
		Access: permission.Requester{Mode: a.cfg.CameraAccess, Ask: view.AskCameraAccess},
		Logger: a.logger,
	}
	res := gates.Run(a.ctx, a.buildCamera, func(title, message string) {
		view.NewNoticeScreen(title, message, a.exitHandler)
	})
	if res.Verdict == startup.Proceed {
		a.scheduleUpdate()
	}
	App.Wait()
}

// buildCamera constructs the camera screen and starts the camera. It runs
// only after the startup gates passed.
func (a *app) buildCamera() {
	a.c = BuildContainer(a.ctx, a.cfg, a.logger, a.cfgPath, view.BellHaptics{Logger: a.logger, MinStyle: camera.ImpactMedium})
	camW, camH := a.c.Viewport.CameraSize()
	a.c.RootView.Build(camW, camH, view.Handlers{
		ShutterDown:   func() { a.c.ShutterPresenter.Down() },
		ShutterUp:     func() { a.c.ShutterPresenter.Up() },
		TogglePreview: func() { a.c.PreviewPresenter.Toggle() },
		Dismiss:       func() { a.c.PreviewPresenter.Dismiss() },
		Exit:          a.exitHandler,
	})
	a.c.WirePresenters(tkSchedule)
	a.c.Loop = presenter.NewLoop(a.c.PhasePresenter, a.c.RecordingPresenter, a.c.ViewfinderPresenter,
		a.c.PreviewPresenter, a.c.OutcomePresenter, a.scheduleUpdate)

	if err := a.c.Camera.Initialize(a.ctx); err != nil {
		a.logger.Error("camera initialize failed", "error", err)
		if errors.Is(err, camera.ErrUnsupportedDevice) {
			a.c.UI.SetStatus("Camera unavailable")
		} else {
			a.c.UI.SetNotice("Camera error: " + err.Error())
		}
	} else {
		a.c.ReadyWatcher.Start()
	}
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}

func tkSchedule(d time.Duration, fn func()) func() {
	id := TclAfter(d, fn)
	return func() { TclAfterCancel(id) }
}

func (a *app) exitHandler() {
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	Destroy(App)
}

func (a *app) shutdown() {
	a.cancel()
	if a.c != nil {
		a.c.Close()
	}
	close(a.stop)
	a.logger.Info("viewfinder stopped")
}
