package app

import (
	"context"
	"log/slog"

	"github.com/soocke/viewfinder-go/capture"
	"github.com/soocke/viewfinder-go/config"
	"github.com/soocke/viewfinder-go/device/geo"
	"github.com/soocke/viewfinder-go/device/screencam"
	"github.com/soocke/viewfinder-go/domain/camera"
	domcapture "github.com/soocke/viewfinder-go/domain/capture"
	"github.com/soocke/viewfinder-go/domain/session"
	"github.com/soocke/viewfinder-go/store"
	"github.com/soocke/viewfinder-go/ui/model"
	"github.com/soocke/viewfinder-go/ui/presenter"
	"github.com/soocke/viewfinder-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config *config.Config
	Logger *slog.Logger

	// Models
	Viewport  *model.ViewportModel
	Shutter   *model.ShutterModel
	Recording *model.RecordingModel

	// Services and capabilities
	CaptureSvc domcapture.CaptureService
	Camera     *screencam.Camera
	Position   *geo.Mock
	Haptics    camera.Haptics
	Journal    *store.Journal
	Recorder   *store.Recorder
	Session    *session.Session

	RootView *view.RootView
	UI       view.UI

	// Presenters
	ShutterPresenter    *presenter.ShutterPresenter
	PhasePresenter      *presenter.PhasePresenter
	RecordingPresenter  *presenter.RecordingPresenter
	ViewfinderPresenter *presenter.ViewfinderPresenter
	PreviewPresenter    *presenter.PreviewPresenter
	OutcomePresenter    *presenter.OutcomePresenter
	ReadyWatcher        *presenter.ReadyWatcher
	Loop                *presenter.Loop
}

// BuildContainer constructs every component. The geometry selection runs
// here, once, from the configured viewport. Side-effects are limited to
// opening the journal; the UI is built by the app afterwards.
func BuildContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger, cfgPath string, haptics camera.Haptics) *AppContainer {
	c := &AppContainer{Config: cfg, Logger: logger, Haptics: haptics}
	c.Viewport = model.NewViewportModel(cfg.WindowWidth, cfg.WindowHeight, cfg.Ratios())
	c.Shutter = &model.ShutterModel{}
	c.Recording = model.NewRecordingModel()
	sel := c.Viewport.Selection()
	logger.Info("capture geometry selected", "ratio", sel.Ratio.String(), "camera_height", sel.CameraHeight,
		"viewport_w", cfg.WindowWidth, "viewport_h", cfg.WindowHeight)

	c.CaptureSvc = domcapture.NewCaptureService(logger, capture.Screen{}, cfg.FrameInterval())
	c.CaptureSvc.SetRegionProvider(capture.AspectRegion(sel.Ratio, capture.Bounds, logger))
	c.Camera = screencam.New(logger, c.CaptureSvc, c.CaptureSvc, screencam.Options{
		OutputDir:   cfg.OutputDir,
		Ratio:       sel.Ratio,
		JPEGQuality: cfg.JPEGQuality,
		FPS:         cfg.RecordFPS,
		MaxFrames:   cfg.MaxRecordFrames,
		MaxWidth:    cfg.RecordMaxWidth,
	})
	c.Position = geo.NewMock(cfg.MockLatitude, cfg.MockLongitude, cfg.MockSeed)

	if j, err := store.Open(ctx, cfg.JournalPath); err != nil {
		logger.Warn("capture journal unavailable", "path", cfg.JournalPath, "error", err)
	} else {
		c.Journal = j
		c.Recorder = store.NewRecorder(logger, j, 16)
	}

	c.RootView = view.NewRootView(cfg, cfgPath, logger)
	c.UI = c.RootView
	c.OutcomePresenter = presenter.NewOutcomePresenter(c.UI, haptics)

	c.Session = session.New(logger, session.Capabilities{Camera: c.Camera, Position: c.Position}, session.Options{
		UserComment: cfg.UserComment,
		OnOutcome:   c.onOutcome,
	})
	return c
}

// onOutcome runs on the session goroutine.
func (c *AppContainer) onOutcome(o session.Outcome) {
	c.OutcomePresenter.Handle(o)
	switch o.Kind {
	case session.OutcomePhotoCaptured, session.OutcomeRecordingSaved:
		c.Recorder.Submit(o.Artifact)
	}
}

// WirePresenters builds the presenters once the root view exists.
func (c *AppContainer) WirePresenters(schedule presenter.Scheduler) {
	camW, camH := c.Viewport.CameraSize()
	c.ShutterPresenter = presenter.NewShutterPresenter(c.Shutter, c.Session, c.Haptics, c.Config.LongPress(), schedule)
	c.PhasePresenter = presenter.NewPhasePresenter(c.Session, c.Shutter, c.UI)
	c.RecordingPresenter = presenter.NewRecordingPresenter(c.Recording, c.Session, c.UI)
	c.ViewfinderPresenter = presenter.NewViewfinderPresenter(c.CaptureSvc, c.UI, c.Viewport.Selection().Ratio, camW, camH, c.Logger)
	c.PreviewPresenter = presenter.NewPreviewPresenter(c.Session, c.Viewport, c.UI, c.Haptics,
		presenter.FileLoader(screencam.PathFromURI), c.Config.PreviewCacheSize, c.Logger)
	c.ReadyWatcher = presenter.NewReadyWatcher(c.Session, c.Camera, c.Logger, 0)
	c.Session.AddListener(c.PhasePresenter.OnState)
}

// Close releases services in reverse construction order.
func (c *AppContainer) Close() {
	if c.ReadyWatcher != nil {
		c.ReadyWatcher.Stop()
	}
	if c.ViewfinderPresenter != nil {
		c.ViewfinderPresenter.Close()
	}
	c.Session.Close()
	c.CaptureSvc.Stop()
	c.Recorder.Close()
	if c.Journal != nil {
		if err := c.Journal.Close(); err != nil {
			c.Logger.Error("journal close", "error", err)
		}
	}
}
