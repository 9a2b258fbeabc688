package presenter

import (
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/disintegration/imaging"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/soocke/viewfinder-go/domain/camera"
	"github.com/soocke/viewfinder-go/domain/session"
	"github.com/soocke/viewfinder-go/ui/images"
)

// PreviewSession is the slice of the session the preview needs.
type PreviewSession interface {
	Snapshot() session.Snapshot
	ToggleExpanded()
	Reset()
}

// PreviewSizer maps an artifact aspect and expanded flag to a box.
type PreviewSizer interface {
	PreviewSize(aspect float64, expanded bool) (w, h int)
}

// PreviewView renders the last capture.
type PreviewView interface {
	ShowPreview(img image.Image, expanded bool, caption string)
	HidePreview()
}

// ImageLoader decodes an artifact URI.
type ImageLoader func(uri string) (image.Image, error)

// PreviewPresenter shows the latest artifact as a thumbnail or, when
// expanded, scaled to the viewport width keeping its aspect.
type PreviewPresenter struct {
	session PreviewSession
	sizer   PreviewSizer
	view    PreviewView
	haptics camera.Haptics
	load    ImageLoader
	cache   *lru.Cache[string, image.Image]
	logger  *slog.Logger

	shownID       string
	shownExpanded bool
	shown         bool
}

// NewPreviewPresenter builds a presenter caching up to cacheSize decoded
// images. load may be nil to decode local files.
func NewPreviewPresenter(s PreviewSession, sizer PreviewSizer, view PreviewView, haptics camera.Haptics, load ImageLoader, cacheSize int, logger *slog.Logger) *PreviewPresenter {
	if cacheSize <= 0 {
		cacheSize = 8
	}
	cache, _ := lru.New[string, image.Image](cacheSize)
	if load == nil {
		load = func(uri string) (image.Image, error) { return nil, errors.New("preview: no loader") }
	}
	return &PreviewPresenter{session: s, sizer: sizer, view: view, haptics: haptics, load: load, cache: cache, logger: logger}
}

// Toggle is bound to a click on the preview.
func (p *PreviewPresenter) Toggle() {
	if p == nil || p.session == nil {
		return
	}
	camera.Pulse(p.haptics, camera.ImpactNone)
	p.session.ToggleExpanded()
}

// Dismiss drops the current artifact.
func (p *PreviewPresenter) Dismiss() {
	if p == nil || p.session == nil {
		return
	}
	p.session.Reset()
}

// Tick repaints when the artifact or expanded flag changed.
func (p *PreviewPresenter) Tick() {
	if p == nil || p.session == nil || p.view == nil || p.sizer == nil {
		return
	}
	snap := p.session.Snapshot()
	if snap.Artifact == nil {
		if p.shown {
			p.view.HidePreview()
			p.shown = false
			p.shownID = ""
		}
		return
	}
	if p.shown && snap.Artifact.ID == p.shownID && snap.Expanded == p.shownExpanded {
		return
	}
	img, err := p.decoded(snap.Artifact.URI)
	if err != nil {
		if p.logger != nil {
			p.logger.Error("preview decode", "uri", snap.Artifact.URI, "error", err)
		}
		// do not retry every tick
		p.shown, p.shownID, p.shownExpanded = true, snap.Artifact.ID, snap.Expanded
		return
	}
	aspect := snap.Artifact.AspectRatio()
	if aspect == 0 {
		if b := img.Bounds(); b.Dy() > 0 {
			aspect = float64(b.Dx()) / float64(b.Dy())
		}
	}
	w, h := p.sizer.PreviewSize(aspect, snap.Expanded)
	var out image.Image
	if snap.Expanded {
		out = images.Resize(img, w, h)
	} else {
		out = images.Thumbnail(img, w, h)
	}
	p.view.ShowPreview(out, snap.Expanded, caption(snap.Artifact))
	p.shown, p.shownID, p.shownExpanded = true, snap.Artifact.ID, snap.Expanded
}

func (p *PreviewPresenter) decoded(uri string) (image.Image, error) {
	if img, ok := p.cache.Get(uri); ok {
		return img, nil
	}
	img, err := p.load(uri)
	if err != nil {
		return nil, err
	}
	p.cache.Add(uri, img)
	return img, nil
}

func caption(a *camera.Artifact) string {
	if a.Kind == camera.KindVideo {
		return "Video · " + a.Duration.Round(100 * time.Millisecond).String()
	}
	return "Photo"
}

// FileLoader decodes file:// URIs with imaging (first frame for GIFs).
func FileLoader(pathFromURI func(string) (string, error)) ImageLoader {
	return func(uri string) (image.Image, error) {
		path, err := pathFromURI(uri)
		if err != nil {
			return nil, err
		}
		return imaging.Open(path)
	}
}
