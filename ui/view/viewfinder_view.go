package view

import (
	"image"

	"github.com/soocke/viewfinder-go/domain/geometry"
	"github.com/soocke/viewfinder-go/ui/images"
	"github.com/soocke/viewfinder-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Viewfinder owns the live camera label and the capture preview label that
// overlays it.
type Viewfinder interface {
	UpdateViewfinder(img image.Image)
	ShowPreview(img image.Image, expanded bool, caption string)
	HidePreview()
}

type viewfinder struct {
	row          int
	cameraLabel  *LabelWidget
	previewLabel *LabelWidget
	cameraPhoto  *Img
	previewPhoto *Img
	previewShown bool
}

// NewViewfinder creates the camera area at row, sized w x h, with the
// preview hidden. onToggle fires on a click on the preview, onDismiss on a
// right click.
func NewViewfinder(row, w, h int, onToggle, onDismiss func()) Viewfinder {
	p := theme.CurrentPalette()
	placeholder := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	v := &viewfinder{row: row}
	v.cameraPhoto = NewPhoto(Data(images.EncodePNG(placeholder)))
	v.cameraLabel = Label(Image(v.cameraPhoto), Borderwidth(0), Background(p.AppBg))
	Grid(v.cameraLabel, Row(row), Column(0), Columnspan(3), Sticky("n"))

	v.previewLabel = Label(Borderwidth(2), Relief("solid"), Background(p.Surface), Foreground(p.Text), Compound("top"))
	Bind(v.previewLabel, "<Button-1>", Command(onToggle))
	Bind(v.previewLabel, "<Button-3>", Command(onDismiss))
	return v
}

func (v *viewfinder) UpdateViewfinder(img image.Image) {
	if v.cameraLabel == nil || img == nil {
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	// replace previous photo so obsolete pixel buffers are released
	if v.cameraPhoto != nil {
		v.cameraPhoto.Delete()
	}
	v.cameraPhoto = photo
	v.cameraLabel.Configure(Image(photo))
}

func (v *viewfinder) ShowPreview(img image.Image, expanded bool, caption string) {
	if v.previewLabel == nil || img == nil {
		return
	}
	photo := NewPhoto(Data(images.EncodePNG(img)))
	if v.previewPhoto != nil {
		v.previewPhoto.Delete()
	}
	v.previewPhoto = photo
	v.previewLabel.Configure(Image(photo), Txt(caption))
	pad := geometry.Space
	if expanded {
		Grid(v.previewLabel, Row(v.row), Column(0), Columnspan(3), Sticky("n"), Padx(pad), Pady(pad))
	} else {
		Grid(v.previewLabel, Row(v.row), Column(0), Columnspan(1), Sticky("sw"), Padx(pad), Pady(pad))
	}
	v.previewShown = true
}

func (v *viewfinder) HidePreview() {
	if v.previewLabel == nil || !v.previewShown {
		return
	}
	GridForget(v.previewLabel.Window)
	if v.previewPhoto != nil {
		v.previewPhoto.Delete()
		v.previewPhoto = nil
	}
	v.previewShown = false
}
