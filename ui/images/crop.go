package images

import (
	"errors"
	"image"
	"image/draw"
)

// CropRect returns the largest rectangle inside bounds with the x:y aspect,
// centered. It guarantees at least 1x1.
func CropRect(bounds image.Rectangle, x, y int) image.Rectangle {
	if x <= 0 || y <= 0 || bounds.Empty() {
		return bounds
	}
	w, h := bounds.Dx(), bounds.Dy()
	// widest box first, then fall back to tallest
	cw := w
	ch := int(float64(cw)*float64(y)/float64(x) + 0.5)
	if ch > h {
		ch = h
		cw = int(float64(ch)*float64(x)/float64(y) + 0.5)
		if cw > w {
			cw = w
		}
	}
	if cw < 1 {
		cw = 1
	}
	if ch < 1 {
		ch = 1
	}
	x0 := bounds.Min.X + (w-cw)/2
	y0 := bounds.Min.Y + (h-ch)/2
	return image.Rect(x0, y0, x0+cw, y0+ch)
}

// CropToAspect produces a centered crop of frame with the x:y aspect.
// Returns the cropped image (always *image.RGBA) and its rectangle relative
// to the frame.
func CropToAspect(frame *image.RGBA, x, y int) (*image.RGBA, image.Rectangle, error) {
	if frame == nil {
		return nil, image.Rectangle{}, errors.New("nil frame")
	}
	rect := CropRect(frame.Bounds(), x, y)
	sub := frame.SubImage(rect)
	if rgba, ok := sub.(*image.RGBA); ok {
		return rgba, rect, nil
	}
	out := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(out, out.Bounds(), sub, rect.Min, draw.Src)
	return out, rect, nil
}
