package images

import (
	"bytes"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	xdraw "golang.org/x/image/draw"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit scales src so that it fits within maxW x maxH preserving aspect
// ratio. If the source already fits, the original is returned.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if b.Dx() <= maxW && b.Dy() <= maxH {
		return src
	}
	if maxW < 1 {
		maxW = 1
	}
	if maxH < 1 {
		maxH = 1
	}
	return imaging.Fit(src, maxW, maxH, imaging.Box)
}

// Resize scales src to exactly w x h, stretching if the aspect differs.
func Resize(src image.Image, w, h int) image.Image {
	if src == nil || w < 1 || h < 1 {
		return src
	}
	return imaging.Resize(src, w, h, imaging.Linear)
}

// Thumbnail center-crops and scales src to fill a w x h box.
func Thumbnail(src image.Image, w, h int) image.Image {
	if src == nil || w < 1 || h < 1 {
		return src
	}
	return imaging.Fill(src, w, h, imaging.Center, imaging.Lanczos)
}

// ScaleInto draws src scaled onto the whole of dst. Cheaper than the
// imaging filters; used for video frames.
func ScaleInto(dst *image.RGBA, src image.Image) {
	if dst == nil || src == nil {
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
}

// FitSize returns the largest w x h within maxW x maxH that keeps the
// srcW:srcH aspect. It never upscales.
func FitSize(srcW, srcH, maxW int, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	if srcW <= maxW && srcH <= maxH {
		return srcW, srcH
	}
	ratio := float64(maxW) / float64(srcW)
	if r := float64(maxH) / float64(srcH); r < ratio {
		ratio = r
	}
	w := int(float64(srcW)*ratio + 0.5)
	h := int(float64(srcH)*ratio + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
