package capture

import (
	"image"
	"sync"
	"sync/atomic"
)

// Recording frames share one size for the whole clip, so buffers are
// bucketed by dimensions rather than by capacity.
var (
	framePools sync.Map // image.Point -> *sync.Pool of *image.RGBA
	poolHits   atomic.Uint64
	poolAllocs atomic.Uint64
)

// PoolStats counts how often AcquireFrame reused a buffer.
type PoolStats struct {
	Hits   uint64
	Allocs uint64
}

// FramePoolStats returns the process-wide pool counters.
func FramePoolStats() PoolStats {
	return PoolStats{Hits: poolHits.Load(), Allocs: poolAllocs.Load()}
}

func poolFor(size image.Point) *sync.Pool {
	if p, ok := framePools.Load(size); ok {
		return p.(*sync.Pool)
	}
	p, _ := framePools.LoadOrStore(size, &sync.Pool{})
	return p.(*sync.Pool)
}

// AcquireFrame returns an RGBA image covering rect with Stride width*4.
// Pixel contents are undefined. Empty rects get an image with no pixels.
func AcquireFrame(rect image.Rectangle) *image.RGBA {
	size := rect.Size()
	if size.X <= 0 || size.Y <= 0 {
		return &image.RGBA{Rect: rect}
	}
	if v := poolFor(size).Get(); v != nil {
		img := v.(*image.RGBA)
		img.Rect = rect
		poolHits.Add(1)
		return img
	}
	poolAllocs.Add(1)
	return &image.RGBA{Pix: make([]byte, size.X*size.Y*4), Stride: size.X * 4, Rect: rect}
}

// RecycleFrame hands img back for reuse. The caller must not touch it
// afterwards. Sub-images and empty frames are ignored.
func RecycleFrame(img *image.RGBA) {
	if img == nil || img.Pix == nil {
		return
	}
	size := img.Rect.Size()
	if img.Stride != size.X*4 || len(img.Pix) != size.X*size.Y*4 {
		return
	}
	poolFor(size).Put(img)
}
