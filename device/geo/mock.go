// Package geo provides a deterministic mock position source.
package geo

import (
	"math/rand/v2"
	"sync"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// DefaultJitter is the maximum offset in degrees applied around the base.
const DefaultJitter = 0.001

// Mock reports positions scattered around a base coordinate. The sequence
// is fully determined by the seed.
type Mock struct {
	mu     sync.Mutex
	lat    float64
	lng    float64
	jitter float64
	rng    *rand.Rand
}

// NewMock returns a mock source around (lat, lng).
func NewMock(lat, lng float64, seed uint64) *Mock {
	return &Mock{
		lat:    clamp(lat, -90, 90),
		lng:    clamp(lng, -180, 180),
		jitter: DefaultJitter,
		rng:    rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// WithJitter overrides the offset range. Zero yields the base coordinate.
func (m *Mock) WithJitter(deg float64) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deg < 0 {
		deg = -deg
	}
	m.jitter = deg
	return m
}

// CurrentPosition returns (longitude, latitude).
func (m *Mock) CurrentPosition() (lng, lat float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	dLat := (m.rng.Float64()*2 - 1) * m.jitter
	dLng := (m.rng.Float64()*2 - 1) * m.jitter
	return clamp(m.lng+dLng, -180, 180), clamp(m.lat+dLat, -90, 90)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ camera.PositionSource = (*Mock)(nil)
