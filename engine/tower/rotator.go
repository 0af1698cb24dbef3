package tower

import (
	"math"
	"sync"
)

// Rotator accumulates a rotation angle at a constant rate. The angle is never wrapped, so it grows without
// bound for a positive rate. Safe for concurrent use.
type Rotator struct {
	mu    sync.RWMutex
	angle float64
	rate  float64
}

// NewRotator creates a Rotator at angle zero.
//
// Parameters:
//   - rate: angular speed in radians per second
//
// Returns:
//   - *Rotator: the new rotator
func NewRotator(rate float64) *Rotator {
	return &Rotator{rate: rate}
}

// Advance adds dt * rate to the angle and returns the new angle. Negative, NaN and infinite dt are ignored.
//
// Parameters:
//   - dt: elapsed time in seconds
//
// Returns:
//   - float64: the angle after advancing
func (r *Rotator) Advance(dt float64) float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		return r.angle
	}
	r.angle += dt * r.rate
	return r.angle
}

func (r *Rotator) Angle() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.angle
}

func (r *Rotator) Rate() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.rate
}
