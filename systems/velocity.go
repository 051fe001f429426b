package systems

import "gonum.org/v1/gonum/spatial/r2"

// Estimator turns pointer samples into paddle position and velocity writes.
type Estimator struct {
	reg      *Registry
	maxSpeed float64
}

// NewEstimator creates an estimator that never writes a paddle velocity
// faster than maxSpeed.
func NewEstimator(reg *Registry, maxSpeed float64) *Estimator {
	return &Estimator{reg: reg, maxSpeed: maxSpeed}
}

// Move clamps raw to the binding's legal rectangle and teleports the paddle
// there. When time has advanced since the last sample, the displacement over
// that interval becomes the paddle's velocity, capped to the max speed.
// It returns the velocity written and whether one was written at all.
func (e *Estimator) Move(b *Binding, raw r2.Vec, t float64) (r2.Vec, bool) {
	id := e.reg.PaddleID(b.Player)
	clamped := ClampToBox(raw, e.reg.PaddleInfo(b.Player).Bounds)
	engine := e.reg.Engine()

	dt := t - b.LastTime
	if dt <= 0 {
		// Duplicate or out-of-order sample: position only.
		engine.SetPosition(id, clamped)
		return r2.Vec{}, false
	}

	v := ClampMagnitude(r2.Scale(1/dt, r2.Sub(clamped, b.LastPos)), e.maxSpeed)
	engine.SetPosition(id, clamped)
	engine.SetVelocity(id, v)

	b.LastPos = clamped
	b.LastTime = t
	return v, true
}
