package components

import "gonum.org/v1/gonum/spatial/r2"

// Transform is a snapshot of a body's motion, refreshed after every tick.
type Transform struct {
	Position r2.Vec
	Velocity r2.Vec  `inspect:"vec,max:1800"`
	Spin     float64 `inspect:"label,fmt:%.2f rad/s"`
}

// Speed returns the magnitude of the snapshot velocity.
func (t Transform) Speed() float64 {
	return r2.Norm(t.Velocity)
}
