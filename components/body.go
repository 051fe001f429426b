package components

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/physics"
)

// Body links an entity to its physics body and records its geometry.
type Body struct {
	ID          physics.BodyID    `inspect:"label"`
	Shape       physics.ShapeKind `inspect:"skip"`
	Radius      float64           `inspect:"label,fmt:%.1f"`
	HalfExtents r2.Vec            `inspect:"skip"` // Rectangles and the wall loop
	Dynamic     bool
}

// Filter holds the fixed collision configuration of a body.
type Filter struct {
	physics.Filter
}
