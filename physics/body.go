package physics

import "gonum.org/v1/gonum/spatial/r2"

// BodyID identifies a body inside an Engine. Zero is never a valid ID.
type BodyID int32

// ShapeKind selects the collision geometry of a body.
type ShapeKind uint8

const (
	ShapeCircle   ShapeKind = iota // Radius
	ShapeRect                      // Size, centred on Position
	ShapeEdgeLoop                  // Closed boundary around a Size rectangle anchored at Position (bottom-left)
)

// BodyDef describes a body to create.
type BodyDef struct {
	Tag      string
	Shape    ShapeKind
	Radius   float64 // Circle radius; edge-loop wall thickness
	Size     r2.Vec  // Rect and edge-loop extents
	Position r2.Vec
	Dynamic  bool
	Sensor   bool // Detect contacts only, never respond physically

	Mass           float64
	Restitution    float64
	Friction       float64
	LinearDamping  float64 // Fraction of speed lost per second, exponential
	AngularDamping float64

	Filter Filter
}

// Engine is the rigid-body simulator the game configures and reacts to.
// Broad/narrow phase, impulse resolution and integration live behind it.
type Engine interface {
	AddBody(def BodyDef) BodyID

	Position(id BodyID) r2.Vec
	SetPosition(id BodyID, p r2.Vec)
	Velocity(id BodyID) r2.Vec
	SetVelocity(id BodyID, v r2.Vec)
	SetAngularVelocity(id BodyID, w float64)
	AngularVelocity(id BodyID) float64

	// Step advances the simulation by dt seconds and then reports every
	// contact that began during the step to the contact handler.
	Step(dt float64)

	// SetContactHandler installs the contact-begin callback.
	SetContactHandler(fn func(a, b BodyID))
}
