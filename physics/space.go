package physics

import (
	"math"

	"github.com/jakecoffman/cp"
	"gonum.org/v1/gonum/spatial/r2"
)

// All shapes share one collision type so a single handler sees every pair and
// applies the Filter rules itself.
const bodyCollisionType cp.CollisionType = 1

// shapeData is attached to every Chipmunk shape.
type shapeData struct {
	id     BodyID
	filter Filter
}

// Space is an Engine backed by Chipmunk2D.
type Space struct {
	space   *cp.Space
	bodies  []*cp.Body // index = BodyID-1
	dynamic []bool

	pending   [][2]BodyID // contacts that began during the current Step
	onContact func(a, b BodyID)
}

// NewSpace creates an empty, gravity-free space.
// iterations <= 0 keeps the Chipmunk default.
func NewSpace(iterations int) *Space {
	s := &Space{space: cp.NewSpace()}
	s.space.SetGravity(cp.Vector{})
	if iterations > 0 {
		s.space.Iterations = uint(iterations)
	}

	handler := s.space.NewCollisionHandler(bodyCollisionType, bodyCollisionType)
	handler.BeginFunc = s.begin
	return s
}

// begin queues contact events and decides whether the pair responds physically.
// Returning false makes Chipmunk ignore the pair until it separates.
func (s *Space) begin(arb *cp.Arbiter, _ *cp.Space, _ interface{}) bool {
	sa, sb := arb.Shapes()
	da, okA := sa.UserData.(shapeData)
	db, okB := sb.UserData.(shapeData)
	if !okA || !okB {
		return true
	}

	if ShouldContact(da.filter, db.filter) {
		s.pending = append(s.pending, [2]BodyID{da.id, db.id})
	}
	return ShouldCollide(da.filter, db.filter)
}

// SetContactHandler installs the contact-begin callback.
func (s *Space) SetContactHandler(fn func(a, b BodyID)) {
	s.onContact = fn
}

// AddBody creates a body and its shapes from def.
func (s *Space) AddBody(def BodyDef) BodyID {
	id := BodyID(len(s.bodies) + 1)
	data := shapeData{id: id, filter: def.Filter}

	var body *cp.Body
	if def.Dynamic {
		body = cp.NewBody(def.Mass, moment(def))
		installDamping(body, def.LinearDamping, def.AngularDamping)
	} else {
		body = cp.NewStaticBody()
	}
	body.SetPosition(vec(def.Position))
	body.UserData = id
	s.space.AddBody(body)

	for _, shape := range shapesFor(body, def) {
		shape.SetElasticity(def.Restitution)
		shape.SetFriction(def.Friction)
		shape.SetSensor(def.Sensor)
		shape.SetCollisionType(bodyCollisionType)
		shape.UserData = data
		s.space.AddShape(shape)
	}

	s.bodies = append(s.bodies, body)
	s.dynamic = append(s.dynamic, def.Dynamic)
	return id
}

// moment returns the rotational inertia for a dynamic body.
func moment(def BodyDef) float64 {
	switch def.Shape {
	case ShapeRect:
		return cp.MomentForBox(def.Mass, def.Size.X, def.Size.Y)
	default:
		return cp.MomentForCircle(def.Mass, 0, def.Radius, cp.Vector{})
	}
}

// shapesFor builds the collision geometry for def, attached to body.
func shapesFor(body *cp.Body, def BodyDef) []*cp.Shape {
	switch def.Shape {
	case ShapeRect:
		return []*cp.Shape{cp.NewBox(body, def.Size.X, def.Size.Y, 0)}
	case ShapeEdgeLoop:
		return edgeLoop(body, def.Size, def.Radius)
	default:
		return []*cp.Shape{cp.NewCircle(body, def.Radius, cp.Vector{})}
	}
}

// edgeLoop builds four thick segments whose inner faces lie exactly on the
// rectangle (0,0)-(size) in body space. The corners overlap so nothing slips
// through a seam.
func edgeLoop(body *cp.Body, size r2.Vec, thickness float64) []*cp.Shape {
	r := thickness / 2
	w, h := size.X, size.Y
	bl := cp.Vector{X: -r, Y: -r}
	br := cp.Vector{X: w + r, Y: -r}
	tl := cp.Vector{X: -r, Y: h + r}
	tr := cp.Vector{X: w + r, Y: h + r}
	return []*cp.Shape{
		cp.NewSegment(body, bl, br, r),
		cp.NewSegment(body, tl, tr, r),
		cp.NewSegment(body, bl, tl, r),
		cp.NewSegment(body, br, tr, r),
	}
}

// installDamping replaces the default integrator with one that applies
// per-body exponential damping.
func installDamping(body *cp.Body, linear, angular float64) {
	if linear == 0 && angular == 0 {
		return
	}
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, damping, dt float64) {
		w := b.AngularVelocity()
		cp.BodyUpdateVelocity(b, gravity, damping*math.Exp(-linear*dt), dt)
		b.SetAngularVelocity(w * damping * math.Exp(-angular*dt))
	})
}

// Step advances the simulation and then delivers the contacts that began.
func (s *Space) Step(dt float64) {
	s.space.Step(dt)

	for _, pair := range s.pending {
		if s.onContact != nil {
			s.onContact(pair[0], pair[1])
		}
	}
	s.pending = s.pending[:0]
}

func (s *Space) body(id BodyID) *cp.Body {
	if id < 1 || int(id) > len(s.bodies) {
		return nil
	}
	return s.bodies[id-1]
}

// dynamicBody returns the body only if it is simulated.
func (s *Space) dynamicBody(id BodyID) *cp.Body {
	if b := s.body(id); b != nil && s.dynamic[id-1] {
		return b
	}
	return nil
}

// Position returns the body position, or the zero vector for an unknown ID.
func (s *Space) Position(id BodyID) r2.Vec {
	if b := s.body(id); b != nil {
		return fromVec(b.Position())
	}
	return r2.Vec{}
}

// SetPosition teleports a body.
func (s *Space) SetPosition(id BodyID, p r2.Vec) {
	if b := s.body(id); b != nil {
		b.SetPosition(vec(p))
	}
}

// Velocity returns the linear velocity of a body.
func (s *Space) Velocity(id BodyID) r2.Vec {
	if b := s.body(id); b != nil {
		return fromVec(b.Velocity())
	}
	return r2.Vec{}
}

// SetVelocity overwrites the linear velocity of a dynamic body.
func (s *Space) SetVelocity(id BodyID, v r2.Vec) {
	if b := s.dynamicBody(id); b != nil {
		b.SetVelocity(v.X, v.Y)
	}
}

// AngularVelocity returns the spin of a body in radians per second.
func (s *Space) AngularVelocity(id BodyID) float64 {
	if b := s.body(id); b != nil {
		return b.AngularVelocity()
	}
	return 0
}

// SetAngularVelocity overwrites the spin of a dynamic body.
func (s *Space) SetAngularVelocity(id BodyID, w float64) {
	if b := s.dynamicBody(id); b != nil {
		b.SetAngularVelocity(w)
	}
}

func vec(v r2.Vec) cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}

func fromVec(v cp.Vector) r2.Vec {
	return r2.Vec{X: v.X, Y: v.Y}
}
