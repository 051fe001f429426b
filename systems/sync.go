package systems

import (
	"sort"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/physics"
)

// SyncTransforms copies engine state into every entity's Transform.
func SyncTransforms(r *Registry) {
	engine := r.engine
	query := r.bodyFilter.Query()
	for query.Next() {
		body, _, tf := query.Get()
		tf.Position = engine.Position(body.ID)
		tf.Velocity = engine.Velocity(body.ID)
		tf.Spin = engine.AngularVelocity(body.ID)
	}
}

// BodyState is a read-only view of one body for renderers and bots.
type BodyState struct {
	ID          physics.BodyID
	Tag         string
	Shape       physics.ShapeKind
	Radius      float64
	HalfExtents r2.Vec
	Dynamic     bool
	Position    r2.Vec
	Velocity    r2.Vec
	Spin        float64
}

// Snapshot appends the synced state of every body to dst, in creation order.
func (r *Registry) Snapshot(dst []BodyState) []BodyState {
	start := len(dst)
	query := r.bodyFilter.Query()
	for query.Next() {
		body, tag, tf := query.Get()
		dst = append(dst, BodyState{
			ID:          body.ID,
			Tag:         tag.Name,
			Shape:       body.Shape,
			Radius:      body.Radius,
			HalfExtents: body.HalfExtents,
			Dynamic:     body.Dynamic,
			Position:    tf.Position,
			Velocity:    tf.Velocity,
			Spin:        tf.Spin,
		})
	}
	added := dst[start:]
	sort.Slice(added, func(i, j int) bool { return added[i].ID < added[j].ID })
	return dst
}
