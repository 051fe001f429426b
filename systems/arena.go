package systems

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/physics"
)

// Registry indexes the bodies of one table and links them to their entities.
type Registry struct {
	world  *ecs.World
	engine physics.Engine

	puck    ecs.Entity
	paddles [2]ecs.Entity
	goals   [2]ecs.Entity
	walls   ecs.Entity
	byBody  map[physics.BodyID]ecs.Entity

	bodyMap      *ecs.Map1[components.Body]
	filterMap    *ecs.Map1[components.Filter]
	tagMap       *ecs.Map1[components.Tag]
	transformMap *ecs.Map1[components.Transform]
	paddleMap    *ecs.Map[components.Paddle]
	puckMap      *ecs.Map[components.Puck]
	goalMap      *ecs.Map[components.Goal]

	bodyFilter *ecs.Filter3[components.Body, components.Tag, components.Transform]
}

// SpawnArena creates the walls, both goals, both paddles and the puck in the
// engine and mirrors each as an entity in world.
func SpawnArena(world *ecs.World, engine physics.Engine, cfg *config.Config) *Registry {
	r := &Registry{
		world:        world,
		engine:       engine,
		byBody:       make(map[physics.BodyID]ecs.Entity),
		bodyMap:      ecs.NewMap1[components.Body](world),
		filterMap:    ecs.NewMap1[components.Filter](world),
		tagMap:       ecs.NewMap1[components.Tag](world),
		transformMap: ecs.NewMap1[components.Transform](world),
		paddleMap:    ecs.NewMap[components.Paddle](world),
		puckMap:      ecs.NewMap[components.Puck](world),
		goalMap:      ecs.NewMap[components.Goal](world),
		bodyFilter:   ecs.NewFilter3[components.Body, components.Tag, components.Transform](world),
	}

	staticMapper := ecs.NewMap4[components.Body, components.Filter, components.Tag, components.Transform](world)
	goalMapper := ecs.NewMap5[components.Body, components.Filter, components.Tag, components.Transform, components.Goal](world)
	paddleMapper := ecs.NewMap5[components.Body, components.Filter, components.Tag, components.Transform, components.Paddle](world)
	puckMapper := ecs.NewMap5[components.Body, components.Filter, components.Tag, components.Transform, components.Puck](world)

	arena := cfg.Arena
	d := cfg.Derived

	// Walls: one closed loop whose inner faces lie on the arena border.
	wallDef := physics.BodyDef{
		Tag:         components.TagWalls,
		Shape:       physics.ShapeEdgeLoop,
		Radius:      arena.WallThickness,
		Size:        r2.Vec{X: arena.Width, Y: arena.Height},
		Restitution: arena.WallRestitution,
		Friction:    arena.WallFriction,
		Filter:      physics.WallFilter,
	}
	body, filter, tag, tf := r.create(wallDef)
	body.HalfExtents = r2.Scale(0.5, wallDef.Size)
	r.walls = staticMapper.NewEntity(&body, &filter, &tag, &tf)
	r.byBody[body.ID] = r.walls

	// Goals: sensors that contact-test the puck and never deflect it.
	goalSize := r2.Vec{X: arena.GoalWidth, Y: arena.GoalHeight}
	for _, g := range []struct {
		side components.GoalSide
		tag  string
		pos  r2.Vec
	}{
		{components.GoalTop, components.TagTopGoal, d.TopGoal},
		{components.GoalBottom, components.TagBottomGoal, d.BottomGoal},
	} {
		def := physics.BodyDef{
			Tag:      g.tag,
			Shape:    physics.ShapeRect,
			Size:     goalSize,
			Position: g.pos,
			Sensor:   true,
			Filter:   physics.GoalFilter,
		}
		body, filter, tag, tf := r.create(def)
		body.HalfExtents = r2.Scale(0.5, goalSize)
		goal := components.Goal{Side: g.side}
		e := goalMapper.NewEntity(&body, &filter, &tag, &tf, &goal)
		r.goals[g.side] = e
		r.byBody[body.ID] = e
	}

	// Paddles, in binding priority order.
	for _, p := range components.Players {
		home := d.PaddleHome[p.Index()]
		def := physics.BodyDef{
			Tag:           components.PaddleTag(p),
			Shape:         physics.ShapeCircle,
			Radius:        cfg.Paddle.Radius,
			Position:      home,
			Dynamic:       true,
			Mass:          cfg.Paddle.Mass,
			Restitution:   cfg.Paddle.Restitution,
			Friction:      cfg.Paddle.Friction,
			LinearDamping: cfg.Paddle.LinearDamping,
			Filter:        physics.PaddleFilter,
		}
		body, filter, tag, tf := r.create(def)
		paddle := components.Paddle{
			Player: p,
			Home:   home,
			Bounds: PaddleBounds(cfg, p),
		}
		e := paddleMapper.NewEntity(&body, &filter, &tag, &tf, &paddle)
		r.paddles[p.Index()] = e
		r.byBody[body.ID] = e
	}

	puckDef := physics.BodyDef{
		Tag:            components.TagPuck,
		Shape:          physics.ShapeCircle,
		Radius:         cfg.Puck.Radius,
		Position:       d.Center,
		Dynamic:        true,
		Mass:           cfg.Puck.Mass,
		Restitution:    cfg.Puck.Restitution,
		Friction:       cfg.Puck.Friction,
		LinearDamping:  cfg.Puck.LinearDamping,
		AngularDamping: cfg.Puck.AngularDamping,
		Filter:         physics.PuckFilter,
	}
	body, filter, tag, tf = r.create(puckDef)
	puck := components.Puck{Home: d.Center}
	r.puck = puckMapper.NewEntity(&body, &filter, &tag, &tf, &puck)
	r.byBody[body.ID] = r.puck

	return r
}

// create adds def to the engine and returns the shared components for it.
func (r *Registry) create(def physics.BodyDef) (components.Body, components.Filter, components.Tag, components.Transform) {
	id := r.engine.AddBody(def)
	body := components.Body{
		ID:      id,
		Shape:   def.Shape,
		Radius:  def.Radius,
		Dynamic: def.Dynamic,
	}
	return body, components.Filter{Filter: def.Filter}, components.Tag{Name: def.Tag}, components.Transform{Position: def.Position}
}

// PaddleBounds returns the legal centre positions of a player's paddle: the
// arena inset by the paddle radius, cut to the player's own half.
func PaddleBounds(cfg *config.Config, p components.Player) r2.Box {
	rad := cfg.Paddle.Radius
	mid := cfg.Derived.MidY
	b := r2.Box{
		Min: r2.Vec{X: rad, Y: rad},
		Max: r2.Vec{X: cfg.Arena.Width - rad, Y: cfg.Arena.Height - rad},
	}
	if p == components.Player1 {
		b.Min.Y = mid + rad
	} else {
		b.Max.Y = mid - rad
	}
	return b
}

// Engine returns the physics engine the bodies live in.
func (r *Registry) Engine() physics.Engine {
	return r.engine
}

// World returns the ECS world holding the body entities.
func (r *Registry) World() *ecs.World {
	return r.world
}

// Puck returns the puck entity.
func (r *Registry) Puck() ecs.Entity {
	return r.puck
}

// PuckID returns the physics body of the puck.
func (r *Registry) PuckID() physics.BodyID {
	return r.bodyMap.Get(r.puck).ID
}

// PuckHome returns where the puck is placed on reset.
func (r *Registry) PuckHome() r2.Vec {
	return r.puckMap.Get(r.puck).Home
}

// Paddle returns the paddle entity of a player.
func (r *Registry) Paddle(p components.Player) ecs.Entity {
	return r.paddles[p.Index()]
}

// PaddleID returns the physics body of a player's paddle.
func (r *Registry) PaddleID(p components.Player) physics.BodyID {
	return r.bodyMap.Get(r.paddles[p.Index()]).ID
}

// PaddleInfo returns the paddle component of a player.
func (r *Registry) PaddleInfo(p components.Player) *components.Paddle {
	return r.paddleMap.Get(r.paddles[p.Index()])
}

// Goal returns the goal entity on a side.
func (r *Registry) Goal(side components.GoalSide) ecs.Entity {
	return r.goals[side]
}

// Walls returns the boundary entity.
func (r *Registry) Walls() ecs.Entity {
	return r.walls
}

// Body returns the body component of an entity.
func (r *Registry) Body(e ecs.Entity) *components.Body {
	return r.bodyMap.Get(e)
}

// Transform returns the last synced transform of an entity.
func (r *Registry) Transform(e ecs.Entity) *components.Transform {
	return r.transformMap.Get(e)
}

// EntityOf maps a physics body back to its entity.
func (r *Registry) EntityOf(id physics.BodyID) (ecs.Entity, bool) {
	e, ok := r.byBody[id]
	return e, ok
}

// FilterOf returns the collision filter of a body.
func (r *Registry) FilterOf(id physics.BodyID) (physics.Filter, bool) {
	e, ok := r.byBody[id]
	if !ok {
		return physics.Filter{}, false
	}
	return r.filterMap.Get(e).Filter, true
}

// TagOf returns the identity tag of a body, or "" for an unknown body.
func (r *Registry) TagOf(id physics.BodyID) string {
	e, ok := r.byBody[id]
	if !ok {
		return ""
	}
	return r.tagMap.Get(e).Name
}

// Describe returns what contact classification needs to know about a body.
func (r *Registry) Describe(id physics.BodyID) (ContactBody, bool) {
	e, ok := r.byBody[id]
	if !ok {
		return ContactBody{}, false
	}
	return ContactBody{Filter: r.filterMap.Get(e).Filter, Tag: r.tagMap.Get(e).Name}, true
}

// Components returns pointers to every component of e, identity first and
// role last, for reflective display.
func (r *Registry) Components(e ecs.Entity) []any {
	if !r.world.Alive(e) {
		return nil
	}
	out := []any{r.tagMap.Get(e), r.bodyMap.Get(e), r.transformMap.Get(e), r.filterMap.Get(e)}
	switch {
	case r.paddleMap.Has(e):
		out = append(out, r.paddleMap.Get(e))
	case r.puckMap.Has(e):
		out = append(out, r.puckMap.Get(e))
	case r.goalMap.Has(e):
		out = append(out, r.goalMap.Get(e))
	}
	return out
}

// Pick returns the body under p, preferring the one whose centre is nearest.
// The wall loop is never picked.
func (r *Registry) Pick(p r2.Vec) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := -1.0

	query := r.bodyFilter.Query()
	for query.Next() {
		body, _, tf := query.Get()
		var hit bool
		switch body.Shape {
		case physics.ShapeCircle:
			hit = distanceSq(p, tf.Position) <= body.Radius*body.Radius
		case physics.ShapeRect:
			box := r2.Box{Min: r2.Sub(tf.Position, body.HalfExtents), Max: r2.Add(tf.Position, body.HalfExtents)}
			hit = BoxContains(box, p)
		}
		if d := distanceSq(p, tf.Position); hit && (bestDist < 0 || d < bestDist) {
			best, bestDist = query.Entity(), d
		}
	}
	return best, bestDist >= 0
}
