package core

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/physics"
	"github.com/pthm-cable/airhockey/systems"
)

// World is everything one table owns: bodies, score and round flags.
// It is only mutated through Core.
type World struct {
	ECS      *ecs.World
	Registry *systems.Registry
	Score    Score

	goalPaused   bool
	manualPaused bool
	overlay      *Overlay
	matchOver    bool
	match        int
}

// newWorld spawns the table into engine.
func newWorld(cfg *config.Config, engine physics.Engine) *World {
	ecsWorld := ecs.NewWorld()
	return &World{
		ECS:      ecsWorld,
		Registry: systems.SpawnArena(ecsWorld, engine, cfg),
		match:    1,
	}
}
