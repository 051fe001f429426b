package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/physics"
)

// newTable spawns a default arena on a real engine.
func newTable(t *testing.T) (*config.Config, *Registry) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	reg := SpawnArena(ecs.NewWorld(), physics.NewSpace(cfg.Physics.Iterations), cfg)
	return cfg, reg
}
