package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/physics"
)

func TestSpawnArenaCreatesEveryBody(t *testing.T) {
	cfg, reg := newTable(t)
	SyncTransforms(reg)

	bodies := reg.Snapshot(nil)
	require.Len(t, bodies, 6)

	tags := make(map[string]BodyState)
	for _, b := range bodies {
		tags[b.Tag] = b
	}
	for _, tag := range []string{
		components.TagWalls, components.TagTopGoal, components.TagBottomGoal,
		components.TagPaddle1, components.TagPaddle2, components.TagPuck,
	} {
		assert.Contains(t, tags, tag)
	}

	assert.Equal(t, cfg.Derived.Center, tags[components.TagPuck].Position)
	assert.Equal(t, cfg.Derived.PaddleHome[0], tags[components.TagPaddle1].Position)
	assert.Equal(t, cfg.Derived.PaddleHome[1], tags[components.TagPaddle2].Position)
	assert.Equal(t, cfg.Derived.TopGoal, tags[components.TagTopGoal].Position)
	assert.Equal(t, cfg.Derived.BottomGoal, tags[components.TagBottomGoal].Position)
	assert.True(t, tags[components.TagPuck].Dynamic)
	assert.False(t, tags[components.TagTopGoal].Dynamic)
}

func TestSpawnArenaAssignsFilters(t *testing.T) {
	_, reg := newTable(t)

	tests := []struct {
		name string
		id   physics.BodyID
		want physics.Filter
	}{
		{"puck", reg.PuckID(), physics.PuckFilter},
		{"paddle1", reg.PaddleID(components.Player1), physics.PaddleFilter},
		{"paddle2", reg.PaddleID(components.Player2), physics.PaddleFilter},
		{"top goal", reg.Body(reg.Goal(components.GoalTop)).ID, physics.GoalFilter},
		{"bottom goal", reg.Body(reg.Goal(components.GoalBottom)).ID, physics.GoalFilter},
		{"walls", reg.Body(reg.Walls()).ID, physics.WallFilter},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := reg.FilterOf(tt.id)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistryLookups(t *testing.T) {
	_, reg := newTable(t)

	e, ok := reg.EntityOf(reg.PuckID())
	require.True(t, ok)
	assert.Equal(t, reg.Puck(), e)
	assert.Equal(t, components.TagPuck, reg.TagOf(reg.PuckID()))

	_, ok = reg.EntityOf(999)
	assert.False(t, ok)
	_, ok = reg.FilterOf(999)
	assert.False(t, ok)
	assert.Empty(t, reg.TagOf(999))

	desc, ok := reg.Describe(reg.Body(reg.Goal(components.GoalTop)).ID)
	require.True(t, ok)
	assert.Equal(t, components.TagTopGoal, desc.Tag)
}

func TestPaddleBounds(t *testing.T) {
	cfg, _ := newTable(t)
	r := cfg.Paddle.Radius
	mid := cfg.Derived.MidY

	top := PaddleBounds(cfg, components.Player1)
	assert.Equal(t, r2.Vec{X: r, Y: mid + r}, top.Min)
	assert.Equal(t, r2.Vec{X: cfg.Arena.Width - r, Y: cfg.Arena.Height - r}, top.Max)

	bottom := PaddleBounds(cfg, components.Player2)
	assert.Equal(t, r2.Vec{X: r, Y: r}, bottom.Min)
	assert.Equal(t, r2.Vec{X: cfg.Arena.Width - r, Y: mid - r}, bottom.Max)

	assert.True(t, BoxContains(top, cfg.Derived.PaddleHome[0]))
	assert.True(t, BoxContains(bottom, cfg.Derived.PaddleHome[1]))
}

func TestPickFindsBodiesUnderPoint(t *testing.T) {
	cfg, reg := newTable(t)
	SyncTransforms(reg)
	d := cfg.Derived

	e, ok := reg.Pick(r2.Add(d.Center, r2.Vec{X: 3}))
	require.True(t, ok)
	assert.Equal(t, reg.Puck(), e)

	e, ok = reg.Pick(d.PaddleHome[1])
	require.True(t, ok)
	assert.Equal(t, reg.Paddle(components.Player2), e)

	e, ok = reg.Pick(d.TopGoal)
	require.True(t, ok)
	assert.Equal(t, reg.Goal(components.GoalTop), e)

	// Open table, and the wall loop is never picked
	_, ok = reg.Pick(r2.Vec{X: 100, Y: 500})
	assert.False(t, ok)
	_, ok = reg.Pick(r2.Vec{X: -5, Y: 500})
	assert.False(t, ok)
}

func TestComponentsListsRoleLast(t *testing.T) {
	_, reg := newTable(t)

	comps := reg.Components(reg.Paddle(components.Player1))
	require.Len(t, comps, 5)
	assert.IsType(t, &components.Tag{}, comps[0])
	paddle, ok := comps[4].(*components.Paddle)
	require.True(t, ok)
	assert.Equal(t, components.Player1, paddle.Player)

	comps = reg.Components(reg.Walls())
	assert.Len(t, comps, 4)
}
