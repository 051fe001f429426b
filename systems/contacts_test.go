package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/physics"
)

func TestClassifyGoalContact(t *testing.T) {
	puck := ContactBody{Filter: physics.PuckFilter, Tag: components.TagPuck}
	top := ContactBody{Filter: physics.GoalFilter, Tag: components.TagTopGoal}
	bottom := ContactBody{Filter: physics.GoalFilter, Tag: components.TagBottomGoal}
	paddle := ContactBody{Filter: physics.PaddleFilter, Tag: components.TagPaddle1}
	wall := ContactBody{Filter: physics.WallFilter, Tag: components.TagWalls}
	oddGoal := ContactBody{Filter: physics.GoalFilter, Tag: "sideGoal"}

	tests := []struct {
		name string
		a, b ContactBody
		side components.GoalSide
		ok   bool
	}{
		{"puck then top goal", puck, top, components.GoalTop, true},
		{"top goal then puck", top, puck, components.GoalTop, true},
		{"puck and bottom goal", puck, bottom, components.GoalBottom, true},
		{"bottom goal and puck", bottom, puck, components.GoalBottom, true},
		{"puck and paddle", puck, paddle, 0, false},
		{"puck and wall", puck, wall, 0, false},
		{"paddle and goal", paddle, top, 0, false},
		{"goal and goal", top, bottom, 0, false},
		{"unknown goal identity", puck, oddGoal, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			side, ok := ClassifyGoalContact(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.side, side)
			}
		})
	}
}

func TestScorer(t *testing.T) {
	assert.Equal(t, components.Player2, Scorer(components.GoalTop))
	assert.Equal(t, components.Player1, Scorer(components.GoalBottom))
}
