package systems

import (
	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/physics"
)

// ContactBody is one side of a contact pair as the scoring rules see it.
type ContactBody struct {
	Filter physics.Filter
	Tag    string
}

// goalPair is the only category combination that scores.
const goalPair = physics.CategoryPuck | physics.CategoryGoal

// ClassifyGoalContact reports which goal a contact pair touched. Pairs whose
// combined categories are anything other than puck and goal are rejected, as
// are goal bodies with an unknown identity.
func ClassifyGoalContact(a, b ContactBody) (components.GoalSide, bool) {
	if physics.PairMask(a.Filter, b.Filter) != goalPair {
		return 0, false
	}

	goal := a
	if !goal.Filter.Category.Has(physics.CategoryGoal) {
		goal = b
	}
	return GoalSideOf(goal.Tag)
}

// GoalSideOf maps a goal identity tag to its side.
func GoalSideOf(tag string) (components.GoalSide, bool) {
	switch tag {
	case components.TagTopGoal:
		return components.GoalTop, true
	case components.TagBottomGoal:
		return components.GoalBottom, true
	}
	return 0, false
}

// Scorer returns the player credited for a goal on side: each player defends
// the goal on their own half, so the attacker scores.
func Scorer(side components.GoalSide) components.Player {
	return side.Defender().Opponent()
}
