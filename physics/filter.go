// Package physics defines collision filtering and the rigid-body engine the game runs on.
package physics

import (
	"strconv"
	"strings"
)

// Category is a bit flag identifying what kind of body a shape belongs to.
type Category uint32

const (
	CategoryNone   Category = 0
	CategoryPuck   Category = 1 << 0
	CategoryPaddle Category = 1 << 1
	CategoryWall   Category = 1 << 2
	CategoryGoal   Category = 1 << 3
	CategoryAll    Category = ^Category(0)
)

// Has reports whether every bit of o is set in c.
func (c Category) Has(o Category) bool {
	return c&o == o
}

var categoryNames = []struct {
	c    Category
	name string
}{
	{CategoryPuck, "puck"},
	{CategoryPaddle, "paddle"},
	{CategoryWall, "wall"},
	{CategoryGoal, "goal"},
}

// String lists the named bits joined by "|".
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryAll:
		return "all"
	}
	var parts []string
	for _, n := range categoryNames {
		if c.Has(n.c) {
			parts = append(parts, n.name)
			c &^= n.c
		}
	}
	if c != 0 {
		parts = append(parts, "0x"+strconv.FormatUint(uint64(c), 16))
	}
	return strings.Join(parts, "|")
}

// Filter is the fixed collision/contact configuration of a body.
type Filter struct {
	Category    Category // What this body is
	Collision   Category // Categories this body physically responds to
	ContactTest Category // Categories that produce contact events with this body
}

// ShouldCollide reports whether two bodies physically interact.
// Both sides must accept the other's category.
func ShouldCollide(a, b Filter) bool {
	return a.Collision&b.Category != 0 && b.Collision&a.Category != 0
}

// ShouldContact reports whether touching bodies generate a contact event.
// Either side asking is enough, independent of physical collision.
func ShouldContact(a, b Filter) bool {
	return a.ContactTest&b.Category != 0 || b.ContactTest&a.Category != 0
}

// PairMask combines the categories of a contacting pair.
func PairMask(a, b Filter) Category {
	return a.Category | b.Category
}

// Standard filters for the table. Goals never deflect the puck: they only
// contact-test it, which keeps scoring separate from physical collision.
var (
	PuckFilter = Filter{
		Category:    CategoryPuck,
		Collision:   CategoryPaddle | CategoryWall,
		ContactTest: CategoryGoal,
	}
	PaddleFilter = Filter{
		Category:  CategoryPaddle,
		Collision: CategoryPuck,
	}
	WallFilter = Filter{
		Category:  CategoryWall,
		Collision: CategoryPuck,
	}
	GoalFilter = Filter{
		Category:    CategoryGoal,
		ContactTest: CategoryPuck,
	}
)
