// Package components defines ECS components for the air hockey table.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Player identifies one side of the table.
type Player uint8

const (
	PlayerNone Player = iota
	Player1           // Upper half, defends the top goal
	Player2           // Lower half, defends the bottom goal
)

// Players lists both players in binding priority order.
var Players = [2]Player{Player1, Player2}

// Index returns 0 for Player1 and 1 for Player2.
func (p Player) Index() int {
	return int(p) - 1
}

// Valid reports whether p names a real player.
func (p Player) Valid() bool {
	return p == Player1 || p == Player2
}

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Player1:
		return Player2
	case Player2:
		return Player1
	}
	return PlayerNone
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "player1"
	case Player2:
		return "player2"
	}
	return "none"
}

// GoalSide distinguishes the two goal sensors.
type GoalSide uint8

const (
	GoalTop    GoalSide = iota // Player 1 defends it
	GoalBottom                 // Player 2 defends it
)

// Defender returns the player whose goal this is.
func (s GoalSide) Defender() Player {
	if s == GoalTop {
		return Player1
	}
	return Player2
}

func (s GoalSide) String() string {
	if s == GoalTop {
		return "top"
	}
	return "bottom"
}

// Identity tags.
const (
	TagPaddle1    = "paddle1"
	TagPaddle2    = "paddle2"
	TagPuck       = "puck"
	TagTopGoal    = "topGoal"
	TagBottomGoal = "bottomGoal"
	TagWalls      = "walls"
)

// PaddleTag returns the identity tag of a player's paddle.
func PaddleTag(p Player) string {
	if p == Player1 {
		return TagPaddle1
	}
	return TagPaddle2
}

// Tag is the identity of a body.
type Tag struct {
	Name string
}

// Paddle marks a player-controlled pusher.
type Paddle struct {
	Player Player
	Home   r2.Vec
	Bounds r2.Box `inspect:"skip"` // Legal centre positions: radius-inset arena within own half
}

// Puck marks the puck.
type Puck struct {
	Home r2.Vec
}

// Goal marks a goal sensor.
type Goal struct {
	Side GoalSide
}
