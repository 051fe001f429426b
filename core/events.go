package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/airhockey/components"
)

// State is the round state seen from outside the core.
type State uint8

const (
	Playing State = iota
	GoalPause
	ManuallyPaused
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case GoalPause:
		return "goal_pause"
	case ManuallyPaused:
		return "manually_paused"
	}
	return "unknown"
}

// Score holds both players' goals for the current match.
type Score struct {
	P1 int
	P2 int
}

// Of returns a player's goals.
func (s Score) Of(p components.Player) int {
	switch p {
	case components.Player1:
		return s.P1
	case components.Player2:
		return s.P2
	}
	return 0
}

func (s *Score) add(p components.Player) {
	switch p {
	case components.Player1:
		s.P1++
	case components.Player2:
		s.P2++
	}
}

func (s Score) String() string {
	return fmt.Sprintf("%d-%d", s.P1, s.P2)
}

// Overlay is what the goal screen shows while the round is paused.
type Overlay struct {
	Scorer      components.Player
	Score       Score
	Winner      components.Player // PlayerNone unless this goal ended the match
	DismissRect r2.Box            // Tap target in arena coordinates
	AutoDismiss bool              // Dismissed by timer rather than a tap
}

// Title is the headline naming the scorer or the match winner.
func (o Overlay) Title() string {
	if o.Winner.Valid() {
		return fmt.Sprintf("Player %d wins!", o.Winner)
	}
	return fmt.Sprintf("Player %d scores!", o.Scorer)
}

// Detail lists both scores.
func (o Overlay) Detail() string {
	return fmt.Sprintf("Player 1: %d   Player 2: %d", o.Score.P1, o.Score.P2)
}

// ButtonLabel is the caption of the dismiss control.
func (o Overlay) ButtonLabel() string {
	if o.Winner.Valid() {
		return "New match"
	}
	return "Continue"
}

// GoalEvent describes one scoring contact.
type GoalEvent struct {
	Match         int
	Tick          uint64
	SimTime       float64
	Side          components.GoalSide
	Scorer        components.Player
	Score         Score // After the goal
	RallySeconds  float64
	PeakPuckSpeed float64
}

// ResetEvent describes a dismissal that put the table back in play.
type ResetEvent struct {
	Match    int
	Tick     uint64
	Score    Score
	NewMatch bool // The dismissed goal had won the previous match
	Auto     bool
}

// Listener receives round lifecycle notifications. Calls happen synchronously
// on the thread driving the core.
type Listener interface {
	GoalScored(ev GoalEvent)
	MatchWon(ev GoalEvent)
	RoundReset(ev ResetEvent)
	PauseChanged(paused bool)
}

// NopListener implements Listener with no-ops, for embedding.
type NopListener struct{}

func (NopListener) GoalScored(GoalEvent)  {}
func (NopListener) MatchWon(GoalEvent)    {}
func (NopListener) RoundReset(ResetEvent) {}
func (NopListener) PauseChanged(bool)     {}

// PhaseTimer is told when each phase of a tick begins.
type PhaseTimer interface {
	StartPhase(phase string)
}
