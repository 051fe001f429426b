package telemetry

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/airhockey/components"
	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/core"
	"github.com/pthm-cable/airhockey/physics"
)

func newMatch(t *testing.T, winningScore int, out *OutputManager) (*core.Core, *Collector) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Round.WinningScore = winningScore
	require.NoError(t, cfg.Refresh())

	c := core.New(cfg, physics.NewSpace(cfg.Physics.Iterations))
	col := NewCollector(out, nil)
	c.AddListener(col)
	return c, col
}

// score puts the puck in the goal defended by the opponent of p, then dismisses.
func score(c *core.Core, p components.Player) {
	reg := c.World().Registry
	side := components.GoalBottom
	if p == components.Player2 {
		side = components.GoalTop
	}
	c.ContactBegin(reg.PuckID(), reg.Body(reg.Goal(side)).ID)
	c.Dismiss()
}

func TestCollectorRecordsGoals(t *testing.T) {
	c, col := newMatch(t, 0, nil)

	score(c, components.Player1)
	score(c, components.Player2)
	score(c, components.Player2)

	goals := col.Goals()
	require.Len(t, goals, 3)
	assert.Equal(t, "player1", goals[0].Scorer)
	assert.Equal(t, "bottom", goals[0].Goal)
	assert.Equal(t, "top", goals[1].Goal)
	assert.Equal(t, 1, goals[2].P1)
	assert.Equal(t, 2, goals[2].P2)
	for _, g := range goals {
		assert.Equal(t, col.MatchID(), g.MatchID)
	}

	s := col.Stats()
	assert.Equal(t, 3, s.Goals)
	assert.Equal(t, 1, s.GoalsP1)
	assert.Equal(t, 2, s.GoalsP2)
	assert.Empty(t, col.History())
}

func TestCollectorClosesMatchOnWin(t *testing.T) {
	c, col := newMatch(t, 2, nil)
	first := col.MatchID()

	score(c, components.Player2)
	score(c, components.Player1)
	c.TogglePause()
	c.TogglePause()
	reg := c.World().Registry
	c.ContactBegin(reg.PuckID(), reg.Body(reg.Goal(components.GoalTop)).ID)

	history := col.History()
	require.Len(t, history, 1)
	assert.Equal(t, first, history[0].MatchID)
	assert.Equal(t, "player2", history[0].Winner)
	assert.Equal(t, 1, history[0].Match)
	assert.Equal(t, 1, history[0].Pauses)

	// Dismissing the winning goal starts a fresh match
	c.Dismiss()
	assert.NotEqual(t, first, col.MatchID())
	assert.Empty(t, col.Goals())
	assert.Zero(t, col.Stats().Pauses)
}

func TestCollectorCountsAutoDismissals(t *testing.T) {
	col := NewCollector(nil, nil)
	col.RoundReset(core.ResetEvent{Auto: true})
	col.RoundReset(core.ResetEvent{})

	assert.Equal(t, 1, col.Stats().AutoDismissals)
}

func TestCollectorWritesOutput(t *testing.T) {
	dir := t.TempDir()
	out, err := NewOutputManager(dir)
	require.NoError(t, err)

	c, _ := newMatch(t, 1, out)
	score(c, components.Player1)
	score(c, components.Player2)
	require.NoError(t, out.Close())

	var goals []GoalRecord
	readCSV(t, filepath.Join(dir, "goals.csv"), &goals)
	require.Len(t, goals, 2)
	assert.Equal(t, 1, goals[0].Match)
	assert.Equal(t, 2, goals[1].Match)

	var matches []MatchStats
	readCSV(t, filepath.Join(dir, "matches.csv"), &matches)
	require.Len(t, matches, 2)
	assert.Equal(t, "player1", matches[0].Winner)
	assert.Equal(t, "player2", matches[1].Winner)
	assert.NotEqual(t, matches[0].MatchID, matches[1].MatchID)
}

func readCSV(t *testing.T, path string, out any) {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, gocsv.UnmarshalFile(f, out))
}

func TestCollectorLogsWriteFailuresToItsLogger(t *testing.T) {
	out, err := NewOutputManager(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, out.Close())

	var buf bytes.Buffer
	col := NewCollector(out, slog.New(slog.NewTextHandler(&buf, nil)))
	col.GoalScored(core.GoalEvent{Scorer: components.Player1, Side: components.GoalBottom})
	col.MatchWon(core.GoalEvent{Scorer: components.Player1, Side: components.GoalBottom})

	logged := buf.String()
	assert.Contains(t, logged, "failed to write goal")
	assert.Contains(t, logged, "failed to write match")
	assert.Contains(t, logged, "msg=match")
}
