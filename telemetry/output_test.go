package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/airhockey/config"
)

func TestNilOutputManagerIsDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	assert.NoError(t, om.WriteGoal(GoalRecord{}))
	assert.NoError(t, om.WriteMatch(MatchStats{}))
	assert.NoError(t, om.WritePerf(PerfStats{}, 1))
	assert.NoError(t, om.WriteConfig(nil))
	assert.Empty(t, om.Dir())
	assert.NoError(t, om.Close())
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, om.Dir())

	stats := PerfStats{AvgTick: time.Millisecond}
	require.NoError(t, om.WritePerf(stats, 60))
	require.NoError(t, om.WritePerf(stats, 120))
	require.NoError(t, om.Close())

	data, err := os.ReadFile(filepath.Join(dir, "perf.csv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "window_end,"))
	assert.True(t, strings.HasPrefix(lines[1], "60,1000,"))
	assert.True(t, strings.HasPrefix(lines[2], "120,"))
}

func TestOutputManagerWritesConfig(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	require.NoError(t, err)
	defer om.Close()

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))

	loaded, err := config.Load(filepath.Join(dir, "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, cfg.Arena, loaded.Arena)
}
