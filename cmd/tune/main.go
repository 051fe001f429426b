// Command tune searches table physics for a target rally length by playing
// headless bot matches under Nelder-Mead.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/airhockey/config"
	"github.com/pthm-cable/airhockey/game"
)

// logRow is one line of tune_log.csv.
type logRow struct {
	Eval            int     `csv:"eval"`
	Fitness         float64 `csv:"fitness"`
	RallyMean       float64 `csv:"rally_mean"`
	Goals           int     `csv:"goals"`
	PuckDamping     float64 `csv:"puck_damping"`
	PuckMaxSpeed    float64 `csv:"puck_max_speed"`
	PuckRestitution float64 `csv:"puck_restitution"`
	PaddleMaxSpeed  float64 `csv:"paddle_max_speed"`
}

func newLogRow(eval int, out Outcome, v []float64) logRow {
	return logRow{
		Eval:            eval,
		Fitness:         out.Fitness,
		RallyMean:       out.RallyMean,
		Goals:           out.Goals,
		PuckDamping:     v[0],
		PuckMaxSpeed:    v[1],
		PuckRestitution: v[2],
		PaddleMaxSpeed:  v[3],
	}
}

// formatDuration formats a duration as 1h02m03s, or 2m03s when under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	target := flag.Float64("target-rally", 6.0, "Target mean rally length in seconds")
	maxTicks := flag.Uint64("max-ticks", 36000, "Tick cap per scenario match")
	maxGoals := flag.Int("max-goals", 20, "Goals per scenario match")
	maxEvals := flag.Int("max-evals", 120, "Maximum number of evaluations")
	outputDir := flag.String("output", "", "Output directory for results")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	flag.Parse()

	logger, err := game.NewLogger(os.Stderr, *logLevel)
	if err != nil {
		slog.Error("bad log level", "error", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	if *outputDir == "" {
		slog.Error("--output is required")
		os.Exit(2)
	}
	if *target <= 0 {
		slog.Error("--target-rally must be positive")
		os.Exit(2)
	}
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	baseCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	params := NewParamVector(baseCfg)
	evaluator := NewFitnessEvaluator(params, baseCfg, DefaultScenarios, *maxTicks, *maxGoals, *target)

	logFile, err := os.Create(filepath.Join(*outputDir, "tune_log.csv"))
	if err != nil {
		slog.Error("failed to create log file", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(raw)
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = raw
			}

			rows := []logRow{newLogRow(evalCount, evaluator.Last(), raw)}
			write := gocsv.MarshalWithoutHeaders
			if evalCount == 1 {
				write = gocsv.Marshal
			}
			if err := write(rows, logFile); err != nil {
				slog.Warn("failed to write log row", "error", err)
			}

			elapsed := time.Since(startTime)
			remaining := time.Duration(*maxEvals-evalCount) * (elapsed / time.Duration(evalCount))
			out := evaluator.Last()
			slog.Info("eval",
				"n", evalCount,
				"rally_mean", out.RallyMean,
				"goals", out.Goals,
				"fitness", fitness,
				"best", bestFitness,
				"elapsed", formatDuration(elapsed),
				"eta", formatDuration(remaining),
			)
			return fitness
		},
	}

	settings := &optimize.Settings{
		FuncEvaluations: *maxEvals,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-4,
			Iterations: 15,
		},
	}
	method := &optimize.NelderMead{SimplexSize: 0.2}

	slog.Info("starting Nelder-Mead",
		"params", params.Dim(),
		"scenarios", len(DefaultScenarios),
		"target_rally", *target,
		"max_evals", *maxEvals,
	)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		slog.Warn("optimization ended", "error", err)
	}
	if bestParams == nil && result != nil {
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if bestParams == nil {
		slog.Error("no evaluation completed")
		os.Exit(1)
	}

	slog.Info("tuning complete",
		"evals", evalCount,
		"best", bestFitness,
		"duration", formatDuration(time.Since(startTime)),
	)
	for i, spec := range params.Specs {
		slog.Info("best parameter", "name", spec.Name, "path", spec.Path, "value", bestParams[i])
	}

	bestCfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to reload config", "error", err)
		os.Exit(1)
	}
	params.ApplyToConfig(bestCfg, bestParams)
	configOut := filepath.Join(*outputDir, "best_config.yaml")
	if err := bestCfg.WriteYAML(configOut); err != nil {
		slog.Error("failed to write best config", "error", err)
		os.Exit(1)
	}
	slog.Info("best config saved", "path", configOut)
}
