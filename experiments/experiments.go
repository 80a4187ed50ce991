package experiments

import (
	"fmt"
	"math"

	"football/engine"
	"football/experiments/metrics"
	"football/game"
	"football/searcher"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/gonum/stat"
)

// Sweep grids from the original study
var (
	PGrid = []float64{0.0, 0.1, 0.2, 0.3, 0.4, 0.5}
	QGrid = []float64{0.6, 0.7, 0.8, 0.9, 1.0}
)

// Solve builds a model for (p, q), solves it and records the outcome at start.
func Solve(p, q float64, table game.OpponentPolicy, start game.State, options ...searcher.Option) metrics.SolveRecord {
	model := game.NewModel(p, q, table)
	options = append([]searcher.Option{searcher.WithMetrics(metrics.NewCollector())}, options...)
	solver := searcher.NewValueIteration(model, options...)
	values, policy := solver.Solve()

	record := metrics.SolveRecord{
		P:           p,
		Q:           q,
		Value:       values.Get(start),
		SolveMetric: solver.Metric(),
	}
	if action, ok := policy.Get(start); ok {
		record.Action = action.String()
	}
	return record
}

// RunParamSweep reproduces both goal-probability graphs: p swept with q
// fixed at sweepQ, then q swept with p fixed at sweepP. Records, sweep
// deltas and an HTML chart page are stored under root.
func RunParamSweep(root string, table game.OpponentPolicy, start game.State, sweepP, sweepQ float64, options ...searcher.Option) (string, error) {
	log.Info().Msg("starting parameter sweep experiment...")

	pSeries := Series{Name: "p", Title: fmt.Sprintf("Goal Prob vs p (q=%.1f)", sweepQ)}
	for i, p := range PGrid {
		log.Info().Msgf("solving p series run %d of %d (p=%.1f, q=%.1f)...", i+1, len(PGrid), p, sweepQ)
		record := Solve(p, sweepQ, table, start, options...)
		record.Series = pSeries.Name
		pSeries.Records = append(pSeries.Records, record)
	}

	qSeries := Series{Name: "q", Title: fmt.Sprintf("Goal Prob vs q (p=%.1f)", sweepP)}
	for i, q := range QGrid {
		log.Info().Msgf("solving q series run %d of %d (p=%.1f, q=%.1f)...", i+1, len(QGrid), sweepP, q)
		record := Solve(sweepP, q, table, start, options...)
		record.Series = qSeries.Name
		qSeries.Records = append(qSeries.Records, record)
	}

	log.Info().Msg("completed parameter sweep experiment")

	writer, err := metrics.NewWriter(root, "param_sweep")
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	records := append(append([]metrics.SolveRecord{}, pSeries.Records...), qSeries.Records...)
	if err := writer.WriteSolveRecords(records); err != nil {
		return "", fmt.Errorf("failed to store solve records: %w", err)
	}
	log.Info().Msg("stored solve records")

	if err := writer.WriteDeltas(records); err != nil {
		return "", fmt.Errorf("failed to store sweep deltas: %w", err)
	}
	log.Info().Msg("stored sweep deltas")

	f, err := writer.Create("goal_probability.html")
	if err != nil {
		return "", err
	}
	defer f.Close()
	if err := RenderCharts(f, pSeries, qSeries); err != nil {
		return "", err
	}
	log.Info().Msg("stored charts")

	return writer.Dir(), nil
}

// Evaluation compares a solved value against sampled episodes.
type Evaluation struct {
	Value     float64 // Solved value of the start state
	Mean      float64 // Observed goal rate
	StdErr    float64
	Episodes  int
	Truncated int
}

// Within reports whether the solved value lies within k standard errors of
// the observed goal rate.
func (e Evaluation) Within(k float64) bool {
	return math.Abs(e.Value-e.Mean) <= k*e.StdErr
}

// Evaluate plays episodes from start following policy and summarises the
// rewards.
func Evaluate(model searcher.Model, values searcher.Values, policy searcher.Policy, start game.State, episodes int, seed uint64) Evaluation {
	if episodes <= 0 {
		panic("evaluation needs at least one episode")
	}
	e := engine.NewLocalEngine(model, policy, engine.WithSeed(seed))

	rewards := make([]float64, episodes)
	truncated := 0
	for i := range rewards {
		episode := e.Run(start)
		rewards[i] = episode.Reward
		if episode.Truncated {
			truncated++
		}
	}

	mean, std := stat.MeanStdDev(rewards, nil)
	if episodes == 1 {
		std = 0
	}
	evaluation := Evaluation{
		Value:     values.Get(start),
		Mean:      mean,
		StdErr:    std / math.Sqrt(float64(episodes)),
		Episodes:  episodes,
		Truncated: truncated,
	}
	log.Info().Msgf("sampled %d episodes from %v: goal rate %.4f ± %.4f (solved %.4f)", episodes, start, evaluation.Mean, evaluation.StdErr, evaluation.Value)
	return evaluation
}
