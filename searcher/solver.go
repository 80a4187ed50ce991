package searcher

import (
	"math"

	"football/experiments/metrics"
	"football/game"

	"github.com/rs/zerolog/log"
)

type Option func(v *ValueIteration)

func WithDiscount(discount float64) Option {
	return func(v *ValueIteration) {
		if discount > 0 {
			v.discount = discount
		}
	}
}

func WithThreshold(threshold float64) Option {
	return func(v *ValueIteration) {
		if threshold > 0 {
			v.threshold = threshold
		}
	}
}

// WithMaxSweeps caps the number of sweeps Solve runs. Without it Solve loops
// until convergence, however long that takes.
func WithMaxSweeps(sweeps int) Option {
	return func(v *ValueIteration) {
		if sweeps > 0 {
			v.maxSweeps = sweeps
		}
	}
}

func WithMetrics(collector metrics.Collector) Option {
	return func(v *ValueIteration) {
		if collector != nil {
			v.metrics = collector
		}
	}
}

// ValueIteration solves a Model with in-place Bellman optimality sweeps.
// Values written earlier in a sweep are read by later states of the same
// sweep, in the model's enumeration order.
type ValueIteration struct {
	model     Model
	discount  float64
	threshold float64
	maxSweeps int
	metrics   metrics.Collector
	values    Values
	policy    Policy
	sweeps    int
	delta     float64
}

func NewValueIteration(model Model, options ...Option) *ValueIteration {
	if model == nil {
		panic("value iteration needs a model")
	}
	v := &ValueIteration{ // Default values
		model:     model,
		discount:  DefaultDiscount,
		threshold: DefaultThreshold,
		metrics:   metrics.NewDummyCollector(),
		values:    Values{},
		policy:    Policy{},
		delta:     math.Inf(1),
	}
	for _, option := range options {
		option(v)
	}
	return v
}

// Sweep runs one backup over every state and returns the largest absolute
// value change. The terminal state is pinned to zero and never counted.
func (v *ValueIteration) Sweep() float64 {
	delta := 0.0
	backups := 0
	for _, state := range v.model.States() {
		if v.model.IsTerminal(state) {
			v.values[state] = 0
			continue
		}

		best := math.Inf(-1)
		var bestAction game.Action
		for _, action := range v.model.Actions() {
			total := v.model.Transitions(state, action).Expected(v.discount, v.values.Get)
			backups++
			// Strict comparison: the earliest action wins ties
			if total > best {
				best = total
				bestAction = action
			}
		}

		delta = math.Max(delta, math.Abs(v.values[state]-best))
		v.values[state] = best
		v.policy[state] = bestAction
	}

	v.sweeps++
	v.delta = delta
	v.metrics.AddSweep(delta)
	v.metrics.AddBackups(backups)
	log.Debug().Int("sweep", v.sweeps).Float64("delta", delta).Msg("completed sweep")
	return delta
}

// Solve sweeps until the value change falls below the threshold and returns
// the value function and greedy policy.
func (v *ValueIteration) Solve() (Values, Policy) {
	v.metrics.Start()
	for {
		delta := v.Sweep()
		if delta < v.threshold {
			log.Info().Msgf("value iteration converged after %d sweeps (delta %.3g)", v.sweeps, delta)
			break
		}
		if v.maxSweeps > 0 && v.sweeps >= v.maxSweeps {
			log.Warn().Msgf("value iteration stopped at sweep cap %d with delta %.3g above threshold %g", v.maxSweeps, delta, v.threshold)
			break
		}
	}
	return v.values, v.policy
}

func (v *ValueIteration) Values() Values { return v.values }
func (v *ValueIteration) Policy() Policy { return v.policy }
func (v *ValueIteration) Sweeps() int    { return v.sweeps }

// Converged reports whether the last sweep's delta fell below the threshold.
func (v *ValueIteration) Converged() bool {
	return v.delta < v.threshold
}

// Metric returns the collected solve statistics.
func (v *ValueIteration) Metric() metrics.SolveMetric {
	return v.metrics.Complete()
}
