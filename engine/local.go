package engine

import (
	"football/game"
	"football/searcher"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(e *LocalEngine)

func WithSeed(seed uint64) Option {
	return func(e *LocalEngine) {
		e.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMaxMoves(moves int) Option {
	return func(e *LocalEngine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// LocalEngine samples episodes from a model while the attackers follow a
// fixed policy.
type LocalEngine struct {
	model    searcher.Model
	policy   searcher.Policy
	rng      *rand.Rand
	maxMoves int
}

func NewLocalEngine(model searcher.Model, policy searcher.Policy, options ...Option) *LocalEngine {
	if model == nil {
		panic("engine needs a model")
	}
	e := &LocalEngine{
		model:    model,
		policy:   policy,
		rng:      rand.New(rand.NewSource(1)),
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the possession loop until the terminal state is reached. A
// state without a policy action ends play with no further reward, matching
// its zero value.
func (e *LocalEngine) Run(start game.State) Episode {
	episode := Episode{Start: start}
	state := start

	for moves := 0; !e.model.IsTerminal(state); moves++ {
		if moves >= e.maxMoves {
			episode.Truncated = true
			break
		}
		action, ok := e.policy.Get(state)
		if !ok {
			log.Trace().Msgf("no action for state %v, ending episode", state)
			episode.NoAction = true
			break
		}

		outcome := e.sample(e.model.Transitions(state, action))
		log.Trace().Msgf("%v played %v -> %v (reward %g)", state, action, outcome.Next, outcome.Reward)

		episode.Steps = append(episode.Steps, Step{State: state, Action: action})
		episode.Reward += outcome.Reward
		state = outcome.Next
	}

	episode.Final = state
	return episode
}

func (e *LocalEngine) sample(d game.Distribution) game.Transition {
	if len(d) == 0 {
		panic("empty transition distribution")
	}
	u := e.rng.Float64() * d.Total()
	cumulative := 0.0
	for _, t := range d {
		cumulative += t.Prob
		if u < cumulative {
			return t
		}
	}
	// Rounding can leave u just above the last bound
	for i := len(d) - 1; i >= 0; i-- {
		if d[i].Prob > 0 {
			return d[i]
		}
	}
	return d[len(d)-1]
}
