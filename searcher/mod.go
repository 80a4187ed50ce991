package searcher

import "football/game"

// Defaults for value iteration
const (
	DefaultDiscount  = 1.0  // Undiscounted: values read as scoring probabilities
	DefaultThreshold = 1e-4 // Max value change below which a run has converged
)

// Model is everything the solver needs from a transition model. Any game that
// wants to be solved by value iteration implements it.
type Model interface {
	States() []game.State
	Actions() []game.Action
	IsTerminal(game.State) bool
	Transitions(game.State, game.Action) game.Distribution
}

// Values maps states to their estimated return. States never written read
// as zero.
type Values map[game.State]float64

func (v Values) Get(s game.State) float64 {
	return v[s]
}

// Policy maps states to their greedy action.
type Policy map[game.State]game.Action

// Get returns the chosen action for s, if one was ever chosen.
func (p Policy) Get(s game.State) (game.Action, bool) {
	a, ok := p[s]
	return a, ok
}
