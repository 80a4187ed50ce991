package engine

import "football/game"

const MaxMoves = 10000

type Step struct {
	State  game.State
	Action game.Action
}

// Episode is the record of one sampled possession.
type Episode struct {
	Start     game.State
	Steps     []Step
	Reward    float64    // Total reward collected
	Final     game.State // Terminal, or the state play stopped in
	Truncated bool       // Stopped by the move cap
	NoAction  bool       // Stopped in a state the policy has no action for
}

func (e Episode) Scored() bool {
	return e.Reward > 0
}

type Engine interface {
	// Run plays from start until the terminal state or a max number of moves is reached
	Run(start game.State) Episode
}
