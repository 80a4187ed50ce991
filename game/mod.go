package game

import "fmt"

// State is an immutable snapshot of the board: both attacker cells, the
// defender cell and which attacker holds the ball. States are compared by
// value and used directly as map keys.
type State struct {
	B1   int // Attacker 1 cell (1-16)
	B2   int // Attacker 2 cell (1-16)
	R    int // Defender cell (1-16)
	Ball int // Attacker holding the ball (1 or 2)
}

// Terminal is the single absorbing state reached when a goal is scored or
// possession is lost.
var Terminal = State{B1: -1, B2: -1, R: -1, Ball: -1}

func (s State) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", s.B1, s.B2, s.R, s.Ball)
}

// Carrier returns the cell of the attacker holding the ball.
func (s State) Carrier() int {
	if s.Ball == 1 {
		return s.B1
	}
	return s.B2
}

// Receiver returns the cell of the attacker without the ball.
func (s State) Receiver() int {
	if s.Ball == 1 {
		return s.B2
	}
	return s.B1
}

// Valid reports whether s is a legal non-terminal configuration.
func (s State) Valid() bool {
	if !OnBoard(s.B1) || !OnBoard(s.B2) || !OnBoard(s.R) {
		return false
	}
	if s.B1 == s.B2 || s.B1 == s.R || s.B2 == s.R {
		return false
	}
	return s.Ball == 1 || s.Ball == 2
}

// Transition is one weighted outcome of playing an action in a state.
type Transition struct {
	Prob   float64
	Next   State
	Reward float64
}

// Distribution lists every outcome of a state/action pair. Outcomes with the
// same next state are not merged.
type Distribution []Transition

// Total sums the probability mass of the distribution.
func (d Distribution) Total() float64 {
	total := 0.0
	for _, t := range d {
		total += t.Prob
	}
	return total
}

// Expected returns Σ P·(r + discount·value(s')).
func (d Distribution) Expected(discount float64, value func(State) float64) float64 {
	total := 0.0
	for _, t := range d {
		total += t.Prob * (t.Reward + discount*value(t.Next))
	}
	return total
}
