package game

import (
	"errors"
	"fmt"
	"math"
)

// Nominal parameter ranges. The model itself accepts anything; drivers check
// with ValidateParams.
const (
	MinP = 0.0
	MaxP = 0.5
	MinQ = 0.6
	MaxQ = 1.0
)

const (
	passDecay = 0.1 // Pass success lost per cell of distance
	shotDecay = 0.2 // Shot success lost per column away from the goal column
)

// GoalBlockCells are the defender cells that halve a shot's chance.
var GoalBlockCells = [2]int{8, 12}

var ErrParamRange = errors.New("parameter out of range")

// ValidateParams checks p and q against their nominal ranges.
func ValidateParams(p, q float64) error {
	if math.IsNaN(p) || p < MinP || p > MaxP {
		return fmt.Errorf("p=%v not in [%v,%v]: %w", p, MinP, MaxP, ErrParamRange)
	}
	if math.IsNaN(q) || q < MinQ || q > MaxQ {
		return fmt.Errorf("q=%v not in [%v,%v]: %w", q, MinQ, MaxQ, ErrParamRange)
	}
	return nil
}

// Model is the transition model of the possession game against a fixed
// stochastic defender.
type Model struct {
	p        float64 // Movement failure probability
	q        float64 // Pass and shot success probability
	opponent OpponentPolicy
	states   []State
}

// NewModel builds the model and enumerates its state space. A nil opponent
// behaves as a uniform random defender.
func NewModel(p, q float64, opponent OpponentPolicy) *Model {
	if opponent == nil {
		opponent = OpponentPolicy{}
	}
	return &Model{
		p:        p,
		q:        q,
		opponent: opponent,
		states:   EnumerateStates(),
	}
}

// EnumerateStates lists every legal configuration in canonical order followed
// by the terminal state.
func EnumerateStates() []State {
	states := make([]State, 0, Cells*(Cells-1)*(Cells-2)*2+1)
	for b1 := 1; b1 <= Cells; b1++ {
		for b2 := 1; b2 <= Cells; b2++ {
			if b2 == b1 {
				continue
			}
			for r := 1; r <= Cells; r++ {
				if r == b1 || r == b2 {
					continue
				}
				for ball := 1; ball <= 2; ball++ {
					states = append(states, State{B1: b1, B2: b2, R: r, Ball: ball})
				}
			}
		}
	}
	return append(states, Terminal)
}

func (m *Model) P() float64 { return m.p }
func (m *Model) Q() float64 { return m.q }

// States returns the full state space, terminal state last. Callers must not
// modify the returned slice.
func (m *Model) States() []State {
	return m.states
}

func (m *Model) Actions() []Action {
	return Actions
}

func (m *Model) IsTerminal(s State) bool {
	return s == Terminal
}

// Transitions returns every outcome of playing a in s. For non-terminal
// states the probabilities sum to one; the defender branch is never
// collapsed since its destination is written into the next state.
func (m *Model) Transitions(s State, a Action) Distribution {
	if m.IsTerminal(s) {
		return Distribution{{Prob: 1, Next: Terminal}}
	}

	result := make(Distribution, 0, 8)
	for _, defender := range m.opponent.DefenderMoves(s) {
		switch {
		case a.IsMove():
			result = m.move(result, s, a, defender)
		case a == Pass:
			result = m.pass(result, s, defender)
		case a == Shoot:
			result = m.shoot(result, s, defender)
		default:
			panic(fmt.Sprintf("unhandled action: %v", a))
		}
	}
	return result
}

func (m *Model) move(result Distribution, s State, a Action, defender DefenderMove) Distribution {
	w, newR := defender.Prob, defender.Cell
	mover := a.Mover()
	actor := s.B1
	if mover == 2 {
		actor = s.B2
	}

	target := Step(actor, a.Direction())
	if target == OffBoard {
		return append(result, Transition{Prob: w, Next: Terminal})
	}

	next := State{B1: s.B1, B2: s.B2, R: newR, Ball: s.Ball}
	if mover == 1 {
		next.B1 = target
	} else {
		next.B2 = target
	}

	if mover != s.Ball {
		return append(result,
			Transition{Prob: w * (1 - m.p), Next: next},
			Transition{Prob: w * m.p, Next: Terminal},
		)
	}

	fail := 2 * m.p
	success := 1 - fail
	// Stepping onto the defender, or swapping squares with it, is a challenge.
	if target == newR || (actor == newR && target == s.R) {
		success *= 0.5
		fail = 1 - success
	}
	return append(result,
		Transition{Prob: w * success, Next: next},
		Transition{Prob: w * fail, Next: Terminal},
	)
}

// PassChance is the pass success probability before any interception
// adjustment.
func (m *Model) PassChance(passer, receiver int) float64 {
	return math.Max(m.q-passDecay*float64(Distance(passer, receiver)), 0)
}

func (m *Model) pass(result Distribution, s State, defender DefenderMove) Distribution {
	w, newR := defender.Prob, defender.Cell
	passer, receiver := s.Carrier(), s.Receiver()

	success := m.PassChance(passer, receiver)
	if intercepts(newR, passer, receiver) {
		success *= 0.5
	}

	next := State{B1: s.B1, B2: s.B2, R: newR, Ball: 3 - s.Ball}
	return append(result,
		Transition{Prob: w * success, Next: next},
		Transition{Prob: w * (1 - success), Next: Terminal},
	)
}

func intercepts(defender, passer, receiver int) bool {
	if defender == passer || defender == receiver {
		return true
	}
	for _, cell := range Between(passer, receiver) {
		if cell == defender {
			return true
		}
	}
	return false
}

// ShotChance is the shot success probability from cell before any blocking
// adjustment.
func (m *Model) ShotChance(cell int) float64 {
	x, _ := XY(cell)
	return math.Max(m.q-shotDecay*float64(Cols-1-x), 0)
}

func (m *Model) shoot(result Distribution, s State, defender DefenderMove) Distribution {
	w, newR := defender.Prob, defender.Cell

	success := m.ShotChance(s.Carrier())
	if newR == GoalBlockCells[0] || newR == GoalBlockCells[1] {
		success *= 0.5
	}
	return append(result,
		Transition{Prob: w * success, Next: Terminal, Reward: 1},
		Transition{Prob: w * (1 - success), Next: Terminal},
	)
}
