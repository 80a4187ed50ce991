package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// collapse sums the probability mass per next state and reward.
func collapse(d Distribution) map[Transition]float64 {
	out := map[Transition]float64{}
	for _, t := range d {
		if t.Prob == 0 {
			continue
		}
		out[Transition{Next: t.Next, Reward: t.Reward}] += t.Prob
	}
	return out
}

func TestModelStates(t *testing.T) {
	m := NewModel(0.3, 0.8, nil)
	states := m.States()

	require.Len(t, states, 16*15*14*2+1, "Should enumerate every legal configuration plus the terminal state")
	require.Equal(t, Terminal, states[len(states)-1], "Terminal state should be enumerated last")
	require.Equal(t, State{B1: 1, B2: 2, R: 3, Ball: 1}, states[0])

	seen := make(map[State]bool, len(states))
	for _, s := range states[:len(states)-1] {
		require.True(t, s.Valid(), "State %v should be a legal configuration", s)
		require.False(t, seen[s], "State %v should be enumerated once", s)
		seen[s] = true
	}
}

func TestTransitionsNormalized(t *testing.T) {
	skewed := OpponentPolicy{}
	m := NewModel(0.3, 0.8, nil)
	for i, s := range m.States() {
		if i%3 == 0 && !m.IsTerminal(s) {
			skewed[s] = [4]float64{0.1, 0.2, 0.3, 0.4}
		}
	}

	models := map[string]*Model{
		"uniform defender": m,
		"skewed defender":  NewModel(0.5, 0.6, skewed),
		"no failure":       NewModel(0, 1, skewed),
	}
	for name, model := range models {
		t.Run(name, func(t *testing.T) {
			for _, s := range model.States() {
				for _, a := range model.Actions() {
					d := model.Transitions(s, a)
					require.InDelta(t, 1.0, d.Total(), 1e-9, "Transitions of %v under %v should sum to one", s, a)
					for _, tr := range d {
						require.GreaterOrEqual(t, tr.Prob, 0.0)
					}
				}
			}
		})
	}
}

func TestTerminalAbsorbing(t *testing.T) {
	m := NewModel(0.3, 0.8, nil)
	for _, a := range m.Actions() {
		d := m.Transitions(Terminal, a)
		require.Equal(t, Distribution{{Prob: 1, Next: Terminal, Reward: 0}}, d, "Terminal state should absorb %v", a)
	}
}

func TestMoveOffBoard(t *testing.T) {
	m := NewModel(0.3, 0.8, nil)
	tests := []struct {
		name   string
		state  State
		action Action
	}{
		{"carrier at left edge", State{B1: 5, B2: 9, R: 8, Ball: 1}, B1Left},
		{"receiver at top edge", State{B1: 5, B2: 2, R: 8, Ball: 1}, B2Up},
		{"carrier at bottom edge", State{B1: 5, B2: 14, R: 8, Ball: 2}, B2Down},
		{"receiver at right edge", State{B1: 12, B2: 14, R: 8, Ball: 2}, B1Right},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := m.Transitions(tt.state, tt.action)
			require.Len(t, d, 4, "Should keep one outcome per defender branch")
			for _, tr := range d {
				require.Equal(t, Terminal, tr.Next)
				require.Equal(t, 0.0, tr.Reward)
			}
			require.InDelta(t, 1.0, d.Total(), 1e-12)
		})
	}
}

func TestMove(t *testing.T) {
	const p = 0.1

	t.Run("carrier moves freely", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 1, Ball: 1}
		m := NewModel(p, 0.8, OpponentPolicy{s: {0, 0, 0, 1}})

		got := collapse(m.Transitions(s, B1Right))

		require.Len(t, got, 2)
		require.InDelta(t, 1-2*p, got[Transition{Next: State{B1: 7, B2: 16, R: 5, Ball: 1}}], 1e-12,
			"Carrier should succeed with 1-2p and the defender's new cell should be recorded")
		require.InDelta(t, 2*p, got[Transition{Next: Terminal}], 1e-12)
	})

	t.Run("carrier steps onto the defender's new cell", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 3, Ball: 1}
		m := NewModel(p, 0.8, OpponentPolicy{s: {0, 0, 0, 1}})

		got := collapse(m.Transitions(s, B1Right))

		require.InDelta(t, (1-2*p)*0.5, got[Transition{Next: State{B1: 7, B2: 16, R: 7, Ball: 1}}], 1e-12,
			"A challenged carrier should see its success halved")
		require.InDelta(t, 1-(1-2*p)*0.5, got[Transition{Next: Terminal}], 1e-12)
	})

	t.Run("carrier swaps squares with the defender", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 7, Ball: 1}
		m := NewModel(p, 0.8, OpponentPolicy{s: {1, 0, 0, 0}})

		got := collapse(m.Transitions(s, B1Right))

		require.InDelta(t, (1-2*p)*0.5, got[Transition{Next: State{B1: 7, B2: 16, R: 6, Ball: 1}}], 1e-12,
			"Swapping squares with the defender should halve success")
		require.InDelta(t, 1-(1-2*p)*0.5, got[Transition{Next: Terminal}], 1e-12)
	})

	t.Run("off-ball attacker is never challenged", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 3, Ball: 2}
		m := NewModel(p, 0.8, OpponentPolicy{s: {0, 0, 0, 1}})

		got := collapse(m.Transitions(s, B1Right))

		require.InDelta(t, 1-p, got[Transition{Next: State{B1: 7, B2: 16, R: 7, Ball: 2}}], 1e-12)
		require.InDelta(t, p, got[Transition{Next: Terminal}], 1e-12)
	})

	t.Run("defender blocked by the edge stays put", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 1, Ball: 2}
		m := NewModel(p, 0.8, OpponentPolicy{s: {1, 0, 0, 0}})

		got := collapse(m.Transitions(s, B2Up))

		require.InDelta(t, 1-2*p, got[Transition{Next: State{B1: 6, B2: 12, R: 1, Ball: 2}}], 1e-12)
	})

	t.Run("every defender branch is kept", func(t *testing.T) {
		s := State{B1: 6, B2: 16, R: 11, Ball: 2}
		m := NewModel(p, 0.8, nil)

		d := m.Transitions(s, B1Left)

		require.Len(t, d, 8, "Should produce a success and a failure per defender direction")
		got := collapse(d)
		for _, r := range []int{10, 12, 7, 15} {
			require.InDelta(t, 0.25*(1-p), got[Transition{Next: State{B1: 5, B2: 16, R: r, Ball: 2}}], 1e-12)
		}
	})
}

func TestPass(t *testing.T) {
	const q = 0.8

	t.Run("adjacent receiver", func(t *testing.T) {
		m := NewModel(0.3, q, nil)
		require.InDelta(t, q-0.1, m.PassChance(5, 9), 1e-12)
	})

	t.Run("clear lane", func(t *testing.T) {
		s := State{B1: 1, B2: 4, R: 14, Ball: 1}
		m := NewModel(0.3, q, OpponentPolicy{s: {0, 0, 1, 0}})

		got := collapse(m.Transitions(s, Pass))

		require.InDelta(t, q-0.3, got[Transition{Next: State{B1: 1, B2: 4, R: 10, Ball: 2}}], 1e-12,
			"Ball should change hands with distance-decayed success")
		require.InDelta(t, 1-(q-0.3), got[Transition{Next: Terminal}], 1e-12)
	})

	t.Run("defender steps into the lane", func(t *testing.T) {
		s := State{B1: 1, B2: 4, R: 6, Ball: 1}
		m := NewModel(0.3, q, OpponentPolicy{s: {0, 0, 1, 0}})

		got := collapse(m.Transitions(s, Pass))

		require.InDelta(t, (q-0.3)*0.5, got[Transition{Next: State{B1: 1, B2: 4, R: 2, Ball: 2}}], 1e-12,
			"Interception risk should halve success")
	})

	t.Run("defender steps onto the passer", func(t *testing.T) {
		s := State{B1: 1, B2: 4, R: 8, Ball: 2}
		m := NewModel(0.3, q, OpponentPolicy{s: {0, 0, 1, 0}})

		got := collapse(m.Transitions(s, Pass))

		require.InDelta(t, (q-0.3)*0.5, got[Transition{Next: State{B1: 1, B2: 4, R: 4, Ball: 1}}], 1e-12)
	})

	t.Run("success clamps at zero", func(t *testing.T) {
		m := NewModel(0.3, 0.2, nil)
		require.Equal(t, 0.0, m.PassChance(1, 16))
	})
}

func TestShoot(t *testing.T) {
	const q = 0.8

	t.Run("always terminal", func(t *testing.T) {
		m := NewModel(0.3, q, nil)
		for _, s := range m.States() {
			for _, tr := range m.Transitions(s, Shoot) {
				require.Equal(t, Terminal, tr.Next)
				require.Contains(t, []float64{0, 1}, tr.Reward)
			}
		}
	})

	t.Run("from the goal column", func(t *testing.T) {
		s := State{B1: 4, B2: 1, R: 10, Ball: 1}
		m := NewModel(0.3, q, OpponentPolicy{s: {0, 0, 1, 0}})

		got := collapse(m.Transitions(s, Shoot))

		require.InDelta(t, q, got[Transition{Next: Terminal, Reward: 1}], 1e-12)
	})

	t.Run("blocked by the defender", func(t *testing.T) {
		s := State{B1: 4, B2: 1, R: 16, Ball: 1}
		m := NewModel(0.3, q, OpponentPolicy{s: {0, 0, 1, 0}})

		got := collapse(m.Transitions(s, Shoot))

		require.InDelta(t, q*0.5, got[Transition{Next: Terminal, Reward: 1}], 1e-12)
		require.InDelta(t, 1-q*0.5, got[Transition{Next: Terminal, Reward: 0}], 1e-12)
	})

	t.Run("from far away", func(t *testing.T) {
		m := NewModel(0.3, q, nil)
		require.InDelta(t, q-0.6, m.ShotChance(5), 1e-12)
		require.InDelta(t, q-0.2, m.ShotChance(11), 1e-12)
		require.Equal(t, 0.0, NewModel(0.3, 0.6, nil).ShotChance(13))
	})
}

func TestValidateParams(t *testing.T) {
	require.NoError(t, ValidateParams(0.3, 0.8))
	require.NoError(t, ValidateParams(0, 1))
	require.ErrorIs(t, ValidateParams(0.6, 0.8), ErrParamRange)
	require.ErrorIs(t, ValidateParams(0.3, 0.5), ErrParamRange)
}

func TestParseAction(t *testing.T) {
	for _, a := range Actions {
		got, err := ParseAction(a.String())
		require.NoError(t, err)
		require.Equal(t, a, got)
	}
	_, err := ParseAction("DRIBBLE")
	require.Error(t, err)
}
