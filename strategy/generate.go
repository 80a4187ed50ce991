package strategy

import (
	"fmt"

	"football/game"
)

// Generate builds the named strategy over every non-terminal state. The
// defender splits its mass evenly across the directions that leave it
// closest (Manhattan) to its target; a step off the grid counts as staying.
func Generate(name string) (game.OpponentPolicy, error) {
	var target func(game.State) []int
	switch name {
	case Random:
		target = nil
	case Park:
		target = func(game.State) []int { return game.GoalBlockCells[:] }
	case Greedy:
		target = func(s game.State) []int { return []int{s.Carrier()} }
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownStrategy)
	}

	table := game.OpponentPolicy{}
	for _, s := range game.EnumerateStates() {
		if s == game.Terminal {
			continue
		}
		if target == nil {
			table[s] = game.Uniform
			continue
		}
		table[s] = approach(s.R, target(s))
	}
	return table, nil
}

// approach returns direction probabilities for a defender at cell heading
// to the nearest of targets.
func approach(cell int, targets []int) [4]float64 {
	var dist [4]int
	best := -1
	for i, d := range game.Directions {
		next := game.Step(cell, d)
		if next == game.OffBoard {
			next = cell
		}
		dist[i] = nearest(next, targets)
		if best < 0 || dist[i] < best {
			best = dist[i]
		}
	}

	count := 0
	for _, d := range dist {
		if d == best {
			count++
		}
	}
	var probs [4]float64
	for i, d := range dist {
		if d == best {
			probs[i] = 1 / float64(count)
		}
	}
	return probs
}

func nearest(cell int, targets []int) int {
	best := -1
	for _, t := range targets {
		if d := game.Manhattan(cell, t); best < 0 || d < best {
			best = d
		}
	}
	return best
}
