package game

// Uniform is the defender distribution used for states missing from an
// OpponentPolicy.
var Uniform = [4]float64{0.25, 0.25, 0.25, 0.25}

// OpponentPolicy maps a state to the defender's probabilities of stepping
// Left, Right, Up and Down. It is read-only once handed to a Model.
type OpponentPolicy map[State][4]float64

// Probs returns the direction probabilities for s, defaulting to Uniform.
func (o OpponentPolicy) Probs(s State) [4]float64 {
	if probs, ok := o[s]; ok {
		return probs
	}
	return Uniform
}

// DefenderMove is one weighted destination of the defender.
type DefenderMove struct {
	Prob float64
	Cell int
}

// DefenderMoves returns the four weighted defender destinations for s in
// direction order. A step off the grid leaves the defender in place.
func (o OpponentPolicy) DefenderMoves(s State) [4]DefenderMove {
	probs := o.Probs(s)
	var moves [4]DefenderMove
	for i, d := range Directions {
		cell := Step(s.R, d)
		if cell == OffBoard {
			cell = s.R
		}
		moves[i] = DefenderMove{Prob: probs[i], Cell: cell}
	}
	return moves
}
