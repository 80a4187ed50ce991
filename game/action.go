package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Action is one of the ten attacker choices.
type Action int

const (
	B1Left Action = iota
	B1Right
	B1Up
	B1Down
	B2Left
	B2Right
	B2Up
	B2Down
	Pass
	Shoot
)

// Actions lists every action in canonical order. Ties in the solver go to
// the earliest action in this list.
var Actions = []Action{B1Left, B1Right, B1Up, B1Down, B2Left, B2Right, B2Up, B2Down, Pass, Shoot}

var actionNames = []string{
	"B1_LEFT", "B1_RIGHT", "B1_UP", "B1_DOWN",
	"B2_LEFT", "B2_RIGHT", "B2_UP", "B2_DOWN",
	"PASS", "SHOOT",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionNames[a]
}

// ParseAction resolves a name produced by Action.String.
func ParseAction(name string) (Action, error) {
	i := slices.Index(actionNames, name)
	if i < 0 {
		return 0, fmt.Errorf("unknown action %q", name)
	}
	return Action(i), nil
}

// IsMove reports whether a moves one of the attackers.
func (a Action) IsMove() bool {
	return a >= B1Left && a <= B2Down
}

// Mover returns the attacker (1 or 2) moved by a movement action.
func (a Action) Mover() int {
	if a < B2Left {
		return 1
	}
	return 2
}

// Direction returns the step direction of a movement action.
func (a Action) Direction() Direction {
	return Directions[int(a)%4]
}
