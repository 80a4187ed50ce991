package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"
)

// Renderer pretty-prints board states. The ball carrier is shown in capitals
// (B1/B2) and the other attacker in lower case.
type Renderer struct {
	au aurora.Aurora
}

func NewRenderer(colors bool) *Renderer {
	return &Renderer{au: aurora.NewAurora(colors)}
}

func (r *Renderer) Render(w io.Writer, s State) error {
	if s == Terminal {
		_, err := fmt.Fprintln(w, r.au.Faint("[TERMINAL STATE]"))
		return err
	}

	grid := make([][]string, Rows)
	for y := range grid {
		grid[y] = make([]string, Cols)
		for x := range grid[y] {
			grid[y][x] = fmt.Sprintf("%2s", ".")
		}
	}
	place := func(cell int, label string, color func(interface{}) aurora.Value) {
		if !OnBoard(cell) {
			return
		}
		x, y := XY(cell)
		grid[y][x] = color(fmt.Sprintf("%2s", label)).String()
	}

	b1, b2 := "b1", "b2"
	if s.Ball == 1 {
		b1 = "B1"
	} else {
		b2 = "B2"
	}
	place(s.B1, b1, r.au.Green)
	place(s.B2, b2, r.au.Blue)
	place(s.R, "R", r.au.Red)

	for _, row := range grid {
		if _, err := fmt.Fprintln(w, strings.Join(row, " ")); err != nil {
			return err
		}
	}
	return nil
}
