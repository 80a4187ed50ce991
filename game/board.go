package game

import "math"

// Board dimensions. Cells are numbered 1-16 row-major from the top left.
const (
	Cols  = 4
	Rows  = 4
	Cells = Cols * Rows
)

// OffBoard marks a step that leaves the grid.
const OffBoard = -1

// Direction is a unit step on the grid. The order matches both the movement
// actions and the opponent probability vectors.
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Directions lists every direction in canonical order.
var Directions = [4]Direction{Left, Right, Up, Down}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Up:
		return "U"
	case Down:
		return "D"
	default:
		return "?"
	}
}

// XY converts a cell into its (column, row) coordinates, both 0-indexed.
func XY(cell int) (x, y int) {
	return (cell - 1) % Cols, (cell - 1) / Cols
}

// CellAt converts coordinates back into a cell, or OffBoard.
func CellAt(x, y int) int {
	if !InBounds(x, y) {
		return OffBoard
	}
	return y*Cols + x + 1
}

func InBounds(x, y int) bool {
	return x >= 0 && x < Cols && y >= 0 && y < Rows
}

// OnBoard reports whether cell is one of the 16 grid cells.
func OnBoard(cell int) bool {
	return cell >= 1 && cell <= Cells
}

// Step moves one cell in the given direction, returning OffBoard when the
// step would leave the grid.
func Step(cell int, d Direction) int {
	x, y := XY(cell)
	switch d {
	case Left:
		x--
	case Right:
		x++
	case Up:
		y--
	case Down:
		y++
	}
	return CellAt(x, y)
}

// Distance is the Chebyshev distance between two cells.
func Distance(a, b int) int {
	ax, ay := XY(a)
	bx, by := XY(b)
	return max(abs(ax-bx), abs(ay-by))
}

// Manhattan is the taxicab distance between two cells.
func Manhattan(a, b int) int {
	ax, ay := XY(a)
	bx, by := XY(b)
	return abs(ax-bx) + abs(ay-by)
}

// Between returns the cells strictly between start and end on the straight
// line joining them. The line is sampled once per Chebyshev step and each
// sample is rounded to the nearest cell, halves to even.
func Between(start, end int) []int {
	x1, y1 := XY(start)
	x2, y2 := XY(end)
	dx, dy := x2-x1, y2-y1
	steps := max(abs(dx), abs(dy))

	var line []int
	for i := 1; i < steps; i++ {
		x := int(math.RoundToEven(float64(x1) + float64(dx*i)/float64(steps)))
		y := int(math.RoundToEven(float64(y1) + float64(dy*i)/float64(steps)))
		if !InBounds(x, y) {
			continue
		}
		cell := CellAt(x, y)
		if cell != start && cell != end {
			line = append(line, cell)
		}
	}
	return line
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
