package coverage

import (
	"cmp"
	"fmt"
)

// Position is a point on the integer grid
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

// ManhattanDistance returns |x1-x2| + |y1-y2|
func (p Position) ManhattanDistance(target Position) int {
	return abs(p.X-target.X) + abs(p.Y-target.Y)
}

// comparePositions orders by x, then y
func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.X, b.X); c != 0 {
		return c
	}
	return cmp.Compare(a.Y, b.Y)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
