// Package geometry holds the numeric helpers shared by the grid and the search.
package geometry

import "math"

// Epsilon is the tolerance used when snapping real-plane ratios to grid cells.
const Epsilon = 1e-9

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ManhattanDistance calculates the Manhattan distance between two cells.
func ManhattanDistance(x1, y1, x2, y2 int) int {
	return Abs(x2-x1) + Abs(y2-y1)
}

// Floor is math.Floor that treats values within Epsilon of the next integer
// as that integer, so 29.999999999 becomes 30 rather than 29.
func Floor(v float64) int {
	return int(math.Floor(v + Epsilon*math.Max(1, math.Abs(v))))
}

// Ceil is math.Ceil that treats values within Epsilon of the previous integer
// as that integer, so 6.000000001 becomes 6 rather than 7.
func Ceil(v float64) int {
	return int(math.Ceil(v - Epsilon*math.Max(1, math.Abs(v))))
}

// AlmostEqual reports whether a and b differ by at most Epsilon, scaled by
// their magnitude.
func AlmostEqual(a, b float64) bool {
	return math.Abs(a-b) <= Epsilon*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
