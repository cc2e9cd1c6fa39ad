package pathfinding

import (
	"gridroute/core"
	"gridroute/geometry"
)

// CellRect is a rectangular obstacle in cell units.
type CellRect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether c lies strictly inside the rectangle. Cells on the
// border are not blocked, which lets a route run along the surface of the
// shapes it connects.
func (r CellRect) Contains(c Cell) bool {
	return c.X > r.X && c.X < r.X+r.Width &&
		c.Y > r.Y && c.Y < r.Y+r.Height
}

// PointInRect is the open-interval containment test used by the search.
func PointInRect(r CellRect, c Cell) bool {
	return r.Contains(c)
}

// ConvertObstacle expands shape by padding and converts it to cell units
// using the grid's origin and scale. Width and height round up so the result
// never under-covers the padded shape.
func ConvertObstacle(g Grid, shape core.Shape, padding float64) CellRect {
	padded := shape.Expand(padding)
	origin := g.CellOf(core.Point{X: padded.X, Y: padded.Y})
	return CellRect{
		X:      origin.X,
		Y:      origin.Y,
		Width:  geometry.Ceil(padded.Width / g.X),
		Height: geometry.Ceil(padded.Height / g.Y),
	}
}

// ConvertObstacles converts every shape with ConvertObstacle.
func ConvertObstacles(g Grid, shapes []core.Shape, padding float64) []CellRect {
	rects := make([]CellRect, len(shapes))
	for i, shape := range shapes {
		rects[i] = ConvertObstacle(g, shape, padding)
	}
	return rects
}

// ObstacleChecker returns true if a cell is blocked.
type ObstacleChecker func(Cell) bool

// CreateObstacleChecker returns a checker that blocks any cell strictly
// inside one of rects.
func CreateObstacleChecker(rects []CellRect) ObstacleChecker {
	return func(c Cell) bool {
		for _, r := range rects {
			if r.Contains(c) {
				return true
			}
		}
		return false
	}
}

// CreateBoundsObstacleChecker returns a checker that blocks cells outside b.
func CreateBoundsObstacleChecker(b Bounds) ObstacleChecker {
	return func(c Cell) bool {
		return !b.Contains(c)
	}
}

// CombineObstacleCheckers combines multiple obstacle checkers with OR logic.
func CombineObstacleCheckers(checkers ...ObstacleChecker) ObstacleChecker {
	return func(c Cell) bool {
		for _, checker := range checkers {
			if checker(c) {
				return true
			}
		}
		return false
	}
}
