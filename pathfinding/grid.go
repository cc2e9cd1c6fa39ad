package pathfinding

import (
	"math"

	"gridroute/core"
	"gridroute/geometry"
)

// Bounds is the traversable region of a grid in cell units, inclusive.
type Bounds struct {
	Top, Right, Bottom, Left int
}

// Contains reports whether c lies within the bounds.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.Left && c.X <= b.Right &&
		c.Y >= b.Top && c.Y <= b.Bottom
}

// Grid maps the real plane onto integer cells. Cell (0,0) has its top-left
// corner at Origin, which is the source search anchor. X and Y are the cell
// width and height.
type Grid struct {
	Origin core.Point
	X, Y   float64
	Bounds Bounds
}

// CellSize returns the cell size along one axis. The nominal step is
// stretched or shrunk so that a whole number of cells spans diff exactly.
func CellSize(diff, step float64) float64 {
	if diff == 0 {
		return step
	}
	abs := math.Abs(diff)
	count := math.Round(abs / step)
	if count == 0 {
		// less than one step apart: a single cell covers the gap
		return abs
	}
	remainder := abs - count*step
	return step + remainder/count
}

// BuildGrid computes the grid between the source and target search anchors.
// The bounds cover the map from (0,0) to (mapWidth, mapHeight), padded by
// one cell on each side.
func BuildGrid(source, target core.Point, mapWidth, mapHeight, step float64) Grid {
	dx := CellSize(target.X-source.X, step)
	dy := CellSize(target.Y-source.Y, step)
	return Grid{
		Origin: source,
		X:      dx,
		Y:      dy,
		Bounds: Bounds{
			Top:    int(math.Ceil(-source.Y/dy)) - 1,
			Right:  int(math.Ceil((mapWidth-source.X)/dx)) + 1,
			Bottom: int(math.Ceil((mapHeight-source.Y)/dy)) + 1,
			Left:   int(math.Ceil(-source.X/dx)) - 1,
		},
	}
}

// CellOf returns the cell containing p.
func (g Grid) CellOf(p core.Point) Cell {
	return Cell{
		X: geometry.Floor((p.X - g.Origin.X) / g.X),
		Y: geometry.Floor((p.Y - g.Origin.Y) / g.Y),
	}
}

// PointOf returns the real-plane position of the top-left corner of c.
func (g Grid) PointOf(c Cell) core.Point {
	return core.Point{
		X: float64(c.X)*g.X + g.Origin.X,
		Y: float64(c.Y)*g.Y + g.Origin.Y,
	}
}

// InBounds reports whether c is part of the searchable region.
func (g Grid) InBounds(c Cell) bool {
	return g.Bounds.Contains(c)
}
