package pathfinding

import (
	"fmt"

	"gridroute/core"
)

// DeriveAnchor returns the midpoint of the given side of shape, pushed
// outward along the side's normal by offset. An offset of zero yields the
// surface anchor; the configured stand-off yields the search anchor.
func DeriveAnchor(shape core.Shape, side core.Side, offset float64) (core.Point, error) {
	anchor := core.Point{X: shape.X, Y: shape.Y}
	switch side {
	case core.Top:
		anchor.X += shape.Width / 2
		anchor.Y -= offset
	case core.Right:
		anchor.X += shape.Width + offset
		anchor.Y += shape.Height / 2
	case core.Bottom:
		anchor.X += shape.Width / 2
		anchor.Y += shape.Height + offset
	case core.Left:
		anchor.X -= offset
		anchor.Y += shape.Height / 2
	default:
		return core.Point{}, fmt.Errorf("%w: %d", ErrUnknownSide, int(side))
	}
	return anchor, nil
}
