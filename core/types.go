// Package core contains the fundamental types shared by the gridroute packages.
package core

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownSide is returned when an anchor side is not one of top, right,
// bottom or left.
var ErrUnknownSide = errors.New("core: unknown anchor side")

// Point represents a 2D coordinate in the real plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Shape is an axis-aligned rectangle in the real plane.
// X and Y are the top-left corner.
type Shape struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the center point of the shape.
func (s Shape) Center() Point {
	return Point{
		X: s.X + s.Width/2,
		Y: s.Y + s.Height/2,
	}
}

// Right returns the X coordinate of the right edge.
func (s Shape) Right() float64 { return s.X + s.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (s Shape) Bottom() float64 { return s.Y + s.Height }

// Expand returns the shape grown by padding on all four sides.
func (s Shape) Expand(padding float64) Shape {
	return Shape{
		X:      s.X - padding,
		Y:      s.Y - padding,
		Width:  s.Width + 2*padding,
		Height: s.Height + 2*padding,
	}
}

// Contains checks if a point is inside the shape, edges included.
func (s Shape) Contains(p Point) bool {
	return p.X >= s.X && p.X <= s.Right() &&
		p.Y >= s.Y && p.Y <= s.Bottom()
}

// Side is the side of a shape a connector attaches to.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

var sideNames = [...]string{"top", "right", "bottom", "left"}

// Valid reports whether s is one of the four cardinal sides.
func (s Side) Valid() bool {
	return s >= Top && s <= Left
}

// String returns the lower-case name of the side.
func (s Side) String() string {
	if !s.Valid() {
		return fmt.Sprintf("Side(%d)", int(s))
	}
	return sideNames[s]
}

// Opposite returns the opposite side.
func (s Side) Opposite() Side {
	switch s {
	case Top:
		return Bottom
	case Right:
		return Left
	case Bottom:
		return Top
	case Left:
		return Right
	default:
		return s
	}
}

// Normal returns the unit outward normal of the side. Y grows downward.
func (s Side) Normal() Point {
	switch s {
	case Top:
		return Point{X: 0, Y: -1}
	case Right:
		return Point{X: 1, Y: 0}
	case Bottom:
		return Point{X: 0, Y: 1}
	case Left:
		return Point{X: -1, Y: 0}
	default:
		return Point{}
	}
}

// ParseSide converts "top", "right", "bottom" or "left" (any case) to a Side.
func ParseSide(name string) (Side, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "top":
		return Top, nil
	case "right":
		return Right, nil
	case "bottom":
		return Bottom, nil
	case "left":
		return Left, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSide, name)
}

// MarshalText implements encoding.TextMarshaler.
func (s Side) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSide, int(s))
	}
	return []byte(sideNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Side) UnmarshalText(text []byte) error {
	side, err := ParseSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}
