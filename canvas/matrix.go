// Package canvas provides a rune matrix with the drawing primitives needed to
// show boxes and routed connectors in a terminal.
package canvas

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Common errors
var (
	ErrOutOfBounds = errors.New("canvas: position out of bounds")
	ErrInvalidSize = errors.New("canvas: invalid size")
	ErrShortPath   = errors.New("canvas: path needs at least 2 distinct points")
)

// Point is a character cell position. Origin is top-left, Y grows downward.
type Point struct {
	X, Y int
}

// MatrixCanvas is a rune matrix with box, line, path and text drawing.
// Overlapping line characters are merged into junctions.
//
// MatrixCanvas is not safe for concurrent writes.
type MatrixCanvas struct {
	matrix [][]rune
	width  int
	height int
	merger *CharacterMerger
}

// NewMatrixCanvas creates a blank canvas with the given dimensions.
func NewMatrixCanvas(width, height int) (*MatrixCanvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	matrix := make([][]rune, height)
	for y := range matrix {
		matrix[y] = make([]rune, width)
		for x := range matrix[y] {
			matrix[y][x] = ' '
		}
	}

	return &MatrixCanvas{
		matrix: matrix,
		width:  width,
		height: height,
		merger: NewCharacterMerger(),
	}, nil
}

// Size returns the width and height of the canvas.
func (c *MatrixCanvas) Size() (width, height int) {
	return c.width, c.height
}

func (c *MatrixCanvas) inBounds(p Point) bool {
	return p.X >= 0 && p.X < c.width && p.Y >= 0 && p.Y < c.height
}

// Get returns the character at p, or a space outside the canvas.
func (c *MatrixCanvas) Get(p Point) rune {
	if !c.inBounds(p) {
		return ' '
	}
	return c.matrix[p.Y][p.X]
}

// Set merges char into the cell at p.
func (c *MatrixCanvas) Set(p Point, char rune) error {
	if !c.inBounds(p) {
		return fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, p.X, p.Y)
	}
	c.matrix[p.Y][p.X] = c.merger.Merge(c.matrix[p.Y][p.X], char)
	return nil
}

// put overwrites the cell at p unless it holds an arrow head. Cells outside
// the canvas are ignored.
func (c *MatrixCanvas) put(p Point, char rune) {
	if !c.inBounds(p) || isArrow(c.matrix[p.Y][p.X]) {
		return
	}
	c.matrix[p.Y][p.X] = char
}

// Clear resets the canvas to all spaces.
func (c *MatrixCanvas) Clear() {
	for y := range c.matrix {
		for x := range c.matrix[y] {
			c.matrix[y][x] = ' '
		}
	}
}

// String returns the canvas rows joined by newlines.
func (c *MatrixCanvas) String() string {
	var sb strings.Builder
	sb.Grow(c.height * (c.width + 1))

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r := c.matrix[y][x]
			if r == '\x00' {
				// wide character continuation
				continue
			}
			sb.WriteRune(r)
		}
		if y < c.height-1 {
			sb.WriteRune('\n')
		}
	}

	return sb.String()
}

// DrawBox draws a rectangle outline. The box must fit on the canvas.
func (c *MatrixCanvas) DrawBox(x, y, width, height int, style BoxStyle) error {
	if width < 2 || height < 2 {
		return fmt.Errorf("%w: box %dx%d", ErrInvalidSize, width, height)
	}
	if !c.inBounds(Point{x, y}) || !c.inBounds(Point{x + width - 1, y + height - 1}) {
		return fmt.Errorf("%w: box at (%d,%d) size %dx%d", ErrOutOfBounds, x, y, width, height)
	}

	right, bottom := x+width-1, y+height-1
	for i := x + 1; i < right; i++ {
		c.Set(Point{i, y}, style.Horizontal)
		c.Set(Point{i, bottom}, style.Horizontal)
	}
	for i := y + 1; i < bottom; i++ {
		c.Set(Point{x, i}, style.Vertical)
		c.Set(Point{right, i}, style.Vertical)
	}
	c.Set(Point{x, y}, style.TopLeft)
	c.Set(Point{right, y}, style.TopRight)
	c.Set(Point{x, bottom}, style.BottomLeft)
	c.Set(Point{right, bottom}, style.BottomRight)

	return nil
}

// DrawHorizontalLine draws a horizontal line, clipped to the canvas.
func (c *MatrixCanvas) DrawHorizontalLine(x1, y, x2 int, char rune) error {
	if y < 0 || y >= c.height {
		return fmt.Errorf("%w: row %d", ErrOutOfBounds, y)
	}
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	x1, x2 = max(x1, 0), min(x2, c.width-1)

	for x := x1; x <= x2; x++ {
		c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], char)
	}
	return nil
}

// DrawVerticalLine draws a vertical line, clipped to the canvas.
func (c *MatrixCanvas) DrawVerticalLine(x, y1, y2 int, char rune) error {
	if x < 0 || x >= c.width {
		return fmt.Errorf("%w: column %d", ErrOutOfBounds, x)
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	y1, y2 = max(y1, 0), min(y2, c.height-1)

	for y := y1; y <= y2; y++ {
		c.matrix[y][x] = c.merger.Merge(c.matrix[y][x], char)
	}
	return nil
}

// DrawPath draws an orthogonal polyline with corners at its bends and an
// arrow head at the last point. A diagonal segment is drawn as a horizontal
// run followed by a vertical one. Parts outside the canvas are clipped.
func (c *MatrixCanvas) DrawPath(points []Point, style PathStyle) error {
	pts := orthogonalize(points)
	if len(pts) < 2 {
		return ErrShortPath
	}

	for i := 0; i < len(pts)-1; i++ {
		p1, p2 := pts[i], pts[i+1]
		if p1.Y == p2.Y {
			c.clippedHorizontal(p1.X, p1.Y, p2.X, style.Horizontal)
		} else {
			c.clippedVertical(p1.X, p1.Y, p2.Y, style.Vertical)
		}
	}

	for i := 1; i < len(pts)-1; i++ {
		from := direction(pts[i-1], pts[i])
		to := direction(pts[i], pts[i+1])
		if from == to {
			continue
		}
		c.put(pts[i], selectCorner(from, to, style))
	}

	last := len(pts) - 1
	c.put(pts[last], arrowHead(direction(pts[last-1], pts[last]), style))

	return nil
}

func (c *MatrixCanvas) clippedHorizontal(x1, y, x2 int, char rune) {
	if y >= 0 && y < c.height {
		c.DrawHorizontalLine(x1, y, x2, char)
	}
}

func (c *MatrixCanvas) clippedVertical(x, y1, y2 int, char rune) {
	if x >= 0 && x < c.width {
		c.DrawVerticalLine(x, y1, y2, char)
	}
}

// DrawText writes text starting at (x, y). Wide runes take two cells,
// zero-width runes are skipped and text past the right edge is dropped.
func (c *MatrixCanvas) DrawText(x, y int, text string) error {
	if y < 0 || y >= c.height {
		return fmt.Errorf("%w: row %d", ErrOutOfBounds, y)
	}

	cur := x
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if cur+w > c.width {
			break
		}
		if cur >= 0 {
			c.matrix[y][cur] = r
			if w == 2 {
				c.matrix[y][cur+1] = '\x00'
			}
		}
		cur += w
	}
	return nil
}

// TextWidth returns the number of cells text occupies.
func TextWidth(text string) int {
	return runewidth.StringWidth(text)
}

// orthogonalize drops repeated points and splits diagonal segments.
func orthogonalize(points []Point) []Point {
	out := make([]Point, 0, len(points))
	for _, p := range points {
		if n := len(out); n > 0 {
			prev := out[n-1]
			if p == prev {
				continue
			}
			if p.X != prev.X && p.Y != prev.Y {
				out = append(out, Point{p.X, prev.Y})
			}
		}
		out = append(out, p)
	}
	return out
}

type heading byte

const (
	north heading = 'N'
	east  heading = 'E'
	south heading = 'S'
	west  heading = 'W'
)

// direction of travel between two points of an orthogonal segment.
func direction(from, to Point) heading {
	switch {
	case to.X > from.X:
		return east
	case to.X < from.X:
		return west
	case to.Y > from.Y:
		return south
	default:
		return north
	}
}

func selectCorner(from, to heading, style PathStyle) rune {
	if !style.CornerRunes {
		return style.Corner
	}
	switch {
	case from == east && to == south, from == north && to == west:
		return '╮'
	case from == east && to == north, from == south && to == west:
		return '╯'
	case from == west && to == south, from == north && to == east:
		return '╭'
	case from == west && to == north, from == south && to == east:
		return '╰'
	}
	// reversal
	if from == east || from == west {
		return style.Horizontal
	}
	return style.Vertical
}

func arrowHead(h heading, style PathStyle) rune {
	switch h {
	case north:
		return style.ArrowUp
	case east:
		return style.ArrowRight
	case south:
		return style.ArrowDown
	default:
		return style.ArrowLeft
	}
}
