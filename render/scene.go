// Package render draws a routed scene onto a character canvas and shows it
// as plain text or on a terminal screen.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/mattn/go-runewidth"

	"gridroute/canvas"
	"gridroute/core"
	"gridroute/scene"
)

// DefaultScale is the number of scene units per terminal cell.
const DefaultScale = 10

// ErrInvalidScale is returned for a scale that is not a positive number.
var ErrInvalidScale = errors.New("render: scale must be positive")

// Options controls how a scene is laid out on the canvas.
type Options struct {
	// Scale is the number of scene units per cell.
	Scale float64
	// Margin is the number of blank cells around the drawing.
	Margin int
	// Charset selects box and connector characters.
	Charset Charset
	// Labels draws shape IDs inside boxes tall enough to hold them.
	Labels bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{
		Scale:   DefaultScale,
		Margin:  1,
		Charset: Unicode,
		Labels:  true,
	}
}

// Layout maps scene coordinates to canvas cells.
type Layout struct {
	Origin core.Point // scene point drawn at cell (Margin, Margin)
	Scale  float64
	Margin int
	Width  int
	Height int
}

// NewLayout fits a canvas around every shape and route point.
func NewLayout(s *scene.Scene, routes []scene.Route, opts Options) (Layout, error) {
	if !(opts.Scale > 0) || math.IsInf(opts.Scale, 0) {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidScale, opts.Scale)
	}

	minX, minY := 0.0, 0.0
	maxX, maxY := 0.0, 0.0
	grow := func(p core.Point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, shape := range s.Shapes {
		grow(core.Point{X: shape.X, Y: shape.Y})
		grow(core.Point{X: shape.X + shape.Width, Y: shape.Y + shape.Height})
	}
	for _, r := range routes {
		for _, p := range r.Points {
			grow(p)
		}
	}

	l := Layout{
		Origin: core.Point{X: minX, Y: minY},
		Scale:  opts.Scale,
		Margin: max(opts.Margin, 0),
	}
	far := l.Cell(core.Point{X: maxX, Y: maxY})
	l.Width = far.X + l.Margin + 1
	l.Height = far.Y + l.Margin + 1
	return l, nil
}

// Cell returns the canvas cell of a scene point.
func (l Layout) Cell(p core.Point) canvas.Point {
	return canvas.Point{
		X: int(math.Round((p.X-l.Origin.X)/l.Scale)) + l.Margin,
		Y: int(math.Round((p.Y-l.Origin.Y)/l.Scale)) + l.Margin,
	}
}

// Draw renders the shapes of s and the routed connectors onto a new canvas.
// Boxes are drawn first so connector ends and arrow heads sit on top.
func Draw(s *scene.Scene, routes []scene.Route, opts Options) (*canvas.MatrixCanvas, error) {
	l, err := NewLayout(s, routes, opts)
	if err != nil {
		return nil, err
	}
	c, err := canvas.NewMatrixCanvas(l.Width, l.Height)
	if err != nil {
		return nil, err
	}

	for _, shape := range s.Shapes {
		drawShape(c, l, shape, opts)
	}
	for _, r := range routes {
		pts := make([]canvas.Point, len(r.Points))
		for i, p := range r.Points {
			pts[i] = l.Cell(p)
		}
		if err := c.DrawPath(pts, opts.Charset.PathStyle()); err != nil && !errors.Is(err, canvas.ErrShortPath) {
			return nil, fmt.Errorf("connector %s: %w", r.Connector.Name(), err)
		}
	}
	return c, nil
}

func drawShape(c *canvas.MatrixCanvas, l Layout, shape scene.Shape, opts Options) {
	tl := l.Cell(core.Point{X: shape.X, Y: shape.Y})
	br := l.Cell(core.Point{X: shape.X + shape.Width, Y: shape.Y + shape.Height})
	w := max(br.X-tl.X+1, 2)
	h := max(br.Y-tl.Y+1, 2)

	if err := c.DrawBox(tl.X, tl.Y, w, h, opts.Charset.BoxStyle()); err != nil {
		// only a degenerate shape on the canvas edge without margin
		return
	}

	if opts.Labels && h >= 3 && w >= 3 {
		c.DrawText(tl.X+1, tl.Y+1, runewidth.Truncate(shape.ID, w-2, ""))
	}
}

// WriteASCII renders the scene and writes it to w followed by a newline.
func WriteASCII(w io.Writer, s *scene.Scene, routes []scene.Route, opts Options) error {
	c, err := Draw(s, routes, opts)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, c.String())
	return err
}
