// Package scene describes a set of shapes and the connectors between them,
// and routes every connector with the pathfinding package.
package scene

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"gridroute/config"
	"gridroute/core"
	"gridroute/pathfinding"
)

// Shape is a named rectangle of the scene.
type Shape struct {
	ID     string  `json:"id" jsonschema:"required"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width" jsonschema:"minimum=0"`
	Height float64 `json:"height" jsonschema:"minimum=0"`
}

// Rect returns the geometry of the shape.
func (s Shape) Rect() core.Shape {
	return core.Shape{X: s.X, Y: s.Y, Width: s.Width, Height: s.Height}
}

// Connector joins a side of one shape to a side of another.
type Connector struct {
	ID       string `json:"id,omitempty"`
	From     string `json:"from" jsonschema:"required"`
	FromSide string `json:"fromSide" jsonschema:"required,enum=top,enum=right,enum=bottom,enum=left"`
	To       string `json:"to" jsonschema:"required"`
	ToSide   string `json:"toSide" jsonschema:"required,enum=top,enum=right,enum=bottom,enum=left"`
}

// Name returns the connector ID, or "from->to" when it has none.
func (c Connector) Name() string {
	if c.ID != "" {
		return c.ID
	}
	return c.From + "->" + c.To
}

// Scene is the content of a scene file.
type Scene struct {
	Shapes     []Shape        `json:"shapes"`
	Connectors []Connector    `json:"connectors"`
	Tuning     *config.Tuning `json:"tuning,omitempty"`
}

// Parse decodes and validates a scene document.
func Parse(data []byte) (*Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if s.Tuning != nil {
		// fill fields the document left out
		merged := config.Default()
		if err := json.Unmarshal(data, &struct {
			Tuning *config.Tuning `json:"tuning"`
		}{&merged}); err != nil {
			return nil, fmt.Errorf("parse scene tuning: %w", err)
		}
		s.Tuning = &merged
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads and validates a scene file.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Validate checks shape IDs, connector references and sides.
func (s *Scene) Validate() error {
	seen := make(map[string]bool, len(s.Shapes))
	for i, shape := range s.Shapes {
		if shape.ID == "" {
			return fmt.Errorf("shape %d: %w", i, ErrEmptyShapeID)
		}
		if seen[shape.ID] {
			return fmt.Errorf("%w: %q", ErrDuplicateShape, shape.ID)
		}
		seen[shape.ID] = true
	}
	for i := range s.Connectors {
		if _, err := s.Request(i); err != nil {
			return err
		}
	}
	if s.Tuning != nil {
		if err := s.Tuning.Validate(); err != nil {
			return fmt.Errorf("tuning: %w", err)
		}
	}
	return nil
}

// Shape returns the shape with the given ID.
func (s *Scene) Shape(id string) (Shape, bool) {
	for _, shape := range s.Shapes {
		if shape.ID == id {
			return shape, true
		}
	}
	return Shape{}, false
}

// Request builds the routing request of connector i. Every shape other than
// the two endpoints becomes an obstacle, in scene order.
func (s *Scene) Request(i int) (pathfinding.Request, error) {
	if i < 0 || i >= len(s.Connectors) {
		return pathfinding.Request{}, fmt.Errorf("%w: %d", ErrConnectorIndex, i)
	}
	c := s.Connectors[i]

	from, ok := s.Shape(c.From)
	if !ok {
		return pathfinding.Request{}, fmt.Errorf("connector %s: %w: %q", c.Name(), ErrUnknownShape, c.From)
	}
	to, ok := s.Shape(c.To)
	if !ok {
		return pathfinding.Request{}, fmt.Errorf("connector %s: %w: %q", c.Name(), ErrUnknownShape, c.To)
	}
	fromSide, err := core.ParseSide(c.FromSide)
	if err != nil {
		return pathfinding.Request{}, fmt.Errorf("connector %s: %w", c.Name(), err)
	}
	toSide, err := core.ParseSide(c.ToSide)
	if err != nil {
		return pathfinding.Request{}, fmt.Errorf("connector %s: %w", c.Name(), err)
	}

	req := pathfinding.Request{
		Source:     from.Rect(),
		SourceSide: fromSide,
		Target:     to.Rect(),
		TargetSide: toSide,
	}
	for _, shape := range s.Shapes {
		if shape.ID == c.From || shape.ID == c.To {
			continue
		}
		req.Obstacles = append(req.Obstacles, shape.Rect())
	}
	return req, nil
}

// Extent returns the bottom-right corner of the area covered by the shapes.
func (s *Scene) Extent() core.Point {
	var p core.Point
	for _, shape := range s.Shapes {
		p.X = math.Max(p.X, shape.X+shape.Width)
		p.Y = math.Max(p.Y, shape.Y+shape.Height)
	}
	return p
}
