package pathfinding

import (
	"testing"

	"gridroute/core"
	"gridroute/geometry"
)

// exampleRequest connects the bottom of a wide box to the bottom of a large
// square further right and lower down.
func exampleRequest() Request {
	return Request{
		Source:     core.Shape{X: 40, Y: 150, Width: 100, Height: 50},
		SourceSide: core.Bottom,
		Target:     core.Shape{X: 800, Y: 300, Width: 200, Height: 200},
		TargetSide: core.Bottom,
	}
}

// demoRequest is exampleRequest with three more boxes in the way.
func demoRequest() Request {
	req := exampleRequest()
	req.Obstacles = []core.Shape{
		{X: 300, Y: 100, Width: 300, Height: 300},
		{X: 600, Y: 10, Width: 100, Height: 100},
		{X: 600, Y: 400, Width: 150, Height: 700},
	}
	return req
}

func exampleOptions() []Option {
	return []Option{WithStep(27), WithAnchorOffset(30), WithMapSize(1200, 800)}
}

func newTestRouter(t *testing.T, req Request, opts ...Option) *Router {
	t.Helper()
	r, err := NewRouter(req, opts...)
	if err != nil {
		t.Fatalf("NewRouter failed: %v", err)
	}
	return r
}

func assertPoint(t *testing.T, name string, got, want core.Point) {
	t.Helper()
	if !geometry.AlmostEqual(got.X, want.X) || !geometry.AlmostEqual(got.Y, want.Y) {
		t.Errorf("%s = %+v, want %+v", name, got, want)
	}
}

// assertContinuous checks that consecutive waypoints are one cell apart and
// that none of them is blocked.
func assertContinuous(t *testing.T, r *Router, waypoints []Cell) {
	t.Helper()
	for i, c := range waypoints {
		if i > 0 {
			prev := waypoints[i-1]
			if d := geometry.ManhattanDistance(prev.X, prev.Y, c.X, c.Y); d != 1 {
				t.Errorf("waypoints not continuous at %d: %v -> %v", i, prev, c)
			}
		}
		if i > 0 && r.Blocked(c) {
			t.Errorf("waypoint %d at %v is blocked", i, c)
		}
	}
}
