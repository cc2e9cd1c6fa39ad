package pathfinding

import (
	"container/heap"
	"fmt"
	"math"

	"gridroute/core"
)

// Request describes one connector to route: the two shapes it joins, the
// side of each shape it attaches to, and the shapes it must step around.
// Source and Target are treated as obstacles too and need not be repeated
// in Obstacles.
type Request struct {
	Source     core.Shape   `json:"source"`
	SourceSide core.Side    `json:"sourceSide"`
	Target     core.Shape   `json:"target"`
	TargetSide core.Side    `json:"targetSide"`
	Obstacles  []core.Shape `json:"obstacles,omitempty"`
}

// Result is the outcome of a search.
//
// Points always starts at the source surface anchor and ends at the target
// surface anchor. When Found is false the search ran out of budget or of
// reachable cells, and the grid part of the path ends at the last expanded
// cell instead of the goal.
type Result struct {
	Points    []core.Point
	Waypoints []Cell
	Found     bool
	Expanded  int
	Goal      Cell
}

// Router routes one connector on a grid fitted between its two anchors.
// Anchors, grid and obstacle rectangles are computed once by NewRouter and
// reused by every FindPath call. A Router must not be used by several
// goroutines at once.
type Router struct {
	opts Options

	surfaceSource, surfaceTarget core.Point
	searchSource, searchTarget   core.Point

	grid       Grid
	sourceCell Cell
	targetCell Cell
	obstacles  []CellRect
	blocked    ObstacleChecker
}

// NewRouter validates req and the tuning, then derives the anchors, the grid
// and the obstacle rectangles.
func NewRouter(req Request, opts ...Option) (*Router, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := validate(req, o); err != nil {
		return nil, err
	}

	r := &Router{opts: o}

	var err error
	if r.surfaceSource, err = DeriveAnchor(req.Source, req.SourceSide, 0); err != nil {
		return nil, fmt.Errorf("source anchor: %w", err)
	}
	if r.surfaceTarget, err = DeriveAnchor(req.Target, req.TargetSide, 0); err != nil {
		return nil, fmt.Errorf("target anchor: %w", err)
	}
	// sides were validated above, the offset variants cannot fail
	r.searchSource, _ = DeriveAnchor(req.Source, req.SourceSide, o.AnchorOffset)
	r.searchTarget, _ = DeriveAnchor(req.Target, req.TargetSide, o.AnchorOffset)

	mapWidth, mapHeight := o.MapWidth, o.MapHeight
	if mapWidth == 0 || mapHeight == 0 {
		w, h := deriveMapSize(req, o.Step)
		if mapWidth == 0 {
			mapWidth = w
		}
		if mapHeight == 0 {
			mapHeight = h
		}
	}

	r.grid = BuildGrid(r.searchSource, r.searchTarget, mapWidth, mapHeight, o.Step)
	r.sourceCell = r.grid.CellOf(r.searchSource)
	r.targetCell = r.grid.CellOf(r.searchTarget)

	shapes := make([]core.Shape, 0, len(req.Obstacles)+2)
	shapes = append(shapes, req.Source)
	shapes = append(shapes, req.Obstacles...)
	shapes = append(shapes, req.Target)
	r.obstacles = ConvertObstacles(r.grid, shapes, o.AnchorOffset)
	r.blocked = CombineObstacleCheckers(
		CreateBoundsObstacleChecker(r.grid.Bounds),
		CreateObstacleChecker(r.obstacles),
	)

	return r, nil
}

func validate(req Request, o Options) error {
	if !req.SourceSide.Valid() {
		return fmt.Errorf("source side: %w: %d", ErrUnknownSide, int(req.SourceSide))
	}
	if !req.TargetSide.Valid() {
		return fmt.Errorf("target side: %w: %d", ErrUnknownSide, int(req.TargetSide))
	}
	if !finite(o.Step) || o.Step <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidStep, o.Step)
	}
	if !finite(o.AnchorOffset) || o.AnchorOffset < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidOffset, o.AnchorOffset)
	}
	if o.Limit < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidLimit, o.Limit)
	}
	if !finite(o.MapWidth) || !finite(o.MapHeight) || o.MapWidth < 0 || o.MapHeight < 0 {
		return fmt.Errorf("%w: %vx%v", ErrInvalidMapSize, o.MapWidth, o.MapHeight)
	}
	if err := validateShape("source", req.Source); err != nil {
		return err
	}
	if err := validateShape("target", req.Target); err != nil {
		return err
	}
	for i, s := range req.Obstacles {
		if err := validateShape(fmt.Sprintf("obstacle %d", i), s); err != nil {
			return err
		}
	}
	return nil
}

func validateShape(name string, s core.Shape) error {
	if !finite(s.X) || !finite(s.Y) || !finite(s.Width) || !finite(s.Height) ||
		s.Width < 0 || s.Height < 0 {
		return fmt.Errorf("%s: %w: %+v", name, ErrInvalidShape, s)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// deriveMapSize returns the extent of all shapes plus a margin of a few steps.
func deriveMapSize(req Request, step float64) (width, height float64) {
	width = math.Max(req.Source.Right(), req.Target.Right())
	height = math.Max(req.Source.Bottom(), req.Target.Bottom())
	for _, s := range req.Obstacles {
		width = math.Max(width, s.Right())
		height = math.Max(height, s.Bottom())
	}
	margin := mapMarginSteps * step
	return width + margin, height + margin
}

// Options returns the tuning the router was built with.
func (r *Router) Options() Options { return r.opts }

// Grid returns the grid fitted between the search anchors.
func (r *Router) Grid() Grid { return r.grid }

// SourceCell returns the start cell of the search.
func (r *Router) SourceCell() Cell { return r.sourceCell }

// TargetCell returns the goal cell of the search.
func (r *Router) TargetCell() Cell { return r.targetCell }

// Obstacles returns the obstacle rectangles in cell units, source shape
// first and target shape last.
func (r *Router) Obstacles() []CellRect {
	out := make([]CellRect, len(r.obstacles))
	copy(out, r.obstacles)
	return out
}

// SurfaceAnchors returns the anchors lying on the source and target shapes.
func (r *Router) SurfaceAnchors() (source, target core.Point) {
	return r.surfaceSource, r.surfaceTarget
}

// SearchAnchors returns the offset anchors the search starts and ends at.
func (r *Router) SearchAnchors() (source, target core.Point) {
	return r.searchSource, r.searchTarget
}

// Blocked reports whether the search may not enter c.
func (r *Router) Blocked(c Cell) bool {
	return r.blocked(c)
}

// FindPath runs the search with the configured iteration limit.
func (r *Router) FindPath() Result {
	return r.FindPathWithin(r.opts.Limit)
}

// FindPathWithin runs the search allowing at most limit+1 expansions.
// It never fails: when the goal is not reached the path is built from the
// last expanded cell.
func (r *Router) FindPathWithin(limit int) Result {
	s := newSearch()
	start := s.add(NewGridNode(r.sourceCell, NoParent, r.targetCell))

	if r.sourceCell == r.targetCell {
		s.closeNode(start)
		return r.result(s, true, 0)
	}

	s.expand(start, r.blocked)
	s.closeNode(start)

	found := false
	count := 0
	for s.open.Len() > 0 && count <= limit {
		count++
		item := heap.Pop(&s.open).(queueItem)
		s.closeNode(item.node)
		if s.arena[item.node].Cell == r.targetCell {
			found = true
			break
		}
		s.expand(item.node, r.blocked)
	}

	return r.result(s, found, count)
}

// result rebuilds the route ending at the most recently closed node.
func (r *Router) result(s *search, found bool, expanded int) Result {
	last := s.closed[len(s.closed)-1]

	var cells []Cell
	for idx := last; idx != NoParent; idx = s.arena[idx].Parent {
		cells = append(cells, s.arena[idx].Cell)
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}

	points := make([]core.Point, 0, len(cells)+2)
	points = append(points, r.surfaceSource)
	for _, c := range cells {
		points = append(points, r.grid.PointOf(c))
	}
	points = append(points, r.surfaceTarget)

	return Result{
		Points:    points,
		Waypoints: cells,
		Found:     found,
		Expanded:  expanded,
		Goal:      r.targetCell,
	}
}

// search is the scratch state of one FindPath call. Nodes live in arena and
// refer to their parents by index.
type search struct {
	arena  []GridNode
	open   NodeQueue
	seen   map[Cell]bool // cells that are or have been on the open or closed list
	closed []int         // arena indices in the order they were closed
	seq    int
}

func newSearch() *search {
	return &search{seen: make(map[Cell]bool)}
}

// add stores n in the arena and marks its cell as seen.
func (s *search) add(n GridNode) int {
	s.arena = append(s.arena, n)
	s.seen[n.Cell] = true
	return len(s.arena) - 1
}

func (s *search) closeNode(idx int) {
	s.closed = append(s.closed, idx)
}

// expand pushes the unseen, unblocked neighbors of the node at idx.
func (s *search) expand(idx int, blocked ObstacleChecker) {
	parent := s.arena[idx]
	for _, nb := range parent.Neighbors() {
		if s.seen[nb.Cell] || blocked(nb.Cell) {
			continue
		}
		nb.Parent = idx
		nb.G = parent.G + 1
		child := s.add(nb)
		heap.Push(&s.open, queueItem{node: child, f: nb.F(), seq: s.seq})
		s.seq++
	}
}
