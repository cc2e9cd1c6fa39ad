package pathfinding

import (
	"testing"

	"gridroute/geometry"
)

func TestGridNode_Neighbors(t *testing.T) {
	goal := Cell{X: 9, Y: 9}
	node := NewGridNode(Cell{X: 3, Y: 4}, NoParent, goal)

	want := []Cell{
		{X: 3, Y: 3}, // up
		{X: 4, Y: 4}, // right
		{X: 3, Y: 5}, // down
		{X: 2, Y: 4}, // left
	}

	neighbors := node.Neighbors()
	for i, nb := range neighbors {
		if nb.Cell != want[i] {
			t.Errorf("neighbor %d = %v, want %v", i, nb.Cell, want[i])
		}
		if nb.Goal() != goal {
			t.Errorf("neighbor %d goal = %v, want %v", i, nb.Goal(), goal)
		}
		if nb.G != 0 {
			t.Errorf("neighbor %d G = %d, want 0 before it is kept", i, nb.G)
		}
	}
}

func TestGridNode_Costs(t *testing.T) {
	node := NewGridNode(Cell{X: 1, Y: 2}, NoParent, Cell{X: 4, Y: -2})
	if node.G != 0 {
		t.Errorf("G = %d, want 0", node.G)
	}
	if h := node.H(); h != 7 {
		t.Errorf("H = %d, want 7", h)
	}

	node.G = 5
	if f := node.F(); f != 12 {
		t.Errorf("F = %d, want 12", f)
	}

	atGoal := NewGridNode(Cell{X: 4, Y: -2}, 3, Cell{X: 4, Y: -2})
	if h := atGoal.H(); h != 0 {
		t.Errorf("H at goal = %d, want 0", h)
	}
}

func TestGridNode_EqualTo(t *testing.T) {
	a := NewGridNode(Cell{X: 2, Y: 2}, NoParent, Cell{})
	b := NewGridNode(Cell{X: 2, Y: 2}, 7, Cell{X: 5, Y: 5})
	b.G = 42
	c := NewGridNode(Cell{X: 2, Y: 3}, NoParent, Cell{})

	if !a.EqualTo(b) {
		t.Error("nodes on the same cell should be equal regardless of parent and cost")
	}
	if a.EqualTo(c) {
		t.Error("nodes on different cells should not be equal")
	}
}

// The Manhattan heuristic never changes by more than one between adjacent
// cells, which makes it consistent for unit step costs.
func TestGridNode_HeuristicConsistent(t *testing.T) {
	goal := Cell{X: 3, Y: -2}
	for x := -6; x <= 6; x++ {
		for y := -6; y <= 6; y++ {
			node := NewGridNode(Cell{X: x, Y: y}, NoParent, goal)
			for _, nb := range node.Neighbors() {
				if d := geometry.Abs(node.H() - nb.H()); d > 1 {
					t.Fatalf("heuristic jumps by %d between %v and %v", d, node.Cell, nb.Cell)
				}
			}
		}
	}
}

// The heuristic never exceeds the true grid distance, here measured by a
// breadth-first search around a wall.
func TestGridNode_HeuristicAdmissible(t *testing.T) {
	wall := CreateObstacleChecker([]CellRect{{X: 1, Y: -1, Width: 2, Height: 8}})
	bounds := Bounds{Top: 0, Right: 6, Bottom: 8, Left: 0}
	blocked := CombineObstacleCheckers(wall, CreateBoundsObstacleChecker(bounds))
	goal := Cell{X: 5, Y: 3}

	dist := map[Cell]int{goal: 0}
	queue := []Cell{goal}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, nb := range NewGridNode(c, NoParent, goal).Neighbors() {
			if blocked(nb.Cell) {
				continue
			}
			if _, ok := dist[nb.Cell]; ok {
				continue
			}
			dist[nb.Cell] = dist[c] + 1
			queue = append(queue, nb.Cell)
		}
	}

	if len(dist) < 20 {
		t.Fatalf("expected the breadth-first search to reach most cells, got %d", len(dist))
	}
	for c, d := range dist {
		if h := NewGridNode(c, NoParent, goal).H(); h > d {
			t.Errorf("H(%v) = %d exceeds grid distance %d", c, h, d)
		}
	}
}
