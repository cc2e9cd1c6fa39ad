package pathfinding

import "gridroute/geometry"

// NoParent marks a node without a predecessor, i.e. the start of a search.
const NoParent = -1

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// GridNode is a search state: an immutable cell plus the bookkeeping of how
// the search reached it. Parent is an index into the arena of the search that
// created the node.
type GridNode struct {
	Cell   Cell
	Parent int // arena index of the predecessor, NoParent for the start
	G      int // cost from the start
	goal   Cell
}

// NewGridNode creates a node at cell with the given parent and goal. G is zero.
func NewGridNode(cell Cell, parent int, goal Cell) GridNode {
	return GridNode{Cell: cell, Parent: parent, goal: goal}
}

// Goal returns the cell the heuristic measures towards.
func (n GridNode) Goal() Cell {
	return n.goal
}

// H is the Manhattan distance to the goal. It is recomputed on every call.
func (n GridNode) H() int {
	return geometry.ManhattanDistance(n.Cell.X, n.Cell.Y, n.goal.X, n.goal.Y)
}

// F is the estimated total cost G + H.
func (n GridNode) F() int {
	return n.G + n.H()
}

// EqualTo reports whether both nodes sit on the same cell.
// Parent and cost do not take part in the comparison.
func (n GridNode) EqualTo(other GridNode) bool {
	return n.Cell == other.Cell
}

// Neighbors returns the four adjacent nodes in the order up, right, down, left.
// Each neighbor inherits the goal; the caller assigns Parent and G once it
// decides to keep it.
func (n GridNode) Neighbors() [4]GridNode {
	x, y := n.Cell.X, n.Cell.Y
	return [4]GridNode{
		{Cell: Cell{X: x, Y: y - 1}, Parent: NoParent, goal: n.goal}, // up
		{Cell: Cell{X: x + 1, Y: y}, Parent: NoParent, goal: n.goal}, // right
		{Cell: Cell{X: x, Y: y + 1}, Parent: NoParent, goal: n.goal}, // down
		{Cell: Cell{X: x - 1, Y: y}, Parent: NoParent, goal: n.goal}, // left
	}
}
