package pathfinding

// queueItem is an open-list entry. seq is the insertion order and breaks
// ties between equal F costs so the earliest discovered node wins.
type queueItem struct {
	node int // arena index
	f    int
	seq  int
}

// NodeQueue is a priority queue of arena indices ordered by (F, insertion).
// It implements heap.Interface.
type NodeQueue []queueItem

func (nq NodeQueue) Len() int { return len(nq) }

func (nq NodeQueue) Less(i, j int) bool {
	if nq[i].f != nq[j].f {
		return nq[i].f < nq[j].f
	}
	return nq[i].seq < nq[j].seq
}

func (nq NodeQueue) Swap(i, j int) { nq[i], nq[j] = nq[j], nq[i] }

func (nq *NodeQueue) Push(x interface{}) {
	*nq = append(*nq, x.(queueItem))
}

func (nq *NodeQueue) Pop() interface{} {
	old := *nq
	n := len(old)
	item := old[n-1]
	*nq = old[0 : n-1]
	return item
}
