package mot

import "container/heap"

// costCell is single entry of a cost matrix waiting in the greedy queue
type costCell struct {
	row  int
	col  int
	cost float64
}

// costHeap implements heap.Interface for min-heap by cost.
// Equal costs are ordered by row then column so greedy matching is deterministic.
type costHeap []costCell

func (h costHeap) Len() int { return len(h) }

func (h costHeap) Less(i, j int) bool {
	if h[i].cost != h[j].cost {
		return h[i].cost < h[j].cost
	}
	if h[i].row != h[j].row {
		return h[i].row < h[j].row
	}
	return h[i].col < h[j].col
}

func (h costHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *costHeap) Push(x any) {
	*h = append(*h, x.(costCell))
}

func (h *costHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// popCell removes and returns the cheapest cell
func (h *costHeap) popCell() costCell {
	return heap.Pop(h).(costCell)
}
