package mot

import (
	"container/heap"
	"fmt"
	"math"
	"sort"

	"github.com/arthurkushman/go-hungarian"
	"gonum.org/v1/gonum/mat"
)

// MatchingAlgorithm is for algorithm type for matching detections to tracks
type MatchingAlgorithm uint16

const (
	// MatchingAlgorithmHungarian uses github.com/arthurkushman/go-hungarian.
	// Approximate: its row/column reduction is not guaranteed to reach the minimum total cost.
	MatchingAlgorithmHungarian MatchingAlgorithm = iota
	// MatchingAlgorithmJonkerVolgenant uses shortest augmenting paths with potentials for optimal assignment.
	// This is the default
	MatchingAlgorithmJonkerVolgenant
	// MatchingAlgorithmGreedy uses a greedy algorithm for faster but potentially suboptimal assignment
	MatchingAlgorithmGreedy
)

func (alg MatchingAlgorithm) String() string {
	switch alg {
	case MatchingAlgorithmHungarian:
		return "hungarian"
	case MatchingAlgorithmJonkerVolgenant:
		return "jv"
	case MatchingAlgorithmGreedy:
		return "greedy"
	default:
		return fmt.Sprintf("MatchingAlgorithm(%d)", uint16(alg))
	}
}

// ParseMatchingAlgorithm converts textual name into MatchingAlgorithm
func ParseMatchingAlgorithm(name string) (MatchingAlgorithm, error) {
	switch name {
	case "hungarian":
		return MatchingAlgorithmHungarian, nil
	case "jv", "lapjv", "jonker-volgenant", "":
		return MatchingAlgorithmJonkerVolgenant, nil
	case "greedy":
		return MatchingAlgorithmGreedy, nil
	default:
		return 0, fmt.Errorf("unknown matching algorithm %q", name)
	}
}

// Match is a single (row, column) pair of an assignment
type Match struct {
	Row int
	Col int
}

// Assigner solves rectangular assignment problem on a cost matrix.
// Implementations return min(rows, cols) pairs. Gating is caller's job.
type Assigner interface {
	Assign(cost mat.Matrix) []Match
}

// NewAssigner returns Assigner for the given algorithm.
// Unknown values fall back to JonkerVolgenantAssigner.
func NewAssigner(alg MatchingAlgorithm) Assigner {
	switch alg {
	case MatchingAlgorithmHungarian:
		return HungarianAssigner{}
	case MatchingAlgorithmGreedy:
		return GreedyAssigner{}
	default:
		return JonkerVolgenantAssigner{}
	}
}

// HungarianAssigner delegates to github.com/arthurkushman/go-hungarian.
// That package maximizes, so costs are turned into profits (maxCost - cost)
// on a square matrix padded with zero profit.
//
// The solver is a reduction heuristic rather than full Kuhn-Munkres: total cost may be
// above the optimum, a forbidden pair may win over a valid one, and since it walks Go maps
// two calls on the same matrix may disagree. Use it like GreedyAssigner, when exactness
// does not matter.
type HungarianAssigner struct{}

// Assign implements Assigner
func (HungarianAssigner) Assign(cost mat.Matrix) []Match {
	if cost == nil {
		return nil
	}
	numRows, numCols := cost.Dims()
	if numRows == 0 || numCols == 0 {
		return nil
	}
	maxCost := mat.Max(cost)
	paddedSize := maxInt(numRows, numCols)
	paddedMatrix := make([][]float64, paddedSize)
	for i := 0; i < paddedSize; i++ {
		paddedMatrix[i] = make([]float64, paddedSize)
	}
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			paddedMatrix[i][j] = maxCost - cost.At(i, j)
		}
	}
	assignmentsMap := hungarian.SolveMax(paddedMatrix)
	matches := make([]Match, 0, minInt(numRows, numCols))
	for rowIndex, rowMap := range assignmentsMap {
		if rowIndex >= numRows {
			continue
		}
		for colIndex := range rowMap {
			if colIndex < numCols {
				matches = append(matches, Match{Row: rowIndex, Col: colIndex})
			}
			break
		}
	}
	sortMatches(matches)
	return matches
}

// JonkerVolgenantAssigner is Kuhn-Munkres with potentials (shortest augmenting path).
// O(n^3) on the padded square matrix.
type JonkerVolgenantAssigner struct{}

// Assign implements Assigner
func (JonkerVolgenantAssigner) Assign(cost mat.Matrix) []Match {
	if cost == nil {
		return nil
	}
	numRows, numCols := cost.Dims()
	if numRows == 0 || numCols == 0 {
		return nil
	}
	dim := maxInt(numRows, numCols)
	// Padding cells share one constant so they never change optimal real pairs
	padding := mat.Max(cost)
	c := make([][]float64, dim)
	for i := 0; i < dim; i++ {
		c[i] = make([]float64, dim)
		for j := 0; j < dim; j++ {
			if i < numRows && j < numCols {
				c[i][j] = cost.At(i, j)
			} else {
				c[i][j] = padding
			}
		}
	}

	const inf = math.MaxFloat64 / 2
	// 1-indexed, index 0 is the virtual column
	u := make([]float64, dim+1)
	v := make([]float64, dim+1)
	p := make([]int, dim+1)
	way := make([]int, dim+1)
	minv := make([]float64, dim+1)
	used := make([]bool, dim+1)

	for i := 1; i <= dim; i++ {
		p[0] = i
		j0 := 0
		for j := 1; j <= dim; j++ {
			minv[j] = inf
			used[j] = false
		}
		for {
			used[j0] = true
			i0 := p[j0]
			delta := inf
			j1 := -1
			for j := 1; j <= dim; j++ {
				if used[j] {
					continue
				}
				cur := c[i0-1][j-1] - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta {
					delta = minv[j]
					j1 = j
				}
			}
			if j1 < 0 {
				break
			}
			for j := 0; j <= dim; j++ {
				if used[j] {
					u[p[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if p[j0] == 0 {
				break
			}
		}
		// Augment along the path
		for j0 != 0 {
			p[j0] = p[way[j0]]
			j0 = way[j0]
		}
	}

	matches := make([]Match, 0, minInt(numRows, numCols))
	for j := 1; j <= dim; j++ {
		row := p[j] - 1
		col := j - 1
		if row >= 0 && row < numRows && col < numCols {
			matches = append(matches, Match{Row: row, Col: col})
		}
	}
	sortMatches(matches)
	return matches
}

// GreedyAssigner repeatedly takes the cheapest remaining pair.
// Faster than optimal solvers but total cost is not guaranteed to be minimal.
type GreedyAssigner struct{}

// Assign implements Assigner
func (GreedyAssigner) Assign(cost mat.Matrix) []Match {
	if cost == nil {
		return nil
	}
	numRows, numCols := cost.Dims()
	if numRows == 0 || numCols == 0 {
		return nil
	}
	pq := make(costHeap, 0, numRows*numCols)
	for i := 0; i < numRows; i++ {
		for j := 0; j < numCols; j++ {
			pq = append(pq, costCell{row: i, col: j, cost: cost.At(i, j)})
		}
	}
	heap.Init(&pq)

	// Prevent double assignment of rows and columns
	usedRows := make([]bool, numRows)
	usedCols := make([]bool, numCols)
	matches := make([]Match, 0, minInt(numRows, numCols))
	for pq.Len() > 0 && len(matches) < cap(matches) {
		c := pq.popCell()
		if usedRows[c.row] || usedCols[c.col] {
			continue
		}
		usedRows[c.row] = true
		usedCols[c.col] = true
		matches = append(matches, Match{Row: c.row, Col: c.col})
	}
	sortMatches(matches)
	return matches
}

// sortMatches orders pairs by row so that callers apply updates in track order
func sortMatches(matches []Match) {
	sort.Slice(matches, func(a, b int) bool {
		return matches[a].Row < matches[b].Row
	})
}
