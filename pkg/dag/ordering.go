package dag

import (
	"maps"
	"slices"
	"sort"
)

// Orderer computes a left-to-right (top-to-bottom, for flows) order of the
// nodes in each row.
type Orderer interface {
	OrderRows(g *DAG) map[int][]string
}

// Barycentric orders rows by the average position of each node's neighbours
// in the adjacent row, sweeping down and then up for a number of passes. The
// ordering with the fewest crossings seen is kept.
//
// Nodes without neighbours in the adjacent row keep their current position.
// Ties are broken by the previous order, so the result is deterministic.
type Barycentric struct {
	Passes int // sweep pairs; 0 means 4
}

// OrderRows implements [Orderer].
func (b Barycentric) OrderRows(g *DAG) map[int][]string {
	passes := b.Passes
	if passes <= 0 {
		passes = 4
	}

	orders := make(map[int][]string)
	for _, r := range g.RowIDs() {
		orders[r] = NodeIDs(g.NodesInRow(r))
	}
	rows := slices.Sorted(maps.Keys(orders))

	best := cloneOrders(orders)
	bestCrossings := CountCrossings(g, orders)

	for range passes {
		if bestCrossings == 0 {
			break
		}
		for i := 1; i < len(rows); i++ {
			sortByBarycenter(orders[rows[i]], PosMap(orders[rows[i-1]]), g.Parents)
		}
		for i := len(rows) - 2; i >= 0; i-- {
			sortByBarycenter(orders[rows[i]], PosMap(orders[rows[i+1]]), g.Children)
		}
		if c := CountCrossings(g, orders); c < bestCrossings {
			best, bestCrossings = cloneOrders(orders), c
		}
	}
	return best
}

func sortByBarycenter(row []string, adjPos map[string]int, neighbours func(string) []string) {
	bary := make(map[string]float64, len(row))
	for i, id := range row {
		sum, n := 0.0, 0
		for _, nb := range neighbours(id) {
			if p, ok := adjPos[nb]; ok {
				sum += float64(p)
				n++
			}
		}
		if n == 0 {
			bary[id] = float64(i)
			continue
		}
		bary[id] = sum / float64(n)
	}
	sort.SliceStable(row, func(i, j int) bool { return bary[row[i]] < bary[row[j]] })
}

func cloneOrders(o map[int][]string) map[int][]string {
	out := make(map[int][]string, len(o))
	for k, v := range o {
		out[k] = slices.Clone(v)
	}
	return out
}
