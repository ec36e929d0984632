package dag

// AssignLayers assigns every node the length of the longest path reaching it
// from a source, using a topological traversal (Kahn's algorithm):
//   - Source nodes (no incoming edges) are at row 0
//   - All parents are strictly left of (above) their children
//
// Existing row assignments are overwritten. AssignLayers assumes the graph
// is acyclic; run [DAG.Validate] first. Nodes on a cycle keep row 0.
//
// Time complexity is O(V + E).
func AssignLayers(g *DAG) {
	nodes := g.Nodes()
	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		rows[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
}

// Justify moves every sink to the last row, so that all flows end on the
// right edge of the diagram. Call it after [AssignLayers].
func Justify(g *DAG) {
	last := g.MaxRow()
	rows := make(map[string]int)
	for _, n := range g.Sinks() {
		if g.InDegree(n.ID) > 0 {
			rows[n.ID] = last
		}
	}
	g.SetRows(rows)
}
