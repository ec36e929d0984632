// Package dag provides the weighted directed acyclic graph behind flow
// layouts.
//
// # Overview
//
// Sankey diagrams place nodes in columns and route weighted links from left
// to right. This package holds the graph, assigns each node a column (its
// row in graph terms) and reduces link crossings between adjacent columns.
//
// # Basic Usage
//
//	g := dag.New(nil)
//	g.AddNode(dag.Node{ID: "visits"})
//	g.AddNode(dag.Node{ID: "signups"})
//	g.AddEdge(dag.Edge{From: "visits", To: "signups", Weight: 120})
//
//	if err := g.Validate(); err != nil {
//	    // dag.ErrGraphHasCycle
//	}
//	dag.AssignLayers(g)
//	dag.Justify(g)
//	orders := dag.Barycentric{Passes: 8}.OrderRows(g)
//
// # Rows
//
// Unlike a strictly layered graph, edges may skip rows: a link from column 0
// to column 3 is legal. Crossing counts only consider edges between
// adjacent rows.
//
// # Determinism
//
// Nodes are kept in insertion order. Every query that returns several nodes
// returns them in that order, so layouts are reproducible.
package dag
