package dag_test

import (
	"fmt"

	"github.com/matzehuels/waffle/pkg/dag"
)

func Example() {
	g := dag.New(nil)
	for _, id := range []string{"visit", "signup", "bounce", "paid"} {
		_ = g.AddNode(dag.Node{ID: id})
	}
	_ = g.AddEdge(dag.Edge{From: "visit", To: "signup", Weight: 40})
	_ = g.AddEdge(dag.Edge{From: "visit", To: "bounce", Weight: 60})
	_ = g.AddEdge(dag.Edge{From: "signup", To: "paid", Weight: 10})

	dag.AssignLayers(g)
	dag.Justify(g)
	for _, n := range g.Nodes() {
		fmt.Println(n.ID, n.Row)
	}
	// Output:
	// visit 0
	// signup 1
	// bounce 2
	// paid 2
}
