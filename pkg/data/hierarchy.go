package data

import (
	"math"

	"github.com/matzehuels/waffle/pkg/errors"
)

// Node is a hierarchical record for treemaps. Leaves carry a Value; the
// value of an inner node is its own Value plus the sum of its children.
type Node struct {
	Name     string  `json:"name" yaml:"name" toml:"name"`
	Value    float64 `json:"value,omitempty" yaml:"value,omitempty" toml:"value,omitempty"`
	Size     float64 `json:"size,omitempty" yaml:"size,omitempty" toml:"size,omitempty"`
	Children []*Node `json:"children,omitempty" yaml:"children,omitempty" toml:"children,omitempty"`
}

// Own returns the value carried by the node itself. Size is accepted as an
// alias of Value; negative and non-finite values read as zero.
func (n *Node) Own() float64 {
	v := n.Value
	if v == 0 {
		v = n.Size
	}
	v = Finite(v)
	if v < 0 {
		return 0
	}
	return v
}

// Sum returns the aggregated value of the subtree rooted at n.
func (n *Node) Sum() float64 {
	if n == nil {
		return 0
	}
	total := n.Own()
	for _, c := range n.Children {
		total += c.Sum()
	}
	return total
}

// Leaves returns the leaf nodes in depth-first order.
func (n *Node) Leaves() []*Node {
	if n == nil {
		return nil
	}
	if len(n.Children) == 0 {
		return []*Node{n}
	}
	var out []*Node
	for _, c := range n.Children {
		out = append(out, c.Leaves()...)
	}
	return out
}

// Validate rejects nil children and subtrees that reference themselves.
func (n *Node) Validate() error {
	if n == nil {
		return errors.New(errors.ErrCodeInvalidHierarchy, "hierarchy has no root")
	}
	return n.validate(map[*Node]bool{}, 0)
}

func (n *Node) validate(path map[*Node]bool, depth int) error {
	const maxDepth = 64
	if depth > maxDepth {
		return errors.New(errors.ErrCodeInvalidHierarchy, "hierarchy deeper than %d levels", maxDepth)
	}
	if path[n] {
		return errors.New(errors.ErrCodeInvalidHierarchy, "node %q is its own ancestor", n.Name)
	}
	path[n] = true
	defer delete(path, n)
	for i, c := range n.Children {
		if c == nil {
			return errors.New(errors.ErrCodeInvalidHierarchy, "node %q has nil child at %d", n.Name, i)
		}
		if err := c.validate(path, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// FlowNode is a named node of a flow diagram.
type FlowNode struct {
	Name string `json:"name" yaml:"name" toml:"name"`
}

// FlowLink is a weighted link between two flow nodes, referenced by index.
type FlowLink struct {
	Source int     `json:"source" yaml:"source" toml:"source"`
	Target int     `json:"target" yaml:"target" toml:"target"`
	Value  float64 `json:"value" yaml:"value" toml:"value"`
}

// Flow is the node/link input of a sankey diagram.
type Flow struct {
	Nodes []FlowNode `json:"nodes" yaml:"nodes" toml:"nodes"`
	Links []FlowLink `json:"links" yaml:"links" toml:"links"`
}

// Validate checks link endpoints and values. Acyclicity is checked by the
// layout, which owns the graph.
func (f *Flow) Validate() error {
	if f == nil {
		return errors.New(errors.ErrCodeInvalidHierarchy, "flow is empty")
	}
	for i, l := range f.Links {
		if l.Source < 0 || l.Source >= len(f.Nodes) {
			return errors.New(errors.ErrCodeInvalidHierarchy, "link %d: source %d out of range", i, l.Source)
		}
		if l.Target < 0 || l.Target >= len(f.Nodes) {
			return errors.New(errors.ErrCodeInvalidHierarchy, "link %d: target %d out of range", i, l.Target)
		}
		if l.Source == l.Target {
			return errors.New(errors.ErrCodeInvalidHierarchy, "link %d: %q links to itself", i, f.Nodes[l.Source].Name)
		}
		if math.IsNaN(l.Value) || math.IsInf(l.Value, 0) || l.Value < 0 {
			return errors.New(errors.ErrCodeInvalidHierarchy, "link %d: value must be a finite non-negative number", i)
		}
	}
	return nil
}

// ValidateMatrix checks that m is square and non-negative.
func ValidateMatrix(m [][]float64) error {
	for i, row := range m {
		if len(row) != len(m) {
			return errors.New(errors.ErrCodeInvalidDataset, "matrix row %d has %d columns, want %d", i, len(row), len(m))
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return errors.New(errors.ErrCodeInvalidDataset, "matrix[%d][%d] must be a finite non-negative number", i, j)
			}
		}
	}
	return nil
}
