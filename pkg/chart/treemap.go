package chart

import (
	"math"
	"sort"
	"strings"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Tile selects how a treemap subdivides a parent rectangle.
type Tile string

// Tiling methods. Resquarify lays out like Squarify; there is no previous
// layout to keep stable across builds.
const (
	TileSquarify   Tile = "squarify"
	TileResquarify Tile = "resquarify"
	TileBinary     Tile = "binary"
	TileSlice      Tile = "slice"
	TileDice       Tile = "dice"
	TileSliceDice  Tile = "sliceDice"
)

// Tiles lists the accepted tiling methods.
var Tiles = []Tile{TileSquarify, TileResquarify, TileBinary, TileSlice, TileDice, TileSliceDice}

// phi is the target aspect ratio of squarified rows.
var phi = (1 + math.Sqrt(5)) / 2

// ParseTile resolves a tiling method name case-insensitively. The empty
// name selects squarify.
func ParseTile(s string) (Tile, error) {
	if s == "" {
		return TileSquarify, nil
	}
	for _, t := range Tiles {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	if strings.EqualFold(s, "slice-dice") {
		return TileSliceDice, nil
	}
	return "", errors.New(errors.ErrCodeInvalidOption, "unknown treemap tile %q", s)
}

// Treemap subdivides the plot area into nested rectangles whose areas are
// proportional to subtree values.
type Treemap struct {
	Common
	Root    *data.Node
	Tile    Tile
	Padding float64 // inset between siblings and inside parents; default 0
	Stroke  string  // leaf outline; default #ffffff
}

func (t *Treemap) Kind() Kind { return KindTreemap }

// Cell is one laid out treemap node.
type Cell struct {
	Name     string
	Path     string // names from the first level down, joined with "/"
	Value    float64
	Depth    int
	Box      geom.Box
	Children []*Cell
	group    int // index of the depth-1 ancestor
}

// Leaf reports whether c has no children.
func (c *Cell) Leaf() bool { return len(c.Children) == 0 }

// Layout computes the treemap of root inside box. Children are sorted by
// descending value and every box is rounded to whole pixels.
func Layout(root *data.Node, box geom.Box, tile Tile, padding float64) (*Cell, error) {
	if err := root.Validate(); err != nil {
		return nil, err
	}
	tile, err := ParseTile(string(tile))
	if err != nil {
		return nil, err
	}
	top := newCell(root, "", 0, 0)
	top.Box = box
	pads := []float64{0}
	positionCell(top, tile, math.Max(0, padding), &pads)
	roundCell(top)
	return top, nil
}

func newCell(n *data.Node, prefix string, depth, group int) *Cell {
	c := &Cell{Name: n.Name, Depth: depth, Value: n.Sum(), group: group}
	if depth > 0 {
		c.Path = n.Name
		if prefix != "" {
			c.Path = prefix + "/" + n.Name
		}
	}
	for i, child := range n.Children {
		g := group
		if depth == 0 {
			g = i
		}
		c.Children = append(c.Children, newCell(child, c.Path, depth+1, g))
	}
	sort.SliceStable(c.Children, func(i, j int) bool { return c.Children[i].Value > c.Children[j].Value })
	return c
}

// positionCell insets c by the padding of its depth and tiles its children
// into what is left.
func positionCell(c *Cell, tile Tile, padding float64, pads *[]float64) {
	p := (*pads)[c.Depth]
	b := insetBox(c.Box, p)
	c.Box = b
	if c.Leaf() {
		return
	}
	inner := padding / 2
	if len(*pads) <= c.Depth+1 {
		*pads = append(*pads, inner)
	}
	(*pads)[c.Depth+1] = inner
	b = insetBox(b, padding-inner)
	tileCell(c, tile, b)
	for _, child := range c.Children {
		positionCell(child, tile, padding, pads)
	}
}

func insetBox(b geom.Box, p float64) geom.Box {
	x0, y0, x1, y1 := b.X0+p, b.Y0+p, b.X1-p, b.Y1-p
	if x1 < x0 {
		x0 = (x0 + x1) / 2
		x1 = x0
	}
	if y1 < y0 {
		y0 = (y0 + y1) / 2
		y1 = y0
	}
	return geom.Box{X0: x0, Y0: y0, X1: x1, Y1: y1}
}

func roundCell(c *Cell) {
	c.Box = geom.Box{X0: math.Round(c.Box.X0), Y0: math.Round(c.Box.Y0), X1: math.Round(c.Box.X1), Y1: math.Round(c.Box.Y1)}
	for _, child := range c.Children {
		roundCell(child)
	}
}

func tileCell(c *Cell, tile Tile, b geom.Box) {
	if c.Value <= 0 {
		for _, child := range c.Children {
			child.Box = geom.Box{X0: b.X0, Y0: b.Y0, X1: b.X0, Y1: b.Y0}
		}
		return
	}
	switch tile {
	case TileBinary:
		tileBinary(c.Children, c.Value, b)
	case TileSlice:
		tileSlice(c.Children, c.Value, b)
	case TileDice:
		tileDice(c.Children, c.Value, b)
	case TileSliceDice:
		if c.Depth%2 == 1 {
			tileSlice(c.Children, c.Value, b)
		} else {
			tileDice(c.Children, c.Value, b)
		}
	default:
		tileSquarify(c.Children, c.Value, b)
	}
}

// tileDice lays cells out left to right.
func tileDice(cells []*Cell, total float64, b geom.Box) {
	k := 0.0
	if total > 0 {
		k = b.Width() / total
	}
	x := b.X0
	for _, c := range cells {
		x1 := x + c.Value*k
		c.Box = geom.Box{X0: x, Y0: b.Y0, X1: x1, Y1: b.Y1}
		x = x1
	}
}

// tileSlice lays cells out top to bottom.
func tileSlice(cells []*Cell, total float64, b geom.Box) {
	k := 0.0
	if total > 0 {
		k = b.Height() / total
	}
	y := b.Y0
	for _, c := range cells {
		y1 := y + c.Value*k
		c.Box = geom.Box{X0: b.X0, Y0: y, X1: b.X1, Y1: y1}
		y = y1
	}
}

// tileSquarify packs cells into rows whose worst aspect ratio stays as
// close to phi as possible.
func tileSquarify(cells []*Cell, total float64, b geom.Box) {
	value := total
	x0, y0, x1, y1 := b.X0, b.Y0, b.X1, b.Y1
	for i0, i1, n := 0, 0, len(cells); i0 < n; i0 = i1 {
		dx, dy := x1-x0, y1-y0

		var sum float64
		for i1 < n {
			sum = cells[i1].Value
			i1++
			if sum > 0 {
				break
			}
		}
		minV, maxV := sum, sum
		alpha := math.Max(dy/dx, dx/dy) / (value * phi)
		beta := sum * sum * alpha
		minRatio := math.Max(maxV/beta, beta/minV)
		for ; i1 < n; i1++ {
			v := cells[i1].Value
			sum += v
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
			beta = sum * sum * alpha
			ratio := math.Max(maxV/beta, beta/minV)
			if ratio > minRatio {
				sum -= v
				break
			}
			minRatio = ratio
		}

		row := cells[i0:i1]
		// Once value is exhausted the remaining zero cells collapse onto
		// the far edge.
		if dx < dy {
			yk := y1
			if value > 0 {
				yk = y0 + dy*sum/value
			}
			tileDice(row, sum, geom.Box{X0: x0, Y0: y0, X1: x1, Y1: yk})
			if value > 0 {
				y0 = yk
			}
		} else {
			xk := x1
			if value > 0 {
				xk = x0 + dx*sum/value
			}
			tileSlice(row, sum, geom.Box{X0: x0, Y0: y0, X1: xk, Y1: y1})
			if value > 0 {
				x0 = xk
			}
		}
		value -= sum
	}
}

// tileBinary recursively splits cells into two groups of roughly equal
// value, cutting along the longer side.
func tileBinary(cells []*Cell, total float64, b geom.Box) {
	sums := make([]float64, len(cells)+1)
	for i, c := range cells {
		sums[i+1] = sums[i] + c.Value
	}
	var partition func(i, j int, value float64, b geom.Box)
	partition = func(i, j int, value float64, b geom.Box) {
		if i >= j-1 {
			cells[i].Box = b
			return
		}
		offset := sums[i]
		target := value/2 + offset
		k, hi := i+1, j-1
		for k < hi {
			mid := (k + hi) / 2
			if sums[mid] < target {
				k = mid + 1
			} else {
				hi = mid
			}
		}
		if target-sums[k-1] < sums[k]-target && i+1 < k {
			k--
		}
		left := sums[k] - offset
		right := value - left
		if b.Width() > b.Height() {
			xk := b.X1
			if value > 0 {
				xk = (b.X0*right + b.X1*left) / value
			}
			partition(i, k, left, geom.Box{X0: b.X0, Y0: b.Y0, X1: xk, Y1: b.Y1})
			partition(k, j, right, geom.Box{X0: xk, Y0: b.Y0, X1: b.X1, Y1: b.Y1})
			return
		}
		yk := b.Y1
		if value > 0 {
			yk = (b.Y0*right + b.Y1*left) / value
		}
		partition(i, k, left, geom.Box{X0: b.X0, Y0: b.Y0, X1: b.X1, Y1: yk})
		partition(k, j, right, geom.Box{X0: b.X0, Y0: yk, X1: b.X1, Y1: b.Y1})
	}
	if len(cells) > 0 {
		partition(0, len(cells), total, b)
	}
}

// Build lays out every node below the root. Leaves carry a datum and a
// label when they are large enough to hold one; inner nodes are drawn
// underneath their children.
func (t *Treemap) Build(size Size) (*Scene, error) {
	if t.Root == nil {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy, "treemap chart: root is required")
	}
	plot := t.margins(Margins{}).Plot(size)
	s, done, err := begin(t, size, plot)
	if done {
		return s, err
	}
	root, err := Layout(t.Root, plot, t.Tile, t.Padding)
	if err != nil {
		return nil, err
	}
	if root.Value <= 0 {
		return s, nil
	}

	palette := t.palette(scale.Vivid)
	stroke := t.Stroke
	if stroke == "" {
		stroke = "#ffffff"
	}
	var leaves []geom.Shape
	var walk func(c *Cell)
	walk = func(c *Cell) {
		if c.Depth > 0 {
			color := palette.At(c.group)
			r := geom.Rect{
				Mark: geom.Mark{Datum: geom.NoDatum, Series: c.Path, Fill: color, Stroke: stroke, StrokeWidth: 2},
				X:    c.Box.X0, Y: c.Box.Y0, W: c.Box.Width(), H: c.Box.Height(),
			}
			if c.Leaf() {
				r.Datum = len(s.Rows)
				s.Rows = append(s.Rows, data.Row{"name": c.Name, "value": c.Value, "path": c.Path})
				leaves = append(leaves, r)
				if r.W > 30 && r.H > 20 {
					ctr := c.Box.Center()
					s.Labels = append(s.Labels, geom.Text{
						Mark:    geom.Mark{Datum: r.Datum, Fill: "#ffffff"},
						X:       ctr.X, Y: ctr.Y, DY: ".33em",
						Content: c.Name, Align: "middle", Size: 10, Weight: "500",
					})
				}
			} else {
				r.Class = "group"
			}
			s.Shapes = append(s.Shapes, r)
		}
		for _, child := range c.Children {
			walk(child)
		}
	}
	walk(root)

	for _, c := range root.Children {
		s.Legend = append(s.Legend, LegendEntry{Label: c.Name, Color: palette.At(c.group)})
	}
	s.Locator = tooltip.ShapeLocator{Shapes: leaves}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(s.Rows) {
			return nil
		}
		r := s.Rows[h.Index]
		v := data.ToFloat(r["value"])
		return []string{data.ToString(r["path"]), formatNumber(v) + " (" + percent(v, root.Value) + ")"}
	}
	return s, nil
}
