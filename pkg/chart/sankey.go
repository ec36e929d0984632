package chart

import (
	"math"
	"sort"
	"strconv"

	"github.com/matzehuels/waffle/pkg/dag"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// SankeyNode is a laid out flow node.
type SankeyNode struct {
	Name  string
	Index int // position in the input node list
	Layer int
	Value float64 // max(inflow, outflow)
	Box   geom.Box

	in, out []*SankeyLink
}

// SankeyLink is a laid out flow link. Y0 and Y1 are the centers of the
// band where it leaves the source and enters the target.
type SankeyLink struct {
	Index          int
	Source, Target *SankeyNode
	Value          float64
	Width          float64
	Y0, Y1         float64
}

// SankeyGraph is the result of [LayoutSankey].
type SankeyGraph struct {
	Nodes  []*SankeyNode // input order
	Links  []*SankeyLink // input order
	Layers int
}

// SankeyOptions tunes [LayoutSankey].
type SankeyOptions struct {
	NodeWidth   float64
	NodePadding float64
	Iterations  int
}

// LayoutSankey places the nodes of flow in columns by longest path from a
// source, with sinks pushed to the last column, orders each column to
// reduce crossings and relaxes vertical positions toward the weighted
// center of the connected nodes. A cyclic flow is an INVALID_HIERARCHY
// error.
func LayoutSankey(flow *data.Flow, box geom.Box, opts SankeyOptions) (*SankeyGraph, error) {
	if err := flow.Validate(); err != nil {
		return nil, err
	}
	g := dag.New(nil)
	sg := &SankeyGraph{}
	for i, n := range flow.Nodes {
		if err := g.AddNode(dag.Node{ID: strconv.Itoa(i), Index: i}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "sankey node %d", i)
		}
		sg.Nodes = append(sg.Nodes, &SankeyNode{Name: n.Name, Index: i})
	}
	for i, l := range flow.Links {
		e := dag.Edge{From: strconv.Itoa(l.Source), To: strconv.Itoa(l.Target), Weight: l.Value, Index: i}
		if err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "sankey link %d", i)
		}
		link := &SankeyLink{Index: i, Source: sg.Nodes[l.Source], Target: sg.Nodes[l.Target], Value: l.Value}
		link.Source.out = append(link.Source.out, link)
		link.Target.in = append(link.Target.in, link)
		sg.Links = append(sg.Links, link)
	}
	if err := g.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidHierarchy, err, "sankey flow")
	}
	if len(sg.Nodes) == 0 {
		return sg, nil
	}

	dag.AssignLayers(g)
	dag.Justify(g)
	orders := dag.Barycentric{}.OrderRows(g)
	sg.Layers = g.MaxRow() + 1
	columns := make([][]*SankeyNode, sg.Layers)
	for row := 0; row < sg.Layers; row++ {
		for _, id := range orders[row] {
			n, _ := g.Node(id)
			sn := sg.Nodes[n.Index]
			sn.Layer = row
			columns[row] = append(columns[row], sn)
		}
	}
	for _, n := range sg.Nodes {
		n.Value = math.Max(sumLinks(n.in), sumLinks(n.out))
	}

	l := &sankeyLayout{box: box, opts: opts, columns: columns}
	l.positionColumns()
	l.initBreadths()
	for i := 0; i < opts.Iterations; i++ {
		alpha := math.Pow(0.99, float64(i))
		beta := math.Max(1-alpha, float64(i+1)/float64(opts.Iterations))
		l.relaxRightToLeft(alpha, beta)
		l.relaxLeftToRight(alpha, beta)
	}
	l.linkBreadths(sg.Nodes)
	return sg, nil
}

func sumLinks(links []*SankeyLink) float64 {
	var s float64
	for _, l := range links {
		s += l.Value
	}
	return s
}

type sankeyLayout struct {
	box     geom.Box
	opts    SankeyOptions
	columns [][]*SankeyNode
	py      float64
}

func (l *sankeyLayout) positionColumns() {
	kx := 0.0
	if n := len(l.columns); n > 1 {
		kx = (l.box.Width() - l.opts.NodeWidth) / float64(n-1)
	}
	for layer, col := range l.columns {
		for _, n := range col {
			n.Box.X0 = l.box.X0 + float64(layer)*kx
			n.Box.X1 = n.Box.X0 + l.opts.NodeWidth
		}
	}
}

func (l *sankeyLayout) initBreadths() {
	longest := 0
	for _, col := range l.columns {
		longest = max(longest, len(col))
	}
	l.py = l.opts.NodePadding
	if longest > 1 {
		l.py = math.Min(l.py, l.box.Height()/float64(longest-1))
	}

	ky := math.Inf(1)
	for _, col := range l.columns {
		var sum float64
		for _, n := range col {
			sum += n.Value
		}
		if sum > 0 {
			ky = math.Min(ky, (l.box.Height()-float64(len(col)-1)*l.py)/sum)
		}
	}
	if math.IsInf(ky, 1) || ky < 0 {
		ky = 0
	}

	for _, col := range l.columns {
		y := l.box.Y0
		for _, n := range col {
			n.Box.Y0 = y
			n.Box.Y1 = y + n.Value*ky
			y = n.Box.Y1 + l.py
			for _, link := range n.out {
				link.Width = link.Value * ky
			}
		}
		// Spread the column's slack evenly around its nodes.
		gap := (l.box.Y1 - y + l.py) / float64(len(col)+1)
		for i, n := range col {
			n.Box.Y0 += gap * float64(i+1)
			n.Box.Y1 += gap * float64(i+1)
		}
		for _, n := range col {
			sortLinks(n)
		}
	}
}

func (l *sankeyLayout) relaxLeftToRight(alpha, beta float64) {
	for i := 1; i < len(l.columns); i++ {
		col := l.columns[i]
		for _, target := range col {
			var y, w float64
			for _, link := range target.in {
				v := link.Value * float64(target.Layer-link.Source.Layer)
				y += l.targetTop(link.Source, target) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - target.Box.Y0) * alpha
			target.Box.Y0 += dy
			target.Box.Y1 += dy
			reorderNeighbours(target)
		}
		sortColumn(col)
		l.resolveCollisions(col, beta)
	}
}

func (l *sankeyLayout) relaxRightToLeft(alpha, beta float64) {
	for i := len(l.columns) - 2; i >= 0; i-- {
		col := l.columns[i]
		for _, source := range col {
			var y, w float64
			for _, link := range source.out {
				v := link.Value * float64(link.Target.Layer-source.Layer)
				y += l.sourceTop(source, link.Target) * v
				w += v
			}
			if !(w > 0) {
				continue
			}
			dy := (y/w - source.Box.Y0) * alpha
			source.Box.Y0 += dy
			source.Box.Y1 += dy
			reorderNeighbours(source)
		}
		sortColumn(col)
		l.resolveCollisions(col, beta)
	}
}

// resolveCollisions pushes overlapping nodes apart, outward from the
// middle node, then back inside the box.
func (l *sankeyLayout) resolveCollisions(col []*SankeyNode, alpha float64) {
	if len(col) == 0 {
		return
	}
	i := len(col) / 2
	subject := col[i]
	l.collideUp(col, subject.Box.Y0-l.py, i-1, alpha)
	l.collideDown(col, subject.Box.Y1+l.py, i+1, alpha)
	l.collideUp(col, l.box.Y1, len(col)-1, alpha)
	l.collideDown(col, l.box.Y0, 0, alpha)
}

func (l *sankeyLayout) collideDown(col []*SankeyNode, y float64, i int, alpha float64) {
	for ; i < len(col); i++ {
		n := col[i]
		if dy := (y - n.Box.Y0) * alpha; dy > 1e-6 {
			n.Box.Y0 += dy
			n.Box.Y1 += dy
		}
		y = n.Box.Y1 + l.py
	}
}

func (l *sankeyLayout) collideUp(col []*SankeyNode, y float64, i int, alpha float64) {
	for ; i >= 0; i-- {
		n := col[i]
		if dy := (n.Box.Y1 - y) * alpha; dy > 1e-6 {
			n.Box.Y0 -= dy
			n.Box.Y1 -= dy
		}
		y = n.Box.Y0 - l.py
	}
}

// targetTop returns the y the top of target would have if the link from
// source entered it level.
func (l *sankeyLayout) targetTop(source, target *SankeyNode) float64 {
	y := source.Box.Y0 - float64(len(source.out)-1)*l.py/2
	for _, link := range source.out {
		if link.Target == target {
			break
		}
		y += link.Width + l.py
	}
	for _, link := range target.in {
		if link.Source == source {
			break
		}
		y -= link.Width
	}
	return y
}

func (l *sankeyLayout) sourceTop(source, target *SankeyNode) float64 {
	y := target.Box.Y0 - float64(len(target.in)-1)*l.py/2
	for _, link := range target.in {
		if link.Source == source {
			break
		}
		y += link.Width + l.py
	}
	for _, link := range source.out {
		if link.Target == target {
			break
		}
		y -= link.Width
	}
	return y
}

func (l *sankeyLayout) linkBreadths(nodes []*SankeyNode) {
	for _, n := range nodes {
		sortLinks(n)
	}
	for _, n := range nodes {
		y0, y1 := n.Box.Y0, n.Box.Y0
		for _, link := range n.out {
			link.Y0 = y0 + link.Width/2
			y0 += link.Width
		}
		for _, link := range n.in {
			link.Y1 = y1 + link.Width/2
			y1 += link.Width
		}
	}
}

func sortColumn(col []*SankeyNode) {
	sort.SliceStable(col, func(i, j int) bool { return col[i].Box.Y0 < col[j].Box.Y0 })
}

// sortLinks orders the links of n by the vertical position of the node at
// their other end.
func sortLinks(n *SankeyNode) {
	sort.SliceStable(n.out, func(i, j int) bool { return byTarget(n.out[i], n.out[j]) })
	sort.SliceStable(n.in, func(i, j int) bool { return bySource(n.in[i], n.in[j]) })
}

func reorderNeighbours(n *SankeyNode) {
	for _, link := range n.in {
		out := link.Source.out
		sort.SliceStable(out, func(i, j int) bool { return byTarget(out[i], out[j]) })
	}
	for _, link := range n.out {
		in := link.Target.in
		sort.SliceStable(in, func(i, j int) bool { return bySource(in[i], in[j]) })
	}
}

func byTarget(a, b *SankeyLink) bool {
	if a.Target.Box.Y0 != b.Target.Box.Y0 {
		return a.Target.Box.Y0 < b.Target.Box.Y0
	}
	return a.Index < b.Index
}

func bySource(a, b *SankeyLink) bool {
	if a.Source.Box.Y0 != b.Source.Box.Y0 {
		return a.Source.Box.Y0 < b.Source.Box.Y0
	}
	return a.Index < b.Index
}

const linkStroke = "#64748b"

// Sankey draws a layered flow diagram.
type Sankey struct {
	Common
	Flow        *data.Flow
	NodeWidth   float64 // default 15
	NodePadding float64 // default 10
	Iterations  int     // relaxation passes; default 6, negative for none
}

func (sk *Sankey) Kind() Kind { return KindSankey }

func (sk *Sankey) MinSize() Size { return Size{Width: 50, Height: 10} }

func (sk *Sankey) options() SankeyOptions {
	it := sk.Iterations
	switch {
	case it == 0:
		it = 6
	case it < 0:
		it = 0
	}
	return SankeyOptions{
		NodeWidth:   positive(sk.NodeWidth, 15),
		NodePadding: positive(sk.NodePadding, 10),
		Iterations:  it,
	}
}

// Build lays out the flow. Scene rows are the nodes followed by the links,
// so a link's datum is len(nodes) plus its index.
func (sk *Sankey) Build(size Size) (*Scene, error) {
	if sk.Flow == nil {
		return nil, errors.New(errors.ErrCodeInvalidHierarchy, "sankey chart: flow is required")
	}
	plot := sk.margins(RadialMargins).Plot(size)
	s, done, err := begin(sk, size, plot)
	if done {
		return s, err
	}
	sg, err := LayoutSankey(sk.Flow, plot, sk.options())
	if err != nil {
		return nil, err
	}
	if len(sg.Nodes) == 0 {
		return s, nil
	}

	names := make([]string, len(sg.Nodes))
	for i, n := range sg.Nodes {
		names[i] = n.Name
		s.Rows = append(s.Rows, data.Row{"name": n.Name, "value": n.Value})
	}
	for _, l := range sg.Links {
		s.Rows = append(s.Rows, data.Row{"source": l.Source.Name, "target": l.Target.Name, "value": l.Value})
	}
	color := scale.NewOrdinal(names, []string(sk.palette(scale.Vivid)))

	offset := len(sg.Nodes)
	var links, nodes []geom.Shape
	for _, l := range sg.Links {
		links = append(links, geom.Link{
			Mark: geom.Mark{
				Datum: offset + l.Index, Series: l.Source.Name, Class: "link",
				Stroke: linkStroke, StrokeWidth: math.Max(1, l.Width), Opacity: 0.2,
			},
			X0: l.Source.Box.X1, Y0: l.Y0, X1: l.Target.Box.X0, Y1: l.Y1,
			Width: math.Max(1, l.Width),
		})
	}
	for _, n := range sg.Nodes {
		nodes = append(nodes, geom.Rect{
			Mark: geom.Mark{Datum: n.Index, Series: n.Name, Fill: color.Map(n.Name), Opacity: 0.8},
			X:    n.Box.X0, Y: n.Box.Y0,
			W: math.Max(0, n.Box.Width()), H: math.Max(0, n.Box.Height()),
			RX: 2,
		})
		if n.Box.Height() > 12 {
			t := geom.Text{
				Mark: geom.Mark{Datum: n.Index}, Y: n.Box.Center().Y, DY: ".35em",
				Content: n.Name, Size: 10, Weight: "500",
			}
			if n.Box.X0 < size.Width/2 {
				t.X, t.Align = n.Box.X1+6, "start"
			} else {
				t.X, t.Align = n.Box.X0-6, "end"
			}
			s.Labels = append(s.Labels, t)
		}
	}
	s.Shapes = append(links, nodes...)

	nodeHits := tooltip.ShapeLocator{Shapes: nodes}
	s.Locator = tooltip.Chain{
		tooltip.LocatorFunc(func(x, y float64) (tooltip.Hit, bool) {
			h, ok := nodeHits.Locate(x, y)
			if ok {
				b := sg.Nodes[h.Index].Box
				h.Anchor = geom.Point{X: b.X1, Y: b.Center().Y}
			}
			return h, ok
		}),
		tooltip.ShapeLocator{Shapes: links},
	}
	s.Describe = func(h tooltip.Hit) []string {
		switch {
		case h.Index >= 0 && h.Index < offset:
			n := sg.Nodes[h.Index]
			return []string{n.Name, "Value: " + formatNumber(n.Value)}
		case h.Index >= offset && h.Index < offset+len(sg.Links):
			l := sg.Links[h.Index-offset]
			return []string{l.Source.Name + " → " + l.Target.Name, "Value: " + formatNumber(l.Value)}
		}
		return nil
	}
	return s, nil
}
