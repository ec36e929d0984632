package chart

import (
	"math"
	"sort"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// ChordGroup is the arc of one matrix row.
type ChordGroup struct {
	Index      int
	Start, End float64 // radians, clockwise from 12 o'clock
	Value      float64 // outflow plus inflow
}

// ChordEnd is one end of a ribbon.
type ChordEnd struct {
	Index      int
	Start, End float64
	Value      float64
}

// ChordLink is the ribbon of one nonzero matrix cell, from row Source.Index
// to column Target.Index.
type ChordLink struct {
	Source, Target ChordEnd
}

// ChordLayout computes directed chord geometry for the square matrix m:
// each group spans an angle proportional to its outflow plus inflow, groups
// are separated by pad radians and the subgroups of a group are sorted by
// descending value, outgoing before incoming.
func ChordLayout(m [][]float64, pad float64) ([]ChordGroup, []ChordLink, error) {
	if err := data.ValidateMatrix(m); err != nil {
		return nil, nil, err
	}
	n := len(m)
	sums := make([]float64, n)
	var total float64
	for i := range n {
		for j := range n {
			sums[i] += m[i][j] + m[j][i]
		}
		total += sums[i]
	}
	k := 0.0
	if total > 0 {
		k = math.Max(0, geom.Tau-pad*float64(n)) / total
	}
	dx := pad
	if k == 0 {
		dx = geom.Tau / float64(n)
	}

	type pending struct {
		source, target *ChordEnd
	}
	cells := make(map[[2]int]*pending)
	cell := func(i, j int) *pending {
		c, ok := cells[[2]int{i, j}]
		if !ok {
			c = &pending{}
			cells[[2]int{i, j}] = c
		}
		return c
	}

	groups := make([]ChordGroup, n)
	x := 0.0
	for i := range n {
		x0 := x
		// j >= 0 is the outgoing cell m[i][j]; j < 0 the incoming cell m[-j-1][i].
		var subs []int
		for j := -n; j < n; j++ {
			if subValue(m, i, j) > 0 {
				subs = append(subs, j)
			}
		}
		sort.SliceStable(subs, func(a, b int) bool {
			return signedValue(m, i, subs[a]) > signedValue(m, i, subs[b])
		})
		for _, j := range subs {
			v := subValue(m, i, j)
			end := &ChordEnd{Index: i, Start: x, End: x + v*k, Value: v}
			x = end.End
			if j < 0 {
				cell(-j-1, i).target = end
			} else {
				cell(i, j).source = end
			}
		}
		groups[i] = ChordGroup{Index: i, Start: x0, End: x, Value: sums[i]}
		x += dx
	}

	var links []ChordLink
	for i := range n {
		for j := range n {
			c, ok := cells[[2]int{i, j}]
			if !ok || c.source == nil || c.target == nil {
				continue
			}
			links = append(links, ChordLink{Source: *c.source, Target: *c.target})
		}
	}
	return groups, links, nil
}

func subValue(m [][]float64, i, j int) float64 {
	if j < 0 {
		return m[-j-1][i]
	}
	return m[i][j]
}

func signedValue(m [][]float64, i, j int) float64 {
	if j < 0 {
		return -m[-j-1][i]
	}
	return m[i][j]
}

// Chord draws a flow matrix as group arcs around a circle joined by
// ribbons.
type Chord struct {
	Common
	Matrix   [][]float64
	Keys     []string
	PadAngle float64 // radians between groups; default 0.05
}

func (c *Chord) Kind() Kind { return KindChord }

func (c *Chord) MinSize() Size { return Size{Width: 50, Height: 10} }

// Radii returns the outer and inner group radius for size.
func (c *Chord) Radii(size Size) (outer, inner float64) {
	side := math.Min(size.Width, size.Height)
	padding := math.Min(40, side*0.2)
	outer = math.Max(10, side*0.5-padding)
	inner = math.Max(5, outer-20)
	return outer, inner
}

// Build lays out the groups and ribbons. Scene rows are the groups
// followed by the ribbons.
func (c *Chord) Build(size Size) (*Scene, error) {
	if len(c.Keys) != len(c.Matrix) {
		return nil, errors.New(errors.ErrCodeInvalidDataset,
			"chord chart: %d keys for a %d×%d matrix", len(c.Keys), len(c.Matrix), len(c.Matrix))
	}
	plot := c.margins(Margins{}).Plot(size)
	s, done, err := begin(c, size, plot)
	if done {
		return s, err
	}
	groups, links, err := ChordLayout(c.Matrix, positive(c.PadAngle, 0.05))
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return s, nil
	}

	ctr := geom.Point{X: size.Width / 2, Y: size.Height / 2}
	outer, inner := c.Radii(size)
	color := scale.NewOrdinal(c.Keys, []string(c.palette(scale.Vivid)))

	var arcs, ribbons []geom.Shape
	for _, g := range groups {
		key := c.Keys[g.Index]
		s.Rows = append(s.Rows, data.Row{"name": key, "value": g.Value})
		arcs = append(arcs, geom.Arc{
			Mark: geom.Mark{Datum: g.Index, Series: key, Fill: color.Map(key)},
			CX:   ctr.X, CY: ctr.Y, Inner: inner, Outer: outer, Start: g.Start, End: g.End,
		})
		s.Legend = append(s.Legend, LegendEntry{Label: key, Color: color.Map(key)})
	}
	offset := len(groups)
	for i, l := range links {
		src, dst := c.Keys[l.Source.Index], c.Keys[l.Target.Index]
		s.Rows = append(s.Rows, data.Row{"source": src, "target": dst, "value": l.Source.Value})
		ribbons = append(ribbons, geom.NewRibbon(
			geom.Mark{Datum: offset + i, Series: src, Class: "ribbon", Fill: color.Map(src), Opacity: 0.75},
			ctr.X, ctr.Y, inner, l.Source.Start, l.Source.End, l.Target.Start, l.Target.End,
		))
	}
	s.Shapes = append(arcs, ribbons...)

	s.Locator = tooltip.Chain{tooltip.ShapeLocator{Shapes: arcs}, tooltip.ShapeLocator{Shapes: ribbons}}
	s.Describe = func(h tooltip.Hit) []string {
		switch {
		case h.Index >= 0 && h.Index < offset:
			return []string{c.Keys[h.Index], "Total: " + formatNumber(groups[h.Index].Value)}
		case h.Index >= offset && h.Index < offset+len(links):
			l := links[h.Index-offset]
			return []string{
				c.Keys[l.Source.Index] + " → " + c.Keys[l.Target.Index],
				"Flow: " + formatNumber(l.Source.Value),
			}
		}
		return nil
	}
	return s, nil
}
