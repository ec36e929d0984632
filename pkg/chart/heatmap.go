package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Heatmap draws a grid of cells, one per (column, row) bin, colored by
// count. Rows are flat: Column and Row give the zero-based bin indices,
// row 0 at the bottom.
type Heatmap struct {
	Common
	Data       data.Dataset
	Column     data.NumberFunc
	Row        data.NumberFunc
	Count      data.NumberFunc
	ColorRange [2]string // low and high colors; default #e2e8f0 to #0f172a
	Gap        float64   // default 2; negative for none
}

func (h *Heatmap) Kind() Kind { return KindHeatmap }

// Build lays out one rounded cell per row.
func (h *Heatmap) Build(size Size) (*Scene, error) {
	for _, req := range []struct {
		name string
		f    data.NumberFunc
	}{{"column", h.Column}, {"row", h.Row}, {"count", h.Count}} {
		if err := requireNumber(KindHeatmap, req.name, req.f); err != nil {
			return nil, err
		}
	}
	plot := h.margins(HeatmapMargins).Plot(size)
	s, done, err := begin(h, size, plot)
	if done || len(h.Data) == 0 {
		return s, err
	}
	s.Rows = h.Data

	cols := int(scale.Max(h.Data.Values(h.Column))) + 1
	rows := int(scale.Max(h.Data.Values(h.Row))) + 1
	counts := h.Data.Values(h.Count)
	lo, hi := h.colors()
	color, err := scale.NewSequential(0, scale.Max(counts), lo, hi)
	if err != nil {
		return nil, err
	}

	binW := plot.Width() / float64(cols)
	binH := plot.Height() / float64(rows)
	gap := positive(h.Gap, 2)
	for i, r := range h.Data {
		c := binIndex(h.Column(r))
		rw := binIndex(h.Row(r))
		s.Shapes = append(s.Shapes, geom.Rect{
			Mark: geom.Mark{Datum: i, Fill: color.Map(counts[i])},
			X:    plot.X0 + float64(c)*binW + gap/2,
			Y:    plot.Y1 - float64(rw+1)*binH + gap/2,
			W:    math.Max(0, binW-gap),
			H:    math.Max(0, binH-gap),
			RX:   2,
		})
	}

	s.Locator = tooltip.ShapeLocator{Shapes: s.Shapes}
	s.Describe = func(hit tooltip.Hit) []string {
		if hit.Index < 0 || hit.Index >= len(h.Data) {
			return nil
		}
		r := h.Data[hit.Index]
		return []string{
			"count: " + formatNumber(counts[hit.Index]),
			"bin: " + formatNumber(float64(binIndex(h.Column(r)))) + " / " + formatNumber(float64(binIndex(h.Row(r)))),
		}
	}
	return s, nil
}

func (h *Heatmap) colors() (string, string) {
	lo, hi := h.ColorRange[0], h.ColorRange[1]
	if lo == "" {
		lo = "#e2e8f0"
	}
	if hi == "" {
		hi = "#0f172a"
	}
	return lo, hi
}

func binIndex(v float64) int {
	return int(math.Max(0, math.Floor(data.Finite(v))))
}

// FlattenBins converts nested heatmap columns, each holding a list of
// bins, into the flat rows Heatmap consumes. binsKey names the nested list
// and countKey the count inside each bin.
func FlattenBins(columns data.Dataset, binsKey, countKey string) data.Dataset {
	var out data.Dataset
	for c, col := range columns {
		var bins []any
		switch x := col[binsKey].(type) {
		case []any:
			bins = x
		case []map[string]any:
			for _, b := range x {
				bins = append(bins, b)
			}
		}
		for r, b := range bins {
			count := 0.0
			switch x := b.(type) {
			case map[string]any:
				count = data.ToFloat(x[countKey])
			case data.Row:
				count = data.ToFloat(x[countKey])
			default:
				count = data.ToFloat(x)
			}
			out = append(out, data.Row{"column": float64(c), "row": float64(r), "count": count})
		}
	}
	return out
}
