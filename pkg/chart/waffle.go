package chart

import (
	"math"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

const emptyCellColor = "#94a3b8"

// Waffle shows proportions as cells of a rows×columns grid, filled row by
// row from the top-left in data order.
type Waffle struct {
	Common
	Data     data.Dataset
	Label    data.StringFunc
	Value    data.NumberFunc
	Total    float64 // denominator; default sum of values
	Rows     int     // default 10
	Columns  int     // default 10
	Gap      float64 // default 2; negative for none
	Rounding float64 // cell corner radius; default 2
}

func (w *Waffle) Kind() Kind { return KindWaffle }

// AllocateCells converts values into whole cell counts,
// round(value/total*cells), and stops allocating once the grid is full.
// It returns the count per value and the number of empty cells left.
func AllocateCells(vals []float64, total float64, cells int) (counts []int, empty int) {
	counts = make([]int, len(vals))
	if cells <= 0 {
		return counts, 0
	}
	left := cells
	for i, v := range vals {
		if total <= 0 {
			break
		}
		n := int(math.Round(nonNegative(v) / total * float64(cells)))
		n = min(n, left)
		counts[i] = n
		left -= n
	}
	return counts, left
}

// Build lays out every cell of the grid; empty cells carry no datum.
func (w *Waffle) Build(size Size) (*Scene, error) {
	if err := requireNumber(KindWaffle, "value", w.Value); err != nil {
		return nil, err
	}
	plot := w.margins(Margins{}).Plot(size)
	s, done, err := begin(w, size, plot)
	if done || len(w.Data) == 0 {
		return s, err
	}
	s.Rows = w.Data

	rows, cols := w.grid()
	vals := w.Data.Values(w.Value)
	total := w.Total
	if total <= 0 {
		total = scale.Sum(vals)
	}
	counts, _ := AllocateCells(vals, total, rows*cols)
	owner := make([]int, 0, rows*cols)
	for i, n := range counts {
		for k := 0; k < n; k++ {
			owner = append(owner, i)
		}
	}
	for len(owner) < rows*cols {
		owner = append(owner, geom.NoDatum)
	}

	gap := positive(w.Gap, 2)
	cw := math.Max(0, (plot.Width()-gap*float64(cols-1))/float64(cols))
	ch := math.Max(0, (plot.Height()-gap*float64(rows-1))/float64(rows))
	palette := w.palette(scale.Waffle)
	var cells []geom.Shape
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			i := owner[r*cols+c]
			m := geom.Mark{Datum: i, Fill: emptyCellColor, Opacity: 0.2, Class: "empty"}
			if i != geom.NoDatum {
				m = geom.Mark{Datum: i, Fill: palette.At(i)}
				if w.Label != nil {
					m.Series = w.Label(w.Data[i])
				}
			}
			cells = append(cells, geom.Rect{
				Mark: m,
				X:    plot.X0 + float64(c)*(cw+gap),
				Y:    plot.Y0 + float64(r)*(ch+gap),
				W:    cw,
				H:    ch,
				RX:   positive(w.Rounding, 2),
			})
		}
	}
	s.Shapes = cells
	if w.Label != nil {
		for i, row := range w.Data {
			s.Legend = append(s.Legend, LegendEntry{Label: w.Label(row), Color: palette.At(i)})
		}
	}

	s.Locator = tooltip.ShapeLocator{Shapes: cells}
	s.Describe = func(h tooltip.Hit) []string {
		if h.Index < 0 || h.Index >= len(vals) {
			return nil
		}
		line := formatNumber(vals[h.Index]) + " (" + percent(vals[h.Index], total) + ")"
		if w.Label == nil {
			return []string{line}
		}
		return []string{w.Label(w.Data[h.Index]), line}
	}
	return s, nil
}

func (w *Waffle) grid() (rows, cols int) {
	rows, cols = w.Rows, w.Columns
	if rows <= 0 {
		rows = 10
	}
	if cols <= 0 {
		cols = 10
	}
	return rows, cols
}
