package chart

import (
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/scale"
)

// Series is one numeric channel of a multi-series chart.
type Series struct {
	Name  string
	Value data.NumberFunc
}

// SeriesOf builds one series per field key, named after the key.
func SeriesOf(keys ...string) []Series {
	out := make([]Series, len(keys))
	for i, k := range keys {
		out[i] = Series{Name: k, Value: data.Number(k)}
	}
	return out
}

func seriesNames(ss []Series) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = s.Name
	}
	return out
}

func checkSeries(kind Kind, ss []Series) error {
	if len(ss) == 0 {
		return requireNumber(kind, "series", nil)
	}
	for _, s := range ss {
		if err := requireNumber(kind, "series "+s.Name, s.Value); err != nil {
			return err
		}
	}
	return nil
}

// values reads every series of every row, clamped at zero.
func values(rows data.Dataset, ss []Series) [][]float64 {
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, len(ss))
		for j, s := range ss {
			out[i][j] = nonNegative(s.Value(r))
		}
	}
	return out
}

// StackBaselines returns, for every row and series, the sum of the values
// of all earlier series in that row. Negative values stack as zero.
func StackBaselines(vals [][]float64) [][]float64 {
	out := make([][]float64, len(vals))
	for i, row := range vals {
		out[i] = make([]float64, len(row))
		acc := 0.0
		for j, v := range row {
			out[i][j] = acc
			acc += nonNegative(v)
		}
	}
	return out
}

func rowTotals(vals [][]float64) []float64 {
	out := make([]float64, len(vals))
	for i, row := range vals {
		for _, v := range row {
			out[i] += v
		}
	}
	return out
}

// bandRows maps each band of x to the last row of its category, the one
// drawn on top when categories repeat.
func bandRows(x scale.Band, rows data.Dataset, key data.StringFunc) []int {
	out := make([]int, x.Len())
	pos := make(map[string]int, x.Len())
	for j, c := range x.Domain() {
		out[j] = -1
		pos[c] = j
	}
	for i, r := range rows {
		if j, ok := pos[key(r)]; ok {
			out[j] = i
		}
	}
	return out
}

// rowAt returns the row index of the band under px, or -1.
func rowAt(x scale.Band, bands []int, px float64) int {
	j := x.Index(px)
	if j < 0 || j >= len(bands) {
		return -1
	}
	return bands[j]
}
