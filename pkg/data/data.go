// Package data holds the row-oriented datasets every chart consumes and the
// accessors that read typed values out of them.
//
// A [Dataset] is an ordered slice of [Row] values. Rows are schemaless maps,
// so accessors never fail: a missing or non-numeric field reads as zero, a
// missing string field reads as "", and an unparsable time reads as the zero
// time. Non-finite numbers (NaN, ±Inf) are coerced to zero so that every
// downstream scale stays finite.
//
// Datasets are never mutated by chart builders. Helpers that reorder rows,
// such as [Dataset.SortedBy], return copies.
package data

import (
	"encoding/json"
	"math"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is a single record of a dataset.
type Row map[string]any

// Dataset is an ordered sequence of rows. The index of a row is its identity
// for hit-testing and tooltips.
type Dataset []Row

// NumberFunc extracts a numeric value from a row.
type NumberFunc func(Row) float64

// StringFunc extracts a label from a row.
type StringFunc func(Row) string

// TimeFunc extracts a timestamp from a row.
type TimeFunc func(Row) time.Time

// Number returns an accessor reading key as a float64.
func Number(key string) NumberFunc {
	return func(r Row) float64 {
		return ToFloat(r[key])
	}
}

// String returns an accessor reading key as a string.
func String(key string) StringFunc {
	return func(r Row) string {
		return ToString(r[key])
	}
}

// Time returns an accessor reading key as a timestamp.
func Time(key string) TimeFunc {
	return func(r Row) time.Time {
		return ToTime(r[key])
	}
}

// TimeMillis returns a numeric accessor reading key as unix milliseconds.
// Time-based x axes are mapped through it so that every continuous axis
// shares the same numeric scale.
func TimeMillis(key string) NumberFunc {
	return func(r Row) float64 {
		t := ToTime(r[key])
		if t.IsZero() {
			return 0
		}
		return float64(t.UnixMilli())
	}
}

// Finite returns v, or zero when v is NaN or infinite.
func Finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ToFloat converts a decoded value to a finite float64.
func ToFloat(v any) float64 {
	switch x := v.(type) {
	case float64:
		return Finite(x)
	case float32:
		return Finite(float64(x))
	case int:
		return float64(x)
	case int8:
		return float64(x)
	case int16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case uint32:
		return float64(x)
	case uint64:
		return float64(x)
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		return Finite(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return Finite(f)
	case bool:
		if x {
			return 1
		}
		return 0
	case time.Time:
		if x.IsZero() {
			return 0
		}
		return float64(x.UnixMilli())
	default:
		return 0
	}
}

// ToString converts a decoded value to its display form.
func ToString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// timeLayouts are tried in order when a string is read as a timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006-01",
	"2006/01/02",
}

// ToTime converts a decoded value to a UTC timestamp. Numbers below 1e11
// are read as unix seconds, larger ones as unix milliseconds.
func ToTime(v any) time.Time {
	switch x := v.(type) {
	case time.Time:
		return x.UTC()
	case string:
		s := strings.TrimSpace(x)
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.UTC()
			}
		}
		return time.Time{}
	case nil, bool:
		return time.Time{}
	default:
		f := ToFloat(x)
		if f == 0 {
			return time.Time{}
		}
		if math.Abs(f) < 1e11 {
			return time.Unix(0, int64(f*1e9)).UTC()
		}
		return time.UnixMilli(int64(f)).UTC()
	}
}

// IsTimeLike reports whether v is a timestamp or a string that parses as one.
func IsTimeLike(v any) bool {
	switch x := v.(type) {
	case time.Time:
		return true
	case string:
		return !ToTime(x).IsZero()
	default:
		return false
	}
}

// Values applies f to every row.
func (d Dataset) Values(f NumberFunc) []float64 {
	out := make([]float64, len(d))
	for i, r := range d {
		out[i] = Finite(f(r))
	}
	return out
}

// Strings applies f to every row.
func (d Dataset) Strings(f StringFunc) []string {
	out := make([]string, len(d))
	for i, r := range d {
		out[i] = f(r)
	}
	return out
}

// Distinct returns the distinct labels of f in first-seen order.
func (d Dataset) Distinct(f StringFunc) []string {
	seen := make(map[string]bool, len(d))
	var out []string
	for _, r := range d {
		s := f(r)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Keys returns the union of field names over all rows, sorted.
func (d Dataset) Keys() []string {
	set := make(map[string]bool)
	for _, r := range d {
		for k := range r {
			set[k] = true
		}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedBy returns a copy of d stably sorted ascending by f.
func (d Dataset) SortedBy(f NumberFunc) Dataset {
	out := slices.Clone(d)
	sort.SliceStable(out, func(i, j int) bool {
		return Finite(f(out[i])) < Finite(f(out[j]))
	})
	return out
}

// IsSortedBy reports whether d is ascending by f.
func (d Dataset) IsSortedBy(f NumberFunc) bool {
	for i := 1; i < len(d); i++ {
		if Finite(f(d[i])) < Finite(f(d[i-1])) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the row maps.
func (d Dataset) Clone() Dataset {
	if d == nil {
		return nil
	}
	out := make(Dataset, len(d))
	for i, r := range d {
		c := make(Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
