package scale

// Palette is an ordered list of colors.
type Palette []string

// Default palettes.
var (
	// Vivid is the default categorical palette.
	Vivid = Palette{"#a855f7", "#ec4899", "#3b82f6", "#14b8a6", "#f59e0b", "#ef4444"}

	// Waffle is the default palette of waffle charts.
	Waffle = Palette{"#a855f7", "#ec4899", "#3b82f6", "#10b981", "#f59e0b", "#ef4444"}

	// Radial is the default palette of radial bar charts.
	Radial = Palette{"#10b981", "#3b82f6", "#f59e0b", "#ef4444", "#8b5cf6"}

	// Slate is the default palette of pie charts.
	Slate = Palette{"#0f172a", "#3b82f6", "#6366f1", "#0ea5e9", "#06b6d4", "#64748b"}

	// Funnel is the default palette of funnel charts.
	Funnel = Palette{"#3b82f6", "#60a5fa", "#93c5fd", "#bfdbfe", "#dbeafe"}

	// Pair is the default two-series palette of area charts.
	Pair = Palette{"#a855f7", "#ec4899"}
)

// At returns the color for position i, cycling through the palette.
// An empty palette yields "".
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return ""
	}
	i %= len(p)
	if i < 0 {
		i += len(p)
	}
	return p[i]
}

// Or returns p, or fallback when p is empty.
func (p Palette) Or(fallback Palette) Palette {
	if len(p) == 0 {
		return fallback
	}
	return p
}

// Ordinal maps a discrete domain onto a list of values, cycling through the
// values when the domain is longer.
type Ordinal[K comparable, V any] struct {
	index  map[K]int
	domain []K
	values []V
}

// NewOrdinal builds an ordinal scale. Duplicate keys keep their first position.
func NewOrdinal[K comparable, V any](domain []K, values []V) Ordinal[K, V] {
	o := Ordinal[K, V]{index: make(map[K]int, len(domain)), values: values}
	for _, k := range domain {
		if _, ok := o.index[k]; ok {
			continue
		}
		o.index[k] = len(o.domain)
		o.domain = append(o.domain, k)
	}
	return o
}

// Lookup returns the value for k and whether k is in the domain.
func (o Ordinal[K, V]) Lookup(k K) (V, bool) {
	var zero V
	i, ok := o.index[k]
	if !ok || len(o.values) == 0 {
		return zero, false
	}
	return o.values[i%len(o.values)], true
}

// Map returns the value for k. Keys outside the domain map to the value
// following the last domain entry, so unknown keys still get a stable,
// distinct-from-the-first value.
func (o Ordinal[K, V]) Map(k K) V {
	if v, ok := o.Lookup(k); ok {
		return v
	}
	var zero V
	if len(o.values) == 0 {
		return zero
	}
	return o.values[len(o.domain)%len(o.values)]
}

// Domain returns the keys in order.
func (o Ordinal[K, V]) Domain() []K { return o.domain }
