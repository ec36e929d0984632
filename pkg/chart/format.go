package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/waffle/pkg/data"
)

// formatNumber renders v for ticks and tooltips: thousands separators, at
// most two decimals, no trailing zeros.
func formatNumber(v float64) string {
	v = data.Finite(v)
	v = math.Round(v*100) / 100
	if v == 0 {
		return "0"
	}
	s := strconv.FormatFloat(math.Abs(v), 'f', -1, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	var sb strings.Builder
	if v < 0 {
		sb.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if frac != "" {
		sb.WriteByte('.')
		sb.WriteString(frac)
	}
	return sb.String()
}

// percent renders part/total as a whole percentage.
func percent(part, total float64) string {
	if total <= 0 {
		return "0%"
	}
	return strconv.Itoa(int(math.Round(part/total*100))) + "%"
}

// describeRow renders every field of r as "key: value", keys sorted.
func describeRow(r data.Row) []string {
	keys := data.Dataset{r}.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+": "+data.ToString(r[k]))
	}
	return out
}
