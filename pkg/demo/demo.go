// Package demo generates the sample documents shown by the gallery.
//
// Every chart kind has one entry. Kinds whose gallery data is random
// (scatter, bubble, heatmap) draw it from a PCG source seeded by the
// caller, so a given seed always yields the same charts:
//
//	doc, err := demo.Document(chart.KindScatter, 42)
package demo

import (
	"math"
	"math/rand/v2"
	"sort"
	"strings"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/errors"
)

// DefaultSeed is the seed used when none is given.
const DefaultSeed = uint64(42)

// Gallery thumbnails are drawn at this size.
const (
	Width  = 300.0
	Height = 200.0
)

// Entry is one gallery card.
type Entry struct {
	Kind chart.Kind
	Name string
	Tags []string
	Doc  *document.Document
}

type sample struct {
	name  string
	tags  []string
	build func(rng *rand.Rand) *document.Document
}

var samples = map[chart.Kind]sample{
	chart.KindBar:         {"Bar Chart", []string{"Comparison", "Distribution"}, barDoc},
	chart.KindLine:        {"Line Chart", []string{"Trend", "Time-Series"}, lineDoc},
	chart.KindArea:        {"Area Chart", []string{"Trend", "Volume"}, areaDoc},
	chart.KindPie:         {"Pie Chart", []string{"Proportion"}, pieDoc},
	chart.KindRadar:       {"Radar Chart", []string{"Comparison", "Multivariate"}, radarDoc},
	chart.KindScatter:     {"Scatter Plot", []string{"Correlation", "Distribution"}, scatterDoc},
	chart.KindBubble:      {"Bubble Chart", []string{"Correlation", "Multivariate"}, bubbleDoc},
	chart.KindHeatmap:     {"Heatmap", []string{"Distribution", "Density"}, heatmapDoc},
	chart.KindTreemap:     {"Treemap", []string{"Hierarchy", "Proportion"}, treemapDoc},
	chart.KindSankey:      {"Sankey", []string{"Flow", "Process"}, sankeyDoc},
	chart.KindChord:       {"Chord", []string{"Flow", "Relationship"}, chordDoc},
	chart.KindCandlestick: {"Candlestick Chart", []string{"Financial", "Time-Series"}, candlestickDoc},
	chart.KindFunnel:      {"Funnel Chart", []string{"Process", "Conversion"}, funnelDoc},
	chart.KindRadialBar:   {"Radial Bar", []string{"Comparison", "Circular"}, radialBarDoc},
	chart.KindWaffle:      {"Waffle Chart", []string{"Proportion", "Part-to-Whole"}, waffleDoc},
	chart.KindComposite:   {"Composite", []string{"Comparison", "Trend", "Dual-Axis"}, compositeDoc},
}

// newRand returns the PCG source for seed.
func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}

// Document returns the sample document of kind for seed.
func Document(kind chart.Kind, seed uint64) (*document.Document, error) {
	s, ok := samples[kind]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidKind, "no demo for chart kind %q", kind)
	}
	doc := s.build(newRand(seed))
	doc.Kind = string(kind)
	doc.Title = s.name
	doc.Width, doc.Height = Width, Height
	return doc, nil
}

// Gallery returns one entry per chart kind, in gallery order.
func Gallery(seed uint64) []Entry {
	entries := make([]Entry, 0, len(chart.Kinds))
	for _, k := range chart.Kinds {
		doc, err := Document(k, seed)
		if err != nil {
			continue
		}
		s := samples[k]
		entries = append(entries, Entry{Kind: k, Name: s.name, Tags: s.tags, Doc: doc})
	}
	return entries
}

// Filter keeps the entries whose name contains query (case-insensitive)
// and, when tag is not empty, that carry tag.
func Filter(entries []Entry, query, tag string) []Entry {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Entry
	for _, e := range entries {
		if query != "" && !strings.Contains(strings.ToLower(e.Name), query) {
			continue
		}
		if tag != "" && !hasTag(e.Tags, tag) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func hasTag(tags []string, tag string) bool {
	for _, t := range tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// Tags returns the sorted set of tags used by entries.
func Tags(entries []Entry) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range entries {
		for _, t := range e.Tags {
			if !seen[t] {
				seen[t] = true
				out = append(out, t)
			}
		}
	}
	sort.Strings(out)
	return out
}

// round2 keeps generated values short in documents and tooltips.
func round2(v float64) float64 { return math.Round(v*100) / 100 }
