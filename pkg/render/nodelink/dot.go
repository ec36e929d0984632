package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/scale"
)

// Options configures node-link diagram generation.
type Options struct {
	// Colors overrides the node palette.
	Colors scale.Palette
	// Values prints the flow value on every edge.
	Values bool
	// MaxPenWidth is the stroke width of the heaviest edge; default 8.
	MaxPenWidth float64
}

func (o Options) penWidth(v, max float64) string {
	w := o.MaxPenWidth
	if w <= 0 {
		w = 8
	}
	if max <= 0 {
		return "1"
	}
	return geom.F(math.Max(1, w*v/max))
}

// FlowToDOT converts a sankey flow to Graphviz DOT. Nodes in the same
// sankey column share a rank, so Graphviz keeps the layering of the
// sankey layout.
func FlowToDOT(flow *data.Flow, opts Options) (string, error) {
	sg, err := chart.LayoutSankey(flow, geom.Box{X1: 1000, Y1: 1000}, chart.SankeyOptions{})
	if err != nil {
		return "", err
	}
	palette := opts.Colors.Or(scale.Vivid)

	var buf bytes.Buffer
	writeHeader(&buf, "digraph", "LR", "dot")

	ranks := make([][]int, sg.Layers)
	for _, n := range sg.Nodes {
		fmt.Fprintf(&buf, "  n%d [label=%q, fillcolor=%q];\n", n.Index, n.Name, palette.At(n.Index))
		if n.Layer >= 0 && n.Layer < len(ranks) {
			ranks[n.Layer] = append(ranks[n.Layer], n.Index)
		}
	}
	for _, r := range ranks {
		if len(r) < 2 {
			continue
		}
		buf.WriteString("  { rank=same;")
		for _, i := range r {
			fmt.Fprintf(&buf, " n%d;", i)
		}
		buf.WriteString(" }\n")
	}

	buf.WriteString("\n")
	maxV := 0.0
	for _, l := range flow.Links {
		maxV = math.Max(maxV, l.Value)
	}
	for _, l := range flow.Links {
		attrs := fmt.Sprintf("penwidth=%s, color=%q", opts.penWidth(l.Value, maxV), palette.At(l.Source)+"99")
		if opts.Values {
			attrs += fmt.Sprintf(", label=%q", strconv.FormatFloat(l.Value, 'g', -1, 64))
		}
		fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", l.Source, l.Target, attrs)
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

// MatrixToDOT converts a chord matrix to a circular Graphviz diagram. Cell
// (i, j) becomes an edge from labels[i] to labels[j]; zero cells are
// skipped.
func MatrixToDOT(matrix [][]float64, labels []string, opts Options) (string, error) {
	if err := data.ValidateMatrix(matrix); err != nil {
		return "", err
	}
	if len(labels) != len(matrix) {
		return "", errors.New(errors.ErrCodeInvalidDataset, "%d labels for a %dx%[2]d matrix", len(labels), len(matrix))
	}
	palette := opts.Colors.Or(scale.Vivid)

	var buf bytes.Buffer
	writeHeader(&buf, "digraph", "LR", "circo")
	for i, name := range labels {
		fmt.Fprintf(&buf, "  n%d [label=%q, fillcolor=%q];\n", i, name, palette.At(i))
	}
	buf.WriteString("\n")
	maxV := 0.0
	for _, row := range matrix {
		for _, v := range row {
			maxV = math.Max(maxV, v)
		}
	}
	for i, row := range matrix {
		for j, v := range row {
			if v == 0 || i == j {
				continue
			}
			attrs := fmt.Sprintf("penwidth=%s, color=%q", opts.penWidth(v, maxV), palette.At(i)+"99")
			if opts.Values {
				attrs += fmt.Sprintf(", label=%q", strconv.FormatFloat(v, 'g', -1, 64))
			}
			fmt.Fprintf(&buf, "  n%d -> n%d [%s];\n", i, j, attrs)
		}
	}
	buf.WriteString("}\n")
	return buf.String(), nil
}

func writeHeader(buf *bytes.Buffer, kind, rankdir, layout string) {
	fmt.Fprintf(buf, "%s G {\n", kind)
	fmt.Fprintf(buf, "  layout=%s;\n", layout)
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontcolor=white, fontname=\"Helvetica\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  edge [arrowsize=0.6, fontname=\"Helvetica\", fontsize=10];\n")
	buf.WriteString("  ranksep=1.0;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render DOT")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg element with one
// whose viewBox starts at the origin and whose size matches it.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
