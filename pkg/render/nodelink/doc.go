// Package nodelink renders flow charts as Graphviz node-link diagrams.
//
// # Overview
//
// Sankey flows and chord matrices are both weighted directed graphs. This
// package converts them to Graphviz DOT, where nodes are boxes and flows
// are arrows whose stroke width follows the flow value, and renders the
// DOT in-process.
//
// # Usage
//
//	dot, err := nodelink.FlowToDOT(flow, nodelink.Options{Values: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// Sankey nodes keep their sankey column as a Graphviz rank (left to
// right). Chord matrices use the circo layout.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering. No external Graphviz installation is required. PDF and PNG
// output go through [render.ToPDF] and [render.ToPNG], which need
// rsvg-convert.
package nodelink
