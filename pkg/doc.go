// Package pkg provides the core libraries for waffle chart rendering.
//
// # Overview
//
// Waffle turns tabular or structured data into chart scenes: flat lists of
// positioned geometric primitives with a nearest-point locator for
// tooltips. Scenes are rebuilt from scratch whenever the drawing surface
// changes size, and are written as SVG, PNG, PDF, JSON or (for flow
// charts) Graphviz DOT.
//
// # Architecture
//
// The typical data flow:
//
//	Chart document (YAML, TOML, JSON + optional CSV data file)
//	         ↓
//	    [document] package (decode, validate, bind keys)
//	         ↓
//	    [chart] package (scales + geometry → Scene)
//	         ↓
//	    [tooltip] / [responsive] (hover state, resize rebuilds)
//	         ↓
//	    [render/svg], [render], [render/nodelink] (artifacts)
//
// [pipeline] ties the stages together with caching and is shared by the
// CLI and the HTTP server.
//
// # Quick Start
//
//	doc, _ := document.Load("sales.yaml")
//	ch, _ := doc.Chart()
//	scene, _ := ch.Build(chart.Size{Width: 800, Height: 600})
//
//	if hit, ok := scene.Locate(120, 80); ok {
//	    fmt.Println(scene.TooltipLines(hit))
//	}
//	svg := svg.Render(scene)
//
// # Main Packages
//
// ## Core
//
// [data] - Rows, datasets and typed field accessors that coerce numbers,
// strings and times.
//
// [scale] - Linear, time, band, ordinal and sequential color scales with
// nice domains and tick generation.
//
// [geom] - Shapes (rects, arcs, paths, circles, ribbons), curve generators
// and hit testing.
//
// [dag] - Layered graphs and crossing reduction used by the sankey layout.
//
// [chart] - One builder per chart kind. Every builder returns a [chart.Scene].
//
// [tooltip] - Nearest-point locators and the hover controller.
//
// [responsive] - Resize-driven rebuilds for a single chart surface.
//
// ## Documents and Output
//
// [document] - Chart documents and their mapping onto chart builders.
//
// [render/svg] - SVG output with optional interactive tooltips.
//
// [render/nodelink] - DOT export of flow charts and Graphviz drawing.
//
// [render] - Scene JSON and SVG to PNG/PDF conversion.
//
// ## Infrastructure
//
// [pipeline] - Build → render orchestration with artifact caching.
//
// [cache] - File, Redis, MongoDB and null caches behind one interface.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for pipeline, cache and HTTP events.
//
// [demo] - Deterministic sample documents and the gallery index.
//
// [data]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/data
// [scale]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/scale
// [geom]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/geom
// [dag]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/dag
// [chart]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/chart
// [tooltip]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/tooltip
// [responsive]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/responsive
// [document]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/document
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/render/svg
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/render/nodelink
// [render]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/observability
// [demo]: https://pkg.go.dev/github.com/matzehuels/waffle/pkg/demo
package pkg
