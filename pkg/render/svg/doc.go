// Package svg renders chart scenes as standalone SVG documents.
//
// [Render] walks a [chart.Scene] in a fixed order (background, grid, axes,
// shapes, labels, legend, tooltip) so the same scene always yields the
// same bytes:
//
//	scene, _ := c.Build(chart.Size{Width: 800, Height: 600})
//	out := svg.Render(scene, svg.WithTitle("Revenue"), svg.WithInteraction())
//
// Every data primitive carries a data-datum attribute with its row index.
// [WithInteraction] embeds a stylesheet and script that highlight all
// primitives of the hovered row and show its tooltip, the browser-side
// counterpart of the hover controller. [WithHover] bakes a resolved hover
// into the static output instead: the hovered arcs grow and a tooltip box
// is drawn at the hover anchor.
package svg
