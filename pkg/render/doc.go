// Package render converts rendered charts into other output formats.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	out := svg.Render(scene)
//	pdf, err := render.ToPDF(ctx, out)
//	png, err := render.ToPNG(ctx, out, 2.0)  // 2x scale
//
// [SceneJSON] exports the laid out primitives of a scene for hosts that
// draw charts themselves.
//
// # Subpackages
//
//   - [svg]: scene to SVG, with optional hover and browser interaction
//   - [nodelink]: flow charts (sankey, chord) as Graphviz node-link diagrams
//
// [svg]: github.com/matzehuels/waffle/pkg/render/svg
// [nodelink]: github.com/matzehuels/waffle/pkg/render/nodelink
package render
