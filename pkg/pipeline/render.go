package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/render"
	"github.com/matzehuels/waffle/pkg/render/nodelink"
	"github.com/matzehuels/waffle/pkg/render/svg"
	"github.com/matzehuels/waffle/pkg/scale"
)

// Render generates output artifacts in the requested formats.
// doc must be the prepared document the scene was built from.
func Render(ctx context.Context, scene *chart.Scene, doc *document.Document, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, scene, doc, opts, format)
		if err != nil {
			return nil, err
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat renders a single format.
func RenderFormat(ctx context.Context, scene *chart.Scene, doc *document.Document, opts Options, format string) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	switch format {
	case FormatSVG:
		data = svg.Render(scene, buildSVGOptions(scene, doc, opts)...)
	case FormatPNG:
		data, err = render.ToPNG(ctx, svg.Render(scene, buildSVGOptions(scene, doc, opts)...), opts.Scale)
	case FormatPDF:
		data, err = render.ToPDF(ctx, svg.Render(scene, buildSVGOptions(scene, doc, opts)...))
	case FormatJSON:
		data, err = render.SceneJSON(scene)
	case FormatDOT:
		var dot string
		dot, err = toDOT(doc)
		data = []byte(dot)
	case FormatGraph:
		var dot string
		if dot, err = toDOT(doc); err == nil {
			data, err = nodelink.RenderSVG(ctx, dot)
		}
	default:
		return nil, ValidateFormat(format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return data, nil
}

// buildSVGOptions builds SVG rendering options.
func buildSVGOptions(scene *chart.Scene, doc *document.Document, opts Options) []svg.Option {
	var svgOpts []svg.Option
	if doc.Title != "" {
		svgOpts = append(svgOpts, svg.WithTitle(doc.Title))
	}
	if opts.Background != "" {
		svgOpts = append(svgOpts, svg.WithBackground(opts.Background))
	}
	if opts.Interactive {
		svgOpts = append(svgOpts, svg.WithInteraction())
	}
	if opts.Hover != nil {
		if h, ok := HoverAt(scene, opts.Hover.X, opts.Hover.Y); ok {
			svgOpts = append(svgOpts, svg.WithHover(h))
		}
	}
	return svgOpts
}

// toDOT exports the flow structure of sankey and chord documents.
func toDOT(doc *document.Document) (string, error) {
	kind, err := chart.ParseKind(doc.Kind)
	if err != nil {
		return "", err
	}
	nl := nodelink.Options{Colors: scale.Palette(doc.Options.Colors), Values: true}
	switch kind {
	case chart.KindSankey:
		return nodelink.FlowToDOT(doc.Flow, nl)
	case chart.KindChord:
		return nodelink.MatrixToDOT(doc.Matrix, doc.ChordLabels(), nl)
	}
	return "", errors.New(errors.ErrCodeUnsupported, "dot output needs a sankey or chord document, not %s", kind)
}
