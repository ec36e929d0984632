package pipeline

import (
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// =============================================================================
// Scene Building
// =============================================================================

// Prepare applies the option overrides to a copy of doc. The original
// document is never modified.
func Prepare(doc *document.Document, opts Options) (*document.Document, error) {
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "document is required")
	}
	out := *doc
	if opts.Kind != "" {
		out.Kind = opts.Kind
	}
	if opts.Title != "" {
		out.Title = opts.Title
	}
	return &out, nil
}

// Build turns doc into a scene of the resolved size.
func Build(doc *document.Document, opts Options) (*chart.Scene, error) {
	c, err := doc.Chart()
	if err != nil {
		return nil, err
	}
	return c.Build(opts.Size(doc.Size(chart.Size{})))
}

// HoverAt locates (x, y) in scene and returns the hover state a pointer
// there produces.
func HoverAt(scene *chart.Scene, x, y float64) (tooltip.Hover, bool) {
	if scene.Empty() {
		return tooltip.Hover{}, false
	}
	hit, ok := scene.Locate(x, y)
	if !ok || hit.Index < 0 || hit.Index >= len(scene.Rows) {
		return tooltip.Hover{}, false
	}
	return tooltip.Hover{
		Index:   hit.Index,
		Row:     scene.Rows[hit.Index],
		Anchor:  hit.Anchor,
		Pointer: geom.Point{X: x, Y: y},
		Series:  hit.Series,
	}, true
}
