// Package pipeline provides the document to artifact pipeline for waffle.
//
// This package implements the build → render pipeline shared by the CLI
// commands and the HTTP server. Centralizing it keeps defaults, validation
// and caching identical across entry points.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Build: turn a chart document into a [chart.Scene] for a pixel size
//  2. Render: write the scene in each requested format (SVG, PNG, PDF, JSON, DOT, Graphviz SVG)
//
// Artifacts are cached under keys derived from the document hash, the
// resolved size and the render options, so a repeated request for the same
// chart skips both stages.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, doc, pipeline.Options{
//	    Formats:     []string{"svg", "png"},
//	    Interactive: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Resolve a pointer position to the hovered row:
//
//	hover, ok, err := runner.Locate(ctx, doc, opts, 120, 80)
package pipeline

import (
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/errors"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and Server
// =============================================================================

const (
	// DefaultWidth is the chart width when neither the options nor the
	// document set one.
	DefaultWidth = 800.0

	// DefaultHeight is the chart height when neither the options nor the
	// document set one.
	DefaultHeight = 600.0

	// DefaultFormat is the output format when none is requested.
	DefaultFormat = FormatSVG

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"

	// FormatGraph is the Graphviz drawing of a flow document's DOT export.
	FormatGraph = "graph"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,

	FormatGraph: true,
}

// Extension returns the file extension of an output format.
func Extension(format string) string {
	if format == FormatGraph {
		return "graph.svg"
	}
	return format
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Pointer is a pointer position in chart pixels.
type Pointer struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ParsePointer parses "x,y".
func ParsePointer(s string) (*Pointer, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pointer %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pointer %q", s)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "pointer %q", s)
	}
	return &Pointer{X: x, Y: y}, nil
}

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Build options
	Kind   string  `json:"kind,omitempty"` // overrides the document's kind
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Render options
	Formats     []string `json:"formats,omitempty"`
	Title       string   `json:"title,omitempty"` // overrides the document's title
	Interactive bool     `json:"interactive,omitempty"`
	Hover       *Pointer `json:"hover,omitempty"` // draws the tooltip for this position
	Scale       float64  `json:"scale,omitempty"` // PNG only
	Background  string   `json:"background,omitempty"`

	// Refresh bypasses cache reads. Fresh artifacts are still written.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Scene is the built scene. It is nil when every artifact came from
	// the cache.
	Scene *chart.Scene

	// DocumentHash is the content hash of the document after overrides.
	DocumentHash string

	// SceneKey is the cache key of the scene; artifact keys derive from it.
	SceneKey string

	// Size is the size the chart was built for.
	Size chart.Size

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Rows       int
	Shapes     int
	BuildTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits.
type CacheInfo struct {
	ArtifactHits int  // artifacts served from the cache
	RenderHit    bool // whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, pdf, json, dot, graph)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma separated format list and validates it.
func ParseFormats(s string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, f)
	}
	return out, ValidateFormats(out)
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Kind != "" {
		if _, err := chart.ParseKind(o.Kind); err != nil {
			return err
		}
	}
	if err := errors.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{DefaultFormat}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Background != "" && o.Background != "none" {
		if err := errors.ValidateColor(o.Background); err != nil {
			return err
		}
	}
	if o.Scale <= 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// Size resolves the build size: explicit options first, then the
// document, then the defaults.
func (o *Options) Size(docSize chart.Size) chart.Size {
	s := docSize
	if s.Width <= 0 {
		s.Width = DefaultWidth
	}
	if s.Height <= 0 {
		s.Height = DefaultHeight
	}
	if o.Width > 0 {
		s.Width = o.Width
	}
	if o.Height > 0 {
		s.Height = o.Height
	}
	return s
}

// SceneKeyOpts returns cache key options for building at size.
func (o *Options) SceneKeyOpts(size chart.Size) cache.SceneKeyOpts {
	return cache.SceneKeyOpts{
		Kind:   o.Kind,
		Width:  size.Width,
		Height: size.Height,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{
		Format:      format,
		Title:       o.Title,
		Interactive: o.Interactive,
		Background:  o.Background,
	}
	if o.Hover != nil {
		k.Hovered = true
		k.HoverX, k.HoverY = o.Hover.X, o.Hover.Y
	}
	if format == FormatPNG {
		k.Scale = o.Scale
	}
	return k
}
