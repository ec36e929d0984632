package pipeline

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/errors"
	"github.com/matzehuels/waffle/pkg/observability"
)

const barDoc = `
kind: bar
title: Revenue
keys: {x: month, series: [revenue, cost]}
data:
  - {month: Jan, revenue: 120, cost: 80}
  - {month: Feb, revenue: 90, cost: 70}
  - {month: Mar, revenue: 150, cost: 95}
`

const sankeyDoc = `{
  "kind": "sankey",
  "flow": {
    "nodes": [{"name": "Solar"}, {"name": "Wind"}, {"name": "Grid"}],
    "links": [{"source": 0, "target": 2, "value": 4}, {"source": 1, "target": 2, "value": 6}]
  }
}`

func decode(t *testing.T, src string, format document.Format) *document.Document {
	t.Helper()
	doc, err := document.Decode(strings.NewReader(src), format)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return doc
}

// memCache is an in-memory cache.Cache for tests.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"dot", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got, err := ParseFormats(" SVG, png,svg,, ")
	if err != nil {
		t.Fatalf("ParseFormats: %v", err)
	}
	if strings.Join(got, ",") != "svg,png" {
		t.Errorf("ParseFormats = %v, want [svg png]", got)
	}

	if _, err := ParseFormats("svg,gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("ParseFormats(gif) error = %v, want INVALID_FORMAT", err)
	}
}

func TestParsePointer(t *testing.T) {
	tests := []struct {
		in      string
		x, y    float64
		wantErr bool
	}{
		{"10,20", 10, 20, false},
		{" 1.5 , -3 ", 1.5, -3, false},
		{"10", 0, 0, true},
		{"a,b", 0, 0, true},
	}

	for _, tt := range tests {
		p, err := ParsePointer(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePointer(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && (p.X != tt.x || p.Y != tt.y) {
			t.Errorf("ParsePointer(%q) = %+v", tt.in, *p)
		}
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	var opts Options
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != DefaultFormat {
		t.Errorf("Formats = %v, want [%s]", opts.Formats, DefaultFormat)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %v, want %v", opts.Scale, DefaultScale)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}

	// Idempotent: a second call changes nothing.
	opts.Formats = append(opts.Formats, "bogus")
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should be a no-op, got %v", err)
	}

	invalid := []Options{
		{Kind: "donut-ish"},
		{Width: -1},
		{Formats: []string{"gif"}},
		{Background: "url(x)"},
	}
	for _, o := range invalid {
		if err := o.ValidateAndSetDefaults(); err == nil {
			t.Errorf("ValidateAndSetDefaults(%+v) should fail", o)
		}
	}
}

func TestOptionsSize(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		doc        chart.Size
		wantW, wantH float64
	}{
		{"defaults", Options{}, chart.Size{}, DefaultWidth, DefaultHeight},
		{"document", Options{}, chart.Size{Width: 400, Height: 300}, 400, 300},
		{"options win", Options{Width: 200}, chart.Size{Width: 400, Height: 300}, 200, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.opts.Size(tt.doc)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("Size = %+v, want %gx%g", got, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestExecuteCachesArtifacts(t *testing.T) {
	ctx := context.Background()
	mc := newMemCache()
	runner := NewRunner(mc, nil, nil)
	doc := decode(t, barDoc, document.FormatYAML)

	opts := Options{Formats: []string{FormatSVG, FormatJSON}}
	first, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if first.Scene == nil || first.CacheInfo.RenderHit {
		t.Fatalf("first run should build, got %+v", first.CacheInfo)
	}
	if first.Stats.Shapes != 6 {
		t.Errorf("Shapes = %d, want 6", first.Stats.Shapes)
	}
	if !bytes.Contains(first.Artifacts[FormatSVG], []byte("Revenue")) {
		t.Error("svg should carry the document title")
	}
	if mc.sets != 2 {
		t.Errorf("cache sets = %d, want 2", mc.sets)
	}

	second, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheInfo.RenderHit || second.Scene != nil {
		t.Errorf("second run should come from cache, got %+v", second.CacheInfo)
	}
	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("cached svg differs from rendered svg")
	}

	refreshed, err := runner.Execute(ctx, doc, Options{Formats: opts.Formats, Refresh: true})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if refreshed.Scene == nil {
		t.Error("refresh should rebuild the scene")
	}

	resized, err := runner.Execute(ctx, doc, Options{Formats: opts.Formats, Width: 400})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if resized.SceneKey == first.SceneKey {
		t.Error("a different size must produce a different scene key")
	}
}

func TestExecuteDoesNotModifyDocument(t *testing.T) {
	doc := decode(t, barDoc, document.FormatYAML)
	before := doc.Hash()

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), doc, Options{Kind: "line", Title: "Other"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if doc.Hash() != before || doc.Kind != "bar" {
		t.Error("Execute modified the caller's document")
	}
}

func TestExecuteInvalidDocument(t *testing.T) {
	doc := decode(t, barDoc, document.FormatYAML)
	doc.Keys.X = ""

	_, err := NewRunner(nil, nil, nil).Execute(context.Background(), doc, Options{})
	if err == nil {
		t.Fatal("expected an error for a bar document without an x key")
	}
}

func TestExecuteDOT(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)

	res, err := runner.Execute(ctx, decode(t, sankeyDoc, document.FormatJSON), Options{Formats: []string{FormatDOT}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	dot := string(res.Artifacts[FormatDOT])
	if !strings.HasPrefix(dot, "digraph") || !strings.Contains(dot, `"Solar"`) {
		t.Errorf("unexpected dot output:\n%s", dot)
	}

	_, err = runner.Execute(ctx, decode(t, barDoc, document.FormatYAML), Options{Formats: []string{FormatDOT}})
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("dot for a bar chart: error = %v, want UNSUPPORTED", err)
	}
}

func TestExtension(t *testing.T) {
	tests := map[string]string{
		FormatSVG:   "svg",
		FormatPNG:   "png",
		FormatDOT:   "dot",
		FormatGraph: "graph.svg",
	}
	for format, want := range tests {
		if got := Extension(format); got != want {
			t.Errorf("Extension(%q) = %q, want %q", format, got, want)
		}
	}
}

func TestLocateAndHover(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil)
	doc := decode(t, barDoc, document.FormatYAML)

	scene, err := runner.Build(ctx, doc, Options{})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	c := scene.ShapesFor(0)[0].Bounds().Center()

	hover, lines, ok, err := runner.Locate(ctx, doc, Options{}, c.X, c.Y)
	if err != nil || !ok {
		t.Fatalf("Locate = %v, %v", ok, err)
	}
	if hover.Index != 0 || hover.Row["month"] != "Jan" {
		t.Errorf("hover = %+v, want the Jan row", hover)
	}
	if len(lines) == 0 {
		t.Error("expected tooltip lines")
	}

	if _, _, ok, _ := runner.Locate(ctx, doc, Options{}, -50, -50); ok {
		t.Error("a pointer outside the chart should not hit")
	}

	res, err := runner.Execute(ctx, doc, Options{Hover: &Pointer{X: c.X, Y: c.Y}})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !bytes.Contains(res.Artifacts[FormatSVG], []byte(`class="tooltip"`)) {
		t.Error("hovered svg should contain a tooltip")
	}
}

type recordingHooks struct {
	observability.NoopPipelineHooks
	mu     sync.Mutex
	events []string
}

func (h *recordingHooks) record(e string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, e)
}

func (h *recordingHooks) OnBuildStart(context.Context, string, int) { h.record("build") }
func (h *recordingHooks) OnRenderComplete(_ context.Context, _ []string, _ time.Duration, err error) {
	if err == nil {
		h.record("render")
	}
}

type recordingCacheHooks struct {
	observability.NoopCacheHooks
	mu   sync.Mutex
	hits int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hits++
}

func TestExecuteFiresHooks(t *testing.T) {
	observability.Reset()
	defer observability.Reset()

	ph := &recordingHooks{}
	ch := &recordingCacheHooks{}
	observability.SetPipelineHooks(ph)
	observability.SetCacheHooks(ch)

	runner := NewRunner(newMemCache(), cache.NewScopedKeyer(nil, "test:"), nil)
	doc := decode(t, barDoc, document.FormatYAML)
	for i := 0; i < 2; i++ {
		if _, err := runner.Execute(context.Background(), doc, Options{}); err != nil {
			t.Fatalf("Execute: %v", err)
		}
	}

	if strings.Join(ph.events, ",") != "build,render" {
		t.Errorf("pipeline events = %v, want [build render]", ph.events)
	}
	if ch.hits != 1 {
		t.Errorf("cache hits = %d, want 1", ch.hits)
	}
}
