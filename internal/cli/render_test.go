package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

const barYAML = `kind: bar
title: Revenue
keys: {x: month, series: [revenue, cost]}
data:
  - {month: Jan, revenue: 120, cost: 80}
  - {month: Feb, revenue: 90, cost: 70}
  - {month: Mar, revenue: 150, cost: 95}
`

// writeDoc writes a document into a temp dir and returns its path.
func writeDoc(t *testing.T, name, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// runCLI executes the root command with args and returns what the
// command wrote to its output writer.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	var out bytes.Buffer
	c := New(io.Discard, LogInfo)
	c.out = &out
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "charts/sales.yaml", "charts/sales"},
		{"out/chart.svg", "sales.yaml", "out/chart"},
		{"out/chart.graph", "sales.yaml", "out/chart"},
		{"out/chart", "sales.yaml", "out/chart"},
		{"out/chart.v2", "sales.yaml", "out/chart.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		output, format string
		multiple       bool
		want           string
	}{
		{"", "svg", false, "sales.svg"},
		{"", "graph", false, "sales.graph.svg"},
		{"chart.out", "svg", false, "chart.out"},
		{"chart.svg", "png", true, "chart.png"},
		{"chart", "pdf", true, "chart.pdf"},
	}
	for _, tt := range tests {
		if got := outputPath(tt.output, "sales.toml", tt.format, tt.multiple); got != tt.want {
			t.Errorf("outputPath(%q, %s, %v) = %q, want %q", tt.output, tt.format, tt.multiple, got, tt.want)
		}
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{"svg": []byte("<svg/>"), "json": []byte("{}")}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		input:     "sales.yaml",
		output:    filepath.Join(dir, "nested", "chart"),
	})
	if err != nil {
		t.Fatalf("writeArtifacts: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("paths = %v, want 2", paths)
	}
	got, err := os.ReadFile(filepath.Join(dir, "nested", "chart.json"))
	if err != nil || string(got) != "{}" {
		t.Errorf("chart.json = %q, %v", got, err)
	}

	var stdout bytes.Buffer
	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg"},
		output:    "-",
		stdout:    &stdout,
	}); err != nil || stdout.String() != "<svg/>" {
		t.Errorf("stdout = %q, %v", stdout.String(), err)
	}

	if _, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   []string{"svg", "json"},
		output:    "-",
		stdout:    io.Discard,
	}); err == nil {
		t.Error("expected error for several formats on stdout")
	}
}

func TestRenderCommand(t *testing.T) {
	doc := writeDoc(t, "sales.yaml", barYAML)
	out := filepath.Join(t.TempDir(), "sales")

	if _, err := runCLI(t, "render", doc, "-o", out, "-f", "svg,json", "--cache", "none", "--width", "640"); err != nil {
		t.Fatalf("render: %v", err)
	}
	svg, err := os.ReadFile(out + ".svg")
	if err != nil {
		t.Fatalf("read svg: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) || !bytes.Contains(svg, []byte("Revenue")) {
		t.Errorf("unexpected svg output:\n%s", svg)
	}

	var scene struct {
		Kind  string  `json:"kind"`
		Width float64 `json:"width"`
	}
	data, err := os.ReadFile(out + ".json")
	if err != nil {
		t.Fatalf("read json: %v", err)
	}
	if err := json.Unmarshal(data, &scene); err != nil {
		t.Fatalf("decode scene: %v", err)
	}
	if scene.Kind != "bar" || scene.Width != 640 {
		t.Errorf("scene = %+v, want a 640px bar chart", scene)
	}
}

func TestRenderCommandToStdout(t *testing.T) {
	doc := writeDoc(t, "sales.yaml", barYAML)
	out, err := runCLI(t, "render", doc, "-o", "-", "--cache", "none", "--title", "Costs")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(out), "<svg") || !strings.Contains(out, "Costs") {
		t.Errorf("unexpected stdout:\n%.200s", out)
	}
}

func TestRenderCommandErrors(t *testing.T) {
	doc := writeDoc(t, "sales.yaml", barYAML)
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"render", doc, "-f", "gif", "--cache", "none"}},
		{"bad hover", []string{"render", doc, "--hover", "12", "--cache", "none"}},
		{"unknown kind", []string{"render", doc, "--kind", "histogram", "--cache", "none"}},
		{"missing document", []string{"render", doc + ".missing.yaml", "--cache", "none"}},
		{"dot for a bar chart", []string{"render", doc, "-f", "dot", "-o", "-", "--cache", "none"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := runCLI(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestRenderCommandUsesFileCache(t *testing.T) {
	doc := writeDoc(t, "sales.yaml", barYAML)
	cacheDir := t.TempDir()
	out := filepath.Join(t.TempDir(), "sales.svg")

	for i := 0; i < 2; i++ {
		if _, err := runCLI(t, "render", doc, "-o", out, "--cache-dir", cacheDir); err != nil {
			t.Fatalf("render %d: %v", i, err)
		}
	}
	entries, err := os.ReadDir(cacheDir)
	if err != nil || len(entries) == 0 {
		t.Fatalf("cache dir is empty: %v", err)
	}

	if _, err := runCLI(t, "cache", "clear", "--cache-dir", cacheDir); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	var files int
	_ = filepath.WalkDir(cacheDir, func(_ string, d os.DirEntry, _ error) error {
		if d != nil && !d.IsDir() {
			files++
		}
		return nil
	})
	if files != 0 {
		t.Errorf("%d cache files left after clear", files)
	}
}

func TestLocateCommand(t *testing.T) {
	path := writeDoc(t, "sales.yaml", barYAML)
	doc, err := document.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	scene, err := pipeline.NewRunner(nil, nil, nil).Build(context.Background(), doc, pipeline.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c := scene.ShapesFor(2)[0].Bounds().Center()

	out, err := runCLI(t, "locate", path, "--x", fmt.Sprint(c.X), "--y", fmt.Sprint(c.Y), "--json", "--cache", "none")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	var got locateResult
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !got.Found || got.Index != 2 || got.Row["month"] != "Mar" || len(got.Lines) == 0 {
		t.Errorf("locate = %+v, want the Mar row", got)
	}

	out, err = runCLI(t, "locate", path, "--x", "-10", "--y", "-10", "--json", "--cache", "none")
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if strings.Contains(out, `"found": true`) {
		t.Errorf("expected nothing under the pointer, got %s", out)
	}
}

func TestGalleryCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gallery")
	if _, err := runCLI(t, "gallery", "-o", dir, "--tag", "Flow", "--cache", "none"); err != nil {
		t.Fatalf("gallery: %v", err)
	}
	for _, name := range []string{"sankey.svg", "chord.svg", "index.html"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("missing %s: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "bar.svg")); err == nil {
		t.Error("tag filter wrote bar.svg")
	}
}

func TestCachePathCommand(t *testing.T) {
	out, err := runCLI(t, "cache", "path", "--cache-dir", "/tmp/waffle-cache")
	if err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if strings.TrimSpace(out) != "/tmp/waffle-cache" {
		t.Errorf("cache path = %q", out)
	}
}
