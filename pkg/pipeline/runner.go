package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/observability"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// Runner encapsulates pipeline execution with caching.
// The CLI and the server both use it to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete build → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	doc, err := Prepare(doc, opts)
	if err != nil {
		return nil, err
	}

	result := &Result{
		DocumentHash: doc.Hash(),
		Size:         opts.Size(doc.Size(chart.Size{})),
		Artifacts:    make(map[string][]byte),
	}
	result.SceneKey = r.Keyer.SceneKey(result.DocumentHash, opts.SceneKeyOpts(result.Size))

	// Serve from cache when every requested artifact is present.
	if !opts.Refresh {
		for _, format := range opts.Formats {
			if data, ok := r.cached(ctx, r.artifactKey(result.SceneKey, opts, format)); ok {
				result.Artifacts[format] = data
				result.CacheInfo.ArtifactHits++
			}
		}
		if result.CacheInfo.ArtifactHits == len(opts.Formats) {
			result.CacheInfo.RenderHit = true
			opts.Logger.Debug("artifacts from cache", "key", result.SceneKey, "formats", opts.Formats)
			return result, nil
		}
	}

	// Stage 1: Build
	scene, buildTime, err := r.build(ctx, doc, opts)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Scene = scene
	result.Stats.Rows = len(scene.Rows)
	result.Stats.Shapes = len(scene.Shapes)
	result.Stats.BuildTime = buildTime

	// Stage 2: Render
	renderStart := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	for _, format := range opts.Formats {
		if _, ok := result.Artifacts[format]; ok {
			continue
		}
		data, err := RenderFormat(ctx, scene, doc, opts, format)
		if err != nil {
			observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(renderStart), err)
			return nil, err
		}
		result.Artifacts[format] = data
		r.store(ctx, r.artifactKey(result.SceneKey, opts, format), data, ttlFor(format))
	}
	result.Stats.RenderTime = time.Since(renderStart)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, result.Stats.RenderTime, nil)

	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Build builds the scene of doc without touching the artifact cache.
func (r *Runner) Build(ctx context.Context, doc *document.Document, opts Options) (*chart.Scene, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	doc, err := Prepare(doc, opts)
	if err != nil {
		return nil, err
	}
	scene, _, err := r.build(ctx, doc, opts)
	return scene, err
}

// Locate builds doc and resolves the pointer position (x, y) to the
// hovered row and its tooltip lines. The bool is false when nothing is
// under the pointer.
func (r *Runner) Locate(ctx context.Context, doc *document.Document, opts Options, x, y float64) (tooltip.Hover, []string, bool, error) {
	scene, err := r.Build(ctx, doc, opts)
	if err != nil {
		return tooltip.Hover{}, nil, false, err
	}
	h, ok := HoverAt(scene, x, y)
	if !ok {
		r.Logger.Debug("nothing under pointer", "x", x, "y", y)
		return tooltip.Hover{}, nil, false, nil
	}
	lines := scene.TooltipLines(tooltip.Hit{Index: h.Index, Anchor: h.Anchor, Series: h.Series})
	return h, lines, true, nil
}

// build runs stage 1 and fires the build hooks.
func (r *Runner) build(ctx context.Context, doc *document.Document, opts Options) (*chart.Scene, time.Duration, error) {
	start := time.Now()
	observability.Pipeline().OnBuildStart(ctx, doc.Kind, len(doc.Data))
	scene, err := Build(doc, opts)
	elapsed := time.Since(start)
	shapes := 0
	if scene != nil {
		shapes = len(scene.Shapes)
	}
	observability.Pipeline().OnBuildComplete(ctx, doc.Kind, shapes, elapsed, err)
	if err != nil {
		return nil, elapsed, err
	}
	if scene.Suppressed {
		opts.Logger.Warn("chart below minimum size, nothing drawn",
			"kind", scene.Kind,
			"size", cache.SizeKey(scene.Width, scene.Height))
	}
	opts.Logger.Info("built scene",
		"kind", scene.Kind,
		"size", cache.SizeKey(scene.Width, scene.Height),
		"shapes", shapes,
		"duration", elapsed)
	return scene, elapsed, nil
}

// artifactKey returns the cache key of one artifact. The JSON export is
// the scene itself and lives under the scene key.
func (r *Runner) artifactKey(sceneKey string, opts Options, format string) string {
	if format == FormatJSON {
		return sceneKey
	}
	return r.Keyer.ArtifactKey(sceneKey, opts.ArtifactKeyOpts(format))
}

func ttlFor(format string) time.Duration {
	if format == FormatJSON {
		return cache.SceneTTL
	}
	return cache.ArtifactTTL
}

// keyType is the key's leading segment ("scene" or "artifact"), after
// any scope prefix.
func keyType(key string) string {
	for _, t := range []string{"scene", "artifact"} {
		if strings.Contains(key, t+":") {
			return t
		}
	}
	return "other"
}

// cached reads key, reporting hits and misses to the cache hooks.
// Read errors count as misses.
func (r *Runner) cached(ctx context.Context, key string) ([]byte, bool) {
	data, ok, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "error", err)
	}
	if err != nil || !ok {
		observability.Cache().OnCacheMiss(ctx, keyType(key))
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, keyType(key))
	return data, true
}

// store writes key. Write errors are logged, never returned.
func (r *Runner) store(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Warn("cache write failed", "key", key, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, keyType(key), len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
