package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/buildinfo"
	"github.com/matzehuels/waffle/pkg/cache"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "waffle"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config *Config

	configPath string
	verbose    bool
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Waffle turns chart documents into SVG, PNG and PDF charts",
		Long: `Waffle renders chart documents (JSON, YAML or TOML) into SVG, PNG or PDF.

It supports bar, line, area, pie, radar, scatter, bubble, heatmap, treemap,
sankey, chord, candlestick, funnel, radial bar, waffle and composite charts,
including tooltip hit-testing for a pointer position.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.loadConfig,
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.configPath, "config", "", "config file (default ./"+configFile+")")
	pf.String("cache", cache.BackendFile, "cache backend: none, file, redis, mongo")
	pf.String("cache-dir", "", "file cache directory (default ~/.cache/waffle)")
	pf.String("redis-addr", "localhost:6379", "redis address for the redis cache")
	pf.String("mongo-uri", "mongodb://localhost:27017", "mongodb URI for the mongo cache")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.locateCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.galleryCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.kindsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig layers the configuration and applies the log level.
func (c *CLI) loadConfig(cmd *cobra.Command, _ []string) error {
	cfg, err := LoadConfig(cmd.Flags(), c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// config returns the loaded configuration, or the defaults when the
// command ran without the root's pre-run hook.
func (c *CLI) config() *Config {
	if c.Config == nil {
		cfg, err := LoadConfig(nil, "")
		if err != nil {
			cfg = &Config{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight, Format: pipeline.DefaultFormat}
		}
		c.Config = cfg
	}
	return c.Config
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger), nil
}

// openCache opens the configured cache backend.
func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc, err := c.config().CacheOptions()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	ch, err := cache.Open(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("open %s cache: %w", cc.Backend, err)
	}
	c.Logger.Debug("opened cache", "backend", cc.Backend)
	return ch, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/waffle/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// baseOptions returns pipeline options seeded from the configuration.
// Width and height only apply when set explicitly, so a document's own
// size wins over the configured default.
func (c *CLI) baseOptions(cmd *cobra.Command) pipeline.Options {
	cfg := c.config()
	opts := pipeline.Options{Logger: c.Logger}
	if cmd.Flags().Changed("width") || cfg.Width != pipeline.DefaultWidth {
		opts.Width = cfg.Width
	}
	if cmd.Flags().Changed("height") || cfg.Height != pipeline.DefaultHeight {
		opts.Height = cfg.Height
	}
	return opts
}

// loadDocument reads a chart document and logs its identity.
func (c *CLI) loadDocument(path string) (*document.Document, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("loaded document", "path", path, "kind", doc.Kind, "rows", len(doc.Data))
	return doc, nil
}
