package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/pipeline"
)

// renderFlags holds the command-line flags shared by commands that render.
type renderFlags struct {
	output  string // output file path (or base path for multiple outputs)
	formats string // comma-separated output formats
	hover   string // "x,y" pointer position drawn with its tooltip
	noCache bool
}

// addRenderFlags registers the flags that map onto pipeline.Options.
func addRenderFlags(cmd *cobra.Command, opts *pipeline.Options, flags *renderFlags) {
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple); - for stdout")
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json, dot, graph (comma-separated)")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "chart height in pixels")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "override the document's chart kind")
	cmd.Flags().StringVar(&opts.Title, "title", "", "override the document's title")
	cmd.Flags().BoolVar(&opts.Interactive, "interactive", false, "embed hover highlighting and tooltips in the SVG")
	cmd.Flags().StringVar(&flags.hover, "hover", "", "draw the tooltip for pointer position x,y")
	cmd.Flags().StringVar(&opts.Background, "background", "", "background color, or none")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached artifacts")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
}

// resolve merges the flags into opts on top of the configuration.
func (c *CLI) resolve(cmd *cobra.Command, opts pipeline.Options, flags renderFlags) (pipeline.Options, error) {
	base := c.baseOptions(cmd)
	opts.Logger = base.Logger
	opts.Width, opts.Height = base.Width, base.Height

	spec := flags.formats
	if spec == "" {
		spec = c.config().Format
	}
	formats, err := pipeline.ParseFormats(spec)
	if err != nil {
		return opts, err
	}
	opts.Formats = formats

	if flags.hover != "" {
		p, err := pipeline.ParsePointer(flags.hover)
		if err != nil {
			return opts, err
		}
		opts.Hover = p
	}
	return opts, opts.ValidateAndSetDefaults()
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		flags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "render [document]",
		Short: "Render a chart document to SVG, PNG, PDF, JSON or DOT",
		Long: `Render a chart document to SVG, PNG, PDF, JSON or DOT.

The document (JSON, YAML or TOML) names the chart kind, the dataset and
the keys that map fields onto visual channels. PNG and PDF output needs
rsvg-convert. DOT output and its Graphviz drawing (graph) are available
for sankey and chord documents.

Results are cached, keyed by the document content and the render options.`,
		Example: `  waffle render sales.yaml
  waffle render sales.yaml -f svg,png -o out/sales
  waffle render flows.json -f dot -o - | dot -Tpng > flows.png
  waffle render sales.yaml --interactive --hover 220,140`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.resolve(cmd, opts, flags)
			if err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], resolved, flags)
		},
	}
	addRenderFlags(cmd, &opts, &flags)

	return cmd
}

// runRender loads the document, runs the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	doc, err := c.loadDocument(input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", doc.Kind))
	if flags.output != "-" {
		spinner.Start()
	}
	result, err := runner.Execute(ctx, doc, opts)
	if flags.output != "-" {
		spinner.Stop()
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", input, err)
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		stdout:    c.out,
	})
	if err != nil || flags.output == "-" {
		return err
	}

	printSuccess("Rendered %s", StyleHighlight.Render(doc.Kind))
	printStats(result.Stats.Shapes, result.Size.Width, result.Size.Height, result.CacheInfo.RenderHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	stdout    io.Writer
}

// writeArtifacts writes each artifact and returns the paths written.
// A single format goes to output verbatim; several formats share output
// as a base path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if p.output == "-" {
		if len(p.formats) != 1 {
			return nil, fmt.Errorf("stdout output needs exactly one format, got %d", len(p.formats))
		}
		_, err := p.stdout.Write(p.artifacts[p.formats[0]])
		return nil, err
	}

	var paths []string
	for _, format := range p.formats {
		path := outputPath(p.output, p.input, format, len(p.formats) > 1)
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return paths, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, p.artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// outputPath derives the output file of one format. If output is empty,
// the input's extension is replaced by the format.
func outputPath(output, input, format string, multiple bool) string {
	if output != "" && !multiple {
		return output
	}
	return basePath(output, input) + "." + pipeline.Extension(format)
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input.
// If output has a format extension (.svg, .pdf, etc.), it strips that extension.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
