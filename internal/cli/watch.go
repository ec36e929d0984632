package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/internal/watcher"
	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
	"github.com/matzehuels/waffle/pkg/pipeline"
	"github.com/matzehuels/waffle/pkg/responsive"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		opts  pipeline.Options
		flags renderFlags
	)

	cmd := &cobra.Command{
		Use:   "watch [document]",
		Short: "Re-render a document whenever it or its data file changes",
		Long: `Re-render a document whenever it or its data file changes.

The chart is rebuilt from scratch on every change and written to the
output file(s). Invalid edits are reported and the last good output is
kept. Press Ctrl+C to stop.`,
		Example: `  waffle watch sales.yaml -o sales.svg
  waffle watch flows.json -f svg,png --width 1200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := c.resolve(cmd, opts, flags)
			if err != nil {
				return err
			}
			return c.runWatch(cmd.Context(), args[0], resolved, flags)
		},
	}
	addRenderFlags(cmd, &opts, &flags)

	return cmd
}

// docWatch holds the state of one watch session.
type docWatch struct {
	c     *CLI
	ctx   context.Context
	input string
	opts  pipeline.Options
	flags renderFlags
	doc   *document.Document
}

// runWatch renders input once and again after every change.
func (c *CLI) runWatch(ctx context.Context, input string, opts pipeline.Options, flags renderFlags) error {
	if flags.output == "-" {
		return fmt.Errorf("watch cannot write to stdout")
	}
	w := &docWatch{c: c, ctx: ctx, input: input, opts: opts, flags: flags}

	doc, err := w.load()
	if err != nil {
		return err
	}
	w.doc = doc

	container, err := responsive.New(w.builder(doc), responsive.WithOnRender(w.write))
	if err != nil {
		return err
	}
	defer container.Close()

	size := opts.Size(doc.Size(chart.Size{}))
	if _, err := container.Resize(size.Width, size.Height); err != nil {
		return err
	}

	fw, err := watcher.New(c.Logger)
	if err != nil {
		return err
	}
	for _, p := range watchedFiles(input, doc) {
		if err := fw.Add(p); err != nil {
			return err
		}
	}
	fw.Start(ctx)
	printInfo("Watching %s %s", StyleHighlight.Render(input), StyleDim.Render("(Ctrl+C to stop)"))

	for ev := range fw.Events() {
		c.Logger.Debug("change detected", "paths", ev.Paths)
		doc, err := w.load()
		if err != nil {
			printError("%v", err)
			continue
		}
		w.doc = doc
		// A new data_file reference needs watching too.
		for _, p := range watchedFiles(input, doc) {
			if err := fw.Add(p); err != nil {
				c.Logger.Warn("cannot watch data file", "path", p, "error", err)
			}
		}

		if err := container.SetBuilder(w.builder(doc)); err != nil {
			printError("%v", err)
			continue
		}
		size := opts.Size(doc.Size(chart.Size{}))
		if _, err := container.Resize(size.Width, size.Height); err != nil {
			printError("%v", err)
		}
	}
	return nil
}

// load reads and prepares the document.
func (w *docWatch) load() (*document.Document, error) {
	doc, err := w.c.loadDocument(w.input)
	if err != nil {
		return nil, err
	}
	return pipeline.Prepare(doc, w.opts)
}

// builder returns the container builder for doc.
func (w *docWatch) builder(doc *document.Document) responsive.Builder {
	return func(size chart.Size) (*chart.Scene, error) {
		ch, err := doc.Chart()
		if err != nil {
			return nil, err
		}
		return ch.Build(size)
	}
}

// write renders a rebuilt scene to the output files.
func (w *docWatch) write(scene *chart.Scene) {
	if scene == nil || scene.Suppressed {
		printWarning("Chart below minimum size, output not updated")
		return
	}
	artifacts, err := pipeline.Render(w.ctx, scene, w.doc, w.opts)
	if err != nil {
		printError("%v", err)
		return
	}
	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: artifacts,
		formats:   w.opts.Formats,
		input:     w.input,
		output:    w.flags.output,
	})
	if err != nil {
		printError("%v", err)
		return
	}
	printSuccess("Rendered %s %s", StyleHighlight.Render(string(scene.Kind)),
		StyleDim.Render(time.Now().Format("15:04:05")))
	for _, p := range paths {
		printFile(p)
	}
}

// watchedFiles lists the document and its data file.
func watchedFiles(input string, doc *document.Document) []string {
	files := []string{input}
	if doc.DataFile != "" {
		files = append(files, filepath.Join(filepath.Dir(input), filepath.FromSlash(doc.DataFile)))
	}
	return files
}
