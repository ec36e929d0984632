package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/demo"
	"github.com/matzehuels/waffle/pkg/pipeline"
)

// galleryCommand creates the gallery command.
func (c *CLI) galleryCommand() *cobra.Command {
	var (
		output      string
		seed        uint64
		tag         string
		query       string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "Write the demo gallery as SVG files and an HTML index",
		Long: `Write the demo gallery as SVG files and an HTML index.

Every chart kind has a sample document. Random sample data (scatter,
bubble, heatmap) is drawn from a PCG source seeded with --seed, so the
same seed always produces the same gallery.`,
		Example: `  waffle gallery -o gallery
  waffle gallery -o flows --tag Flow --seed 7`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries := demo.Filter(demo.Gallery(seed), query, tag)
			if len(entries) == 0 {
				printWarning("No charts match")
				return nil
			}
			if err := os.MkdirAll(output, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}

			runner := pipeline.NewRunner(nil, nil, c.Logger)
			prog := newProgress(loggerFromContext(ctx))
			spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d charts...", len(entries)))
			spinner.Start()

			for i, e := range entries {
				spinner.SetMessage(fmt.Sprintf("Rendering %s (%d/%d)...", e.Name, i+1, len(entries)))
				result, err := runner.Execute(ctx, e.Doc, pipeline.Options{
					Formats:     []string{pipeline.FormatSVG},
					Interactive: interactive,
				})
				if err != nil {
					spinner.StopWithError(fmt.Sprintf("Failed on %s", e.Kind))
					return fmt.Errorf("render %s: %w", e.Kind, err)
				}
				path := filepath.Join(output, string(e.Kind)+".svg")
				if err := os.WriteFile(path, result.Artifacts[pipeline.FormatSVG], 0o644); err != nil {
					spinner.StopWithError("Write failed")
					return fmt.Errorf("write %s: %w", path, err)
				}
			}

			index := filepath.Join(output, "index.html")
			f, err := os.Create(index)
			if err != nil {
				spinner.Stop()
				return fmt.Errorf("create %s: %w", index, err)
			}
			cards := demo.Cards(entries, func(e demo.Entry) string { return string(e.Kind) + ".svg" })
			err = demo.WriteIndex(f, "waffle gallery", cards)
			if cerr := f.Close(); err == nil {
				err = cerr
			}
			spinner.Stop()
			if err != nil {
				return fmt.Errorf("write %s: %w", index, err)
			}

			prog.done(fmt.Sprintf("Wrote %d charts", len(entries)))
			printSuccess("Gallery written to %s", StyleHighlight.Render(output))
			printFile(index)
			printNextStep("Open it in a browser", "open "+index)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "gallery", "output directory")
	cmd.Flags().Uint64Var(&seed, "seed", demo.DefaultSeed, "seed for the random sample data")
	cmd.Flags().StringVar(&tag, "tag", "", "only charts with this tag (e.g. Flow, Trend)")
	cmd.Flags().StringVar(&query, "query", "", "only charts whose name contains this text")
	cmd.Flags().BoolVar(&interactive, "interactive", true, "embed hover tooltips in the SVGs")

	return cmd
}
