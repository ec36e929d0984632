package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/pipeline"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

// locateResult is the JSON form of a located hover.
type locateResult struct {
	Found   bool     `json:"found"`
	Index   int      `json:"index,omitempty"`
	Series  string   `json:"series,omitempty"`
	AnchorX float64  `json:"anchor_x,omitempty"`
	AnchorY float64  `json:"anchor_y,omitempty"`
	Row     data.Row `json:"row,omitempty"`
	Lines   []string `json:"lines,omitempty"`
}

func newLocateResult(h tooltip.Hover, lines []string, found bool) locateResult {
	if !found {
		return locateResult{}
	}
	return locateResult{
		Found:   true,
		Index:   h.Index,
		Series:  h.Series,
		AnchorX: h.Anchor.X,
		AnchorY: h.Anchor.Y,
		Row:     h.Row,
		Lines:   lines,
	}
}

// locateCommand creates the locate command.
func (c *CLI) locateCommand() *cobra.Command {
	var (
		opts   pipeline.Options
		x, y   float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "locate [document]",
		Short: "Print the tooltip for a pointer position",
		Long: `Print the tooltip for a pointer position.

The chart is built at the requested size and the position (in chart
pixels) is resolved the way a hovering pointer would be: by nearest x for
line, area and candlestick charts, by band for bar charts and by shape
containment for everything else.`,
		Example: `  waffle locate sales.yaml --x 220 --y 140
  waffle locate flows.json --x 400 --y 300 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := c.baseOptions(cmd)
			opts.Logger = base.Logger
			opts.Width, opts.Height = base.Width, base.Height

			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			runner := pipeline.NewRunner(nil, nil, c.Logger)
			h, lines, found, err := runner.Locate(cmd.Context(), doc, opts, x, y)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(newLocateResult(h, lines, found))
			}
			printHover(h, lines, found)
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "pointer x in chart pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "pointer y in chart pixels")
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "chart height in pixels")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "override the document's chart kind")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}

// printHover prints a located row and its tooltip.
func printHover(h tooltip.Hover, lines []string, found bool) {
	if !found {
		printInfo("Nothing under the pointer")
		return
	}
	printSuccess("Row %s", StyleNumber.Render(fmt.Sprint(h.Index)))
	if h.Series != "" {
		printKeyValue("series", h.Series)
	}
	printKeyValue("anchor", fmt.Sprintf("%.1f, %.1f", h.Anchor.X, h.Anchor.Y))

	keys := make([]string, 0, len(h.Row))
	for k := range h.Row {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		printKeyValue(k, data.ToString(h.Row[k]))
	}

	if len(lines) > 0 {
		printNewline()
		for _, line := range lines {
			printDetail("%s", line)
		}
	}
}
