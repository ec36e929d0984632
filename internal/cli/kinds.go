package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
)

// structuredInput names the document field of kinds that take no keys.
var structuredInput = map[chart.Kind]string{
	chart.KindTreemap: "hierarchy",
	chart.KindSankey:  "flow",
	chart.KindChord:   "matrix (+ labels)",
}

// kindRows returns one table row per chart kind.
func kindRows() [][]string {
	rows := make([][]string, 0, len(chart.Kinds))
	for _, k := range chart.Kinds {
		input := "keys: " + strings.Join(document.Required(k), ", ")
		if s, ok := structuredInput[k]; ok {
			input = s
		}
		rows = append(rows, []string{string(k), k.Describe(), input})
	}
	return rows
}

// kindsCommand creates the kinds command.
func (c *CLI) kindsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the supported chart kinds",
		RunE: func(cmd *cobra.Command, args []string) error {
			headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
				Headers("Kind", "Description", "Input").
				Rows(kindRows()...).
				StyleFunc(func(row, col int) lipgloss.Style {
					base := lipgloss.NewStyle().Padding(0, 1)
					switch {
					case row == -1:
						return headerStyle.Padding(0, 1)
					case col == 0:
						return base.Foreground(colorCyan)
					case col == 2:
						return base.Foreground(colorGray)
					}
					return base
				})

			fmt.Fprintln(c.out, t.Render())
			printNewline()
			printNextStep("Render a document", "waffle render chart.yaml")
			return nil
		},
	}
}
