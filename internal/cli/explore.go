package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/pipeline"
	"github.com/matzehuels/waffle/pkg/responsive"
)

// Explorer styles
var (
	exploreShapeStyle   = lipgloss.NewStyle().Foreground(colorGray)
	exploreHoverStyle   = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	explorePointerStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	exploreFrameStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorDim)
	exploreTooltipStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorCyan).Padding(0, 1)
)

// Terminal cells are about twice as tall as wide; a window cell maps onto
// this many chart pixels when the chart follows the window size.
const (
	pixelsPerCol = 8.0
	pixelsPerRow = 16.0
)

// =============================================================================
// ExploreModel - Interactive tooltip explorer
// =============================================================================

// ExploreModel is the bubbletea model that moves a pointer over a chart
// and shows the tooltip of the hovered row.
type ExploreModel struct {
	Container *responsive.Container
	Title     string
	Session   string

	// X and Y are the pointer position in chart pixels.
	X, Y float64
	// Step is how far one key press moves the pointer.
	Step float64
	// Fixed keeps the chart size when the window resizes.
	Fixed bool

	Cols, Rows int
	Err        error
}

// NewExploreModel creates an explorer with the pointer at the plot centre.
func NewExploreModel(c *responsive.Container, title string, fixed bool) ExploreModel {
	m := ExploreModel{
		Container: c,
		Title:     title,
		Session:   uuid.NewString(),
		Step:      10,
		Fixed:     fixed,
		Cols:      72,
		Rows:      18,
	}
	if s := c.Scene(); s != nil {
		ctr := s.Plot.Center()
		m.X, m.Y = ctr.X, ctr.Y
	}
	m.Container.PointerMove(m.X, m.Y)
	return m
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	size := m.Container.Size()
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.move(-m.Step, 0)
		case "right", "l":
			m.move(m.Step, 0)
		case "up", "k":
			m.move(0, -m.Step)
		case "down", "j":
			m.move(0, m.Step)
		case "shift+left", "H":
			m.move(-5*m.Step, 0)
		case "shift+right", "L":
			m.move(5*m.Step, 0)
		case "tab":
			m.nextRow(1)
		case "shift+tab":
			m.nextRow(-1)
		case "x":
			m.Container.PointerLeave()
		case "+", "=":
			m.resize(size.Width*1.25, size.Height*1.25)
		case "-":
			m.resize(size.Width*0.8, size.Height*0.8)
		}
	case tea.WindowSizeMsg:
		m.Cols = max(msg.Width-4, 10)
		m.Rows = max(msg.Height-14, 4)
		if !m.Fixed {
			m.resize(float64(m.Cols)*pixelsPerCol, float64(m.Rows)*pixelsPerRow)
		}
	}
	return m, nil
}

// move shifts the pointer, keeping it on the chart surface.
func (m *ExploreModel) move(dx, dy float64) {
	size := m.Container.Size()
	m.X = math.Max(0, math.Min(size.Width, m.X+dx))
	m.Y = math.Max(0, math.Min(size.Height, m.Y+dy))
	m.Container.PointerMove(m.X, m.Y)
}

// nextRow jumps the pointer to the anchor of the next (dir 1) or previous
// (dir -1) row that has shapes.
func (m *ExploreModel) nextRow(dir int) {
	s := m.Container.Scene()
	if s == nil || len(s.Rows) == 0 {
		return
	}
	cur := -1
	if h, ok := m.Container.Hover(); ok {
		cur = h.Index
	}
	n := len(s.Rows)
	for step := 1; step <= n; step++ {
		i := ((cur+dir*step)%n + n) % n
		if shapes := s.ShapesFor(i); len(shapes) > 0 {
			c := shapes[0].Bounds().Center()
			m.X, m.Y = c.X, c.Y
			m.Container.PointerMove(m.X, m.Y)
			return
		}
	}
}

// resize rebuilds the chart at a new size and rescales the pointer.
func (m *ExploreModel) resize(w, h float64) {
	old := m.Container.Size()
	w, h = math.Round(w), math.Round(h)
	if _, err := m.Container.Resize(w, h); err != nil {
		m.Err = err
		return
	}
	m.Err = nil
	if old.Width > 0 && old.Height > 0 {
		m.X *= w / old.Width
		m.Y *= h / old.Height
	}
	m.Container.PointerMove(m.X, m.Y)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	size := m.Container.Size()
	b.WriteString(StyleTitle.Render(m.Title))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %gx%g  session %s", size.Width, size.Height, m.Session[:8])))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ move  ⇥ next row  +/- resize  x leave  q quit"))
	b.WriteString("\n")

	scene := m.Container.Scene()
	if scene == nil || scene.Suppressed {
		b.WriteString(StyleWarning.Render("Chart below minimum size, nothing drawn"))
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(exploreFrameStyle.Render(m.grid(scene)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render(fmt.Sprintf("pointer %.0f, %.0f", m.X, m.Y)))
	b.WriteString("\n")

	if h, ok := m.Container.Hover(); ok {
		lines := m.Container.Tooltip()
		header := fmt.Sprintf("row %d", h.Index)
		if h.Series != "" {
			header += " · " + h.Series
		}
		body := StyleHighlight.Render(header)
		if len(lines) > 0 {
			body += "\n" + strings.Join(lines, "\n")
		}
		b.WriteString(exploreTooltipStyle.Render(body))
		b.WriteString("\n")
	} else {
		b.WriteString(StyleDim.Render("nothing under the pointer"))
		b.WriteString("\n")
	}
	if m.Err != nil {
		b.WriteString(StyleWarning.Render(m.Err.Error()))
		b.WriteString("\n")
	}
	return b.String()
}

// grid draws the scene's data shapes as a character map, sampling each
// cell's centre.
func (m ExploreModel) grid(scene *chart.Scene) string {
	hovered := -1
	if h, ok := m.Container.Hover(); ok {
		hovered = h.Index
	}
	cols, rows := max(m.Cols, 1), max(m.Rows, 1)
	cw, ch := scene.Width/float64(cols), scene.Height/float64(rows)
	pc, pr := int(m.X/cw), int(m.Y/ch)

	var b strings.Builder
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteByte('\n')
		}
		for c := 0; c < cols; c++ {
			if r == pr && c == pc {
				b.WriteString(explorePointerStyle.Render("+"))
				continue
			}
			x, y := (float64(c)+0.5)*cw, (float64(r)+0.5)*ch
			datum := -1
			for _, sh := range scene.Shapes {
				if d := sh.Meta().Datum; d >= 0 && sh.Contains(x, y) {
					datum = d
					break
				}
			}
			switch {
			case datum < 0:
				b.WriteByte(' ')
			case datum == hovered:
				b.WriteString(exploreHoverStyle.Render("█"))
			default:
				b.WriteString(exploreShapeStyle.Render("▒"))
			}
		}
	}
	return b.String()
}

// exploreCommand creates the explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	var opts pipeline.Options

	cmd := &cobra.Command{
		Use:   "explore [document]",
		Short: "Browse a chart's tooltips in the terminal",
		Long: `Browse a chart's tooltips in the terminal.

Arrow keys move a pointer over the chart and the tooltip of the row
under it is shown below. Without --width and --height the chart follows
the terminal size and is rebuilt whenever the window is resized.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.loadDocument(args[0])
			if err != nil {
				return err
			}
			if doc, err = pipeline.Prepare(doc, opts); err != nil {
				return err
			}
			ch, err := doc.Chart()
			if err != nil {
				return err
			}
			container, err := responsive.ForChart(ch)
			if err != nil {
				return err
			}
			defer container.Close()

			size := opts.Size(doc.Size(chart.Size{}))
			if _, err := container.Resize(size.Width, size.Height); err != nil {
				return err
			}

			title := doc.Title
			if title == "" {
				title = doc.Kind
			}
			fixed := cmd.Flags().Changed("width") || cmd.Flags().Changed("height")
			m := NewExploreModel(container, title, fixed)
			c.Logger.Debug("explore session", "id", m.Session, "kind", doc.Kind)

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().Float64Var(&opts.Width, "width", 0, "fixed chart width in pixels")
	cmd.Flags().Float64Var(&opts.Height, "height", 0, "fixed chart height in pixels")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "override the document's chart kind")

	return cmd
}
