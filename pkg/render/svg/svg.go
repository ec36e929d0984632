package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

const (
	defaultFont       = "system-ui, -apple-system, sans-serif"
	defaultBackground = "#ffffff"
	axisColor         = "#94a3b8"
	tickColor         = "#64748b"
	titleColor        = "#0f172a"
)

// Option configures [Render].
type Option func(*renderer)

type renderer struct {
	title       string
	background  string
	font        string
	interactive bool
	hover       *tooltip.Hover
}

// WithTitle draws a title above the plot and sets the document title.
func WithTitle(t string) Option { return func(r *renderer) { r.title = t } }

// WithBackground sets the background fill; "none" draws no background.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithFont sets the font-family of all text.
func WithFont(family string) Option { return func(r *renderer) { r.font = family } }

// WithInteraction embeds hover highlighting and tooltips for browsers.
func WithInteraction() Option { return func(r *renderer) { r.interactive = true } }

// WithHover renders h as the active hover.
func WithHover(h tooltip.Hover) Option {
	return func(r *renderer) { r.hover = &h }
}

// Render writes scene as an SVG document. A nil or suppressed scene yields
// an empty canvas of the scene's size.
func Render(scene *chart.Scene, opts ...Option) []byte {
	r := renderer{background: defaultBackground, font: defaultFont}
	for _, opt := range opts {
		opt(&r)
	}
	if scene == nil {
		scene = &chart.Scene{}
	}

	var buf bytes.Buffer
	w, h := scene.Width, scene.Height
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s" data-kind="%s">`+"\n",
		geom.F(w), geom.F(h), geom.F(w), geom.F(h), escape(r.font), escape(string(scene.Kind)))
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", escape(r.title))
	}
	writeDefs(&buf, scene)
	if r.background != "" && r.background != "none" {
		fmt.Fprintf(&buf, `  <rect class="background" width="100%%" height="100%%" fill="%s"/>`+"\n", escape(r.background))
	}
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text class="title" x="%s" y="%s" font-size="14" font-weight="600" fill="%s">%s</text>`+"\n",
			geom.F(scene.Plot.X0), geom.F(18), titleColor, escape(r.title))
	}

	if !scene.Empty() {
		writeGrid(&buf, scene.Grid)
		for _, a := range scene.Axes {
			writeAxis(&buf, a)
		}
		writeShapes(&buf, scene, &r)
		buf.WriteString(`  <g class="labels" pointer-events="none">` + "\n")
		for _, t := range scene.Labels {
			writeText(&buf, t, "    ")
		}
		buf.WriteString("  </g>\n")
		writeLegend(&buf, scene)
		if r.hover != nil {
			writeTooltip(&buf, scene, *r.hover)
		}
		if r.interactive {
			writeInteraction(&buf, scene)
		}
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeShapes(buf *bytes.Buffer, scene *chart.Scene, r *renderer) {
	hovered := -1
	if r.hover != nil {
		hovered = r.hover.Index
	}
	buf.WriteString(`  <g class="shapes">` + "\n")
	for _, sh := range scene.Shapes {
		m := sh.Meta()
		if a, ok := sh.(geom.Arc); ok && m.Datum != geom.NoDatum && m.Datum == hovered {
			sh = a.Grown()
		}
		var title []string
		if r.interactive && m.Datum != geom.NoDatum {
			title = scene.TooltipLines(tooltip.Hit{Index: m.Datum, Series: m.Series})
		}
		writeShape(buf, sh, m.Datum == hovered && m.Datum != geom.NoDatum, title)
	}
	buf.WriteString("  </g>\n")
}

// writeDefs emits the vertical gradients used by translucent areas.
func writeDefs(buf *bytes.Buffer, scene *chart.Scene) {
	var fills []string
	seen := map[string]bool{}
	for _, sh := range scene.Shapes {
		m := sh.Meta()
		if fadedArea(m) && !seen[m.Fill] {
			seen[m.Fill] = true
			fills = append(fills, m.Fill)
		}
	}
	if len(fills) == 0 {
		return
	}
	buf.WriteString("  <defs>\n")
	for _, f := range fills {
		fmt.Fprintf(buf, `    <linearGradient id="%s" x1="0" y1="0" x2="0" y2="1"><stop offset="5%%" stop-color="%s" stop-opacity="0.8"/><stop offset="95%%" stop-color="%s" stop-opacity="0"/></linearGradient>`+"\n",
			gradientID(f), escape(f), escape(f))
	}
	buf.WriteString("  </defs>\n")
}

func fadedArea(m geom.Mark) bool {
	return m.Class == "area" && m.Fill != "" && m.Opacity > 0 && m.Opacity < 0.5
}

func gradientID(color string) string {
	return "fade-" + strings.TrimPrefix(strings.NewReplacer("(", "", ")", "", ",", "-", " ", "").Replace(color), "#")
}

func escape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
