package svg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/waffle/pkg/geom"
)

// writeShape emits one primitive. title lines become a <title> child that
// browsers show natively on hover.
func writeShape(buf *bytes.Buffer, sh geom.Shape, active bool, title []string) {
	m := sh.Meta()
	var el, geo string
	switch s := sh.(type) {
	case geom.Rect:
		el = "rect"
		geo = fmt.Sprintf(`x="%s" y="%s" width="%s" height="%s"`, geom.F(s.X), geom.F(s.Y), geom.F(s.W), geom.F(s.H))
		if s.RX > 0 {
			geo += fmt.Sprintf(` rx="%s"`, geom.F(s.RX))
		}
	case geom.Circle:
		el = "circle"
		geo = fmt.Sprintf(`cx="%s" cy="%s" r="%s"`, geom.F(s.CX), geom.F(s.CY), geom.F(s.R))
	case geom.Line:
		el = "line"
		geo = fmt.Sprintf(`x1="%s" y1="%s" x2="%s" y2="%s"`, geom.F(s.X1), geom.F(s.Y1), geom.F(s.X2), geom.F(s.Y2))
		if s.Dash != "" {
			geo += fmt.Sprintf(` stroke-dasharray="%s"`, escape(s.Dash))
		}
	case geom.Polygon:
		el, geo = "path", pathData(s.D())
	case geom.Path:
		el, geo = "path", pathData(s.D)
	case geom.Arc:
		el, geo = "path", pathData(s.D())
	case geom.Ribbon:
		el, geo = "path", pathData(s.D())
	case geom.Link:
		el, geo = "path", pathData(s.D())
		m.Fill = ""
		m.StrokeWidth = s.Width
	case geom.Text:
		writeText(buf, s, "    ")
		return
	default:
		return
	}

	fmt.Fprintf(buf, `    <%s class="%s" %s%s`, el, classOf(m, active), geo, paint(m))
	if m.Datum != geom.NoDatum {
		fmt.Fprintf(buf, ` data-datum="%d"`, m.Datum)
	}
	if m.Series != "" {
		fmt.Fprintf(buf, ` data-series="%s"`, escape(m.Series))
	}
	if len(title) == 0 {
		buf.WriteString("/>\n")
		return
	}
	fmt.Fprintf(buf, "><title>%s</title></%s>\n", escape(strings.Join(title, "\n")), el)
}

func pathData(d string) string { return fmt.Sprintf(`d="%s"`, d) }

func classOf(m geom.Mark, active bool) string {
	cls := "mark"
	if m.Class != "" {
		cls += " " + m.Class
	}
	if active {
		cls += " active"
	}
	return escape(cls)
}

// paint returns the fill, stroke and opacity attributes of m.
func paint(m geom.Mark) string {
	var sb strings.Builder
	switch {
	case m.Fill == "":
		sb.WriteString(` fill="none"`)
	case fadedArea(m):
		fmt.Fprintf(&sb, ` fill="url(#%s)"`, gradientID(m.Fill))
		m.Opacity = 0
	default:
		fmt.Fprintf(&sb, ` fill="%s"`, escape(m.Fill))
	}
	if m.Stroke != "" {
		fmt.Fprintf(&sb, ` stroke="%s"`, escape(m.Stroke))
		if m.StrokeWidth > 0 {
			fmt.Fprintf(&sb, ` stroke-width="%s"`, geom.F(m.StrokeWidth))
		}
	}
	if m.Opacity > 0 && m.Opacity < 1 {
		if m.Fill == "" {
			fmt.Fprintf(&sb, ` stroke-opacity="%s"`, geom.F(m.Opacity))
		} else {
			fmt.Fprintf(&sb, ` opacity="%s"`, geom.F(m.Opacity))
		}
	}
	return sb.String()
}

func writeText(buf *bytes.Buffer, t geom.Text, indent string) {
	size := t.Size
	if size <= 0 {
		size = 11
	}
	fmt.Fprintf(buf, `%s<text x="%s" y="%s" font-size="%s"`, indent, geom.F(t.X), geom.F(t.Y), geom.F(size))
	if t.Align != "" && t.Align != "start" {
		fmt.Fprintf(buf, ` text-anchor="%s"`, escape(t.Align))
	}
	if t.DY != "" {
		fmt.Fprintf(buf, ` dy="%s"`, escape(t.DY))
	}
	if t.Weight != "" {
		fmt.Fprintf(buf, ` font-weight="%s"`, escape(t.Weight))
	}
	fill := t.Fill
	if fill == "" {
		fill = tickColor
	}
	fmt.Fprintf(buf, ` fill="%s"`, escape(fill))
	if t.Rotate != 0 {
		fmt.Fprintf(buf, ` transform="rotate(%s %s %s)"`, geom.F(t.Rotate), geom.F(t.X), geom.F(t.Y))
	}
	if t.Class != "" {
		fmt.Fprintf(buf, ` class="%s"`, escape(t.Class))
	}
	fmt.Fprintf(buf, ">%s</text>\n", escape(t.Content))
}
