package svg

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/geom"
)

const (
	tickSize     = 5
	tickPadding  = 3
	legendSwatch = 10
)

func writeGrid(buf *bytes.Buffer, lines []geom.Line) {
	if len(lines) == 0 {
		return
	}
	buf.WriteString(`  <g class="grid" pointer-events="none">` + "\n")
	for _, l := range lines {
		writeShape(buf, l, false, nil)
	}
	buf.WriteString("  </g>\n")
}

// writeAxis draws the axis line, tick marks and tick labels. Left and
// right axes label outward; bottom axes label below.
func writeAxis(buf *bytes.Buffer, a chart.Axis) {
	color := a.Color
	if color == "" {
		color = tickColor
	}
	fmt.Fprintf(buf, `  <g class="axis axis-%s" font-size="10" fill="%s">`+"\n", a.Orient, escape(color))
	if !a.Hidden {
		x2, y2 := a.X, a.Y
		if a.Orient == chart.OrientBottom {
			x2 += a.Length
		} else {
			y2 += a.Length
		}
		fmt.Fprintf(buf, `    <line class="domain" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
			geom.F(a.X), geom.F(a.Y), geom.F(x2), geom.F(y2), axisColor)
	}
	for _, t := range a.Ticks {
		switch a.Orient {
		case chart.OrientBottom:
			fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				geom.F(t.Pos), geom.F(a.Y), geom.F(t.Pos), geom.F(a.Y+tickSize), axisColor)
			fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="0.71em" text-anchor="middle">%s</text>`+"\n",
				geom.F(t.Pos), geom.F(a.Y+tickSize+tickPadding), escape(t.Label))
		case chart.OrientRight:
			fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				geom.F(a.X), geom.F(t.Pos), geom.F(a.X+tickSize), geom.F(t.Pos), axisColor)
			fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="0.32em" text-anchor="start">%s</text>`+"\n",
				geom.F(a.X+tickSize+tickPadding), geom.F(t.Pos), escape(t.Label))
		default:
			fmt.Fprintf(buf, `    <line x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s"/>`+"\n",
				geom.F(a.X-tickSize), geom.F(t.Pos), geom.F(a.X), geom.F(t.Pos), axisColor)
			fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="0.32em" text-anchor="end">%s</text>`+"\n",
				geom.F(a.X-tickSize-tickPadding), geom.F(t.Pos), escape(t.Label))
		}
	}
	if a.Label != "" {
		switch a.Orient {
		case chart.OrientBottom:
			fmt.Fprintf(buf, `    <text class="axis-label" x="%s" y="%s" text-anchor="middle" font-size="11">%s</text>`+"\n",
				geom.F(a.X+a.Length/2), geom.F(a.Y+36), escape(a.Label))
		case chart.OrientRight:
			x, y := a.X+40, a.Y+a.Length/2
			fmt.Fprintf(buf, `    <text class="axis-label" x="%s" y="%s" text-anchor="middle" font-size="11" transform="rotate(90 %[1]s %[2]s)">%s</text>`+"\n",
				geom.F(x), geom.F(y), escape(a.Label))
		default:
			x, y := a.X-40, a.Y+a.Length/2
			fmt.Fprintf(buf, `    <text class="axis-label" x="%s" y="%s" text-anchor="middle" font-size="11" transform="rotate(-90 %[1]s %[2]s)">%s</text>`+"\n",
				geom.F(x), geom.F(y), escape(a.Label))
		}
	}
	buf.WriteString("  </g>\n")
}

// writeLegend lays entries out in one row along the bottom edge, starting
// at the left of the plot area.
func writeLegend(buf *bytes.Buffer, scene *chart.Scene) {
	if len(scene.Legend) == 0 {
		return
	}
	x := scene.Plot.X0
	y := scene.Height - legendSwatch - 4
	buf.WriteString(`  <g class="legend" font-size="11">` + "\n")
	for _, e := range scene.Legend {
		fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%d" height="%d" rx="2" fill="%s"/>`+"\n",
			geom.F(x), geom.F(y), legendSwatch, legendSwatch, escape(e.Color))
		fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="0.8em" fill="%s">%s</text>`+"\n",
			geom.F(x+legendSwatch+4), geom.F(y), tickColor, escape(e.Label))
		x += legendSwatch + 12 + textWidth(e.Label, 11)
	}
	buf.WriteString("  </g>\n")
}

func textWidth(s string, size float64) float64 {
	return float64(len([]rune(s))) * size * 0.6
}
