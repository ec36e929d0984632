package svg

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

const (
	tooltipFont    = 11
	tooltipLine    = 15
	tooltipPadding = 8
	tooltipOffset  = 10
)

// TooltipBox returns the rectangle of a tooltip with the given lines
// attached at anchor, kept inside a width x height canvas. The box sits
// above the anchor and flips below when there is no room.
func TooltipBox(lines []string, anchor geom.Point, width, height float64) geom.Box {
	w := 0.0
	for _, l := range lines {
		w = math.Max(w, textWidth(l, tooltipFont))
	}
	w += 2 * tooltipPadding
	h := float64(len(lines))*tooltipLine + 2*tooltipPadding - (tooltipLine - tooltipFont)

	x := anchor.X - w/2
	y := anchor.Y - tooltipOffset - h
	if y < 0 {
		y = anchor.Y + tooltipOffset
	}
	x = math.Max(0, math.Min(x, width-w))
	y = math.Max(0, math.Min(y, height-h))
	return geom.Box{X0: x, Y0: y, X1: x + w, Y1: y + h}
}

func writeTooltip(buf *bytes.Buffer, scene *chart.Scene, h tooltip.Hover) {
	lines := scene.TooltipLines(tooltip.Hit{Index: h.Index, Anchor: h.Anchor, Series: h.Series})
	if len(lines) == 0 {
		return
	}
	b := TooltipBox(lines, h.Anchor, scene.Width, scene.Height)
	fmt.Fprintf(buf, `  <g class="tooltip" data-datum="%d" pointer-events="none">`+"\n", h.Index)
	fmt.Fprintf(buf, `    <rect x="%s" y="%s" width="%s" height="%s" rx="6" fill="#ffffff" stroke="#e2e8f0" opacity="0.95"/>`+"\n",
		geom.F(b.X0), geom.F(b.Y0), geom.F(b.Width()), geom.F(b.Height()))
	for i, l := range lines {
		weight := ""
		if i == 0 {
			weight = ` font-weight="600"`
		}
		fmt.Fprintf(buf, `    <text x="%s" y="%s" dy="0.8em" font-size="%d" fill="%s"%s>%s</text>`+"\n",
			geom.F(b.X0+tooltipPadding), geom.F(b.Y0+tooltipPadding+float64(i)*tooltipLine), tooltipFont, titleColor, weight, escape(l))
	}
	buf.WriteString("  </g>\n")
}

const interactionCSS = `
    .mark { transition: opacity 0.15s ease, stroke-width 0.15s ease; }
    svg.hovering .mark[data-datum]:not(.active) { opacity: 0.35; }
    .mark.active { stroke: #0f172a; stroke-width: 1.5; }
    .tooltip-live { pointer-events: none; }
    .tooltip-live[visibility="hidden"] { opacity: 0; }`

const interactionJS = `
    const svg = document.currentScript ? document.currentScript.closest('svg') : document.querySelector('svg');
    const tips = JSON.parse(svg.querySelector('#waffle-tooltips').textContent);
    const live = svg.querySelector('.tooltip-live');
    const box = live.querySelector('rect');
    const text = live.querySelector('text');
    function show(datum, el) {
      svg.classList.add('hovering');
      svg.querySelectorAll('.mark[data-datum]').forEach(m => m.classList.toggle('active', m.dataset.datum === datum));
      const lines = tips[datum] || [];
      text.textContent = '';
      lines.forEach((l, i) => {
        const t = document.createElementNS('http://www.w3.org/2000/svg', 'tspan');
        t.setAttribute('x', 8); t.setAttribute('dy', i === 0 ? '1em' : '1.3em');
        if (i === 0) t.setAttribute('font-weight', '600');
        t.textContent = l;
        text.appendChild(t);
      });
      const b = el.getBBox(), tb = text.getBBox();
      const vb = svg.viewBox.baseVal;
      const w = tb.width + 16, h = tb.height + 12;
      let x = b.x + b.width / 2 - w / 2, y = b.y - h - 10;
      if (y < vb.y) y = b.y + b.height + 10;
      x = Math.max(vb.x, Math.min(x, vb.x + vb.width - w));
      box.setAttribute('width', w); box.setAttribute('height', h);
      live.setAttribute('transform', 'translate(' + x.toFixed(1) + ',' + y.toFixed(1) + ')');
      live.setAttribute('visibility', 'visible');
    }
    function hide() {
      svg.classList.remove('hovering');
      svg.querySelectorAll('.mark.active').forEach(m => m.classList.remove('active'));
      live.setAttribute('visibility', 'hidden');
    }
    svg.querySelectorAll('.mark[data-datum]').forEach(el => {
      el.addEventListener('mouseenter', () => show(el.dataset.datum, el));
      el.addEventListener('mouseleave', hide);
    });`

// writeInteraction embeds the tooltip lines of every row as JSON together
// with the script that shows them.
func writeInteraction(buf *bytes.Buffer, scene *chart.Scene) {
	tips := map[string][]string{}
	for _, sh := range scene.Shapes {
		m := sh.Meta()
		if m.Datum == geom.NoDatum {
			continue
		}
		key := strconv.Itoa(m.Datum)
		if _, ok := tips[key]; ok {
			continue
		}
		tips[key] = scene.TooltipLines(tooltip.Hit{Index: m.Datum, Series: m.Series})
	}
	raw, _ := json.Marshal(tips)

	buf.WriteString(`  <g class="tooltip-live" visibility="hidden"><rect rx="6" fill="#ffffff" stroke="#e2e8f0"/><text font-size="11" fill="` + titleColor + `"></text></g>` + "\n")
	fmt.Fprintf(buf, "  <script type=\"application/json\" id=\"waffle-tooltips\"><![CDATA[%s]]></script>\n", raw)
	fmt.Fprintf(buf, "  <style>%s\n  </style>\n", interactionCSS)
	fmt.Fprintf(buf, "  <script type=\"text/javascript\"><![CDATA[%s\n  ]]></script>\n", interactionJS)
}
