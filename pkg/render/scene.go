package render

import (
	"encoding/json"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/geom"
)

type jsonScene struct {
	Kind       string       `json:"kind"`
	Width      float64      `json:"width"`
	Height     float64      `json:"height"`
	Plot       geom.Box     `json:"plot"`
	Suppressed bool         `json:"suppressed,omitempty"`
	Shapes     []jsonShape  `json:"shapes"`
	Axes       []jsonAxis   `json:"axes,omitempty"`
	Legend     []jsonLegend `json:"legend,omitempty"`
	Rows       int          `json:"rows"`
}

type jsonShape struct {
	Type    string     `json:"type"`
	Datum   int        `json:"datum"`
	Series  string     `json:"series,omitempty"`
	Class   string     `json:"class,omitempty"`
	Fill    string     `json:"fill,omitempty"`
	Stroke  string     `json:"stroke,omitempty"`
	Opacity float64    `json:"opacity,omitempty"`
	Bounds  geom.Box   `json:"bounds"`
	Anchor  geom.Point `json:"anchor"`
	D       string     `json:"d,omitempty"`
	Text    string     `json:"text,omitempty"`
}

type jsonAxis struct {
	Orient string     `json:"orient"`
	Ticks  []jsonTick `json:"ticks"`
	Label  string     `json:"label,omitempty"`
}

type jsonTick struct {
	Pos   float64 `json:"pos"`
	Label string  `json:"label"`
}

type jsonLegend struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// SceneJSON encodes the primitives, axes and legend of a scene. Paths are
// included as SVG path data.
func SceneJSON(scene *chart.Scene) ([]byte, error) {
	if scene == nil {
		scene = &chart.Scene{}
	}
	out := jsonScene{
		Kind:       string(scene.Kind),
		Width:      scene.Width,
		Height:     scene.Height,
		Plot:       scene.Plot,
		Suppressed: scene.Suppressed,
		Shapes:     make([]jsonShape, 0, len(scene.Shapes)),
		Rows:       len(scene.Rows),
	}
	for _, sh := range scene.Shapes {
		out.Shapes = append(out.Shapes, shapeJSON(sh))
	}
	for _, a := range scene.Axes {
		ja := jsonAxis{Orient: string(a.Orient), Label: a.Label, Ticks: make([]jsonTick, len(a.Ticks))}
		for i, t := range a.Ticks {
			ja.Ticks[i] = jsonTick{Pos: t.Pos, Label: t.Label}
		}
		out.Axes = append(out.Axes, ja)
	}
	for _, e := range scene.Legend {
		out.Legend = append(out.Legend, jsonLegend{Label: e.Label, Color: e.Color})
	}
	return json.MarshalIndent(out, "", "  ")
}

func shapeJSON(sh geom.Shape) jsonShape {
	m := sh.Meta()
	js := jsonShape{
		Datum:   m.Datum,
		Series:  m.Series,
		Class:   m.Class,
		Fill:    m.Fill,
		Stroke:  m.Stroke,
		Opacity: m.Opacity,
		Bounds:  sh.Bounds(),
		Anchor:  sh.Anchor(),
	}
	switch s := sh.(type) {
	case geom.Rect:
		js.Type = "rect"
	case geom.Circle:
		js.Type = "circle"
	case geom.Line:
		js.Type = "line"
	case geom.Polygon:
		js.Type, js.D = "polygon", s.D()
	case geom.Path:
		js.Type, js.D = "path", s.D
	case geom.Arc:
		js.Type, js.D = "arc", s.D()
	case geom.Ribbon:
		js.Type, js.D = "ribbon", s.D()
	case geom.Link:
		js.Type, js.D = "link", s.D()
	case geom.Text:
		js.Type, js.Text = "text", s.Content
	}
	return js
}
