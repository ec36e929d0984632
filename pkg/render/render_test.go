package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/errors"
)

const tinySVG = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10"><rect width="10" height="10" fill="red"/></svg>`

func TestToPNG(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := ToPNG(context.Background(), []byte(tinySVG), 2)
	if err != nil {
		t.Fatalf("ToPNG: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestToPDF(t *testing.T) {
	if !Available() {
		t.Skip("rsvg-convert not installed")
	}
	out, err := ToPDF(context.Background(), []byte(tinySVG))
	if err != nil {
		t.Fatalf("ToPDF: %v", err)
	}
	if !bytes.HasPrefix(out, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}
}

func TestMissingConverter(t *testing.T) {
	old := Converter
	Converter = "waffle-no-such-converter"
	defer func() { Converter = old }()

	_, err := ToPDF(context.Background(), []byte(tinySVG))
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("err = %v, want UNSUPPORTED", err)
	}
}

func TestSceneJSON(t *testing.T) {
	f := &chart.Funnel{
		Data:  data.Dataset{{"s": "Visit", "n": 100.0}, {"s": "Buy", "n": 20.0}},
		Step:  data.String("s"),
		Value: data.Number("n"),
	}
	scene, err := f.Build(chart.Size{Width: 300, Height: 200})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := SceneJSON(scene)
	if err != nil {
		t.Fatalf("SceneJSON: %v", err)
	}
	var out struct {
		Kind   string `json:"kind"`
		Rows   int    `json:"rows"`
		Shapes []struct {
			Type  string `json:"type"`
			Datum int    `json:"datum"`
		} `json:"shapes"`
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if out.Kind != "funnel" || out.Rows != 2 {
		t.Errorf("kind = %q rows = %d", out.Kind, out.Rows)
	}
	if len(out.Shapes) != len(scene.Shapes) {
		t.Errorf("exported %d shapes, want %d", len(out.Shapes), len(scene.Shapes))
	}
}

func TestSceneJSONNil(t *testing.T) {
	if _, err := SceneJSON(nil); err != nil {
		t.Errorf("SceneJSON(nil) = %v", err)
	}
}
