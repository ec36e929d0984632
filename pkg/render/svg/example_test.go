package svg_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/render/svg"
)

func ExampleRender() {
	pie := &chart.Pie{
		Data:  data.Dataset{{"name": "a", "v": 3.0}, {"name": "b", "v": 1.0}},
		Value: data.Number("v"),
		Label: data.String("name"),
	}
	scene, err := pie.Build(chart.Size{Width: 200, Height: 200})
	if err != nil {
		panic(err)
	}
	out := string(svg.Render(scene))
	fmt.Println(strings.HasPrefix(out, "<svg"), strings.Count(out, "data-datum="))
	// Output: true 2
}
