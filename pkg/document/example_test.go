package document_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/waffle/pkg/chart"
	"github.com/matzehuels/waffle/pkg/document"
)

func ExampleDecode() {
	src := `
kind: funnel
keys: {step: stage, value: users}
data:
  - {stage: Visit, users: 1000}
  - {stage: Signup, users: 400}
`
	doc, err := document.Decode(strings.NewReader(src), document.FormatYAML)
	if err != nil {
		panic(err)
	}
	c, err := doc.Chart()
	if err != nil {
		panic(err)
	}
	scene, err := c.Build(chart.Size{Width: 400, Height: 300})
	if err != nil {
		panic(err)
	}
	fmt.Println(scene.Kind, len(scene.Rows))
	// Output: funnel 2
}
