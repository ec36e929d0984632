package tooltip_test

import (
	"fmt"

	"github.com/matzehuels/waffle/pkg/data"
	"github.com/matzehuels/waffle/pkg/geom"
	"github.com/matzehuels/waffle/pkg/tooltip"
)

func ExampleController() {
	rows := data.Dataset{
		{"region": "north", "sales": 120},
		{"region": "south", "sales": 80},
	}
	bars := []geom.Shape{
		geom.Rect{Mark: geom.Mark{Datum: 0}, X: 0, Y: 0, W: 40, H: 100},
		geom.Rect{Mark: geom.Mark{Datum: 1}, X: 60, Y: 33, W: 40, H: 67},
	}

	c, err := tooltip.NewController(tooltip.ShapeLocator{Shapes: bars}, rows)
	if err != nil {
		panic(err)
	}
	defer c.Stop()

	c.PointerMove(70, 50)
	h, _ := c.Hover()
	fmt.Println(c.State(), h.Row["region"], h.Anchor.X)

	c.PointerLeave()
	fmt.Println(c.State())
	// Output:
	// hovering south 80
	// idle
}
