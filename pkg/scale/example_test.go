package scale_test

import (
	"fmt"

	"github.com/matzehuels/waffle/pkg/scale"
)

func ExampleNewLinear() {
	y := scale.NewLinear(0, 97, 300, 0, scale.WithNice(5))
	d0, d1 := y.Domain()
	fmt.Println(d0, d1)
	fmt.Println(y.Map(50), y.Ticks(5))
	// Output:
	// 0 100
	// 150 [0 20 40 60 80 100]
}

func ExampleNewBand() {
	x := scale.NewBand([]string{"Q1", "Q2", "Q3", "Q4"}, 0, 400)
	q3, _ := x.Map("Q3")
	fmt.Println(q3, x.Bandwidth(), x.Index(310))
	// Output: 200 100 3
}
