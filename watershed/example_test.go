package watershed_test

import (
	"context"
	"fmt"

	"github.com/katalvlaran/wshed/gridgraph"
	"github.com/katalvlaran/wshed/watershed"
)

// ExampleApply floods a 1×7 profile with a ridge in the middle from its two
// ends. The seeds meet at intensity 3, both basins are 3 deep and are
// emitted at level 2.
func ExampleApply() {
	gray, _ := gridgraph.NewGridGraph([][]int{{0, 1, 2, 3, 2, 1, 0}}, gridgraph.DefaultGridOptions())
	seeds, _ := gridgraph.MaskFromPoints(7, 1, []gridgraph.Point{{X: 0, Y: 0}, {X: 6, Y: 0}})

	basins, err := watershed.Apply(context.Background(), gray, seeds, 3)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, b := range basins {
		fmt.Printf("seed %d level %d box %+v area %d\n", b.Seed, b.Level, b.Box, b.Area())
	}
	// Output:
	// seed 1 level 2 box {X:4 Y:0 W:3 H:1} area 3
	// seed 0 level 2 box {X:0 Y:0 W:3 H:1} area 3
}

// ExampleEngine walks the engine lifecycle on the same profile with a
// minimum depth the ridge cannot satisfy.
func ExampleEngine() {
	gray, _ := gridgraph.NewGridGraph([][]int{{0, 1, 2, 3, 2, 1, 0}}, gridgraph.DefaultGridOptions())
	seeds, _ := gridgraph.MaskFromPoints(7, 1, []gridgraph.Point{{X: 0, Y: 0}, {X: 6, Y: 0}})

	e, err := watershed.New(gray, seeds, 4)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer e.Close()

	fmt.Println(e.Run(context.Background()))
	basins, _ := e.Basins()
	owner, _ := e.Owner(0)
	fmt.Println(len(basins), owner)
	// Output:
	// watershed: no basins emitted
	// 0 1
}
