package watershed_test

import (
	"context"
	"math/rand"
	"testing"

	"github.com/katalvlaran/wshed/gridgraph"
	"github.com/katalvlaran/wshed/watershed"
)

func benchScene(b *testing.B, n, seeds int) (*gridgraph.GridGraph, *gridgraph.GridGraph) {
	b.Helper()
	rng := rand.New(rand.NewSource(1))
	rows := make([][]int, n)
	for y := range rows {
		rows[y] = make([]int, n)
		for x := range rows[y] {
			rows[y][x] = (x*x+y*y)%97 + rng.Intn(32)
		}
	}
	g, err := gridgraph.NewGridGraph(rows, gridgraph.DefaultGridOptions())
	if err != nil {
		b.Fatal(err)
	}
	pts := make([]gridgraph.Point, seeds)
	for i := range pts {
		pts[i] = gridgraph.Point{X: rng.Intn(n), Y: rng.Intn(n)}
	}
	m, err := gridgraph.MaskFromPoints(n, n, pts)
	if err != nil {
		b.Fatal(err)
	}
	return g, m
}

func BenchmarkApply_128(b *testing.B) {
	g, m := benchScene(b, 128, 32)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := watershed.Apply(ctx, g, m, 4); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkApply_512_NoMinima(b *testing.B) {
	g, m := benchScene(b, 512, 64)
	ctx := context.Background()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := watershed.Apply(ctx, g, m, 4, watershed.WithoutMinima()); err != nil {
			b.Fatal(err)
		}
	}
}
