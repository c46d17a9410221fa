package gridgraph_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/wshed/gridgraph"
)

func randomGray(b *testing.B, n int) *gridgraph.GridGraph {
	b.Helper()
	rng := rand.New(rand.NewSource(42))
	grid := make([][]int, n)
	for y := 0; y < n; y++ {
		row := make([]int, n)
		for x := 0; x < n; x++ {
			row[x] = rng.Intn(256)
		}
		grid[y] = row
	}
	gg, err := gridgraph.NewGridGraph(grid, gridgraph.DefaultGridOptions())
	if err != nil {
		b.Fatalf("setup NewGridGraph failed: %v", err)
	}
	return gg
}

// BenchmarkConnectedComponents measures ConnectedComponents on a 1000×1000
// grid where roughly one cell in five is background.
// Complexity: O(W×H×d)
func BenchmarkConnectedComponents(b *testing.B) {
	const n = 1000
	rng := rand.New(rand.NewSource(42))
	grid := make([][]int, n)
	for y := 0; y < n; y++ {
		row := make([]int, n)
		for x := 0; x < n; x++ {
			if rng.Intn(5) > 0 {
				row[x] = 1
			}
		}
		grid[y] = row
	}
	gg, err := gridgraph.NewGridGraph(grid, gridgraph.MaskOptions())
	if err != nil {
		b.Fatalf("setup NewGridGraph failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = gg.ConnectedComponents()
	}
}

// BenchmarkLocalMinima measures regional-minima detection on random noise.
// Complexity: O(W×H×8)
func BenchmarkLocalMinima(b *testing.B) {
	src := randomGray(b, 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = gridgraph.LocalMinima(src, 200)
	}
}
