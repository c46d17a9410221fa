package gridgraph

// Connectivity selects neighbor connectivity: orthogonal (Conn4) or including diagonals (Conn8).
type Connectivity int

const (
	// Conn4 uses 4-directional connectivity: N, E, S, W.
	Conn4 Connectivity = iota
	// Conn8 uses 8-directional connectivity over the 3×3 block, row-major.
	Conn8
)

// Depth is the number of bits carried by each cell.
type Depth int

const (
	// Depth1 grids are binary masks: every cell is 0 or 1.
	Depth1 Depth = 1
	// Depth8 grids are grayscale images: every cell is in [0,255].
	Depth8 Depth = 8
)

// MaxValue returns the largest value a cell of this depth can hold.
func (d Depth) MaxValue() int {
	if d == Depth1 {
		return 1
	}
	return 255
}

func (d Depth) valid() bool {
	return d == Depth1 || d == Depth8
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Box is an axis-aligned rectangle of cells: origin (X,Y), size W×H.
type Box struct {
	X, Y, W, H int
}

// Contains reports whether (x,y) lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

// Empty reports whether the box covers no cells.
func (b Box) Empty() bool {
	return b.W <= 0 || b.H <= 0
}

// GridOptions contains tunable parameters for grid construction.
type GridOptions struct {
	// Depth is the bits-per-cell of the grid (Depth1 or Depth8).
	Depth Depth
	// Conn chooses 4- or 8-directional connectivity for component analysis.
	Conn Connectivity
}

// DefaultGridOptions returns a GridOptions with default settings:
// Depth=Depth8, Conn=Conn8.
func DefaultGridOptions() GridOptions {
	return GridOptions{
		Depth: Depth8,
		Conn:  Conn8,
	}
}

// MaskOptions returns the options used for binary masks: Depth1, Conn8.
func MaskOptions() GridOptions {
	return GridOptions{
		Depth: Depth1,
		Conn:  Conn8,
	}
}

// GridGraph is a rectangular raster treated as a graph of cells.
// Width and Height define dimensions; cells are stored row-major in pix.
// Depth bounds the cell values; Conn selects the adjacency used by
// component analysis. neighborOffsets is precomputed from Conn.
type GridGraph struct {
	Width, Height   int
	Depth           Depth
	Conn            Connectivity
	pix             []uint8
	neighborOffsets [][2]int
}
