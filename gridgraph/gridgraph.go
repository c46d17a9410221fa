// Package gridgraph provides a raster grid of small integer cell values
// that can be walked as a graph. It supports:
//
//   - 8-bit grayscale grids (Depth8) and binary masks (Depth1)
//   - Four- or eight-connectivity (Conn4 or Conn8)
//   - Identification of connected components of foreground cells
//   - The seed and minima extraction used by the watershed engine
//
// Cells with value 0 are background; cells with value ≥ 1 are foreground.
package gridgraph

import (
	"fmt"
	"image"
)

// offsets for each connectivity, row-major over the 3×3 block without its center.
var (
	offsets4 = [][2]int{{0, -1}, {-1, 0}, {1, 0}, {0, 1}}
	offsets8 = [][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}
)

// NewGridGraph constructs a GridGraph from a non-empty, rectangular 2D slice
// indexed values[y][x]. The input is copied.
// Returns ErrEmptyGrid if grid has no rows or no columns,
// ErrNonRectangular if any row length differs, ErrBadDepth for an unknown
// depth and ErrValueRange if a value does not fit opts.Depth.
// Algorithmic complexity: O(W×H) time and memory.
func NewGridGraph(values [][]int, opts GridOptions) (*GridGraph, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(values), len(values[0])
	for _, row := range values {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	gg, err := NewBlank(w, h, opts)
	if err != nil {
		return nil, err
	}
	maxv := opts.Depth.MaxValue()
	for y, row := range values {
		for x, v := range row {
			if v < 0 || v > maxv {
				return nil, fmt.Errorf("%w: value %d at (%d,%d), depth %d", ErrValueRange, v, x, y, opts.Depth)
			}
			gg.pix[gg.index(x, y)] = uint8(v)
		}
	}

	return gg, nil
}

// NewBlank returns a w×h grid with every cell set to zero.
func NewBlank(w, h int, opts GridOptions) (*GridGraph, error) {
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyGrid
	}
	if !opts.Depth.valid() {
		return nil, ErrBadDepth
	}
	offsets := offsets4
	if opts.Conn == Conn8 {
		offsets = offsets8
	}

	return &GridGraph{
		Width:           w,
		Height:          h,
		Depth:           opts.Depth,
		Conn:            opts.Conn,
		pix:             make([]uint8, w*h),
		neighborOffsets: offsets,
	}, nil
}

// FromGray builds a Depth8 grid from an in-memory grayscale image.
// The image bounds are translated so that Min maps to (0,0).
func FromGray(img *image.Gray) (*GridGraph, error) {
	if img == nil {
		return nil, ErrEmptyGrid
	}
	b := img.Bounds()
	gg, err := NewBlank(b.Dx(), b.Dy(), DefaultGridOptions())
	if err != nil {
		return nil, err
	}
	for y := 0; y < gg.Height; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+gg.Width]
		copy(gg.pix[y*gg.Width:(y+1)*gg.Width], row)
	}

	return gg, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
// Complexity: O(1).
func (gg *GridGraph) InBounds(x, y int) bool {
	return x >= 0 && x < gg.Width && y >= 0 && y < gg.Height
}

// NeighborOffsets returns the precomputed neighbor offsets slice.
// Complexity: O(1).
func (gg *GridGraph) NeighborOffsets() [][2]int {
	return gg.neighborOffsets
}

// Value returns the cell value at (x,y). The coordinate must be in bounds.
func (gg *GridGraph) Value(x, y int) int {
	return int(gg.pix[gg.index(x, y)])
}

// SetValue stores v at (x,y). For Depth1 any non-zero v stores 1; for
// Depth8 v is clamped to [0,255].
func (gg *GridGraph) SetValue(x, y, v int) {
	if gg.Depth == Depth1 && v != 0 {
		v = 1
	}
	gg.pix[gg.index(x, y)] = uint8(min(max(v, 0), gg.Depth.MaxValue()))
}

// Count returns the number of foreground (non-zero) cells.
func (gg *GridGraph) Count() int {
	n := 0
	for _, v := range gg.pix {
		if v != 0 {
			n++
		}
	}
	return n
}

// SameSize reports whether other has the same width and height.
func (gg *GridGraph) SameSize(other *GridGraph) bool {
	return other != nil && gg.Width == other.Width && gg.Height == other.Height
}

// Clone returns a deep copy of the grid.
func (gg *GridGraph) Clone() *GridGraph {
	c := *gg
	c.pix = make([]uint8, len(gg.pix))
	copy(c.pix, gg.pix)

	return &c
}

// Crop returns a new grid holding the cells of gg inside box.
// Returns ErrBoxOutOfRange if the box is empty or not fully inside gg.
func (gg *GridGraph) Crop(box Box) (*GridGraph, error) {
	if box.Empty() || !gg.InBounds(box.X, box.Y) || !gg.InBounds(box.X+box.W-1, box.Y+box.H-1) {
		return nil, fmt.Errorf("%w: %+v in %dx%d", ErrBoxOutOfRange, box, gg.Width, gg.Height)
	}
	c, err := NewBlank(box.W, box.H, GridOptions{Depth: gg.Depth, Conn: gg.Conn})
	if err != nil {
		return nil, err
	}
	for y := 0; y < box.H; y++ {
		src := gg.index(box.X, box.Y+y)
		copy(c.pix[y*box.W:(y+1)*box.W], gg.pix[src:src+box.W])
	}

	return c, nil
}

// Rows returns the grid as a freshly allocated [][]int indexed [y][x].
func (gg *GridGraph) Rows() [][]int {
	rows := make([][]int, gg.Height)
	for y := range rows {
		rows[y] = make([]int, gg.Width)
		for x := range rows[y] {
			rows[y][x] = int(gg.pix[gg.index(x, y)])
		}
	}

	return rows
}

// index maps (x,y) to a row‑major index: y*Width + x.
// Complexity: O(1).
func (gg *GridGraph) index(x, y int) int {
	return y*gg.Width + x
}

// Index is the exported form of the row-major cell index.
func (gg *GridGraph) Index(x, y int) int {
	return gg.index(x, y)
}

// Coordinate converts a row‑major index back to (x,y).
// Complexity: O(1).
func (gg *GridGraph) Coordinate(idx int) (x, y int) {
	return idx % gg.Width, idx / gg.Width
}
