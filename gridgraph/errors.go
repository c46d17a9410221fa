package gridgraph

import "errors"

var (
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("gridgraph: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridgraph: all rows must have the same length")
	// ErrValueRange indicates a cell value that does not fit the grid depth.
	ErrValueRange = errors.New("gridgraph: cell value out of range for depth")
	// ErrBadDepth indicates an unsupported bits-per-cell setting.
	ErrBadDepth = errors.New("gridgraph: depth must be Depth1 or Depth8")
	// ErrDepthMismatch indicates an operation received a grid of the wrong depth.
	ErrDepthMismatch = errors.New("gridgraph: grid has the wrong depth for this operation")
	// ErrSizeMismatch indicates two grids that must be aligned have different dimensions.
	ErrSizeMismatch = errors.New("gridgraph: grid dimensions differ")
	// ErrBoxOutOfRange indicates a crop rectangle that is not inside the grid.
	ErrBoxOutOfRange = errors.New("gridgraph: box lies outside the grid")
)
