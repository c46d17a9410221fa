// Package gridgraph treats a 2D raster of cells as a graph, providing the
// grid primitives and component analyses that feed the watershed engine.
//
// What:
//
//   - GridGraph wraps a rectangular raster of 8-bit (Depth8) or 1-bit (Depth1) cells.
//   - Identifies connected components of foreground cells (value ≥ 1).
//   - Shrinks each mask component to the cell of minimum source intensity.
//   - Detects regional minima of a grayscale grid.
//   - Removes mask components that contain a seed point.
//
// Why:
//
//   - Marker-controlled watershed needs one seed cell per marker component.
//   - Unmarked regional minima have to be flooded too, or basins leak.
//
// Complexity:
//
//   - ConnectedComponents:    O(W×H×d), Memory: O(W×H)    (d = number of neighbors, 4 or 8).
//   - SelectMinInComponents:  O(W×H×8), Memory: O(W×H).
//   - LocalMinima:            O(W×H×8), Memory: O(W×H).
//   - RemoveSeededComponents: O(W×H×8), Memory: O(W×H).
//
// Options:
//
//   - GridOptions.Depth: Depth8 (grayscale) or Depth1 (mask).
//   - GridOptions.Conn: Conn4 (4-neighbors) or Conn8 (8-neighbors).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrValueRange: a value does not fit the requested depth.
//   - ErrBadDepth: depth is neither Depth1 nor Depth8.
//   - ErrDepthMismatch: an operation received a grid of the wrong depth.
//   - ErrSizeMismatch: two grids that must align differ in size.
//   - ErrBoxOutOfRange: a crop box is not inside the grid.
package gridgraph
