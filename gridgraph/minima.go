package gridgraph

import "fmt"

// defaultMinimaMaxValue bounds regional minima when the caller passes 0.
const defaultMinimaMaxValue = 254

// conn8View returns gg itself if it already uses Conn8, otherwise a shallow
// copy sharing the cells but walking 8-connected neighbors.
func (gg *GridGraph) conn8View() *GridGraph {
	if gg.Conn == Conn8 {
		return gg
	}
	v := *gg
	v.Conn = Conn8
	v.neighborOffsets = offsets8

	return &v
}

// MaskFromPoints returns a w×h Depth1 mask with one foreground cell per
// in-bounds point.
func MaskFromPoints(w, h int, pts []Point) (*GridGraph, error) {
	m, err := NewBlank(w, h, MaskOptions())
	if err != nil {
		return nil, err
	}
	for _, p := range pts {
		if m.InBounds(p.X, p.Y) {
			m.SetValue(p.X, p.Y, 1)
		}
	}

	return m, nil
}

// SelectMinInComponents shrinks every 8-connected foreground component of
// mask to a single representative cell: the cell at which src attains the
// component minimum. Ties go to the first such cell in raster order.
//
// Returns the points and the matching minimum values, ordered by the raster
// position of each component's first cell.
// Errors: ErrDepthMismatch if src is not Depth8 or mask is not Depth1,
// ErrSizeMismatch if the grids differ in size.
//
// Time: O(W·H·8), Memory: O(W·H).
func SelectMinInComponents(src, mask *GridGraph) ([]Point, []int, error) {
	if err := checkPair(src, mask); err != nil {
		return nil, nil, err
	}
	comps := mask.conn8View().ConnectedComponents()
	pts := make([]Point, 0, len(comps))
	mins := make([]int, 0, len(comps))
	for _, comp := range comps {
		best := comp[0]
		bestVal := src.pix[best]
		for _, i := range comp[1:] {
			v := src.pix[i]
			if v < bestVal || (v == bestVal && i < best) {
				best, bestVal = i, v
			}
		}
		x, y := src.Coordinate(best)
		pts = append(pts, Point{X: x, Y: y})
		mins = append(mins, int(bestVal))
	}

	return pts, mins, nil
}

// LocalMinima returns a Depth1 mask of the regional minima of src.
//
// A cell is a candidate when it equals the minimum of its 3×3 neighborhood
// (clipped at the image edge). Each 8-connected group of candidates is kept
// only if its value is ≤ maxValue and every cell bordering the group from
// outside has a strictly larger value. A group touching an equal neighbor
// drains somewhere lower and is dropped.
//
// maxValue ≤ 0 selects the default bound 254.
// Errors: ErrDepthMismatch if src is not Depth8.
func LocalMinima(src *GridGraph, maxValue int) (*GridGraph, error) {
	if src == nil || src.Depth != Depth8 {
		return nil, fmt.Errorf("%w: source must be Depth8", ErrDepthMismatch)
	}
	if maxValue <= 0 {
		maxValue = defaultMinimaMaxValue
	}
	w, h := src.Width, src.Height
	cand, err := NewBlank(w, h, MaskOptions())
	if err != nil {
		return nil, err
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := src.pix[src.index(x, y)]
			isMin := true
			for _, d := range offsets8 {
				nx, ny := x+d[0], y+d[1]
				if src.InBounds(nx, ny) && src.pix[src.index(nx, ny)] < v {
					isMin = false
					break
				}
			}
			if isMin {
				cand.pix[cand.index(x, y)] = 1
			}
		}
	}

	// Qualify each candidate group against its exterior boundary.
	owner := make([]int, w*h)
	comps := cand.ConnectedComponents()
	for ci, comp := range comps {
		for _, i := range comp {
			owner[i] = ci + 1
		}
	}
	for ci, comp := range comps {
		val := src.pix[comp[0]]
		keep := int(val) <= maxValue
		for _, i := range comp {
			if !keep {
				break
			}
			ux, uy := cand.Coordinate(i)
			for _, d := range offsets8 {
				vx, vy := ux+d[0], uy+d[1]
				if !cand.InBounds(vx, vy) {
					continue
				}
				vi := cand.index(vx, vy)
				if owner[vi] == ci+1 {
					continue
				}
				if src.pix[vi] <= val {
					keep = false
					break
				}
			}
		}
		if !keep {
			for _, i := range comp {
				cand.pix[i] = 0
			}
		}
	}

	return cand, nil
}

// RemoveSeededComponents returns a copy of mask without every 8-connected
// foreground component that contains at least one of the seed points.
// Seeds outside the grid or on background cells are ignored.
func RemoveSeededComponents(mask *GridGraph, seeds []Point) (*GridGraph, error) {
	if mask == nil || mask.Depth != Depth1 {
		return nil, fmt.Errorf("%w: mask must be Depth1", ErrDepthMismatch)
	}
	out := mask.Clone()
	if len(seeds) == 0 {
		return out, nil
	}
	seeded := make(map[int]struct{}, len(seeds))
	for _, p := range seeds {
		if mask.InBounds(p.X, p.Y) {
			seeded[mask.index(p.X, p.Y)] = struct{}{}
		}
	}
	for _, comp := range mask.conn8View().ConnectedComponents() {
		hit := false
		for _, i := range comp {
			if _, ok := seeded[i]; ok {
				hit = true
				break
			}
		}
		if !hit {
			continue
		}
		for _, i := range comp {
			out.pix[i] = 0
		}
	}

	return out, nil
}

// ClearBorder zeroes every cell within n cells of the grid edge.
// n ≤ 0 is a no-op.
func (gg *GridGraph) ClearBorder(n int) {
	if n <= 0 {
		return
	}
	for y := 0; y < gg.Height; y++ {
		for x := 0; x < gg.Width; x++ {
			if x < n || y < n || x >= gg.Width-n || y >= gg.Height-n {
				gg.pix[gg.index(x, y)] = 0
			}
		}
	}
}

// checkPair validates a grayscale source against a binary mask.
func checkPair(src, mask *GridGraph) error {
	if src == nil || src.Depth != Depth8 {
		return fmt.Errorf("%w: source must be Depth8", ErrDepthMismatch)
	}
	if mask == nil || mask.Depth != Depth1 {
		return fmt.Errorf("%w: mask must be Depth1", ErrDepthMismatch)
	}
	if !src.SameSize(mask) {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, src.Width, src.Height, mask.Width, mask.Height)
	}
	return nil
}
