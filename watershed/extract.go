package watershed

import (
	"github.com/katalvlaran/wshed/gridgraph"
)

// neighbors8 lists the 3×3 block without its center, row-major.
var neighbors8 = [8][2]int{{-1, -1}, {0, -1}, {1, -1}, {-1, 0}, {1, 0}, {-1, 1}, {0, 1}, {1, 1}}

// extractor carves an emitted basin out of the label image. Its scratch
// state is reused across emissions: visited is cleared by walking the
// accepted cells, never by wiping the whole bitmap.
type extractor struct {
	gray     *gridgraph.GridGraph
	labels   *labelImage
	table    *lookup
	visited  bitmap
	queue    pointQueue
	accepted []int
}

func newExtractor(gray *gridgraph.GridGraph, labels *labelImage, table *lookup) *extractor {
	return &extractor{
		gray:    gray,
		labels:  labels,
		table:   table,
		visited: newBitmap(gray.Width * gray.Height),
	}
}

// accept reports whether (x,y) belongs to basin id below level and has
// not been taken yet.
func (e *extractor) accept(x, y, id, level int) bool {
	l := e.labels.get(x, y)
	if l == Unlabeled || e.table.resolve(int(l)) != id {
		return false
	}
	if e.gray.Value(x, y) >= level {
		return false
	}
	return !e.visited.has(y*e.gray.Width + x)
}

// basin runs an 8-connected BFS from origin over the pixels that resolve
// to id and have intensity below level. It returns the bounding box and a
// cropped Depth1 mask, or ok=false when not even origin qualifies.
// Neither the label image nor the lookup table is modified.
func (e *extractor) basin(id int, origin gridgraph.Point, level int) (box gridgraph.Box, mask *gridgraph.GridGraph, ok bool) {
	w := e.gray.Width
	if !e.accept(origin.X, origin.Y, id, level) {
		return gridgraph.Box{}, nil, false
	}
	minx, miny, maxx, maxy := origin.X, origin.Y, origin.X, origin.Y
	e.take(origin.X, origin.Y)

	for {
		x, y, more := e.queue.pop()
		if !more {
			break
		}
		for _, d := range neighbors8 {
			u, v := x+d[0], y+d[1]
			if !e.gray.InBounds(u, v) || !e.accept(u, v, id, level) {
				continue
			}
			e.take(u, v)
			minx, maxx = min(minx, u), max(maxx, u)
			miny, maxy = min(miny, v), max(maxy, v)
		}
	}

	box = gridgraph.Box{X: minx, Y: miny, W: maxx - minx + 1, H: maxy - miny + 1}
	mask, err := gridgraph.NewBlank(box.W, box.H, gridgraph.MaskOptions())
	if err != nil {
		e.reset()
		return gridgraph.Box{}, nil, false
	}
	for _, i := range e.accepted {
		mask.SetValue(i%w-box.X, i/w-box.Y, 1)
	}
	e.reset()

	return box, mask, true
}

func (e *extractor) take(x, y int) {
	i := y*e.gray.Width + x
	e.visited.set(i)
	e.accepted = append(e.accepted, i)
	e.queue.push(x, y)
}

// reset clears the visited bits set by the last extraction.
func (e *extractor) reset() {
	for _, i := range e.accepted {
		e.visited.clear(i)
	}
	e.accepted = e.accepted[:0]
}
