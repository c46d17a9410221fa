package watershed

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/wshed/gridgraph"
)

// engine lifecycle
const (
	stateReady = iota
	stateRunning
	stateDone
	stateFailed
	stateClosed
)

// Engine floods one grayscale image from one seed mask.
//
// An Engine runs at most once. It is not safe for concurrent use, but
// distinct engines on distinct inputs may run in parallel.
type Engine struct {
	gray     *gridgraph.GridGraph
	mask     *gridgraph.GridGraph
	mindepth int
	opts     Options

	seeds     []gridgraph.Point
	seedMin   []int
	minima    []gridgraph.Point
	minimaMin []int

	labels *labelImage
	table  *lookup
	basins []Basin
	stats  Stats
	state  int
}

// New validates the inputs and returns an engine ready to Run.
//
// gray must be Depth8 and seedMask Depth1 of the same size. mindepth is
// the smallest basin depth, below the collision level, that yields an
// emission; values below 1 are raised to 1.
//
// Errors:
//   - ErrInvalidDepth if gray is nil or not Depth8.
//   - ErrInvalidMask if seedMask is nil or not Depth1.
//   - ErrInvalidDims if the two grids differ in size.
//   - ErrOptionViolation if an Option is invalid.
func New(gray, seedMask *gridgraph.GridGraph, mindepth int, opts ...Option) (*Engine, error) {
	if gray == nil || gray.Depth != gridgraph.Depth8 {
		return nil, ErrInvalidDepth
	}
	if seedMask == nil || seedMask.Depth != gridgraph.Depth1 {
		return nil, ErrInvalidMask
	}
	if !gray.SameSize(seedMask) {
		return nil, fmt.Errorf("%w: image %dx%d, mask %dx%d",
			ErrInvalidDims, gray.Width, gray.Height, seedMask.Width, seedMask.Height)
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	return &Engine{
		gray:     gray,
		mask:     seedMask,
		mindepth: max(1, mindepth),
		opts:     o,
		labels:   newLabelImage(gray.Width, gray.Height),
	}, nil
}

// Run locates the seeds and the unmarked minima, floods the image and
// collects the emitted basins.
//
// It returns nil when at least one basin was emitted and ErrEmptyResult
// when the flood completed without any; Basins is usable in both cases.
// Any other error (ErrOutOfMemory, ErrCancelled) releases the run state
// and leaves no output.
func (e *Engine) Run(ctx context.Context) error {
	switch e.state {
	case stateClosed:
		return ErrClosed
	case stateReady:
	default:
		return ErrEngineUsed
	}
	e.state = stateRunning
	if ctx == nil {
		ctx = context.Background()
	}

	if err := e.locate(); err != nil {
		e.fail()
		return err
	}

	log := Logger()
	log.Info("watershed run started",
		"width", e.gray.Width, "height", e.gray.Height,
		"seeds", len(e.seeds), "minima", len(e.minima), "mindepth", e.mindepth)

	r := newRunner(ctx, e)
	err := r.init()
	if err == nil {
		err = r.process()
	}
	r.release()
	if err != nil {
		e.fail()
		return err
	}

	e.table = r.table
	e.basins = r.basins
	e.stats = r.stats
	e.state = stateDone
	if debugInvariants {
		if verr := e.table.validate(); verr != nil {
			panic(verr)
		}
	}
	log.Info("watershed run finished", "basins", len(e.basins), "pops", e.stats.Pops)

	if len(e.basins) == 0 {
		return ErrEmptyResult
	}
	return nil
}

// locate runs the seed and minima collaborators.
func (e *Engine) locate() error {
	seeds, seedMin, err := gridgraph.SelectMinInComponents(e.gray, e.mask)
	if err != nil {
		return err
	}
	e.seeds, e.seedMin = seeds, seedMin
	if !e.opts.DetectMinima {
		return nil
	}

	lm, err := gridgraph.LocalMinima(e.gray, e.opts.MinimaMaxValue)
	if err != nil {
		return err
	}
	lm.ClearBorder(e.opts.MinimaBorder)
	lm, err = gridgraph.RemoveSeededComponents(lm, maskPoints(e.mask))
	if err != nil {
		return err
	}
	e.minima, e.minimaMin, err = gridgraph.SelectMinInComponents(e.gray, lm)
	return err
}

func (e *Engine) fail() {
	e.labels = nil
	e.table = nil
	e.basins = nil
	e.state = stateFailed
}

// Basins returns the emitted basins in emission order.
// The slice is a copy; the masks are shared.
func (e *Engine) Basins() ([]Basin, error) {
	switch e.state {
	case stateClosed:
		return nil, ErrClosed
	case stateDone:
		out := make([]Basin, len(e.basins))
		copy(out, e.basins)
		return out, nil
	default:
		return nil, ErrNotRun
	}
}

// Close releases the engine state. Further calls return ErrClosed.
func (e *Engine) Close() {
	e.gray, e.mask = nil, nil
	e.seeds, e.seedMin, e.minima, e.minimaMin = nil, nil, nil, nil
	e.labels, e.table, e.basins = nil, nil, nil
	e.state = stateClosed
}

// Seeds returns the representative pixel of every seed component, in
// seed-id order. Empty before Run.
func (e *Engine) Seeds() []gridgraph.Point { return append([]gridgraph.Point(nil), e.seeds...) }

// Minima returns the representative pixel of every unmarked minimum. The
// label id of Minima()[j] is len(Seeds())+j.
func (e *Engine) Minima() []gridgraph.Point { return append([]gridgraph.Point(nil), e.minima...) }

// Label returns the label painted at (x,y), Unlabeled if none. ok is false
// outside the image or when no completed run is available.
func (e *Engine) Label(x, y int) (label uint32, ok bool) {
	if e.state != stateDone || !e.gray.InBounds(x, y) {
		return Unlabeled, false
	}
	return e.labels.get(x, y), true
}

// Owner returns the id label id currently resolves to. ok is false for
// out-of-range ids or when no completed run is available.
func (e *Engine) Owner(id int) (owner int, ok bool) {
	if e.state != stateDone || id < 0 || id >= e.table.size() {
		return 0, false
	}
	return e.table.resolve(id), true
}

// Stats returns the counters of the last completed run.
func (e *Engine) Stats() Stats { return e.stats }

// Apply is New followed by Run and Basins. ErrEmptyResult is not treated
// as a failure: Apply returns an empty slice and a nil error.
func Apply(ctx context.Context, gray, seedMask *gridgraph.GridGraph, mindepth int, opts ...Option) ([]Basin, error) {
	e, err := New(gray, seedMask, mindepth, opts...)
	if err != nil {
		return nil, err
	}
	defer e.Close()

	if err = e.Run(ctx); err != nil && !errors.Is(err, ErrEmptyResult) {
		return nil, err
	}
	return e.Basins()
}

// maskPoints lists the foreground cells of a Depth1 mask.
func maskPoints(mask *gridgraph.GridGraph) []gridgraph.Point {
	var pts []gridgraph.Point
	for y := 0; y < mask.Height; y++ {
		for x := 0; x < mask.Width; x++ {
			if mask.Value(x, y) != 0 {
				pts = append(pts, gridgraph.Point{X: x, Y: y})
			}
		}
	}
	return pts
}
