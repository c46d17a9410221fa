package watershed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/wshed/gridgraph"
)

// runner holds the mutable state of a single flood.
//
// Label ids are partitioned as
//
//	[0, nseeds)                 seeds, in seed order
//	[nseeds, nseeds+nother)     unmarked minima
//	[nseeds+nother, 2*(both))   fillers, allocated on demand
type runner struct {
	ctx      context.Context
	opts     Options
	mindepth int
	gray     *gridgraph.GridGraph

	seeds     []gridgraph.Point
	seedMin   []int
	minima    []gridgraph.Point
	minimaMin []int
	nseeds    int
	nother    int

	labels *labelImage
	table  *lookup
	active []bool // active[i]: seed i has not been emitted yet
	queue  *pixelQueue
	ext    *extractor
	next   int // next unused filler id
	level  int // value of the most recent pop

	basins []Basin
	stats  Stats
	log    *slog.Logger
	debug  bool
}

func newRunner(ctx context.Context, e *Engine) *runner {
	nseeds, nother := len(e.seeds), len(e.minima)
	both := nseeds + nother
	table := newLookup(2 * both)
	active := make([]bool, nseeds)
	for i := range active {
		active[i] = true
	}
	log := Logger()

	return &runner{
		ctx:       ctx,
		opts:      e.opts,
		mindepth:  e.mindepth,
		gray:      e.gray,
		seeds:     e.seeds,
		seedMin:   e.seedMin,
		minima:    e.minima,
		minimaMin: e.minimaMin,
		nseeds:    nseeds,
		nother:    nother,
		labels:    e.labels,
		table:     table,
		active:    active,
		queue:     newPixelQueue(e.opts.QueueLimit),
		ext:       newExtractor(e.gray, e.labels, table),
		next:      both,
		basins:    make([]Basin, 0, nseeds),
		log:       log,
		debug:     log.Enabled(ctx, slog.LevelDebug),
	}
}

// init pushes every seed and then every unmarked minimum at its own intensity.
// None of them is painted yet; their first pop does that.
func (r *runner) init() error {
	for i, p := range r.seeds {
		if err := r.push(r.gray.Value(p.X, p.Y), p.X, p.Y, i); err != nil {
			return err
		}
	}
	for j, p := range r.minima {
		if err := r.push(r.gray.Value(p.X, p.Y), p.X, p.Y, r.nseeds+j); err != nil {
			return err
		}
	}
	return nil
}

// process pops entries in nondecreasing value order until the queue is
// empty, the context ends, or a push fails.
func (r *runner) process() error {
	for r.queue.size() > 0 {
		// cancellation check (once per pop)
		select {
		case <-r.ctx.Done():
			return fmt.Errorf("%w: %w", ErrCancelled, r.ctx.Err())
		default:
		}

		p, err := r.queue.pop()
		if err != nil {
			return err
		}
		r.stats.Pops++
		r.level = p.val
		if err := r.step(p); err != nil {
			return err
		}
	}

	if r.opts.FinalEmission {
		r.emitRemaining()
	}
	r.stats.PeakQueue = r.queue.peak
	return nil
}

// step handles one popped entry.
func (r *runner) step(p wsPixel) error {
	index := r.table.resolve(p.label)
	raw := r.labels.get(p.x, p.y)
	if raw == Unlabeled {
		r.labels.set(p.x, p.y, uint32(index))
		return r.spread(p.x, p.y, p.val, index)
	}
	label := r.table.resolve(int(raw))
	if label == index {
		return nil // already seen, same basin
	}
	return r.collide(p, label, index)
}

// spread pushes the 8 neighbors of (x,y) for basin index. A neighbor is
// queued at the current flood value when it lies below it, so pops never
// go back down.
func (r *runner) spread(x, y, val, index int) error {
	for _, d := range neighbors8 {
		u, v := x+d[0], y+d[1]
		if !r.gray.InBounds(u, v) {
			continue
		}
		if err := r.push(max(r.gray.Value(u, v), val), u, v, index); err != nil {
			return err
		}
	}
	return nil
}

// collide resolves two basins meeting at p. label owns the pixel already,
// index is the owner carried by the popped entry.
func (r *runner) collide(p wsPixel, label, index int) error {
	cl, ci := r.category(label), r.category(index)
	switch {
	case cl == catSeed && ci == catSeed:
		hl := p.val - r.seedMin[label]
		hi := p.val - r.seedMin[index]
		if min(hl, hi) >= r.mindepth {
			r.trace("two new watersheds", p, label, index)
			r.emit(index, p.val)
			r.emit(label, p.val)
			f, err := r.newFiller()
			if err != nil {
				return err
			}
			r.merge(label, f)
			r.merge(index, f)
			return nil
		}
		// shallow seed inside a seeded basin; label loses ties
		r.trace("seed absorbed into seeded basin", p, label, index)
		if hi < hl {
			r.merge(index, label)
		} else {
			r.merge(label, index)
		}
	case cl == catSeed && ci == catFiller:
		r.trace("one new watershed (label)", p, label, index)
		r.emit(label, p.val)
		r.merge(label, index)
	case cl == catFiller && ci == catSeed:
		r.trace("one new watershed (index)", p, label, index)
		r.emit(index, p.val)
		r.merge(index, label)
	case cl == catSeed && ci == catMinimum:
		r.trace("minimum absorbed into seeded basin", p, label, index)
		r.merge(index, label)
	case cl == catMinimum && ci == catSeed:
		r.trace("minimum absorbed into seeded basin", p, label, index)
		r.merge(label, index)
	default:
		r.trace("minimum absorbed by filler or another", p, label, index)
		r.merge(label, index)
	}
	return nil
}

// emit extracts the basin of seed id filled up to just below val and
// appends it to the output. Empty extractions are dropped.
func (r *runner) emit(id, val int) {
	if id >= r.nseeds || !r.active[id] {
		return
	}
	r.active[id] = false
	box, mask, ok := r.ext.basin(id, r.origin(id), val)
	if !ok {
		r.log.Debug("empty basin dropped", "seed", id, "level", val-1)
		return
	}
	r.basins = append(r.basins, Basin{Box: box, Mask: mask, Level: val - 1, Seed: id})
	r.stats.Emissions++
	if r.debug {
		r.log.Debug("basin emitted", "seed", id, "level", val-1, "box", box, "area", mask.Count())
	}
}

// emitRemaining emits, at the final flood level, every seed basin that
// never met another tracked basin.
func (r *runner) emitRemaining() {
	for i := 0; i < r.nseeds; i++ {
		if !r.active[i] {
			continue
		}
		if o := r.table.resolve(i); o < r.nseeds {
			r.emit(o, r.level+1)
		}
		r.active[i] = false
	}
}

func (r *runner) merge(src, dst int) {
	r.table.merge(src, dst)
	r.stats.Merges++
}

func (r *runner) newFiller() (int, error) {
	if r.next >= r.table.size() {
		return 0, fmt.Errorf("%w: label space of %d exhausted", ErrOutOfMemory, r.table.size())
	}
	f := r.next
	r.next++
	r.stats.Fillers++
	return f, nil
}

func (r *runner) push(val, x, y, label int) error {
	if err := r.queue.push(val, x, y, label); err != nil {
		return err
	}
	r.stats.Pushes++
	return nil
}

func (r *runner) category(id int) category {
	switch {
	case id < r.nseeds:
		return catSeed
	case id < r.nseeds+r.nother:
		return catMinimum
	default:
		return catFiller
	}
}

// origin returns the seed or minimum pixel of label id.
func (r *runner) origin(id int) gridgraph.Point {
	if id < r.nseeds {
		return r.seeds[id]
	}
	return r.minima[id-r.nseeds]
}

func (r *runner) trace(event string, p wsPixel, label, index int) {
	if !r.debug {
		return
	}
	r.log.Debug(event,
		"x", p.x, "y", p.y, "value", p.val,
		"label", label, "labelKind", r.category(label).String(),
		"index", index, "indexKind", r.category(index).String())
}

// release returns all queued entries and drops the scratch state.
func (r *runner) release() {
	r.queue.drain()
	r.queue.pool.reset()
	r.ext.queue.pool.reset()
	r.ext = nil
}
