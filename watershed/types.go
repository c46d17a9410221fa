package watershed

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/wshed/gridgraph"
)

// Sentinel errors returned by the engine.
var (
	// ErrInvalidDims indicates the seed mask and the grayscale image differ in size.
	ErrInvalidDims = errors.New("watershed: seed mask and image sizes differ")

	// ErrInvalidDepth indicates the source image is not 8 bits per pixel.
	ErrInvalidDepth = errors.New("watershed: source image must be 8 bpp")

	// ErrInvalidMask indicates the seed mask is not 1 bit per pixel.
	ErrInvalidMask = errors.New("watershed: seed mask must be 1 bpp")

	// ErrOutOfMemory indicates an internal allocation limit was exceeded during Run.
	ErrOutOfMemory = errors.New("watershed: out of memory")

	// ErrCancelled indicates the caller's context ended the run.
	ErrCancelled = errors.New("watershed: run cancelled")

	// ErrEmptyResult is a non-fatal note: the run completed but emitted no basins.
	ErrEmptyResult = errors.New("watershed: no basins emitted")

	// ErrEmptyQueue is returned by a pop on an empty priority queue.
	ErrEmptyQueue = errors.New("watershed: priority queue is empty")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("watershed: invalid option supplied")

	// ErrEngineUsed is returned when Run is called a second time on one engine.
	ErrEngineUsed = errors.New("watershed: engine already ran; create a new one")

	// ErrNotRun is returned by Basins before a run has completed successfully.
	ErrNotRun = errors.New("watershed: run has not completed")

	// ErrClosed is returned by any operation on an engine after Close.
	ErrClosed = errors.New("watershed: engine is closed")
)

// Unlabeled marks a label-image cell that no basin has reached yet.
const Unlabeled uint32 = 1<<31 - 1

// DefaultMinimaMaxValue bounds the intensity of unmarked minima that are flooded.
const DefaultMinimaMaxValue = 200

// Option configures the engine via functional arguments.
// If an Option is invalid it is recorded and surfaced as ErrOptionViolation by New.
type Option func(*Options)

// Options holds the tunable parameters of one engine.
type Options struct {
	// MinimaMaxValue is the largest intensity of an unmarked minimum that is flooded.
	MinimaMaxValue int

	// MinimaBorder clears unmarked minima within this many pixels of the image edge.
	MinimaBorder int

	// DetectMinima enables flooding from unmarked regional minima.
	DetectMinima bool

	// FinalEmission emits every still-active seed basin once the queue drains.
	FinalEmission bool

	// QueueLimit caps the number of live priority-queue entries; 0 means no cap.
	QueueLimit int

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns the default Options:
//   - minima up to intensity 200 are flooded
//   - no border clearing of minima
//   - seeds that never collide are not emitted
//   - no queue limit
func DefaultOptions() Options {
	return Options{
		MinimaMaxValue: DefaultMinimaMaxValue,
		MinimaBorder:   0,
		DetectMinima:   true,
		FinalEmission:  false,
		QueueLimit:     0,
	}
}

// WithMinimaMaxValue bounds the intensity of unmarked minima, in [1,255].
func WithMinimaMaxValue(v int) Option {
	return func(o *Options) {
		if v < 1 || v > 255 {
			o.err = fmt.Errorf("%w: MinimaMaxValue must be in [1,255] (%d)", ErrOptionViolation, v)
			return
		}
		o.MinimaMaxValue = v
	}
}

// WithMinimaBorder discards unmarked minima within n pixels of the edge.
func WithMinimaBorder(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MinimaBorder cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MinimaBorder = n
	}
}

// WithoutMinima floods from the seeds only.
func WithoutMinima() Option {
	return func(o *Options) {
		o.DetectMinima = false
	}
}

// WithFinalEmission emits, after the flood ends, every seed basin that never
// met another tracked basin.
func WithFinalEmission() Option {
	return func(o *Options) {
		o.FinalEmission = true
	}
}

// WithQueueLimit fails the run with ErrOutOfMemory once more than n entries
// are live in the priority queue.
//
//	n > 0: limit to n entries
//	n == 0: explicit no limit
//	n < 0: invalid option → ErrOptionViolation
func WithQueueLimit(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: QueueLimit cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.QueueLimit = n
	}
}

// Basin is one emitted catch basin.
//   - Box: bounding box of the basin in image coordinates.
//   - Mask: Depth1 bitmap of Box.W×Box.H, 1 where the pixel belongs to the basin.
//   - Level: the fill altitude; every pixel in the basin has intensity ≤ Level.
//   - Seed: index of the seed whose basin this is, in seed order.
type Basin struct {
	Box   gridgraph.Box
	Mask  *gridgraph.GridGraph
	Level int
	Seed  int
}

// Area returns the number of pixels in the basin.
func (b Basin) Area() int {
	if b.Mask == nil {
		return 0
	}
	return b.Mask.Count()
}

// Contains reports whether image pixel (x,y) belongs to the basin.
func (b Basin) Contains(x, y int) bool {
	if b.Mask == nil || !b.Box.Contains(x, y) {
		return false
	}
	return b.Mask.Value(x-b.Box.X, y-b.Box.Y) == 1
}

// Stats counts the work done by one run.
type Stats struct {
	Pushes    int // entries pushed onto the priority queue
	Pops      int // entries popped from the priority queue
	Merges    int // equivalence-table merges
	Emissions int // basins emitted
	PeakQueue int // largest number of live queue entries
	Fillers   int // filler labels allocated
}

// category is the role of a label id.
type category int

const (
	catSeed category = iota
	catMinimum
	catFiller
)

func (c category) String() string {
	switch c {
	case catSeed:
		return "seed"
	case catMinimum:
		return "minimum"
	default:
		return "filler"
	}
}
