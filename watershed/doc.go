// Package watershed implements marker-controlled watershed segmentation of
// an 8-bit grayscale grid.
//
// What
//
//   - Every 8-connected component of the seed mask becomes one seed, placed
//     at its lowest pixel.
//   - Regional minima of the image that hold no seed are flooded too, as
//     unmarked basins that are never emitted, only absorbed.
//   - Pixels are popped in nondecreasing intensity order and spread their
//     label to their 8 neighbors.
//   - When two basins meet, their kinds and depths decide between merging
//     labels and emitting completed basins.
//   - Each emitted Basin carries its bounding box, a cropped 1 bpp mask and
//     its fill level.
//
// Collisions
//
//	seed + seed      both deep enough: emit the arriving seed, then the owner,
//	                 and merge both into a new filler
//	                 otherwise: the shallower seed joins the deeper one
//	seed + filler    emit the seed, merge it into the filler
//	seed + minimum   the minimum joins the seed
//	anything else    the pixel's owner joins the arriving label
//
//	Depth is the collision intensity minus the seed's lowest intensity; a
//	basin is deep enough when its depth is at least mindepth.
//
// Determinism
//
//	Queue entries of equal intensity leave in push order and neighbors are
//	visited row-major over the 3×3 block, so a run is fully reproducible.
//
// Complexity (N = W×H)
//
//   - Time:   O(N log N)  (each pixel is pushed at most 9 times)
//   - Memory: O(N)        (label image, scratch bitmap, queue)
//
// Usage
//
//	e, err := watershed.New(gray, seeds, 10, watershed.WithMinimaBorder(2))
//	if err != nil {
//	    // ErrInvalidDepth, ErrInvalidMask, ErrInvalidDims or ErrOptionViolation
//	}
//	defer e.Close()
//	switch err := e.Run(ctx); {
//	case errors.Is(err, watershed.ErrEmptyResult):
//	    // nothing emitted, Basins returns an empty slice
//	case err != nil:
//	    // ErrOutOfMemory or ErrCancelled
//	}
//	basins, _ := e.Basins()
//
// Errors
//
//   - ErrInvalidDims, ErrInvalidDepth, ErrInvalidMask: rejected by New.
//   - ErrOptionViolation: an Option argument is out of range.
//   - ErrOutOfMemory: the queue limit or the label space was exhausted.
//   - ErrCancelled: the context ended the run; also matches ctx.Err().
//   - ErrEmptyResult: the run completed without emitting anything.
//   - ErrEngineUsed, ErrNotRun, ErrClosed: lifecycle misuse.
//
// Building with -tags wsheddebug checks the label equivalence table after
// every merge and panics on a violation.
package watershed
