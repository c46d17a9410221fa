package watershed

// wsPixel is a priority-queue entry: a pixel reached by basin label at
// flood value val. seq orders entries of equal value first-in first-out.
type wsPixel struct {
	val   int
	x, y  int
	label int
	seq   uint64
}

// newPixel is a basin-extraction queue entry.
type newPixel struct {
	x, y int
}

// pool recycles entries of type T by index. acquire reuses a released slot
// when one exists and grows the backing slice otherwise. Handles stay valid
// across growth because callers never hold pointers into items.
type pool[T any] struct {
	items []T
	free  []int32
	live  int
}

func (p *pool[T]) acquire() int32 {
	p.live++
	if n := len(p.free); n > 0 {
		h := p.free[n-1]
		p.free = p.free[:n-1]
		return h
	}
	var zero T
	p.items = append(p.items, zero)
	return int32(len(p.items) - 1)
}

func (p *pool[T]) release(h int32) {
	p.live--
	p.free = append(p.free, h)
}

func (p *pool[T]) at(h int32) *T {
	return &p.items[h]
}

// outstanding is the number of acquired but unreleased entries.
func (p *pool[T]) outstanding() int {
	return p.live
}

// allocated is the number of distinct entries ever created.
func (p *pool[T]) allocated() int {
	return len(p.items)
}

func (p *pool[T]) reset() {
	p.items = nil
	p.free = nil
	p.live = 0
}
