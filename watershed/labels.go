package watershed

// labelImage holds one 32-bit label per pixel, row-major.
// A cell moves from Unlabeled to a label exactly once; later identity
// changes live in the lookup table.
type labelImage struct {
	w, h  int
	cells []uint32
}

func newLabelImage(w, h int) *labelImage {
	cells := make([]uint32, w*h)
	for i := range cells {
		cells[i] = Unlabeled
	}
	return &labelImage{w: w, h: h, cells: cells}
}

func (l *labelImage) get(x, y int) uint32 { return l.cells[y*l.w+x] }

func (l *labelImage) set(x, y int, label uint32) { l.cells[y*l.w+x] = label }

// unlabeled counts cells no basin has reached.
func (l *labelImage) unlabeled() int {
	n := 0
	for _, c := range l.cells {
		if c == Unlabeled {
			n++
		}
	}
	return n
}

// bitmap is a word-aligned bitset over pixel indices.
type bitmap struct {
	words []uint64
}

func newBitmap(size int) bitmap {
	return bitmap{words: make([]uint64, (size+63)/64)}
}

func (b bitmap) set(i int)      { b.words[i>>6] |= 1 << (uint(i) & 63) }
func (b bitmap) clear(i int)    { b.words[i>>6] &^= 1 << (uint(i) & 63) }
func (b bitmap) has(i int) bool { return b.words[i>>6]&(1<<(uint(i)&63)) != 0 }

// empty reports whether no bit is set.
func (b bitmap) empty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}
