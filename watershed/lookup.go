package watershed

import "fmt"

// lookup is the label equivalence table. owner[i] is the label that now
// speaks for i; links[i] lists every other label whose owner is i.
//
// Every merge leaves the table flat: owner[owner[i]] == owner[i] for all i,
// so resolve never walks a chain.
type lookup struct {
	owner []int
	links [][]int
}

// newLookup returns an identity table over [0,size).
func newLookup(size int) *lookup {
	t := &lookup{
		owner: make([]int, size),
		links: make([][]int, size),
	}
	for i := range t.owner {
		t.owner[i] = i
	}
	return t
}

func (t *lookup) size() int { return len(t.owner) }

// resolve returns the current owner of label i.
func (t *lookup) resolve(i int) int { return t.owner[i] }

// merge redirects src, and everything that pointed at src, to dst.
// Both must be owners (owner[x] == x); merging a label into itself is a no-op.
func (t *lookup) merge(src, dst int) {
	if src == dst {
		return
	}
	moved := t.links[src]
	for _, j := range moved {
		t.owner[j] = dst
	}
	t.owner[src] = dst
	t.links[dst] = append(append(t.links[dst], moved...), src)
	t.links[src] = nil

	if debugInvariants {
		if err := t.validate(); err != nil {
			panic(err)
		}
	}
}

// validate checks flatness and back-link consistency.
func (t *lookup) validate() error {
	redirects := 0
	for i, o := range t.owner {
		if t.owner[o] != o {
			return fmt.Errorf("watershed: lookup not flat: %d -> %d -> %d", i, o, t.owner[o])
		}
		if o != i {
			redirects++
		}
	}
	backlinks := 0
	for i, ls := range t.links {
		for _, j := range ls {
			if j == i || t.owner[j] != i {
				return fmt.Errorf("watershed: stale back-link %d in links[%d] (owner %d)", j, i, t.owner[j])
			}
			backlinks++
		}
	}
	if redirects != backlinks {
		return fmt.Errorf("watershed: %d redirects but %d back-links", redirects, backlinks)
	}
	return nil
}
