package trie

import "sort"

// defaultChildCap bounds the preventive growth of a child table. The
// physical maximum is 256 for an 8-bit alphabet; a caller storing keys
// drawn from a narrower alphabet can lower it with WithChildCap.
const defaultChildCap = 256

// childReallocFactor is the growth factor applied on each relocation,
// rounded up. A value between 1.5 and 2 balances amortized growth against
// wasted capacity.
const childReallocFactor = 1.618

// childTable is the ordered array of (first byte, child) pairs hanging off
// a node. It is never read or written without the owning node's lock held.
type childTable struct {
	firsts []byte
	childs []*node
	cap    int // growth ceiling, copied from the owning Trie at creation
}

// materialized reports whether the table has been allocated. A root node
// with materialized == false, an empty label and end == false is the
// empty-trie state, which New, Clear and the removal of the last key all
// produce; a root with materialized == true and zero entries holds a
// single key in its own label (the state Add leaves on an empty trie).
func (c *childTable) materialized() bool {
	return c.firsts != nil
}

func (c *childTable) len() int {
	return len(c.childs)
}

// search performs a binary search for b. If found, pos is the index of the
// matching entry. If not found, pos is the insertion index that preserves
// strict ordering — which, not coincidentally, is also the index of the
// child whose selector byte is the smallest one greater than b, a fact Add
// relies on when a lookup misses.
func (c *childTable) search(b byte) (pos int, found bool) {
	n := len(c.firsts)
	i := sort.Search(n, func(i int) bool { return c.firsts[i] >= b })
	if i < n && c.firsts[i] == b {
		return i, true
	}
	return i, false
}

func (c *childTable) grow() {
	if !c.materialized() {
		newCap := 2
		c.firsts = make([]byte, 0, newCap)
		c.childs = make([]*node, 0, newCap)
		return
	}
	cap := c.cap
	if cap == 0 {
		cap = defaultChildCap
	}
	oldCap := cap2(c.firsts)
	var newCap int
	if oldCap >= cap {
		newCap = oldCap + 1
	} else {
		newCap = int(float64(oldCap)*childReallocFactor + 0.999999)
		if newCap > cap {
			newCap = cap
		}
		if newCap <= oldCap {
			newCap = oldCap + 1
		}
	}
	firsts := make([]byte, len(c.firsts), newCap)
	copy(firsts, c.firsts)
	childs := make([]*node, len(c.childs), newCap)
	copy(childs, c.childs)
	c.firsts, c.childs = firsts, childs
}

func cap2(b []byte) int {
	return cap(b)
}

// insert places n at pos, shifting the tail right. pos must satisfy
// 0 <= pos <= len(c.childs). Growth happens first if the backing arrays are
// full, preserving the golden-ratio/capped policy.
func (c *childTable) insert(pos int, selector byte, n *node) {
	if !c.materialized() {
		c.grow()
	}
	if len(c.childs) == cap(c.childs) {
		c.grow()
	}
	c.firsts = append(c.firsts, 0)
	c.childs = append(c.childs, nil)
	copy(c.firsts[pos+1:], c.firsts[pos:len(c.firsts)-1])
	copy(c.childs[pos+1:], c.childs[pos:len(c.childs)-1])
	c.firsts[pos] = selector
	c.childs[pos] = n
}

// remove deletes the entry at pos, shifting the tail left. Capacity is
// never shrunk.
func (c *childTable) remove(pos int) {
	if len(c.childs) == 0 {
		return
	}
	copy(c.firsts[pos:], c.firsts[pos+1:])
	copy(c.childs[pos:], c.childs[pos+1:])
	c.firsts = c.firsts[:len(c.firsts)-1]
	c.childs = c.childs[:len(c.childs)-1]
}

// alloc materializes an empty table without inserting anything into it.
func (c *childTable) alloc() {
	if !c.materialized() {
		c.grow()
	}
}
