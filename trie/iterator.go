package trie

// Iterator yields every stored key in lexicographic order. It holds no
// locks between calls to Next: each call re-descends from the root and
// finds its resumption point by comparing the previously returned key
// against the current structure, so it has no snapshot semantics — keys
// added or removed elsewhere during iteration may appear, be skipped, or
// (for a key at or before the current position) not reappear, but the
// walk always makes forward progress and terminates.
type Iterator struct {
	started bool
	buf     []byte
}

// Next advances the iterator and reports whether a key was produced. Key
// returns that key until the next call to Next.
func (it *Iterator) Next(t *Trie) bool {
	if !it.started {
		it.started = true
		t.root.lock.RLock()
		buf, ok := descendLeftmostLocked(&t.root, nil)
		if !ok {
			return false
		}
		it.buf = buf
		return true
	}

	t.root.lock.RLock()
	frames, offsets, ok := matchPathVirtual(&t.root, t.root.label, it.buf)
	if !ok {
		it.buf = nil
		return false
	}
	buf, ok2 := advanceFrames(nil, it.buf, frames, offsets)
	if !ok2 {
		it.buf = nil
		return false
	}
	it.buf = buf
	return true
}

// Key returns the key produced by the most recent successful Next.
func (it *Iterator) Key() []byte {
	return it.buf
}

// Reset restarts the iterator from the beginning.
func (it *Iterator) Reset() {
	it.started = false
	it.buf = nil
}

// PrefixIterator yields the suffixes of every stored key that has the
// given prefix, in lexicographic order of the full key. It shares the
// same no-snapshot, re-descend-from-root contract as Iterator.
type PrefixIterator struct {
	started bool
	suffix  []byte
}

// Next advances the iterator over completions of prefix and reports
// whether one was produced. Suffix returns that completion until the next
// call to Next.
func (it *PrefixIterator) Next(t *Trie, prefix []byte) bool {
	x, labelTail, ok := locatePrefixNode(t, prefix)
	if !ok {
		it.suffix = nil
		return false
	}

	if !it.started {
		it.started = true
		buf, ok2 := descendLeftmostVirtual(x, labelTail)
		if !ok2 {
			it.suffix = nil
			return false
		}
		it.suffix = buf
		return true
	}

	frames, offsets, ok2 := matchPathVirtual(x, labelTail, it.suffix)
	if !ok2 {
		it.suffix = nil
		return false
	}
	buf, ok3 := advanceFrames(nil, it.suffix, frames, offsets)
	if !ok3 {
		it.suffix = nil
		return false
	}
	it.suffix = buf
	return true
}

// Suffix returns the completion produced by the most recent successful
// Next.
func (it *PrefixIterator) Suffix() []byte {
	return it.suffix
}

// Reset restarts the iterator from the beginning.
func (it *PrefixIterator) Reset() {
	it.started = false
	it.suffix = nil
}

// locatePrefixNode descends consuming prefix exactly (like Find) and
// returns the node at which prefix runs out, still RLocked, together with
// the as-yet-unconsumed tail of that node's own label. That tail doubles
// as the seed for a leftmost descent (when empty, the node's own end flag
// is the first candidate) and as the virtual "label" of the first frame
// in later resumption walks.
func locatePrefixNode(t *Trie, prefix []byte) (*node, []byte, bool) {
	arr := prefix
	cur := &t.root
	cur.lock.RLock()
	for {
		mismatch := findFirstMismatch(arr, cur.label)
		arrEnded := mismatch == len(arr)
		labelEnded := mismatch == len(cur.label)

		switch {
		case arrEnded:
			return cur, cloneBytes(cur.label[mismatch:]), true

		case !arrEnded && labelEnded:
			pos, found := cur.children.search(arr[mismatch])
			if !found {
				cur.lock.RUnlock()
				return nil, nil, false
			}
			child := cur.children.childs[pos]
			child.lock.RLock()
			cur.lock.RUnlock()
			cur = child
			arr = arr[mismatch+1:]
			continue

		default:
			cur.lock.RUnlock()
			return nil, nil, false
		}
	}
}

// descendLeftmostLocked appends cur's own label to prefix and keeps
// descending into first children until it reaches a node whose own key is
// a stored key (end == true) or a dead end (no children, which by
// invariant never happens without end == true). It always leaves no locks
// held on return, taking ownership of cur's lock from the caller.
func descendLeftmostLocked(cur *node, prefix []byte) ([]byte, bool) {
	buf := cloneBytes(prefix)
	for {
		buf = append(buf, cur.label...)
		if cur.end {
			cur.lock.RUnlock()
			return buf, true
		}
		if cur.children.len() == 0 {
			cur.lock.RUnlock()
			return nil, false
		}
		sel := cur.children.firsts[0]
		child := cur.children.childs[0]
		buf = append(buf, sel)
		child.lock.RLock()
		cur.lock.RUnlock()
		cur = child
	}
}

// descendLeftmostVirtual is descendLeftmostLocked's counterpart for the
// first call of a PrefixIterator: x's real label is irrelevant (the
// search already consumed part or all of it), so labelTail stands in for
// it as the initial buffer content.
func descendLeftmostVirtual(x *node, labelTail []byte) ([]byte, bool) {
	buf := cloneBytes(labelTail)
	if x.end {
		x.lock.RUnlock()
		return buf, true
	}
	if x.children.len() == 0 {
		x.lock.RUnlock()
		return nil, false
	}
	sel := x.children.firsts[0]
	child := x.children.childs[0]
	buf = append(buf, sel)
	child.lock.RLock()
	x.lock.RUnlock()
	return descendLeftmostLocked(child, buf)
}

// matchPathVirtual re-walks from start (already RLocked), matching arr
// byte-for-byte against node labels and selectors, recording every node
// visited. start's own label is taken to be startLabel rather than
// start.label, which lets a PrefixIterator seed the walk with the
// already-consumed tail of a real node's label without needing a
// synthetic node. offsets[i] is the cumulative number of bytes of arr
// consumed through frame i's label. It always leaves no locks held.
func matchPathVirtual(start *node, startLabel, arr []byte) ([]*node, []int, bool) {
	cur := start
	label := startLabel
	frames := []*node{cur}
	offsets := []int{len(label)}

	for {
		mismatch := findFirstMismatch(arr, label)
		if mismatch != len(label) {
			cur.lock.RUnlock()
			return nil, nil, false
		}
		arr = arr[mismatch:]
		if len(arr) == 0 {
			cur.lock.RUnlock()
			return frames, offsets, true
		}
		pos, found := cur.children.search(arr[0])
		if !found {
			cur.lock.RUnlock()
			return nil, nil, false
		}
		child := cur.children.childs[pos]
		child.lock.RLock()
		cur.lock.RUnlock()
		arr = arr[1:]
		cur = child
		label = cur.label
		frames = append(frames, cur)
		offsets = append(offsets, offsets[len(offsets)-1]+1+len(label))
	}
}

// advanceFrames computes the lexicographic successor of the key/suffix
// that produced frames (as returned by matchPathVirtual), prefixed by
// base. arr is the same byte slice matchPathVirtual was called with;
// offsets indexes into it. It first looks for a descendant of the
// deepest matched frame (the smallest key strictly below it), then backs
// up through ancestors looking for an unvisited greater sibling.
func advanceFrames(base, arr []byte, frames []*node, offsets []int) ([]byte, bool) {
	last := len(frames) - 1
	term := frames[last]
	term.lock.RLock()
	if term.children.len() > 0 {
		sel := term.children.firsts[0]
		child := term.children.childs[0]
		child.lock.RLock()
		term.lock.RUnlock()
		prefix := append(cloneBytes(base), arr[:offsets[last]]...)
		prefix = append(prefix, sel)
		return descendLeftmostLocked(child, prefix)
	}
	term.lock.RUnlock()

	for i := last; i > 0; i-- {
		parent := frames[i-1]
		usedSelector := arr[offsets[i-1]]
		parent.lock.RLock()
		pos, found := parent.children.search(usedSelector)
		if found && pos+1 < parent.children.len() {
			nextSel := parent.children.firsts[pos+1]
			child := parent.children.childs[pos+1]
			child.lock.RLock()
			parent.lock.RUnlock()
			prefix := append(cloneBytes(base), arr[:offsets[i-1]]...)
			prefix = append(prefix, nextSel)
			return descendLeftmostLocked(child, prefix)
		}
		parent.lock.RUnlock()
	}
	return nil, false
}
