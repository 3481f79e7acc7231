package trie

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
)

// magic is the 4-byte marker every stream produced by Write begins with.
const magic = "TRIE"

// Write serializes the trie to w as a magic number followed by a
// recursive node record per node. Each node's read lock is held while its
// record and the records of all its descendants are written, so a child
// is always locked before its parent is released (lock coupling, like any
// other reader). All multi-byte integers are written little-endian.
func (t *Trie) Write(w io.Writer) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return errors.Wrap(err, "trie: write magic")
	}
	return writeRoot(w, &t.root)
}

func writeRoot(w io.Writer, root *node) error {
	root.lock.RLock()
	defer root.lock.RUnlock()
	tag := encodeRootTag(len(root.label), root.end)
	label := cloneBytes(root.label)
	count := root.children.len()
	firsts := cloneBytes(root.children.firsts)
	childs := append([]*node(nil), root.children.childs...)

	if err := writeInt32(w, tag); err != nil {
		return wrapIOError(nil, err)
	}
	if len(label) > 0 {
		if _, err := w.Write(label); err != nil {
			return wrapIOError(label, err)
		}
	}
	if err := writeInt32(w, int32(count)); err != nil {
		return wrapIOError(label, err)
	}
	for i := 0; i < count; i++ {
		if err := writeChild(w, firsts[i], childs[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeChild(w io.Writer, selector byte, n *node) error {
	n.lock.RLock()
	defer n.lock.RUnlock()
	tag := encodeChildTag(len(n.label), n.end)
	label := cloneBytes(n.label)
	count := n.children.len()
	firsts := cloneBytes(n.children.firsts)
	childs := append([]*node(nil), n.children.childs...)

	if err := writeInt32(w, tag); err != nil {
		return wrapIOError(label, err)
	}
	if _, err := w.Write([]byte{selector}); err != nil {
		return wrapIOError(label, err)
	}
	if len(label) > 0 {
		if _, err := w.Write(label); err != nil {
			return wrapIOError(label, err)
		}
	}
	if err := writeInt32(w, int32(count)); err != nil {
		return wrapIOError(label, err)
	}
	for i := 0; i < count; i++ {
		if err := writeChild(w, firsts[i], childs[i]); err != nil {
			return err
		}
	}
	return nil
}

// Read replaces the trie's contents with the one read from r. On any
// error the trie is left untouched (the stream is decoded into a
// detached node tree first, and only swapped in once decoding has fully
// succeeded).
func (t *Trie) Read(r io.Reader) error {
	var got [4]byte
	if _, err := io.ReadFull(r, got[:]); err != nil {
		return errors.Wrap(err, "trie: read magic")
	}
	if string(got[:]) != magic {
		return ErrBadMagic
	}
	root, err := readRoot(r, t.childCap)
	if err != nil {
		return err
	}
	t.root.lock.Lock()
	t.root.label = root.label
	t.root.end = root.end
	t.root.ownsLabel = root.ownsLabel
	t.root.children = root.children
	t.root.lock.Unlock()
	return nil
}

// ReadMerge reads a trie from r the way Read does, but adds each of its
// keys into t instead of replacing t's contents.
func (t *Trie) ReadMerge(r io.Reader) error {
	scratch := New(WithChildCap(t.childCap))
	if err := scratch.Read(r); err != nil {
		return err
	}
	var it Iterator
	for it.Next(scratch) {
		t.Add(it.Key())
	}
	return nil
}

func readRoot(r io.Reader, childCap int) (*node, error) {
	tag, err := readInt32(r)
	if err != nil {
		return nil, errors.Wrap(err, "trie: read root tag")
	}
	labelLen, end, ok := decodeRootTag(tag)
	if !ok {
		return nil, errors.New("trie: invalid root tag")
	}
	label, err := readBytes(r, labelLen)
	if err != nil {
		return nil, wrapIOError(nil, err)
	}
	n := newNode(childCap, label, end)
	if err := readChildren(r, n, childCap); err != nil {
		return nil, err
	}
	return n, nil
}

func readChild(r io.Reader, childCap int) (byte, *node, error) {
	tag, err := readInt32(r)
	if err != nil {
		return 0, nil, errors.Wrap(err, "trie: read child tag")
	}
	labelLen, end, ok := decodeChildTag(tag)
	if !ok {
		return 0, nil, errors.New("trie: invalid child tag")
	}
	var sel [1]byte
	if _, err := io.ReadFull(r, sel[:]); err != nil {
		return 0, nil, wrapIOError(nil, err)
	}
	label, err := readBytes(r, labelLen)
	if err != nil {
		return 0, nil, wrapIOError(label, err)
	}
	n := newNode(childCap, label, end)
	if err := readChildren(r, n, childCap); err != nil {
		return 0, nil, err
	}
	return sel[0], n, nil
}

// readChildren reads n's child count followed by that many child
// records, inserting them in file order. The file stores children in
// ascending selector order, so appending at the tail reconstructs the
// table without any shifting.
func readChildren(r io.Reader, n *node, childCap int) error {
	count, err := readInt32(r)
	if err != nil {
		return wrapIOError(n.label, err)
	}
	for i := int32(0); i < count; i++ {
		sel, child, err := readChild(r, childCap)
		if err != nil {
			return err
		}
		n.children.insert(n.children.len(), sel, child)
	}
	return nil
}

func readBytes(r io.Reader, n int) ([]byte, error) {
	if n == 0 {
		return nil, nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeInt32(w io.Writer, v int32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	_, err := w.Write(buf[:])
	return err
}

func readInt32(r io.Reader) (int32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

// encodeRootTag and encodeChildTag/decodeRootTag/decodeChildTag implement
// the len_tag scheme: the root has no incoming selector byte, so its
// magnitude is exactly its label length, with the all-zero/end-flag-true
// combination reserved for the sentinel that distinguishes the empty key
// from a literally absent tag. A non-root node's magnitude includes the
// one selector byte its parent owns, so it is never zero and the
// sentinel is illegal there.

func encodeRootTag(labelLen int, end bool) int32 {
	if labelLen == 0 && end {
		return math.MinInt32
	}
	if end {
		return -int32(labelLen)
	}
	return int32(labelLen)
}

func decodeRootTag(tag int32) (labelLen int, end bool, ok bool) {
	if tag == math.MinInt32 {
		return 0, true, true
	}
	if tag < 0 {
		return int(-tag), true, true
	}
	return int(tag), false, true
}

func encodeChildTag(labelLen int, end bool) int32 {
	magnitude := int32(labelLen + 1)
	if end {
		return -magnitude
	}
	return magnitude
}

func decodeChildTag(tag int32) (labelLen int, end bool, ok bool) {
	if tag == 0 || tag == math.MinInt32 {
		return 0, false, false
	}
	if tag < 0 {
		return int(-tag) - 1, true, true
	}
	return int(tag) - 1, false, true
}
