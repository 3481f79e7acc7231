package trie

import "github.com/pkg/errors"

// ErrBadMagic is returned by Read when the stream does not start with the
// expected "TRIE" magic number.
var ErrBadMagic = errors.New("trie: bad magic number")

// serializeError wraps an I/O failure encountered while walking the node
// tree during Write or Read, recording the label bytes of the node being
// written or read when it occurred (empty when no label was at hand yet).
type serializeError struct {
	path  []byte
	cause error
}

func (e *serializeError) Error() string {
	return errors.Wrapf(e.cause, "trie: serialize at %x", e.path).Error()
}

func (e *serializeError) Unwrap() error {
	return e.cause
}

func wrapIOError(path []byte, cause error) error {
	if cause == nil {
		return nil
	}
	return &serializeError{path: append([]byte(nil), path...), cause: cause}
}
