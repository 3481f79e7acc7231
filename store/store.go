// Package store persists named tries into an accdb.Database, grounded in
// the teacher's TrieDB cache layer but stripped of the hash-addressed
// commit machinery that domain doesn't need: a trie here has a name, not
// a content hash, and there is exactly one version of it on disk at a
// time.
package store

import (
	"bytes"
	"sync"

	"github.com/pkg/errors"

	"github.com/jaiminpan/rtrie/accdb"
	"github.com/jaiminpan/rtrie/trie"
)

// ErrNotFound is returned by Load when no trie is stored under that name.
var ErrNotFound = errors.New("store: trie not found")

// Store keeps named, serialized snapshots of tries in a backing
// key-value database. It adds its own lock around the database so that
// Save/Load pairs for the same name are never interleaved, mirroring the
// teacher's own lock around its dirty-node map.
type Store struct {
	db       accdb.Database
	lock     sync.RWMutex
	childCap int
}

// New wraps db as a trie Store. childCap is used when constructing tries
// returned from Load; pass 0 for the library default.
func New(db accdb.Database, childCap int) *Store {
	return &Store{db: db, childCap: childCap}
}

// Save serializes t and writes it under name, replacing any trie
// previously stored there.
func (s *Store) Save(name string, t *trie.Trie) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	var buf bytes.Buffer
	if err := t.Write(&buf); err != nil {
		return errors.Wrapf(err, "store: serialize %q", name)
	}
	if err := s.db.Put([]byte(name), buf.Bytes()); err != nil {
		return errors.Wrapf(err, "store: put %q", name)
	}
	return nil
}

// Load reads back the trie stored under name.
func (s *Store) Load(name string) (*trie.Trie, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	ok, err := s.db.Has([]byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "store: has %q", name)
	}
	if !ok {
		return nil, ErrNotFound
	}
	blob, err := s.db.Get([]byte(name))
	if err != nil {
		return nil, errors.Wrapf(err, "store: get %q", name)
	}

	opts := []trie.Option(nil)
	if s.childCap > 0 {
		opts = append(opts, trie.WithChildCap(s.childCap))
	}
	t := trie.New(opts...)
	if err := t.Read(bytes.NewReader(blob)); err != nil {
		return nil, errors.Wrapf(err, "store: decode %q", name)
	}
	return t, nil
}

// Delete removes the trie stored under name, if any.
func (s *Store) Delete(name string) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.db.Delete([]byte(name))
}
