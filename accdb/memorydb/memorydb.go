package memorydb

import (
	"sync"

	"github.com/pkg/errors"
)

// ErrNotFound is returned by Get when the key is absent.
var ErrNotFound = errors.New("memorydb: key not found")

// MemDB is an ephemeral key-value store, implementing accdb.KeyValueStore.
type MemDB struct {
	db   map[string][]byte
	lock sync.RWMutex
}

// New returns an empty MemDB.
func New() *MemDB {
	return &MemDB{
		db: make(map[string][]byte),
	}
}

func (d *MemDB) Has(key []byte) (bool, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	_, ok := d.db[string(key)]
	return ok, nil
}

func (d *MemDB) Get(key []byte) ([]byte, error) {
	d.lock.RLock()
	defer d.lock.RUnlock()
	v, ok := d.db[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (d *MemDB) Put(key, value []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	d.db[string(key)] = v
	return nil
}

func (d *MemDB) Delete(key []byte) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	delete(d.db, string(key))
	return nil
}

// Len reports how many keys are currently stored.
func (d *MemDB) Len() int {
	d.lock.RLock()
	defer d.lock.RUnlock()
	return len(d.db)
}
