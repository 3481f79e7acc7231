package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaiminpan/rtrie/accdb/memorydb"
	"github.com/jaiminpan/rtrie/store"
	"github.com/jaiminpan/rtrie/trie"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	db := memorydb.New()
	s := store.New(db, 0)

	tr := trie.New()
	tr.Add([]byte("cat"))
	tr.Add([]byte("car"))

	require.NoError(t, s.Save("animals", tr))

	got, err := s.Load("animals")
	require.NoError(t, err)
	assert.True(t, got.Find([]byte("cat")))
	assert.True(t, got.Find([]byte("car")))
	assert.False(t, got.Find([]byte("dog")))
}

func TestLoadMissingReturnsErrNotFound(t *testing.T) {
	db := memorydb.New()
	s := store.New(db, 0)

	_, err := s.Load("nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSaveOverwritesPreviousVersion(t *testing.T) {
	db := memorydb.New()
	s := store.New(db, 0)

	first := trie.New()
	first.Add([]byte("cat"))
	require.NoError(t, s.Save("animals", first))

	second := trie.New()
	second.Add([]byte("dog"))
	require.NoError(t, s.Save("animals", second))

	got, err := s.Load("animals")
	require.NoError(t, err)
	assert.False(t, got.Find([]byte("cat")))
	assert.True(t, got.Find([]byte("dog")))
}

func TestDelete(t *testing.T) {
	db := memorydb.New()
	s := store.New(db, 0)

	tr := trie.New()
	tr.Add([]byte("cat"))
	require.NoError(t, s.Save("animals", tr))
	require.NoError(t, s.Delete("animals"))

	_, err := s.Load("animals")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
