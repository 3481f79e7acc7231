package memorydb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaiminpan/rtrie/accdb/memorydb"
)

func TestPutGetHas(t *testing.T) {
	db := memorydb.New()

	ok, err := db.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	ok, err = db.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	db := memorydb.New()
	_, err := db.Get([]byte("missing"))
	assert.ErrorIs(t, err, memorydb.ErrNotFound)
}

func TestDelete(t *testing.T) {
	db := memorydb.New()
	require.NoError(t, db.Put([]byte("k"), []byte("v")))
	require.NoError(t, db.Delete([]byte("k")))

	ok, err := db.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLen(t *testing.T) {
	db := memorydb.New()
	assert.Equal(t, 0, db.Len())
	require.NoError(t, db.Put([]byte("a"), []byte("1")))
	require.NoError(t, db.Put([]byte("b"), []byte("2")))
	assert.Equal(t, 2, db.Len())
}

func TestGetReturnsACopy(t *testing.T) {
	db := memorydb.New()
	require.NoError(t, db.Put([]byte("k"), []byte("v")))

	v, err := db.Get([]byte("k"))
	require.NoError(t, err)
	v[0] = 'x'

	v2, err := db.Get([]byte("k"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), v2)
}
