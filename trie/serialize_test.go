package trie_test

import (
	"bytes"
	"fmt"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaiminpan/rtrie/trie"
)

func TestWriteReadRoundTripEmpty(t *testing.T) {
	tr := trie.New()
	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	got := trie.New()
	require.NoError(t, got.Read(&buf))
	assert.False(t, got.Find([]byte("anything")))
}

func TestWriteReadRoundTripSingleKey(t *testing.T) {
	tr := trie.New()
	tr.Add([]byte(""))

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	got := trie.New()
	require.NoError(t, got.Read(&buf))
	assert.True(t, got.Find([]byte("")))
}

func TestWriteReadRoundTripManyKeys(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keySet := make(map[string]struct{})
	for len(keySet) < 100 {
		n := rng.Intn(12) + 1
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = byte('a' + rng.Intn(6))
		}
		keySet[string(buf)] = struct{}{}
	}

	tr := trie.New()
	var want []string
	for k := range keySet {
		tr.Add([]byte(k))
		want = append(want, k)
	}
	sort.Strings(want)

	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	got := trie.New()
	require.NoError(t, got.Read(&buf))

	var it trie.Iterator
	var gotKeys []string
	for it.Next(got) {
		gotKeys = append(gotKeys, string(it.Key()))
	}
	assert.Equal(t, want, gotKeys)
}

func TestReadRejectsBadMagic(t *testing.T) {
	tr := trie.New()
	err := tr.Read(bytes.NewReader([]byte("NOPE")))
	assert.ErrorIs(t, err, trie.ErrBadMagic)
}

func TestReadRejectsTruncatedStream(t *testing.T) {
	tr := trie.New()
	tr.Add([]byte("cat"))
	var buf bytes.Buffer
	require.NoError(t, tr.Write(&buf))

	truncated := buf.Bytes()[:buf.Len()-2]
	got := trie.New()
	assert.Error(t, got.Read(bytes.NewReader(truncated)))
}

func TestReadMergeAddsIntoExistingTrie(t *testing.T) {
	src := trie.New()
	src.Add([]byte("cat"))
	src.Add([]byte("car"))
	var buf bytes.Buffer
	require.NoError(t, src.Write(&buf))

	dst := trie.New()
	dst.Add([]byte("dog"))
	require.NoError(t, dst.ReadMerge(&buf))

	assert.True(t, dst.Find([]byte("cat")))
	assert.True(t, dst.Find([]byte("car")))
	assert.True(t, dst.Find([]byte("dog")))
}

func ExampleTrie_roundTrip() {
	tr := trie.New()
	tr.Add([]byte("cat"))

	var buf bytes.Buffer
	_ = tr.Write(&buf)

	got := trie.New()
	_ = got.Read(&buf)
	fmt.Println(got.Find([]byte("cat")))
	// Output: true
}
