package store

import (
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

func TestPrefixStore(t *testing.T) {
	db := MemStore()
	a := NewPrefixStore(db, []byte("a:"))
	b := NewPrefixStore(db, []byte("b:"))

	assert.Nil(t, a.Set([]byte("1"), []byte("a1")))
	assert.Nil(t, a.Set([]byte("2"), []byte("a2")))
	assert.Nil(t, b.Set([]byte("1"), []byte("b1")))

	got, err := db.Get([]byte("a:1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("a1"), got)

	has, err := b.Has([]byte("2"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	it, err := a.Iterator(nil, nil)
	assert.Nil(t, err)
	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			break
		}
		assert.Nil(t, err)
		keys = append(keys, string(k))
	}
	it.Release()
	assert.Equal(t, []string{"1", "2"}, keys)

	it, err = a.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	k, _, err := it.Next()
	assert.Nil(t, err)
	assert.Equal(t, []byte("2"), k)
	it.Release()

	assert.Nil(t, a.Delete([]byte("1")))
	got, err = a.Get([]byte("1"))
	assert.Nil(t, err)
	assert.Nil(t, got)
}

func TestPrefixEnd(t *testing.T) {
	cases := map[string]struct {
		prefix []byte
		want   []byte
	}{
		"simple":        {[]byte("ab"), []byte("ac")},
		"carry":         {[]byte{1, 0xFF}, []byte{2}},
		"all max bytes": {[]byte{0xFF, 0xFF}, nil},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			assert.Equal(t, tc.want, PrefixEnd(tc.prefix))
		})
	}
}

func TestMemCommitStore(t *testing.T) {
	db := NewMemCommitStore()
	id, err := db.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)

	cache := db.CacheWrap()
	assert.Nil(t, cache.Set([]byte("k"), []byte("v")))

	// not visible before write
	got, err := db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Nil(t, got)

	assert.Nil(t, cache.Write())
	first, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), first.Version)

	got, err = db.Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v"), got)

	// same content, same hash
	second, err := db.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), second.Version)
	assert.Equal(t, first.Hash, second.Hash)
}
