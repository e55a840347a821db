package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
)

// TestSuite provides checks that every CacheableKVStore implementation must
// pass. Package specific tests only provide the store constructor.
type TestSuite struct {
	makeBase TestStoreConstructor
}

type TestStoreConstructor func() (base CacheableKVStore, cleanup func())

func NewTestSuite(constructor TestStoreConstructor) *TestSuite {
	return &TestSuite{makeBase: constructor}
}

// GetSet ensures writes are visible only after a cache wrap is written.
func (s *TestSuite) GetSet(t *testing.T) {
	base, cleanup := s.makeBase()
	defer cleanup()

	k, v := []byte("wallet"), []byte("registry")
	s.AssertGetHas(t, base, k, nil, false)
	assert.Nil(t, base.Set(k, v))
	s.AssertGetHas(t, base, k, v, true)

	cache := base.CacheWrap()
	s.AssertGetHas(t, cache, k, v, true)

	// writing more data is only visible in the cache
	k2, v2 := []byte("queue"), []byte("tx")
	assert.Nil(t, cache.Set(k2, v2))
	s.AssertGetHas(t, cache, k2, v2, true)
	s.AssertGetHas(t, base, k2, nil, false)

	assert.Nil(t, cache.Write())
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k2, v2, true)

	// a discarded wrap leaves no trace
	k3, v3 := []byte("unit"), []byte("code")
	c2 := base.CacheWrap()
	assert.Nil(t, c2.Set(k3, v3))
	assert.Nil(t, c2.Delete(k))
	c2.Discard()
	s.AssertGetHas(t, base, k, v, true)
	s.AssertGetHas(t, base, k3, nil, false)

	c3 := base.CacheWrap()
	assert.Nil(t, c3.Delete(k))
	assert.Nil(t, c3.Write())
	s.AssertGetHas(t, base, k, nil, false)
	s.AssertGetHas(t, base, k2, v2, true)
}

// CacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func (s *TestSuite) CacheConflicts(t *testing.T) {
	ks := randKeys(4, 16)
	vs := randKeys(4, 40)

	parent, cleanup := s.makeBase()
	defer cleanup()

	for _, op := range []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])} {
		assert.Nil(t, op.Apply(parent))
	}
	child := parent.CacheWrap()
	for _, op := range []Op{SetOp(ks[1], vs[3]), SetOp(ks[3], vs[0]), DelOp(ks[2])} {
		assert.Nil(t, op.Apply(child))
	}

	// parent is unaffected
	s.AssertGetHas(t, parent, ks[1], vs[1], true)
	s.AssertGetHas(t, parent, ks[2], vs[2], true)
	s.AssertGetHas(t, parent, ks[3], nil, false)

	want := []Model{Pair(ks[1], vs[3]), Pair(ks[2], nil), Pair(ks[3], vs[0])}
	for _, q := range want {
		s.AssertGetHas(t, child, q.Key, q.Value, q.Value != nil)
	}
	assert.Nil(t, child.Write())
	for _, q := range want {
		s.AssertGetHas(t, parent, q.Key, q.Value, q.Value != nil)
	}
}

// FuzzIterator makes sure iterators combine the cache with the parent,
// including random deletes.
func (s *TestSuite) FuzzIterator(t *testing.T) {
	const size = 40

	childSet := randModels(size, 8, 40)
	parentSet := randModels(size, 8, 40)
	both := sortModels(append(append([]Model{}, childSet...), parentSet...))

	deleted := []Model{both[3], both[40], both[41]}
	var ops []Op
	ops = append(ops, makeSetOps(childSet...)...)
	ops = append(ops, makeDelOps(deleted...)...)
	remain := sortModels(without(both, deleted))

	tc := iterCase{
		pre:   makeSetOps(parentSet...),
		child: ops,
		queries: []rangeQuery{
			{nil, nil, false, remain},
			{remain[10].Key, nil, false, remain[10:]},
			{nil, remain[30].Key, false, remain[:30]},
			{remain[17].Key, remain[28].Key, false, remain[17:28]},
			{nil, nil, true, reverse(remain)},
			{remain[34].Key, nil, true, reverse(remain[34:])},
			{nil, remain[19].Key, true, reverse(remain[:19])},
			{remain[6].Key, remain[26].Key, true, reverse(remain[6:26])},
		},
	}

	base, cleanup := s.makeBase()
	defer cleanup()
	tc.verify(t, base)
}

// IteratorWithConflicts covers overwrites and deletes at range edges.
func (s *TestSuite) IteratorWithConflicts(t *testing.T) {
	ms := randModels(6, 20, 100)
	a, a2, b, b2, c, d := ms[0], ms[1], ms[2], ms[3], ms[4], ms[5]
	a2.Key = a.Key
	b2.Key = b.Key

	expect0 := sortModels([]Model{a, b, c})
	expect1 := sortModels([]Model{a2, b2, c, d})

	cases := map[string]iterCase{
		"iterate in child only": {
			child: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{expect0[1].Key, expect0[2].Key, false, expect0[1:2]},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"iterate over parent only": {
			pre: makeSetOps(a, b, c),
			queries: []rangeQuery{
				{nil, nil, false, expect0},
				{nil, nil, true, reverse(expect0)},
			},
		},
		"overwrite data should show child data": {
			pre:   makeSetOps(a, b, c),
			child: makeSetOps(a2, b2, d),
			queries: []rangeQuery{
				{nil, nil, false, expect1},
				{expect1[1].Key, expect1[3].Key, false, expect1[1:3]},
				{nil, nil, true, reverse(expect1)},
			},
		},
		"deletes hide parent data": {
			pre:   makeSetOps(a, c, d),
			child: makeDelOps(a, b, d),
			queries: []rangeQuery{
				{nil, nil, false, []Model{c}},
				{nil, nil, true, []Model{c}},
				{nil, c.Key, false, nil},
			},
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			base, cleanup := s.makeBase()
			defer cleanup()
			tc.verify(t, base)
		})
	}
}

func (s *TestSuite) AssertGetHas(t testing.TB, kv ReadOnlyKVStore, key, val []byte, has bool) {
	t.Helper()
	got, err := kv.Get(key)
	assert.Nil(t, err)
	if !bytes.Equal(val, got) {
		t.Fatalf("want %X, got %X", val, got)
	}
	exists, err := kv.Has(key)
	assert.Nil(t, err)
	assert.Equal(t, has, exists)
}

func randBytes(length int) []byte {
	res := make([]byte, length)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

// randKeys returns a slice of count keys, all of a given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := range res {
		res[i] = randBytes(size)
	}
	return res
}

// randModels produces a random set of models
func randModels(count, keySize, valueSize int) []Model {
	models := make([]Model, count)
	for i := range models {
		models[i] = Pair(randBytes(keySize), randBytes(valueSize))
	}
	return models
}

// iterCase is a test case for iteration
type iterCase struct {
	pre     []Op
	child   []Op
	queries []rangeQuery
}

func (i iterCase) verify(t testing.TB, base CacheableKVStore) {
	t.Helper()
	for _, op := range i.pre {
		assert.Nil(t, op.Apply(base))
	}
	child := base.CacheWrap()
	for _, op := range i.child {
		assert.Nil(t, op.Apply(child))
	}

	for _, q := range i.queries {
		var iter Iterator
		var err error
		if q.reverse {
			iter, err = child.ReverseIterator(q.start, q.end)
		} else {
			iter, err = child.Iterator(q.start, q.end)
		}
		assert.Nil(t, err)

		for i := 0; i < len(q.expected); i++ {
			key, value, err := iter.Next()
			assert.Nil(t, err)
			if !bytes.Equal(q.expected[i].Key, key) {
				t.Fatalf("Expected key: %X\nGot keys %d = %X", q.expected[i].Key, i, key)
			}
			if !bytes.Equal(q.expected[i].Value, value) {
				t.Fatalf("Expected value: %X\nGot value %d = %X", q.expected[i].Value, i, value)
			}
		}
		_, _, err = iter.Next()
		if !errors.ErrIteratorDone.Is(err) {
			t.Fatalf("Expected ErrIteratorDone, got %+v", err)
		}
		iter.Release()
	}
}

// range query checks the results of iteration
type rangeQuery struct {
	start    []byte
	end      []byte
	reverse  bool
	expected []Model
}

// reverse returns a copy of the slice with elements in reverse order
func reverse(models []Model) []Model {
	res := make([]Model, len(models))
	for i, m := range models {
		res[len(models)-1-i] = m
	}
	return res
}

// sortModels returns a copy of the models sorted by key
func sortModels(models []Model) []Model {
	res := make([]Model, len(models))
	copy(res, models)
	sort.Slice(res, func(i, j int) bool {
		return bytes.Compare(res[i].Key, res[j].Key) < 0
	})
	return res
}

func without(models, drop []Model) []Model {
	var res []Model
	for _, m := range models {
		keep := true
		for _, d := range drop {
			if bytes.Equal(m.Key, d.Key) {
				keep = false
			}
		}
		if keep {
			res = append(res, m)
		}
	}
	return res
}

func makeSetOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = SetOp(m.Key, m.Value)
	}
	return res
}

func makeDelOps(ms ...Model) []Op {
	res := make([]Op, len(ms))
	for i, m := range ms {
		res[i] = DelOp(m.Key)
	}
	return res
}
