package store

import (
	"bytes"

	"github.com/iov-one/custody/errors"
)

// SliceIterator wraps an Iterator over a slice of models
type SliceIterator struct {
	data []Model
	idx  int
}

var _ Iterator = (*SliceIterator)(nil)

// NewSliceIterator creates a new Iterator over this slice
func NewSliceIterator(data []Model) *SliceIterator {
	return &SliceIterator{data: data}
}

// Next returns the next model or ErrIteratorDone.
func (s *SliceIterator) Next() (key, value []byte, err error) {
	if s.idx >= len(s.data) {
		return nil, nil, errors.Wrap(errors.ErrIteratorDone, "slice iterator")
	}
	m := s.data[s.idx]
	s.idx++
	return m.Key, m.Value, nil
}

// Release releases the Iterator.
func (s *SliceIterator) Release() {
	s.data = nil
}

// mergeIterator combines cached btree items with the iterator of the
// backing store. Cached items take precedence over parent entries with the
// same key and deleted items hide them.
type mergeIterator struct {
	parent    Iterator
	items     []keyer
	ascending bool

	// next parent entry, if already read
	pkey, pvalue []byte
	loaded       bool
	parentDone   bool
}

func newMergeIterator(parent Iterator, items []keyer, ascending bool) *mergeIterator {
	return &mergeIterator{
		parent:    parent,
		items:     items,
		ascending: ascending,
	}
}

func (m *mergeIterator) Next() (key, value []byte, err error) {
	for {
		if !m.loaded && !m.parentDone {
			m.pkey, m.pvalue, err = m.parent.Next()
			switch {
			case err == nil:
				m.loaded = true
			case errors.ErrIteratorDone.Is(err):
				m.parentDone = true
			default:
				return nil, nil, err
			}
		}

		if len(m.items) == 0 {
			if !m.loaded {
				return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
			}
			m.loaded = false
			return m.pkey, m.pvalue, nil
		}

		if m.loaded {
			cmp := bytes.Compare(m.pkey, m.items[0].Key())
			if !m.ascending {
				cmp = -cmp
			}
			if cmp < 0 {
				m.loaded = false
				return m.pkey, m.pvalue, nil
			}
			if cmp == 0 {
				// shadowed by the cache
				m.loaded = false
			}
		}

		item := m.items[0]
		m.items = m.items[1:]
		if s, ok := item.(setItem); ok {
			return s.Key(), s.value, nil
		}
	}
}

func (m *mergeIterator) Release() {
	m.parent.Release()
	m.items = nil
}
