package store

// PrefixStore gives access to a namespace of the wrapped store. All keys
// are transparently prefixed, iterators only see keys from the namespace.
type PrefixStore struct {
	prefix []byte
	kv     KVStore
}

var _ KVStore = PrefixStore{}

// NewPrefixStore returns a view of kv limited to keys starting with prefix.
func NewPrefixStore(kv KVStore, prefix []byte) PrefixStore {
	return PrefixStore{prefix: prefix, kv: kv}
}

func (p PrefixStore) key(k []byte) []byte {
	res := make([]byte, 0, len(p.prefix)+len(k))
	res = append(res, p.prefix...)
	return append(res, k...)
}

func (p PrefixStore) Get(key []byte) ([]byte, error) {
	return p.kv.Get(p.key(key))
}

func (p PrefixStore) Has(key []byte) (bool, error) {
	return p.kv.Has(p.key(key))
}

func (p PrefixStore) Set(key, value []byte) error {
	return p.kv.Set(p.key(key), value)
}

func (p PrefixStore) Delete(key []byte) error {
	return p.kv.Delete(p.key(key))
}

func (p PrefixStore) Iterator(start, end []byte) (Iterator, error) {
	s, e := p.bounds(start, end)
	it, err := p.kv.Iterator(s, e)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: len(p.prefix), parent: it}, nil
}

func (p PrefixStore) ReverseIterator(start, end []byte) (Iterator, error) {
	s, e := p.bounds(start, end)
	it, err := p.kv.ReverseIterator(s, e)
	if err != nil {
		return nil, err
	}
	return &prefixIterator{prefix: len(p.prefix), parent: it}, nil
}

func (p PrefixStore) bounds(start, end []byte) ([]byte, []byte) {
	s := p.key(start)
	if end == nil {
		return s, PrefixEnd(p.prefix)
	}
	return s, p.key(end)
}

type prefixIterator struct {
	prefix int
	parent Iterator
}

func (i *prefixIterator) Next() ([]byte, []byte, error) {
	key, value, err := i.parent.Next()
	if err != nil {
		return nil, nil, err
	}
	return key[i.prefix:], value, nil
}

func (i *prefixIterator) Release() {
	i.parent.Release()
}

// PrefixEnd returns the first key that does not start with given prefix.
// It returns nil if no such key exists (prefix of only 0xFF bytes).
func PrefixEnd(prefix []byte) []byte {
	end := append([]byte(nil), prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xFF {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
