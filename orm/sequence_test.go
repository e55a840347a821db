package orm

import (
	"bytes"
	"testing"

	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := map[string]struct {
		bucket     string
		name       string
		init       uint64
		increments uint64
	}{
		"fresh":             {"queue", "id", 0, 22},
		"other name":        {"queue", "other", 0, 11},
		"continues":         {"queue", "id", 22, 18},
		"other bucket":      {"units", "id", 0, 77},
		"continues another": {"queue", "other", 11, 3},
	}

	for _, name := range []string{"fresh", "other name", "continues", "other bucket", "continues another"} {
		tc := cases[name]
		t.Run(name, func(t *testing.T) {
			s := NewSequence(tc.bucket, tc.name)
			count, err := s.Count(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, count)
			orig := EncodeSequence(count)

			var last []byte
			for i := uint64(0); i < tc.increments; i++ {
				val, err := s.NextVal(db)
				assert.Nil(t, err)
				if last != nil && bytes.Compare(val, last) != 1 {
					t.Fatalf("value %X not greater than %X", val, last)
				}
				last = val
			}
			// the first value handed out is the initial count
			first, err := DecodeSequence(orig)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, first)

			got, err := DecodeSequence(last)
			assert.Nil(t, err)
			assert.Equal(t, tc.init+tc.increments-1, got)
		})
	}
}

func TestSequenceStartsAtZero(t *testing.T) {
	db := store.MemStore()
	s := NewSequence("queue", "id")
	for want := uint64(0); want < 3; want++ {
		got, err := s.NextInt(db)
		assert.Nil(t, err)
		assert.Equal(t, want, got)
	}
}

func TestDecodeSequenceInvalid(t *testing.T) {
	_, err := DecodeSequence([]byte{1, 2})
	assert.IsErr(t, errors.ErrInput, err)
}
