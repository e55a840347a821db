package gconf

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/custodytest/assert"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/store"
)

type limits struct {
	MaxActions uint32 `json:"max_actions"`
	Label      string `json:"label"`
}

func (l *limits) Validate() error {
	if l.MaxActions == 0 {
		return errors.Wrap(errors.ErrInput, "max actions")
	}
	return nil
}

func TestSaveLoad(t *testing.T) {
	cases := map[string]struct {
		Conf        *limits
		WantSaveErr *errors.Error
	}{
		"valid": {
			Conf: &limits{MaxActions: 8, Label: "x"},
		},
		"invalid cannot be saved": {
			Conf:        &limits{},
			WantSaveErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			if err := Save(db, "test", tc.Conf); !tc.WantSaveErr.Is(err) {
				t.Fatalf("unexpected save error: %s", err)
			}
			var got limits
			err := Load(db, "test", &got)
			if tc.WantSaveErr != nil {
				assert.IsErr(t, errors.ErrNotFound, err)
				return
			}
			assert.Nil(t, err)
			assert.Equal(t, *tc.Conf, got)
		})
	}
}

func TestInitConfig(t *testing.T) {
	opts := custody.Options{
		"conf": []byte(`{"wallet": {"max_actions": 3, "label": "main"}}`),
	}

	db := store.MemStore()
	var conf limits
	assert.Nil(t, InitConfig(db, opts, "wallet", &conf))

	var got limits
	assert.Nil(t, Load(db, "wallet", &got))
	assert.Equal(t, limits{MaxActions: 3, Label: "main"}, got)

	err := InitConfig(db, opts, "cash", &conf)
	assert.IsErr(t, errors.ErrNotFound, err)
}
