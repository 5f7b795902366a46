package core

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

var ErrKeyNotFound = errors.New("key not found")

type (
	// Event describes a single-key change applied to a shared Store by
	// another instance. Value is the serialized value as written.
	Event struct {
		Key   string
		Value []byte
	}

	// Store is a shared key-value medium cooperating app instances read,
	// mutate and observe. Watch only delivers events originating from other
	// handles of the same underlying store; an instance never observes its
	// own writes and must refresh its own mirrors at the write site.
	Store interface {
		Get(key string) ([]byte, error)
		Set(key string, value []byte) error
		// Watch registers fn to be called for every external change until
		// the returned unsubscribe function is called.
		Watch(fn func(Event)) (func(), error)
		Close() error
	}

	// Accessor wraps a Store with JSON serialization. Reads fail closed:
	// an absent or corrupt value yields the caller's default, never an error.
	Accessor struct {
		store Store
		log   Logger
	}
)

func NewAccessor(store Store, log Logger) *Accessor {
	return &Accessor{store: store, log: log}
}

func (a *Accessor) Store() Store { return a.store }

// ReadKey returns the value stored under key, or def if the key is absent,
// the store is unreachable or the stored value cannot be deserialized.
// Failures are logged and never surface to the caller.
func ReadKey[T any](a *Accessor, key string, def T) T {
	raw, err := a.store.Get(key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.log.Warn(fmt.Sprintf("store: reading key %q: %v", key, err), err)
		}
		return def
	}
	var val T
	if err := json.Unmarshal(raw, &val); err != nil {
		a.log.Error(fmt.Sprintf("store: corrupt value under key %q", key), errors.Wrapf(err, "unmarshal %q", key))
		return def
	}
	return val
}

// Write serializes value and persists it under key, unconditionally
// overwriting whatever was there.
func (a *Accessor) Write(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "marshal %q", key)
	}
	if err := a.store.Set(key, raw); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	return nil
}
