package inmemstore

import (
	"sync"

	"github.com/Narendra3579/ssvteachersapp/core"
)

type (
	// DB is a process-local shared key-value store. Several instance handles
	// may connect to one DB; a write through one handle is observed by the
	// watchers of every other handle, never by the writer's own.
	DB struct {
		mu      sync.RWMutex
		data    map[string][]byte
		handles map[*Store]bool
	}

	// Store is one instance's handle on a DB.
	Store struct {
		db *DB

		mu       sync.Mutex
		nextID   int
		watchers map[int]func(core.Event)
		closed   bool
	}
)

var _ core.Store = (*Store)(nil)

func Open() *DB {
	return &DB{
		data:    make(map[string][]byte),
		handles: make(map[*Store]bool),
	}
}

// Connect registers a new instance handle.
func (db *DB) Connect() *Store {
	s := &Store{
		db:       db,
		watchers: make(map[int]func(core.Event)),
	}
	db.mu.Lock()
	db.handles[s] = true
	db.mu.Unlock()
	return s
}

func (s *Store) Get(key string) ([]byte, error) {
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()
	raw, ok := s.db.data[key]
	if !ok {
		return nil, core.ErrKeyNotFound
	}
	res := make([]byte, len(raw))
	copy(res, raw)
	return res, nil
}

func (s *Store) Set(key string, value []byte) error {
	raw := make([]byte, len(value))
	copy(raw, value)

	s.db.mu.Lock()
	s.db.data[key] = raw
	others := make([]*Store, 0, len(s.db.handles))
	for h := range s.db.handles {
		if h != s {
			others = append(others, h)
		}
	}
	s.db.mu.Unlock()

	// Delivery is synchronous on the writer's goroutine; good enough for an
	// in-process store and it keeps tests deterministic.
	evt := core.Event{Key: key, Value: raw}
	for _, h := range others {
		h.notify(evt)
	}
	return nil
}

func (s *Store) Watch(fn func(core.Event)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}, nil
}

func (s *Store) Close() error {
	s.db.mu.Lock()
	delete(s.db.handles, s)
	s.db.mu.Unlock()

	s.mu.Lock()
	s.closed = true
	s.watchers = make(map[int]func(core.Event))
	s.mu.Unlock()
	return nil
}

func (s *Store) notify(evt core.Event) {
	s.mu.Lock()
	fns := make([]func(core.Event), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(evt)
	}
}
