package redisstore

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/Narendra3579/ssvteachersapp/core"
)

// eventsChannel carries change signals between instances. Every Set
// publishes one message; subscribers drop messages bearing their own origin
// so an instance is only notified of other writers' changes.
const eventsChannel = "classroom:events"

type (
	event struct {
		Origin string          `json:"origin"`
		Key    string          `json:"key"`
		Value  json.RawMessage `json:"value"`
	}

	// Store is one instance's handle on a shared Redis store. Values are
	// stored as plain JSON strings under their keys.
	Store struct {
		client *redis.Client
		ctx    context.Context // base context
		origin string          // this instance's identity
		log    core.Logger

		mu       sync.Mutex
		nextID   int
		watchers map[int]func(core.Event)
		pubsub   *redis.PubSub
		done     chan struct{}
	}
)

var _ core.Store = (*Store)(nil)

func Open(conf *core.Config, log core.Logger) (*Store, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr,
		Password: conf.Redis.Password,
		DB:       conf.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, errors.Wrap(err, "pinging redis")
	}

	return &Store{
		client:   client,
		ctx:      context.Background(),
		origin:   uuid.NewString(),
		log:      log,
		watchers: make(map[int]func(core.Event)),
	}, nil
}

func (s *Store) Get(key string) ([]byte, error) {
	raw, err := s.client.Get(s.ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrKeyNotFound
		}
		return nil, errors.Wrapf(err, "get %q", key)
	}
	return raw, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := s.client.Set(s.ctx, key, value, 0).Err(); err != nil {
		return errors.Wrapf(err, "set %q", key)
	}
	msg, err := json.Marshal(event{Origin: s.origin, Key: key, Value: value})
	if err != nil {
		return errors.Wrapf(err, "marshal event for %q", key)
	}
	if err := s.client.Publish(s.ctx, eventsChannel, msg).Err(); err != nil {
		return errors.Wrapf(err, "publish event for %q", key)
	}
	return nil
}

func (s *Store) Watch(fn func(core.Event)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.pubsub == nil {
		pubsub := s.client.Subscribe(s.ctx, eventsChannel)
		// force the subscription before returning
		if _, err := pubsub.Receive(s.ctx); err != nil {
			_ = pubsub.Close()
			return nil, errors.Wrap(err, "subscribing to events channel")
		}
		s.pubsub = pubsub
		s.done = make(chan struct{})
		go s.listen(pubsub.Channel(), s.done)
	}

	s.nextID++
	id := s.nextID
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.watchers, id)
		s.mu.Unlock()
	}, nil
}

func (s *Store) listen(ch <-chan *redis.Message, done chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var evt event
			if err := json.Unmarshal([]byte(msg.Payload), &evt); err != nil {
				s.log.Warn("store: dropping malformed change event", err)
				continue
			}
			if evt.Origin == s.origin {
				continue // own write; mirrors were refreshed at the write site
			}
			s.mu.Lock()
			fns := make([]func(core.Event), 0, len(s.watchers))
			for _, fn := range s.watchers {
				fns = append(fns, fn)
			}
			s.mu.Unlock()
			for _, fn := range fns {
				fn(core.Event{Key: evt.Key, Value: evt.Value})
			}
		}
	}
}

func (s *Store) Close() error {
	s.mu.Lock()
	if s.pubsub != nil {
		close(s.done)
		_ = s.pubsub.Close()
		s.pubsub = nil
	}
	s.mu.Unlock()
	return s.client.Close()
}
