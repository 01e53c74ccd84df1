// Package lookup puts an [lrucache.Cache] in front of an expensive producer.
//
// The cache itself never computes values. [Service] does the cache-aside
// work around it: check the cache, call the producer on a miss, and store
// the result only if the producer succeeded. Concurrent misses for the same
// key share a single producer call.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"go.dw1.io/lrucache"
)

// ErrEmptyKey is returned by [Service.Fetch] for an empty key.
var ErrEmptyKey = errors.New("lookup: empty key")

// Producer computes the value for key. It may be slow and may fail.
type Producer[V any] func(ctx context.Context, key string) (V, error)

// Outcome describes how a [Service.Fetch] call was served.
type Outcome int

const (
	// Hit means the value came from the cache.
	Hit Outcome = iota
	// Miss means the producer was called and its value cached.
	Miss
	// Failed means the producer returned an error.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Hit:
		return "hit"
	case Miss:
		return "miss"
	case Failed:
		return "error"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Option configures a [Service].
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for hit, miss and failure records.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Service is a read-through cache over a [Producer]. It is safe for
// concurrent use; all cache access happens under one mutex.
type Service[V any] struct {
	mu      sync.Mutex
	cache   *lrucache.Cache[string, V]
	produce Producer[V]
	flight  singleflight.Group
	log     *slog.Logger
}

// New returns a Service that owns cache and fills it from produce.
// The caller must not use cache directly afterwards.
func New[V any](cache *lrucache.Cache[string, V], produce Producer[V], opts ...Option) *Service[V] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return &Service[V]{
		cache:   cache,
		produce: produce,
		log:     o.logger.With(slog.String("component", "lookup")),
	}
}

// Fetch returns the value for key, from the cache if possible.
func (s *Service[V]) Fetch(ctx context.Context, key string) (V, error) {
	v, _, err := s.FetchOutcome(ctx, key)

	return v, err
}

// FetchOutcome is like [Service.Fetch] and also reports how the call was
// served.
func (s *Service[V]) FetchOutcome(ctx context.Context, key string) (V, Outcome, error) {
	var zero V
	if key == "" {
		return zero, Failed, ErrEmptyKey
	}

	if v, ok := s.get(key); ok {
		s.log.DebugContext(ctx, "cache hit", slog.String("key", key))

		return v, Hit, nil
	}

	// The producer outlives any single caller; each caller stops waiting
	// when its own context is done.
	ch := s.flight.DoChan(key, func() (any, error) {
		return s.load(context.WithoutCancel(ctx), key)
	})
	select {
	case <-ctx.Done():
		return zero, Failed, fmt.Errorf("lookup %q: %w", key, ctx.Err())
	case r := <-ch:
		if r.Err != nil {
			s.log.WarnContext(ctx, "producer failed", slog.String("key", key), slog.Any("error", r.Err))

			return zero, Failed, fmt.Errorf("lookup %q: %w", key, r.Err)
		}
		res, _ := r.Val.(flightResult[V])
		if res.cached {
			s.log.DebugContext(ctx, "cache hit", slog.String("key", key), slog.Bool("shared", r.Shared))

			return res.value, Hit, nil
		}
		s.log.DebugContext(ctx, "cache miss", slog.String("key", key), slog.Bool("shared", r.Shared))

		return res.value, Miss, nil
	}
}

type flightResult[V any] struct {
	value  V
	cached bool
}

// load runs inside a flight. It reports cached when an earlier flight filled
// the key after the caller's first lookup missed.
func (s *Service[V]) load(ctx context.Context, key string) (flightResult[V], error) {
	if v, ok := s.get(key); ok {
		return flightResult[V]{value: v, cached: true}, nil
	}
	v, err := s.produce(ctx, key)
	if err != nil {
		return flightResult[V]{}, err
	}
	s.put(key, v)

	return flightResult[V]{value: v}, nil
}

// Invalidate drops key from the cache. It reports whether key was cached.
func (s *Service[V]) Invalidate(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Delete(key)
}

// Reset empties the cache.
func (s *Service[V]) Reset() {
	s.mu.Lock()
	s.cache.Clear()
	s.mu.Unlock()
}

// Len returns the number of cached values.
func (s *Service[V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Len()
}

func (s *Service[V]) get(key string) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cache.Get(key)
}

func (s *Service[V]) put(key string, v V) {
	s.mu.Lock()
	s.cache.Put(key, v)
	s.mu.Unlock()
}
