// Package loader implements the request-scoped batching cache.
//
// A Batch collects keyed lookups issued by independently resolving branches
// of one request. Load enqueues a key and returns a Thunk; the engine calls
// Flush once per batch window, which issues at most one multi-key fetch for
// the distinct pending keys and distributes results back to every waiting
// thunk. Keys resolved in an earlier window are served from the per-request
// cache without another fetch. A Batch must never be shared between requests.
package loader

import (
	"context"
	"time"

	"github.com/fernql/fernql/internal/eventbus"
	"github.com/fernql/fernql/internal/events"
	"github.com/fernql/fernql/internal/model"
	"github.com/fernql/fernql/internal/store"
)

// Thunk yields the value loaded for one key. It must not be invoked before
// the Batch has been flushed; doing so reports a usage error.
type Thunk[T any] func() (T, error)

// FetchFunc fetches all given keys in one round trip and returns the found
// records keyed by their own identity. Keys with no record are simply absent
// from the map.
type FetchFunc[K comparable, T any] func(ctx context.Context, keys []K) (map[K]T, error)

type outcome[T any] struct {
	value T
	err   error
	done  bool
}

// Batch deduplicates and batches keyed lookups for a single entity type
// within a single request. It is not safe for concurrent use; the engine
// drives it from one goroutine per request.
type Batch[K comparable, T any] struct {
	fetch   FetchFunc[K, T]
	pending []K
	results map[K]*outcome[T]
}

// NewBatch creates an empty batch backed by fetch.
func NewBatch[K comparable, T any](fetch FetchFunc[K, T]) *Batch[K, T] {
	return &Batch[K, T]{fetch: fetch, results: make(map[K]*outcome[T])}
}

// Load registers key for the next flush and returns a thunk for its value.
// Loading the same key twice shares one pending slot and one fetch.
func (b *Batch[K, T]) Load(key K) Thunk[T] {
	out, ok := b.results[key]
	if !ok {
		out = &outcome[T]{}
		b.results[key] = out
		b.pending = append(b.pending, key)
	}
	return func() (T, error) {
		if !out.done {
			var zero T
			return zero, errUnflushed
		}
		return out.value, out.err
	}
}

// Flush fires the batch window: at most one fetch for all keys accumulated
// since the previous flush. A fetch failure is broadcast to every key in the
// window. Keys without a matching record resolve to the zero value with no
// error.
func (b *Batch[K, T]) Flush(ctx context.Context) {
	if len(b.pending) == 0 {
		return
	}
	keys := b.pending
	b.pending = nil

	found, err := b.fetch(ctx, keys)
	for _, k := range keys {
		out := b.results[k]
		out.done = true
		if err != nil {
			out.err = err
			continue
		}
		out.value = found[k]
	}
}

// PendingKeys reports how many keys are waiting for the next flush.
func (b *Batch[K, T]) PendingKeys() int { return len(b.pending) }

var errUnflushed = usageError("loader: thunk invoked before flush")

type usageError string

func (e usageError) Error() string { return string(e) }

// Loaders is the per-request batching cache: one Batch per entity type,
// constructed at request entry and discarded at request completion.
type Loaders struct {
	Users       *Batch[string, *model.User]
	Posts       *Batch[string, *model.Post]
	Profiles    *Batch[string, *model.Profile]
	MemberTypes *Batch[model.MemberTypeID, *model.MemberType]
}

// New builds a fresh loader set on top of st. Every fetch publishes an
// events.BatchFetch for observability.
func New(st store.Store) *Loaders {
	return &Loaders{
		Users: NewBatch(func(ctx context.Context, ids []string) (map[string]*model.User, error) {
			records, err := fetchTimed(ctx, "user", ids, st.UsersByIDs)
			if err != nil {
				return nil, err
			}
			byID := make(map[string]*model.User, len(records))
			for _, u := range records {
				byID[u.ID] = u
			}
			return byID, nil
		}),
		Posts: NewBatch(func(ctx context.Context, ids []string) (map[string]*model.Post, error) {
			records, err := fetchTimed(ctx, "post", ids, st.PostsByIDs)
			if err != nil {
				return nil, err
			}
			byID := make(map[string]*model.Post, len(records))
			for _, p := range records {
				byID[p.ID] = p
			}
			return byID, nil
		}),
		Profiles: NewBatch(func(ctx context.Context, ids []string) (map[string]*model.Profile, error) {
			records, err := fetchTimed(ctx, "profile", ids, st.ProfilesByIDs)
			if err != nil {
				return nil, err
			}
			byID := make(map[string]*model.Profile, len(records))
			for _, p := range records {
				byID[p.ID] = p
			}
			return byID, nil
		}),
		MemberTypes: NewBatch(func(ctx context.Context, ids []model.MemberTypeID) (map[model.MemberTypeID]*model.MemberType, error) {
			records, err := fetchTimed(ctx, "memberType", ids, st.MemberTypesByIDs)
			if err != nil {
				return nil, err
			}
			byID := make(map[model.MemberTypeID]*model.MemberType, len(records))
			for _, t := range records {
				byID[t.ID] = t
			}
			return byID, nil
		}),
	}
}

// Flush closes the current batch window on every entity type.
func (l *Loaders) Flush(ctx context.Context) {
	l.Users.Flush(ctx)
	l.Posts.Flush(ctx)
	l.Profiles.Flush(ctx)
	l.MemberTypes.Flush(ctx)
}

func fetchTimed[K comparable, T any](ctx context.Context, entity string, keys []K, fetch func(context.Context, []K) ([]T, error)) ([]T, error) {
	start := time.Now()
	records, err := fetch(ctx, keys)
	eventbus.Publish(ctx, events.BatchFetch{
		Entity:   entity,
		Keys:     len(keys),
		Found:    len(records),
		Err:      err,
		Duration: time.Since(start),
	})
	return records, err
}
