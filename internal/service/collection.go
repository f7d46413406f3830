package service

import (
	"context"
	"sync"
	"time"

	"campuscraft/internal/contextutil"
	"campuscraft/internal/storage"
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the store's time source.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// collection is the ordered, persisted slice behind each store.
// The mutex makes each mutation, including its save, complete before the next begins.
type collection[T any] struct {
	mu      sync.Mutex
	kind    string
	key     string
	items   []T
	adapter *storage.Adapter
	idOf    func(T) string
}

func newCollection[T any](ctx context.Context, adapter *storage.Adapter, kind, key string, seed []T, idOf func(T) string) *collection[T] {
	def := append(make([]T, 0, len(seed)), seed...)
	items := storage.LoadOrDefault(ctx, adapter, key, def)
	if items == nil {
		items = []T{}
	}
	return &collection[T]{
		kind:    kind,
		key:     key,
		items:   items,
		adapter: adapter,
		idOf:    idOf,
	}
}

// snapshot returns a copy of the items in order.
func (c *collection[T]) snapshot() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

func (c *collection[T]) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// indexOf must be called with the lock held.
func (c *collection[T]) indexOf(id string) int {
	for i, it := range c.items {
		if c.idOf(it) == id {
			return i
		}
	}
	return -1
}

func (c *collection[T]) notFound(id string) error {
	return &NotFoundError{Kind: c.kind, ID: id}
}

func (c *collection[T]) get(id string) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		var zero T
		return zero, c.notFound(id)
	}
	return c.items[i], nil
}

// persist writes the whole collection. It must be called with the lock held.
// A failed save is logged and returned as a *PersistenceWarning; the in-memory change stands.
func (c *collection[T]) persist(ctx context.Context) error {
	if err := c.adapter.Save(ctx, c.key, c.items); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to persist collection", "key", c.key, "error", err)
		return &PersistenceWarning{Key: c.key, Err: err}
	}
	return nil
}

// prepend inserts item at the front (newest-first ordering).
func (c *collection[T]) prepend(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append([]T{item}, c.items...)
	return c.persist(ctx)
}

// add inserts item at the end (insertion ordering).
func (c *collection[T]) add(ctx context.Context, item T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, item)
	return c.persist(ctx)
}

// replace swaps the item with the given id for the value returned by fn.
// If fn fails nothing changes and its error is returned.
func (c *collection[T]) replace(ctx context.Context, id string, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	i := c.indexOf(id)
	if i < 0 {
		return zero, c.notFound(id)
	}
	next, err := fn(c.items[i])
	if err != nil {
		return zero, err
	}
	c.items[i] = next
	return next, c.persist(ctx)
}

// remove deletes the item with the given id.
func (c *collection[T]) remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i := c.indexOf(id)
	if i < 0 {
		return c.notFound(id)
	}
	c.items = append(c.items[:i:i], c.items[i+1:]...)
	return c.persist(ctx)
}
