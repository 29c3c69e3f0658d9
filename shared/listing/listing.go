// Package listing loads record collections newest first and keeps the
// latest issued result for each of them.
package listing

import (
	"context"
	"errors"
	"fmt"
	"rkhub/shared/dto"
	"rkhub/shared/notification"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

const ErrorLoadingTitle = "Error loading data"

type FetchFunc[T any] func(ctx context.Context, params dto.QueryParams) ([]T, error)

// Loader is a collection that can be (re)loaded by a View.
type Loader interface {
	Name() string
	Load(ctx context.Context) error
}

// Collection holds the result set of one table. Each Load is stamped with a
// token; only the response to the most recently issued Load is applied.
type Collection[T any] struct {
	name  string
	fetch FetchFunc[T]
	limit int

	mu     sync.Mutex
	issued uint64
	items  []T
}

// NewCollection returns a collection fetching at most limit records, or all
// of them when limit is zero.
func NewCollection[T any](name string, fetch FetchFunc[T], limit int) *Collection[T] {
	return &Collection[T]{
		name:  name,
		fetch: fetch,
		limit: limit,
		items: []T{},
	}
}

func (c *Collection[T]) Name() string {
	return c.name
}

// Items returns a copy of the current result set. Never nil.
func (c *Collection[T]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]T, len(c.items))
	copy(items, c.items)

	return items
}

// Load fetches the collection. A failed fetch leaves the collection empty.
// Responses to superseded loads are dropped and reported as nil.
func (c *Collection[T]) Load(ctx context.Context) error {
	c.mu.Lock()
	c.issued++
	token := c.issued
	c.mu.Unlock()

	items, err := c.fetch(ctx, dto.NewestFirst(c.limit))

	c.mu.Lock()
	defer c.mu.Unlock()

	if token != c.issued {
		log.Debug().Str("collection", c.name).Uint64("token", token).Msg("discarding superseded load")

		return nil
	}

	if err != nil {
		c.items = []T{}

		log.Error().Err(err).Str("collection", c.name).Msg("failed to load collection")

		return fmt.Errorf("failed to load %s: %w", c.name, err)
	}

	c.items = make([]T, len(items))
	copy(c.items, items)

	return nil
}

type ViewOption func(*View)

// WithErrorNotification makes the view emit one error notification with the
// given title whenever a load has at least one failing collection.
func WithErrorNotification(sink notification.Sink, title string) ViewOption {
	return func(v *View) {
		v.sink = sink
		v.errorTitle = title
	}
}

// View loads a set of collections together.
type View struct {
	name       string
	loaders    []Loader
	sink       notification.Sink
	errorTitle string
	inflight   atomic.Int64
}

func NewView(name string, loaders []Loader, opts ...ViewOption) *View {
	v := &View{
		name:    name,
		loaders: loaders,
	}

	for _, opt := range opts {
		opt(v)
	}

	return v
}

// Loading reports whether any Load of this view is still in flight.
func (v *View) Loading() bool {
	return v.inflight.Load() > 0
}

// Load fetches every collection concurrently and returns once all of them
// have settled. A failing collection never prevents the others from being
// applied. The returned error joins the per-collection failures.
func (v *View) Load(ctx context.Context) error {
	v.inflight.Add(1)
	defer v.inflight.Add(-1)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, loader := range v.loaders {
		wg.Add(1)

		go func(loader Loader) {
			defer wg.Done()

			if err := loader.Load(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}(loader)
	}

	wg.Wait()

	err := errors.Join(errs...)
	if err == nil {
		return nil
	}

	log.Warn().Err(err).Str("view", v.name).Msg("view loaded with failures")

	if v.sink != nil {
		v.sink.Notify(notification.KindError, v.errorTitle, "")
	}

	return err
}
