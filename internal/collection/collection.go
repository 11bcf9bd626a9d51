// Package collection keeps a flat list of remote entities in step with the
// Resource Store. Every mutation is pessimistic: local items change only
// after the store acknowledged the operation.
package collection

import (
	"context"
	"errors"
	"sync"

	"taskflow-client/internal/apperror"
	"taskflow-client/internal/events"
	"taskflow-client/internal/pkg/logger"
	"taskflow-client/internal/pkg/validation"

	"golang.org/x/sync/singleflight"
)

const module = "collection"

// ErrClosed is returned for operations on, or results arriving at, a
// collection whose owner has gone away.
var ErrClosed = errors.New("collection: closed")

type Entity interface {
	GetId() string
}

// Store is the remote side of a collection. D is the draft a create takes.
type Store[T Entity, D any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id string, item T) (T, error)
	Delete(ctx context.Context, id string) error
}

type Option func(*options)

type options struct {
	name      string
	logger    logger.ILogger
	publisher events.IPublisher
	guard     func(count int) error
}

func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(l logger.ILogger) Option {
	return func(o *options) { o.logger = l }
}

func WithPublisher(p events.IPublisher) Option {
	return func(o *options) { o.publisher = p }
}

// WithCreateGuard installs a precondition checked against the current item
// count before any create reaches the store.
func WithCreateGuard(guard func(count int) error) Option {
	return func(o *options) { o.guard = guard }
}

type slot string

const (
	slotUpdate slot = "update"
	slotDelete slot = "delete"
)

type Collection[T Entity, D any] struct {
	name      string
	store     Store[T, D]
	logger    logger.ILogger
	publisher events.IPublisher
	guard     func(count int) error

	loads singleflight.Group

	mu       sync.Mutex
	items    []T
	pending  map[string]slot
	creating bool
	loading  bool
	closed   bool
	// generation counts applied mutations; a load that straddles one is stale.
	generation uint64
}

func New[T Entity, D any](store Store[T, D], opts ...Option) *Collection[T, D] {
	o := options{name: "items"}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logger.NewNopLogger()
	}
	if o.publisher == nil {
		o.publisher = events.NopPublisher{}
	}

	return &Collection[T, D]{
		name:      o.name,
		store:     store,
		logger:    o.logger,
		publisher: o.publisher,
		guard:     o.guard,
		pending:   make(map[string]slot),
	}
}

func (c *Collection[T, D]) Name() string {
	return c.name
}

// Load replaces the items with the store's list. On failure the previous
// items are kept. Concurrent calls share one request.
func (c *Collection[T, D]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	c.mu.Unlock()

	v, err, _ := c.loads.Do("load", func() (interface{}, error) {
		return c.load(ctx)
	})
	if err != nil {
		return c.Items(), err
	}
	return copyItems(v.([]T)), nil
}

func (c *Collection[T, D]) load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.loading = true
	generation := c.generation
	c.mu.Unlock()

	items, err := c.store.List(ctx)

	c.mu.Lock()
	c.loading = false
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn(module, "Failed to load collection", map[string]interface{}{"collection": c.name, "error": err.Error()})
		return nil, apperror.Reclassify(err, apperror.KindFetch)
	}
	if c.generation != generation {
		current := copyItems(c.items)
		c.mu.Unlock()
		c.logger.Info(module, "Discarding load that overlapped a mutation", map[string]interface{}{"collection": c.name})
		return current, nil
	}
	c.items = dedupe(items)
	current := copyItems(c.items)
	c.mu.Unlock()

	c.logger.Debug(module, "Collection loaded", map[string]interface{}{"collection": c.name, "count": len(current)})
	c.publish(ctx, "COLLECTION_LOADED", "", len(current))
	return current, nil
}

// Create validates draft, checks the create guard and appends the store's
// item last once the store acknowledged it. Only one create runs at a time.
func (c *Collection[T, D]) Create(ctx context.Context, draft D) (T, error) {
	var zero T
	if err := validation.Struct(draft); err != nil {
		return zero, err
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if c.guard != nil {
		if err := c.guard(len(c.items)); err != nil {
			c.mu.Unlock()
			return zero, err
		}
	}
	if c.creating {
		c.mu.Unlock()
		return zero, apperror.Busy("create")
	}
	c.creating = true
	c.mu.Unlock()

	created, err := c.store.Create(ctx, draft)

	c.mu.Lock()
	c.creating = false
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn(module, "Failed to create item", map[string]interface{}{"collection": c.name, "error": err.Error()})
		return zero, apperror.Reclassify(err, apperror.KindCreate)
	}
	if indexOf(c.items, created.GetId()) < 0 {
		c.items = append(c.items, created)
	}
	c.generation++
	count := len(c.items)
	c.mu.Unlock()

	c.logger.Info(module, "Item created", map[string]interface{}{"collection": c.name, "id": created.GetId()})
	c.publish(ctx, "ITEM_CREATED", created.GetId(), count)
	return created, nil
}

// Remove deletes id remotely and drops it locally after the ack.
func (c *Collection[T, D]) Remove(ctx context.Context, id string) error {
	if err := c.acquire(id, slotDelete, apperror.KindDelete); err != nil {
		return err
	}

	err := c.store.Delete(ctx, id)

	c.mu.Lock()
	delete(c.pending, id)
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn(module, "Failed to delete item", map[string]interface{}{"collection": c.name, "id": id, "error": err.Error()})
		return apperror.Reclassify(err, apperror.KindDelete)
	}
	if i := indexOf(c.items, id); i >= 0 {
		c.items = append(c.items[:i:i], c.items[i+1:]...)
	}
	c.generation++
	count := len(c.items)
	c.mu.Unlock()

	c.logger.Info(module, "Item deleted", map[string]interface{}{"collection": c.name, "id": id})
	c.publish(ctx, "ITEM_REMOVED", id, count)
	return nil
}

// Update sends item as the new state of id and replaces the local entry in
// place with the store's answer. An entry removed meanwhile is not revived.
func (c *Collection[T, D]) Update(ctx context.Context, id string, item T) (T, error) {
	var zero T
	if err := validation.Struct(item); err != nil {
		return zero, err
	}
	if err := c.acquire(id, slotUpdate, apperror.KindUpdate); err != nil {
		return zero, err
	}

	updated, err := c.store.Update(ctx, id, item)

	c.mu.Lock()
	delete(c.pending, id)
	if c.closed {
		c.mu.Unlock()
		return zero, ErrClosed
	}
	if err != nil {
		c.mu.Unlock()
		c.logger.Warn(module, "Failed to update item", map[string]interface{}{"collection": c.name, "id": id, "error": err.Error()})
		return zero, apperror.Reclassify(err, apperror.KindUpdate)
	}
	if i := indexOf(c.items, id); i >= 0 {
		c.items[i] = updated
	}
	c.generation++
	count := len(c.items)
	c.mu.Unlock()

	c.logger.Info(module, "Item updated", map[string]interface{}{"collection": c.name, "id": id})
	c.publish(ctx, "ITEM_UPDATED", id, count)
	return updated, nil
}

func (c *Collection[T, D]) acquire(id string, s slot, kind apperror.Kind) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}
	if indexOf(c.items, id) < 0 {
		return apperror.New(kind, "Item not found: "+id)
	}
	if _, busy := c.pending[id]; busy {
		return apperror.Busy(string(s) + " of " + id)
	}
	c.pending[id] = s
	return nil
}

// Items returns a copy in insertion order.
func (c *Collection[T, D]) Items() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyItems(c.items)
}

func (c *Collection[T, D]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *Collection[T, D]) Find(id string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.items, id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

// Pending reports whether an update or delete of id is in flight.
func (c *Collection[T, D]) Pending(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.pending[id]
	return ok
}

func (c *Collection[T, D]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Busy reports whether any request is in flight.
func (c *Collection[T, D]) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading || c.creating || len(c.pending) > 0
}

// Close detaches the collection from its owner. Results that arrive later
// are dropped.
func (c *Collection[T, D]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
}

func (c *Collection[T, D]) publish(ctx context.Context, eventType, id string, count int) {
	data := map[string]interface{}{"collection": c.name, "count": count}
	if id != "" {
		data["id"] = id
	}
	if err := c.publisher.Publish(ctx, events.TopicCollection, events.New(eventType, data)); err != nil {
		c.logger.Warn(module, "Failed to publish collection event", map[string]interface{}{"event": eventType, "error": err.Error()})
	}
}

func indexOf[T Entity](items []T, id string) int {
	for i, item := range items {
		if item.GetId() == id {
			return i
		}
	}
	return -1
}

func copyItems[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}

// dedupe keeps the first entry per id.
func dedupe[T Entity](items []T) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.GetId()]; ok {
			continue
		}
		seen[item.GetId()] = struct{}{}
		out = append(out, item)
	}
	return out
}
