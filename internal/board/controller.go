package board

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/manigot/bysk-mezar/internal/bouquet"
	"github.com/manigot/bysk-mezar/internal/geometry"
	"github.com/manigot/bysk-mezar/internal/stringsx"
)

const (
	// DefaultDebounceDelay is the quiet period a card must see before its
	// pending write is sent.
	DefaultDebounceDelay = 400 * time.Millisecond

	// writeTimeout bounds the background update and delete calls the
	// controller fires without a caller context.
	writeTimeout = 5 * time.Second
)

// Options tune a Controller.
type Options struct {
	// DebounceDelay overrides DefaultDebounceDelay when positive.
	DebounceDelay time.Duration
}

// Controller owns the single authoritative in-memory copy of the item
// collection and reconciles it with the store through explicit calls; there
// is no live subscription. Local edits render immediately and persist
// through the debounce scheduler. Sessions and timer callbacks all funnel
// through the mutex, so the collection is only ever mutated serially.
type Controller struct {
	store Store
	sched *scheduler

	mu      sync.Mutex
	items   []Item
	lastErr error
}

// NewController builds a controller over the given store.
func NewController(store Store, opts Options) *Controller {
	delay := opts.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	c := &Controller{store: store}
	c.sched = newScheduler(delay, c.flush)
	return c
}

// Refresh replaces the collection with the store's rows, ordered by creation
// time ascending. On failure the existing collection is left untouched and
// the error is surfaced through Err.
func (c *Controller) Refresh(ctx context.Context) error {
	items, err := c.store.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.items = items
	c.lastErr = nil
	return nil
}

// Items returns a copy of the current collection.
func (c *Controller) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item looks up one card by id.
func (c *Controller) Item(id string) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, it := range c.items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Err reports the last surfaced fetch or insert error, or nil after the last
// such call succeeded.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ApplyLocalChange replaces the matching item in the collection and schedules
// a debounced write carrying the new snapshot. Changes to unknown ids are
// dropped.
func (c *Controller) ApplyLocalChange(updated Item) {
	c.mu.Lock()
	found := false
	for i, it := range c.items {
		if it.ID == updated.ID {
			c.items[i] = updated
			found = true
			break
		}
	}
	c.mu.Unlock()

	if found {
		c.sched.schedule(updated)
	}
}

// CreateAt inserts a new item at the given board-local position with the
// default size and appends the store-assigned row to the collection. On
// failure nothing is added locally and the error is surfaced.
func (c *Controller) CreateAt(ctx context.Context, content string, x, y float64, createdBy string) (Item, error) {
	it, err := c.store.Insert(ctx, content, x, y, DefaultWidth, DefaultHeight, createdBy)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return Item{}, err
	}
	c.items = append(c.items, it)
	c.lastErr = nil
	return it, nil
}

// Delete removes the item locally right away and requests the remote delete
// in the background. A failed remote delete is logged and otherwise dropped;
// there is no rollback.
func (c *Controller) Delete(id string) {
	c.mu.Lock()
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	c.mu.Unlock()

	c.sched.cancel(id)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := c.store.Delete(ctx, id); err != nil {
			log.Printf("board: delete of %s not persisted: %v", id, err)
		}
	}()
}

// HandleDrop creates an item from a drag payload dropped at the given screen
// point over the board. The payload resolves through the bouquet codec; an
// empty payload falls back to the supplied note with the default bouquet.
// The stored content is the canonical structured encoding.
func (c *Controller) HandleDrop(ctx context.Context, payload string, pointerX, pointerY float64, boardRect geometry.Rect, fallbackNote, createdBy string) (Item, error) {
	if stringsx.IsEmpty(payload) {
		payload = fallbackNote
	}
	dec := bouquet.Decode(payload)
	content := bouquet.Encode(dec.Note, dec.BouquetID)

	local := geometry.ToLocal(pointerX, pointerY, boardRect)
	return c.CreateAt(ctx, content, local.X, local.Y, createdBy)
}

// Close cancels all pending debounced writes. Nothing is flushed: the design
// accepts that the last quiet period before shutdown may be lost.
func (c *Controller) Close() {
	c.sched.stop()
}

// flush sends one debounced snapshot. Failures are logged and dropped; local
// state is not rolled back, so the collection and the store can diverge until
// the next successful write or refresh.
func (c *Controller) flush(it Item) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	if err := c.store.Update(ctx, it.ID, snapshotFields(it)); err != nil {
		log.Printf("board: update of %s not persisted: %v", it.ID, err)
	}
}
