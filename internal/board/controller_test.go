package board

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/manigot/bysk-mezar/internal/bouquet"
	"github.com/manigot/bysk-mezar/internal/geometry"
)

type stubStore struct {
	listFn   func(context.Context) ([]Item, error)
	insertFn func(ctx context.Context, content string, x, y, width, height float64, createdBy string) (Item, error)
	updateFn func(ctx context.Context, id string, f Fields) error
	deleteFn func(ctx context.Context, id string) error
}

func (s stubStore) List(ctx context.Context) ([]Item, error) { return s.listFn(ctx) }
func (s stubStore) Insert(ctx context.Context, content string, x, y, width, height float64, createdBy string) (Item, error) {
	return s.insertFn(ctx, content, x, y, width, height, createdBy)
}
func (s stubStore) Update(ctx context.Context, id string, f Fields) error {
	return s.updateFn(ctx, id, f)
}
func (s stubStore) Delete(ctx context.Context, id string) error { return s.deleteFn(ctx, id) }

func TestController_Refresh(t *testing.T) {
	stored := []Item{{ID: "a"}, {ID: "b"}}

	t.Run("success replaces the collection", func(t *testing.T) {
		c := NewController(stubStore{
			listFn: func(context.Context) ([]Item, error) { return stored, nil },
		}, Options{})
		defer c.Close()

		require.NoError(t, c.Refresh(context.Background()))
		require.Equal(t, stored, c.Items())
		require.NoError(t, c.Err())
	})

	t.Run("failure leaves the collection untouched", func(t *testing.T) {
		boom := errors.New("boom")
		calls := 0
		c := NewController(stubStore{
			listFn: func(context.Context) ([]Item, error) {
				calls++
				if calls > 1 {
					return nil, boom
				}
				return stored, nil
			},
		}, Options{})
		defer c.Close()

		require.NoError(t, c.Refresh(context.Background()))
		require.ErrorIs(t, c.Refresh(context.Background()), boom)
		require.Equal(t, stored, c.Items(), "no partial overwrite on fetch failure")
		require.ErrorIs(t, c.Err(), boom)
	})
}

func TestController_ApplyLocalChange(t *testing.T) {
	updates := make(chan Item, 16)
	c := NewController(stubStore{
		listFn: func(context.Context) ([]Item, error) {
			return []Item{{ID: "a", X: 1}, {ID: "b", X: 2}}, nil
		},
		updateFn: func(_ context.Context, id string, f Fields) error {
			updates <- Item{ID: id, X: *f.X}
			return nil
		},
	}, Options{DebounceDelay: 30 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Refresh(context.Background()))

	c.ApplyLocalChange(Item{ID: "a", X: 99, Width: 220, Height: 140})

	it, ok := c.Item("a")
	require.True(t, ok)
	require.Equal(t, 99.0, it.X, "local state updates immediately")

	got := waitFlush(t, updates)
	require.Equal(t, "a", got.ID)
	require.Equal(t, 99.0, got.X)

	// Unknown ids are dropped, locally and remotely.
	c.ApplyLocalChange(Item{ID: "ghost", X: 1})
	requireNoFlush(t, updates, 150*time.Millisecond)
	require.Len(t, c.Items(), 2)
}

func TestController_DebounceCoalescesEdits(t *testing.T) {
	updates := make(chan Fields, 16)
	c := NewController(stubStore{
		listFn: func(context.Context) ([]Item, error) { return []Item{{ID: "a"}}, nil },
		updateFn: func(_ context.Context, id string, f Fields) error {
			updates <- f
			return nil
		},
	}, Options{DebounceDelay: 60 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Refresh(context.Background()))

	// A burst of edits within the window persists once, with the last state.
	for i := 1; i <= 5; i++ {
		c.ApplyLocalChange(Item{ID: "a", X: float64(i), Content: "v"})
	}

	select {
	case f := <-updates:
		require.Equal(t, 5.0, *f.X)
		require.Equal(t, "v", *f.Content)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a debounced update")
	}

	select {
	case <-updates:
		t.Fatal("burst must coalesce into a single update")
	case <-time.After(200 * time.Millisecond):
	}

	// Edits spaced wider than the window persist separately.
	c.ApplyLocalChange(Item{ID: "a", X: 10})
	select {
	case f := <-updates:
		require.Equal(t, 10.0, *f.X)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a second update for a spaced edit")
	}
}

func TestController_CreateAt(t *testing.T) {
	t.Run("success appends the store-assigned item", func(t *testing.T) {
		c := NewController(stubStore{
			listFn: func(context.Context) ([]Item, error) { return nil, nil },
			insertFn: func(_ context.Context, content string, x, y, width, height float64, createdBy string) (Item, error) {
				require.Equal(t, DefaultWidth, width)
				require.Equal(t, DefaultHeight, height)
				require.Equal(t, "anne", createdBy)
				return Item{ID: "new-1", Content: content, X: x, Y: y, Width: width, Height: height, CreatedBy: createdBy}, nil
			},
		}, Options{})
		defer c.Close()

		it, err := c.CreateAt(context.Background(), "c", 10, 20, "anne")
		require.NoError(t, err)
		require.Equal(t, "new-1", it.ID)

		items := c.Items()
		require.Len(t, items, 1)
		require.Equal(t, "new-1", items[0].ID)
	})

	t.Run("failure leaves local state alone", func(t *testing.T) {
		boom := errors.New("insert failed")
		c := NewController(stubStore{
			insertFn: func(context.Context, string, float64, float64, float64, float64, string) (Item, error) {
				return Item{}, boom
			},
		}, Options{})
		defer c.Close()

		_, err := c.CreateAt(context.Background(), "c", 0, 0, "")
		require.ErrorIs(t, err, boom)
		require.Empty(t, c.Items())
		require.ErrorIs(t, c.Err(), boom)
	})
}

func TestController_DeleteIsOptimistic(t *testing.T) {
	gate := make(chan struct{})
	deleted := make(chan string, 1)
	c := NewController(stubStore{
		listFn: func(context.Context) ([]Item, error) { return []Item{{ID: "a"}, {ID: "b"}}, nil },
		deleteFn: func(_ context.Context, id string) error {
			<-gate // remote confirmation still outstanding
			deleted <- id
			return nil
		},
	}, Options{})
	defer c.Close()
	require.NoError(t, c.Refresh(context.Background()))

	c.Delete("a")

	// Gone locally before the remote call completes.
	items := c.Items()
	require.Len(t, items, 1)
	require.Equal(t, "b", items[0].ID)

	close(gate)
	select {
	case id := <-deleted:
		require.Equal(t, "a", id)
	case <-time.After(2 * time.Second):
		t.Fatal("remote delete never issued")
	}
}

func TestController_DeleteCancelsPendingWrite(t *testing.T) {
	updates := make(chan Item, 1)
	deletes := make(chan string, 1)
	c := NewController(stubStore{
		listFn: func(context.Context) ([]Item, error) { return []Item{{ID: "a"}}, nil },
		updateFn: func(_ context.Context, id string, _ Fields) error {
			updates <- Item{ID: id}
			return nil
		},
		deleteFn: func(_ context.Context, id string) error {
			deletes <- id
			return nil
		},
	}, Options{DebounceDelay: 60 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Refresh(context.Background()))

	c.ApplyLocalChange(Item{ID: "a", X: 5})
	c.Delete("a")

	select {
	case id := <-deletes:
		require.Equal(t, "a", id)
	case <-time.After(2 * time.Second):
		t.Fatal("remote delete never issued")
	}
	requireNoFlush(t, updates, 200*time.Millisecond)
}

func TestController_UpdateFailureIsSilent(t *testing.T) {
	done := make(chan struct{}, 1)
	c := NewController(stubStore{
		listFn: func(context.Context) ([]Item, error) { return []Item{{ID: "a"}}, nil },
		updateFn: func(context.Context, string, Fields) error {
			done <- struct{}{}
			return errors.New("write failed")
		},
	}, Options{DebounceDelay: 20 * time.Millisecond})
	defer c.Close()
	require.NoError(t, c.Refresh(context.Background()))

	c.ApplyLocalChange(Item{ID: "a", X: 7})
	<-done

	// No rollback: the optimistic local state stays authoritative.
	it, _ := c.Item("a")
	require.Equal(t, 7.0, it.X)
	require.NoError(t, c.Err())
}

func TestController_HandleDrop(t *testing.T) {
	boardRect := geometry.Rect{Left: 50, Top: 40, Width: 800, Height: 600}

	newDropController := func(inserted *Item) *Controller {
		return NewController(stubStore{
			insertFn: func(_ context.Context, content string, x, y, width, height float64, createdBy string) (Item, error) {
				it := Item{ID: "drop-1", Content: content, X: x, Y: y, Width: width, Height: height, CreatedBy: createdBy}
				*inserted = it
				return it, nil
			},
		}, Options{})
	}

	t.Run("structured payload lands in board-local space", func(t *testing.T) {
		var inserted Item
		c := newDropController(&inserted)
		defer c.Close()

		_, err := c.HandleDrop(context.Background(), `{"note":"Hello","bouquetId":"red-rose"}`, 150, 90, boardRect, "fallback", "anne")
		require.NoError(t, err)
		require.Equal(t, 100.0, inserted.X)
		require.Equal(t, 50.0, inserted.Y)

		dec := bouquet.Decode(inserted.Content)
		require.Equal(t, "Hello", dec.Note)
		require.Equal(t, "red-rose", dec.BouquetID)
	})

	t.Run("raw legacy payload decodes as the note with the default bouquet", func(t *testing.T) {
		var inserted Item
		c := newDropController(&inserted)
		defer c.Close()

		_, err := c.HandleDrop(context.Background(), "plain note", 150, 90, boardRect, "fallback", "")
		require.NoError(t, err)

		dec := bouquet.Decode(inserted.Content)
		require.Equal(t, "plain note", dec.Note)
		require.Equal(t, bouquet.DefaultID, dec.BouquetID)
	})

	t.Run("empty payload falls back to the supplied note", func(t *testing.T) {
		var inserted Item
		c := newDropController(&inserted)
		defer c.Close()

		_, err := c.HandleDrop(context.Background(), "   ", 150, 90, boardRect, "New item", "")
		require.NoError(t, err)

		dec := bouquet.Decode(inserted.Content)
		require.Equal(t, "New item", dec.Note)
		require.Equal(t, bouquet.DefaultID, dec.BouquetID)
	})
}
