package board

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when no row matches the given id.
var ErrNotFound = errors.New("item not found")

// Fields is a partial update: nil pointers leave the corresponding column
// untouched.
type Fields struct {
	Content *string  `json:"content,omitempty"`
	X       *float64 `json:"x,omitempty"`
	Y       *float64 `json:"y,omitempty"`
	Width   *float64 `json:"width,omitempty"`
	Height  *float64 `json:"height,omitempty"`
}

// Store is an abstraction over the durable item rows.
// The controller consumes it; implementations live in internal/store and
// tests stub it.
type Store interface {
	// List returns all items ordered by creation time ascending.
	List(ctx context.Context) ([]Item, error)
	// Insert creates a row and returns it with the store-assigned id and
	// timestamps filled in.
	Insert(ctx context.Context, content string, x, y, width, height float64, createdBy string) (Item, error)
	// Update applies the non-nil fields to the matching row.
	Update(ctx context.Context, id string, f Fields) error
	// Delete removes the matching row.
	Delete(ctx context.Context, id string) error
}

// snapshotFields spreads an item's mutable columns into a full update.
func snapshotFields(it Item) Fields {
	return Fields{
		Content: &it.Content,
		X:       &it.X,
		Y:       &it.Y,
		Width:   &it.Width,
		Height:  &it.Height,
	}
}
