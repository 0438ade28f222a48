package board

import (
	"context"

	"github.com/manigot/bysk-mezar/internal/bouquet"
	"github.com/manigot/bysk-mezar/internal/geometry"
	"github.com/manigot/bysk-mezar/internal/stringsx"
)

// maxNoteLen bounds the text a palette payload carries into a new card.
const maxNoteLen = 4000

// quickPlaceTop is the vertical offset for cards created without a drag
// gesture.
const quickPlaceTop = 24.0

// Palette supplies the template entries cards are created from: a drag
// payload for the platform drag channel, and a quick-place path for clients
// where drag gestures are unreliable.
type Palette struct {
	ctrl *Controller
}

// NewPalette binds a palette to the controller that will own created items.
func NewPalette(ctrl *Controller) *Palette {
	return &Palette{ctrl: ctrl}
}

// Options lists the static catalog entries.
func (p *Palette) Options() []bouquet.Option {
	return bouquet.Catalog
}

// DragPayload builds the text attached to a platform drag operation: the
// current note and the chosen bouquet in the structured encoding.
func (p *Palette) DragPayload(note, bouquetID string) string {
	return bouquet.Encode(stringsx.Clip(note, maxNoteLen), bouquetID)
}

// QuickPlacePosition computes the default spot for gesture-free creation:
// the top region of the board, horizontally centered, clamped so the default
// card size stays within the container.
func QuickPlacePosition(boardRect geometry.Rect) geometry.Point {
	return geometry.Point{
		X: geometry.ClampOffset((boardRect.Width-DefaultWidth)/2, DefaultWidth, boardRect.Width),
		Y: geometry.ClampOffset(quickPlaceTop, DefaultHeight, boardRect.Height),
	}
}

// QuickPlace creates a card directly at the default position, skipping the
// drag gesture entirely.
func (p *Palette) QuickPlace(ctx context.Context, note, bouquetID string, boardRect geometry.Rect, createdBy string) (Item, error) {
	pos := QuickPlacePosition(boardRect)
	content := bouquet.Encode(stringsx.Clip(note, maxNoteLen), bouquetID)
	return p.ctrl.CreateAt(ctx, content, pos.X, pos.Y, createdBy)
}
