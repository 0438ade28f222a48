package board

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/manigot/bysk-mezar/internal/geometry"
)

var testBoard = geometry.Rect{Left: 50, Top: 40, Width: 800, Height: 600}

func testItem() Item {
	return Item{ID: "it-1", Content: "c", X: 100, Y: 50, Width: 220, Height: 140}
}

func recordChanges(changes *[]Item) func(Item) {
	return func(it Item) { *changes = append(*changes, it) }
}

func TestInteraction_DragMovesRigidlyWithPointer(t *testing.T) {
	var changes []Item
	n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))

	// Grab 10px inside the card: screen (160,100) is board-local (110,60).
	n.StartDrag(160, 100)
	require.Equal(t, Dragging, n.State())
	require.Empty(t, changes, "drag start alone must not emit")

	n.PointerMove(200, 150)
	require.Len(t, changes, 1)
	require.Equal(t, 140.0, changes[0].X)
	require.Equal(t, 100.0, changes[0].Y)
	// Size unchanged during a drag.
	require.Equal(t, 220.0, changes[0].Width)
	require.Equal(t, 140.0, changes[0].Height)

	n.PointerMove(210, 160)
	require.Len(t, changes, 2)
	require.Equal(t, 150.0, changes[1].X)
	require.Equal(t, 110.0, changes[1].Y)

	n.PointerUp()
	require.Equal(t, Idle, n.State())

	// Moves after pointer-up are ignored.
	n.PointerMove(500, 500)
	require.Len(t, changes, 2)
}

func TestInteraction_DragClampPolicy(t *testing.T) {
	t.Run("clamped stays inside the board", func(t *testing.T) {
		var changes []Item
		n := NewInteraction(testItem(), testBoard, true, recordChanges(&changes))
		n.StartDrag(160, 100)

		// Far past the top-left corner.
		n.PointerMove(-500, -500)
		require.Equal(t, 0.0, changes[len(changes)-1].X)
		require.Equal(t, 0.0, changes[len(changes)-1].Y)

		// Far past the bottom-right corner.
		n.PointerMove(5000, 5000)
		require.Equal(t, 580.0, changes[len(changes)-1].X) // 800 - 220
		require.Equal(t, 460.0, changes[len(changes)-1].Y) // 600 - 140
	})

	t.Run("unclamped may leave the board", func(t *testing.T) {
		var changes []Item
		n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))
		n.StartDrag(160, 100)

		n.PointerMove(0, 0)
		require.Equal(t, -60.0, changes[0].X)
		require.Equal(t, -50.0, changes[0].Y)
	})
}

func TestInteraction_ResizeTracksFarCorner(t *testing.T) {
	var changes []Item
	n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))

	// The far corner is board-local (320,190); grab 5px inside it, at
	// screen (365,225).
	n.StartResize(365, 225)
	require.Equal(t, Resizing, n.State())

	n.PointerMove(450, 340) // local (400,300), corner (405,305)
	require.Len(t, changes, 1)
	require.Equal(t, 305.0, changes[0].Width)
	require.Equal(t, 255.0, changes[0].Height)
	// Near corner stays fixed.
	require.Equal(t, 100.0, changes[0].X)
	require.Equal(t, 50.0, changes[0].Y)
}

func TestInteraction_ResizeNeverBelowMinimum(t *testing.T) {
	var changes []Item
	n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))
	n.StartResize(365, 225)

	// Sweep an arbitrary trajectory, including points far above-left of the
	// card's origin.
	for x := -600.0; x <= 1400; x += 93 {
		for y := -600.0; y <= 1100; y += 71 {
			n.PointerMove(x, y)
		}
	}

	require.NotEmpty(t, changes)
	for _, it := range changes {
		require.GreaterOrEqual(t, it.Width, MinWidth)
		require.GreaterOrEqual(t, it.Height, MinHeight)
	}
}

func TestInteraction_ResizeSuppressesDrag(t *testing.T) {
	var changes []Item
	n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))

	// The resize handle sits atop the drag region: once the resize claims
	// the gesture, the drag start underneath must lose.
	n.StartResize(365, 225)
	n.StartDrag(365, 225)
	require.Equal(t, Resizing, n.State())

	n.PointerMove(375, 235)
	require.Len(t, changes, 1)
	require.Equal(t, 100.0, changes[0].X, "position must not move while resizing")
	require.Equal(t, 230.0, changes[0].Width)
}

func TestInteraction_EditContent(t *testing.T) {
	t.Run("idle", func(t *testing.T) {
		var changes []Item
		n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))

		n.EditContent("new text")
		require.Len(t, changes, 1)
		require.Equal(t, "new text", changes[0].Content)
		// Geometry untouched by a content edit.
		require.Equal(t, testItem().X, changes[0].X)
		require.Equal(t, testItem().Width, changes[0].Width)
	})

	t.Run("allowed mid-drag", func(t *testing.T) {
		var changes []Item
		n := NewInteraction(testItem(), testBoard, false, recordChanges(&changes))
		n.StartDrag(160, 100)
		n.PointerMove(200, 150)

		n.EditContent("typed while dragging")
		require.Equal(t, Dragging, n.State())
		last := changes[len(changes)-1]
		require.Equal(t, "typed while dragging", last.Content)
		require.Equal(t, 140.0, last.X, "edit keeps the dragged position")
	})
}
