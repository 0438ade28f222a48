package board

import "github.com/manigot/bysk-mezar/internal/geometry"

// State is the phase of one card's direct-manipulation state machine.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Interaction tracks drag/resize progress for a single card. Each rendered
// card owns its own Interaction; siblings never share one. Geometry and
// content mutations are reported through onChange exactly once per event;
// persistence is the owning controller's job, not this type's.
//
// The offsets are captured at gesture start: dragging keeps a fixed
// pointer-to-origin offset so the card moves rigidly with the pointer,
// resizing keeps a fixed pointer-to-far-corner offset so the bottom-right
// corner tracks the pointer while the top-left stays put.
type Interaction struct {
	state State
	item  Item
	board geometry.Rect
	clamp bool

	grabOffset   geometry.Point
	cornerOffset geometry.Point

	onChange func(Item)
}

// NewInteraction builds the state machine for one card. board is the
// containing board's screen rectangle; clamp selects the boundary policy
// for drags.
func NewInteraction(item Item, board geometry.Rect, clamp bool, onChange func(Item)) *Interaction {
	return &Interaction{
		state:    Idle,
		item:     item,
		board:    board,
		clamp:    clamp,
		onChange: onChange,
	}
}

// State reports the current phase.
func (n *Interaction) State() State { return n.state }

// Item returns the card as of the last emitted change.
func (n *Interaction) Item() Item { return n.item }

// StartDrag enters Dragging from Idle, capturing the pointer-to-origin
// offset in board-local coordinates. Ignored in any other state, so a
// resize handle press that already claimed the gesture wins.
func (n *Interaction) StartDrag(pointerX, pointerY float64) {
	if n.state != Idle {
		return
	}
	local := geometry.ToLocal(pointerX, pointerY, n.board)
	n.grabOffset = geometry.Point{X: local.X - n.item.X, Y: local.Y - n.item.Y}
	n.state = Dragging
}

// StartResize enters Resizing from Idle, capturing the offset between the
// pointer and the card's bottom-right corner plus the geometry snapshot.
// The handle sits atop the drag region; claiming the gesture here is what
// suppresses the drag handler.
func (n *Interaction) StartResize(pointerX, pointerY float64) {
	if n.state != Idle {
		return
	}
	local := geometry.ToLocal(pointerX, pointerY, n.board)
	n.cornerOffset = geometry.Point{
		X: n.item.X + n.item.Width - local.X,
		Y: n.item.Y + n.item.Height - local.Y,
	}
	n.state = Resizing
}

// PointerMove advances the active gesture. While Dragging it emits the card
// with an updated top-left and unchanged size; while Resizing it emits an
// updated size floored at the minimum with an unchanged position. Idle moves
// are ignored.
func (n *Interaction) PointerMove(pointerX, pointerY float64) {
	local := geometry.ToLocal(pointerX, pointerY, n.board)

	switch n.state {
	case Dragging:
		x := local.X - n.grabOffset.X
		y := local.Y - n.grabOffset.Y
		if n.clamp {
			x = geometry.ClampOffset(x, n.item.Width, n.board.Width)
			y = geometry.ClampOffset(y, n.item.Height, n.board.Height)
		}
		n.item.X = x
		n.item.Y = y
		n.emit()
	case Resizing:
		width := local.X + n.cornerOffset.X - n.item.X
		height := local.Y + n.cornerOffset.Y - n.item.Y
		if width < MinWidth {
			width = MinWidth
		}
		if height < MinHeight {
			height = MinHeight
		}
		n.item.Width = width
		n.item.Height = height
		n.emit()
	}
}

// PointerUp ends the active gesture and returns to Idle.
func (n *Interaction) PointerUp() {
	n.state = Idle
}

// EditContent replaces the card's text. Content edits are independent of the
// drag/resize phase and always permitted.
func (n *Interaction) EditContent(content string) {
	n.item.Content = content
	n.emit()
}

func (n *Interaction) emit() {
	if n.onChange != nil {
		n.onChange(n.item)
	}
}
