package board

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/manigot/bysk-mezar/internal/geometry"
	"github.com/manigot/bysk-mezar/internal/stringsx"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// wsMessage is the envelope for both directions of a board session. The
// client drives the board with pointer, drop, edit and delete messages; the
// server answers with item snapshots and surfaced errors.
type wsMessage struct {
	Type       string         `json:"type"`
	Hello      *helloMsg      `json:"hello,omitempty"`
	Drop       *dropMsg       `json:"drop,omitempty"`
	QuickPlace *quickPlaceMsg `json:"quickPlace,omitempty"`
	Pointer    *pointerMsg    `json:"pointer,omitempty"`
	Edit       *editMsg       `json:"edit,omitempty"`
	Delete     *deleteMsg     `json:"delete,omitempty"`

	Item  *Item  `json:"item,omitempty"`
	Items []Item `json:"items,omitempty"`
	Error string `json:"error,omitempty"`
}

type helloMsg struct {
	Board geometry.Rect `json:"board"`
	Owner string        `json:"owner"`
}

type dropMsg struct {
	Payload string  `json:"payload"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type quickPlaceMsg struct {
	Note      string `json:"note"`
	BouquetID string `json:"bouquetId"`
}

type pointerMsg struct {
	ID   string  `json:"id"`
	Mode string  `json:"mode"` // "drag" or "resize", pointerDown only
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

type editMsg struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

type deleteMsg struct {
	ID string `json:"id"`
}

// session is one connected client's view of the board. The read loop owns
// all session state, so a single pointer gesture is active at a time and no
// locking is needed beyond the controller's own.
type session struct {
	conn    *websocket.Conn
	ctrl    *Controller
	palette *Palette
	opts    SessionOptions

	board  geometry.Rect
	owner  string
	active *Interaction
}

func (h *Handlers) serveSession(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s := &session{
		conn:    conn,
		ctrl:    h.ctrl,
		palette: h.palette,
		opts:    h.opts,
		board:   h.opts.Board,
		owner:   h.opts.DefaultOwner,
	}
	s.run(r.Context())
}

func (s *session) run(ctx context.Context) {
	for {
		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			return
		}
		s.handle(ctx, msg)
	}
}

func (s *session) handle(ctx context.Context, msg wsMessage) {
	switch msg.Type {
	case "hello":
		if msg.Hello != nil {
			if msg.Hello.Board.Width > 0 && msg.Hello.Board.Height > 0 {
				s.board = msg.Hello.Board
			}
			if msg.Hello.Owner != "" {
				s.owner = msg.Hello.Owner
			}
		}
		s.sendItems()

	case "refresh":
		if err := s.ctrl.Refresh(ctx); err != nil {
			s.sendError(err)
			return
		}
		s.sendItems()

	case "drop":
		if msg.Drop == nil {
			return
		}
		_, err := s.ctrl.HandleDrop(ctx, msg.Drop.Payload, msg.Drop.X, msg.Drop.Y, s.board, s.opts.FallbackNote, s.owner)
		if err != nil {
			s.sendError(err)
			return
		}
		s.sendItems()

	case "quickPlace":
		if msg.QuickPlace == nil {
			return
		}
		note := msg.QuickPlace.Note
		if stringsx.IsEmpty(note) {
			note = s.opts.FallbackNote
		}
		_, err := s.palette.QuickPlace(ctx, note, msg.QuickPlace.BouquetID, s.board, s.owner)
		if err != nil {
			s.sendError(err)
			return
		}
		s.sendItems()

	case "pointerDown":
		if msg.Pointer == nil {
			return
		}
		it, ok := s.ctrl.Item(msg.Pointer.ID)
		if !ok {
			return
		}
		s.active = NewInteraction(it, s.board, s.opts.ClampToBounds, s.ctrl.ApplyLocalChange)
		if msg.Pointer.Mode == "resize" {
			s.active.StartResize(msg.Pointer.X, msg.Pointer.Y)
		} else {
			s.active.StartDrag(msg.Pointer.X, msg.Pointer.Y)
		}

	case "pointerMove":
		if msg.Pointer == nil || s.active == nil {
			return
		}
		s.active.PointerMove(msg.Pointer.X, msg.Pointer.Y)
		it := s.active.Item()
		s.send(wsMessage{Type: "item", Item: &it})

	case "pointerUp":
		if s.active != nil {
			s.active.PointerUp()
			s.active = nil
		}

	case "edit":
		if msg.Edit == nil {
			return
		}
		content := stringsx.Clip(msg.Edit.Content, maxNoteLen)
		if s.active != nil && s.active.Item().ID == msg.Edit.ID {
			s.active.EditContent(content)
			return
		}
		if it, ok := s.ctrl.Item(msg.Edit.ID); ok {
			it.Content = content
			s.ctrl.ApplyLocalChange(it)
		}

	case "delete":
		if msg.Delete == nil {
			return
		}
		if s.active != nil && s.active.Item().ID == msg.Delete.ID {
			s.active = nil
		}
		s.ctrl.Delete(msg.Delete.ID)
		s.sendItems()
	}
}

func (s *session) sendItems() {
	s.send(wsMessage{Type: "items", Items: s.ctrl.Items()})
}

func (s *session) sendError(err error) {
	s.send(wsMessage{Type: "error", Error: err.Error()})
}

func (s *session) send(msg wsMessage) {
	_ = s.conn.WriteJSON(msg)
}
