package board

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/manigot/bysk-mezar/internal/bouquet"
	"github.com/manigot/bysk-mezar/internal/geometry"
	"github.com/manigot/bysk-mezar/internal/stringsx"
)

// SessionOptions carry the per-deployment defaults a board session starts
// from; a client's hello message can override the rectangle and owner.
type SessionOptions struct {
	Board         geometry.Rect
	ClampToBounds bool
	DefaultOwner  string
	FallbackNote  string
}

// Handlers serves the REST surface mirroring the store contract plus the
// WebSocket board sessions.
type Handlers struct {
	store   Store
	ctrl    *Controller
	palette *Palette
	opts    SessionOptions
}

func NewHandlers(store Store, ctrl *Controller, opts SessionOptions) *Handlers {
	return &Handlers{
		store:   store,
		ctrl:    ctrl,
		palette: NewPalette(ctrl),
		opts:    opts,
	}
}

func (h *Handlers) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/bouquets", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"bouquets": bouquet.Catalog})
	})

	r.Route("/items", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)

		r.Route("/{id}", func(r chi.Router) {
			r.Put("/", h.update)
			r.Delete("/", h.delete)
		})
	})

	r.Get("/ws", h.serveSession)

	return r
}

type createItemRequest struct {
	Content string  `json:"content"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
}

func (h *Handlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handlers) create(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}
	if stringsx.IsEmpty(req.Content) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "content required"})
		return
	}
	if req.Width <= 0 {
		req.Width = DefaultWidth
	}
	if req.Height <= 0 {
		req.Height = DefaultHeight
	}

	it, err := h.store.Insert(r.Context(), req.Content, req.X, req.Y, req.Width, req.Height, h.owner(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, it)
}

func (h *Handlers) update(w http.ResponseWriter, r *http.Request) {
	var f Fields
	if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid json"})
		return
	}

	err := h.store.Update(r.Context(), chi.URLParam(r, "id"), f)
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Delete(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// owner resolves the identity new rows are attributed to. Authentication is
// the front proxy's concern; here the identity header simply wins over the
// configured default.
func (h *Handlers) owner(r *http.Request) string {
	if v := r.Header.Get("X-Board-User"); v != "" {
		return v
	}
	return h.opts.DefaultOwner
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
