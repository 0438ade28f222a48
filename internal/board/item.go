package board

import "time"

// Geometry limits for items, in board pixels.
const (
	MinWidth  = 120.0
	MinHeight = 90.0

	DefaultWidth  = 220.0
	DefaultHeight = 140.0
)

// Item is one positioned, resizable, editable card on the board, persisted
// as a row in the store. The content column holds either the structured
// bouquet encoding or bare legacy text; see the bouquet package.
type Item struct {
	ID        string     `json:"id"`
	Content   string     `json:"content"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Width     float64    `json:"width"`
	Height    float64    `json:"height"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
