package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/manigot/bysk-mezar/internal/board"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS board_items (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	x          REAL NOT NULL,
	y          REAL NOT NULL,
	width      REAL NOT NULL,
	height     REAL NOT NULL,
	created_by TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL,
	updated_at TEXT
)`

// SQLite is the embedded fallback backend, used when no Postgres URL is
// configured. Timestamps are stored as RFC 3339 text.
type SQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the database file and ensures the schema.
func NewSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) List(ctx context.Context) ([]board.Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, content, x, y, width, height, created_by, created_at, updated_at
		FROM board_items
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]board.Item, 0, 32)
	for rows.Next() {
		var it board.Item
		var created string
		var updated sql.NullString
		if err := rows.Scan(&it.ID, &it.Content, &it.X, &it.Y, &it.Width, &it.Height, &it.CreatedBy, &created, &updated); err != nil {
			return nil, err
		}
		if it.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
			return nil, err
		}
		if updated.Valid {
			t, err := time.Parse(time.RFC3339Nano, updated.String)
			if err != nil {
				return nil, err
			}
			it.UpdatedAt = &t
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (s *SQLite) Insert(ctx context.Context, content string, x, y, width, height float64, createdBy string) (board.Item, error) {
	it := board.Item{
		ID:        uuid.New().String(),
		Content:   content,
		X:         x,
		Y:         y,
		Width:     width,
		Height:    height,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO board_items (id, content, x, y, width, height, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, it.ID, it.Content, it.X, it.Y, it.Width, it.Height, it.CreatedBy, it.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return board.Item{}, err
	}
	return it, nil
}

func (s *SQLite) Update(ctx context.Context, id string, f board.Fields) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE board_items
		SET content = COALESCE(?, content),
		    x       = COALESCE(?, x),
		    y       = COALESCE(?, y),
		    width   = COALESCE(?, width),
		    height  = COALESCE(?, height),
		    updated_at = ?
		WHERE id = ?
	`, f.Content, f.X, f.Y, f.Width, f.Height, time.Now().UTC().Format(time.RFC3339Nano), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return board.ErrNotFound
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM board_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return board.ErrNotFound
	}
	return nil
}
