// Package store provides the durable backends behind the board.Store
// contract: Postgres for deployments, embedded SQLite for local use.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/manigot/bysk-mezar/internal/board"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS board_items (
	id         TEXT PRIMARY KEY,
	content    TEXT NOT NULL,
	x          DOUBLE PRECISION NOT NULL,
	y          DOUBLE PRECISION NOT NULL,
	width      DOUBLE PRECISION NOT NULL,
	height     DOUBLE PRECISION NOT NULL,
	created_by TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ
)`

// Postgres stores items in a board_items table.
type Postgres struct {
	db *sql.DB

	stmtList   *sql.Stmt
	stmtInsert *sql.Stmt
	stmtUpdate *sql.Stmt
	stmtDelete *sql.Stmt
}

// NewPostgres ensures the schema and prepares the row statements.
func NewPostgres(ctx context.Context, db *sql.DB) (*Postgres, error) {
	if _, err := db.ExecContext(ctx, postgresSchema); err != nil {
		return nil, err
	}

	list, err := db.PrepareContext(ctx, `
		SELECT id, content, x, y, width, height, created_by, created_at, updated_at
		FROM board_items
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}

	ins, err := db.PrepareContext(ctx, `
		INSERT INTO board_items (id, content, x, y, width, height, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`)
	if err != nil {
		return nil, err
	}

	upd, err := db.PrepareContext(ctx, `
		UPDATE board_items
		SET content = COALESCE($1, content),
		    x       = COALESCE($2, x),
		    y       = COALESCE($3, y),
		    width   = COALESCE($4, width),
		    height  = COALESCE($5, height),
		    updated_at = $6
		WHERE id = $7
	`)
	if err != nil {
		return nil, err
	}

	del, err := db.PrepareContext(ctx, `DELETE FROM board_items WHERE id = $1`)
	if err != nil {
		return nil, err
	}

	return &Postgres{
		db:         db,
		stmtList:   list,
		stmtInsert: ins,
		stmtUpdate: upd,
		stmtDelete: del,
	}, nil
}

func (p *Postgres) Close() error {
	for _, s := range []*sql.Stmt{p.stmtList, p.stmtInsert, p.stmtUpdate, p.stmtDelete} {
		if s != nil {
			_ = s.Close()
		}
	}
	return nil
}

func (p *Postgres) List(ctx context.Context) ([]board.Item, error) {
	rows, err := p.stmtList.QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItems(rows)
}

func (p *Postgres) Insert(ctx context.Context, content string, x, y, width, height float64, createdBy string) (board.Item, error) {
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
	_, err := p.stmtInsert.ExecContext(ctx, it.ID, it.Content, it.X, it.Y, it.Width, it.Height, it.CreatedBy, it.CreatedAt)
	if err != nil {
		return board.Item{}, err
	}
	return it, nil
}

func (p *Postgres) Update(ctx context.Context, id string, f board.Fields) error {
	res, err := p.stmtUpdate.ExecContext(ctx, f.Content, f.X, f.Y, f.Width, f.Height, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return board.ErrNotFound
	}
	return nil
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	res, err := p.stmtDelete.ExecContext(ctx, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return board.ErrNotFound
	}
	return nil
}

func scanItems(rows *sql.Rows) ([]board.Item, error) {
	out := make([]board.Item, 0, 32)
	for rows.Next() {
		var it board.Item
		var updated sql.NullTime
		if err := rows.Scan(&it.ID, &it.Content, &it.X, &it.Y, &it.Width, &it.Height, &it.CreatedBy, &it.CreatedAt, &updated); err != nil {
			return nil, err
		}
		if updated.Valid {
			t := updated.Time
			it.UpdatedAt = &t
		}
		out = append(out, it)
	}
	return out, rows.Err()
}
