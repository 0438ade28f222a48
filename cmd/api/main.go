package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/manigot/bysk-mezar/internal/board"
	"github.com/manigot/bysk-mezar/internal/config"
	"github.com/manigot/bysk-mezar/internal/db"
	"github.com/manigot/bysk-mezar/internal/geometry"
	"github.com/manigot/bysk-mezar/internal/store"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	var st board.Store
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		pg, err := store.NewPostgres(ctx, pool)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		st = pg
		log.Printf("using postgres item store")
	} else {
		lite, err := store.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			log.Fatal(err)
		}
		defer lite.Close()
		st = lite
		log.Printf("using sqlite item store at %s", cfg.SQLitePath)
	}

	ctrl := board.NewController(st, board.Options{DebounceDelay: cfg.DebounceDelay})
	defer ctrl.Close()

	// A failed initial load is surfaced, not fatal; sessions can retry
	// with a refresh.
	if err := ctrl.Refresh(ctx); err != nil {
		log.Printf("initial board load failed: %v", err)
	}

	handlers := board.NewHandlers(st, ctrl, board.SessionOptions{
		Board:         geometry.Rect{Width: cfg.BoardWidth, Height: cfg.BoardHeight},
		ClampToBounds: cfg.ClampToBounds,
		DefaultOwner:  cfg.DefaultOwner,
		FallbackNote:  cfg.FallbackNote,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handlers.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("board API listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
