package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/dbconfig"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store/memstore"
	"github.com/zo0o0ot/cl-leagify-fantasy-auction-sub000/internal/store/postgres"
)

// setupStore picks the persistence backend. STORE=memory runs everything
// in-process, useful for local demos and tests.
func setupStore(ctx context.Context, logger zerolog.Logger) (store.Store, func(), error) {
	if getEnv("STORE", "postgres") == "memory" {
		logger.Info().Msg("using in-memory store")
		return memstore.New(), func() {}, nil
	}

	cfg := dbconfig.NewConfigFromEnv()
	db, err := postgres.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Database).
		Msg("connected to postgres")
	return postgres.New(db), func() { db.Close() }, nil
}
