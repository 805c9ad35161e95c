package main

import (
	"context"
	"fmt"
	"log/slog"

	"regnet/internal/ledger"
	"regnet/internal/ledger/redisstore"
	"regnet/internal/ledger/sqlstore"
	"regnet/internal/platform/config"
	"regnet/internal/platform/database"
	"regnet/internal/platform/redis"
)

// openStore selects the world state backend named by REGNET_LEDGER_BACKEND.
func openStore(ctx context.Context, cfg config.Server, log *slog.Logger) (ledger.Store, func(), error) {
	switch cfg.Ledger.Backend {
	case config.BackendMemory:
		log.Warn("using in-memory ledger, state is lost on restart")
		return ledger.NewInMemory(), func() {}, nil

	case config.BackendPostgres:
		db, err := database.OpenPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		store := sqlstore.New(db, sqlstore.Postgres)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	case config.BackendSQLite:
		db, err := database.OpenSQLite(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		store := sqlstore.New(db, sqlstore.SQLite)
		if err := store.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return store, func() { _ = db.Close() }, nil

	case config.BackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		if client == nil {
			return nil, nil, fmt.Errorf("REDIS_URL is required for the redis backend")
		}
		store := redisstore.New(client.Client, redisstore.WithKeyPrefix(cfg.Redis.KeyPrefix))
		return store, func() { _ = client.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown ledger backend %q", cfg.Ledger.Backend)
	}
}
