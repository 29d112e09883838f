package cli

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"quiz-builder/internal/config"
	"quiz-builder/internal/infra/memory"
	"quiz-builder/internal/infra/postgres"
	rediskv "quiz-builder/internal/infra/redis"
	"quiz-builder/internal/infra/sqlite"
	"quiz-builder/internal/storage"
)

// loadConfig reads the config file and applies the --storage override.
func loadConfig(path, backendFlag string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if backendFlag != "" && backendFlag != cfg.Storage.Backend {
		cfg.Storage.Backend = backendFlag
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// openKV connects the configured backend. The returned close function
// releases its connections.
func openKV(ctx context.Context, cfg config.Config) (storage.KV, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		log.Printf("using in-memory storage; data is lost on exit")
		return memory.NewKV(nil), func() {}, nil

	case config.BackendSQLite:
		kv, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("using sqlite storage at %s", cfg.SQLite.Path)
		return kv, func() { kv.Close() }, nil

	case config.BackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Printf("using redis storage at %s", cfg.Redis.Addr)
		return rediskv.NewKV(client, cfg.Redis.Prefix), func() { client.Close() }, nil

	case config.BackendPostgres:
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		log.Printf("using postgres storage")
		return postgres.NewKV(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
}
