package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// LoggerPackage provides the zap logger.
func LoggerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*zap.Logger, error) {
		options := do.MustInvoke[*Options](i)

		if options.LogFormat == "json" {
			return zap.NewProduction()
		}

		return zap.NewDevelopment()
	})
}

// Postgres wraps the pool so the injector closes it on shutdown.
type Postgres struct {
	Pool *pgxpool.Pool
}

// Shutdown closes the connection pool.
func (p *Postgres) Shutdown() error {
	p.Pool.Close()

	return nil
}

// PostgresPackage provides the pgx connection pool.
func PostgresPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Postgres, error) {
		options := do.MustInvoke[*Options](i)

		pool, err := pgxpool.New(context.Background(), options.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}

		return &Postgres{Pool: pool}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*pgxpool.Pool, error) {
		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		return pg.Pool, nil
	})
}

// Redis wraps the client so the injector closes it on shutdown.
type Redis struct {
	Client *redis.Client
}

// Shutdown closes the client.
func (r *Redis) Shutdown() error {
	return r.Client.Close()
}

// RedisPackage provides the Redis client.
func RedisPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*Redis, error) {
		options := do.MustInvoke[*Options](i)

		return &Redis{Client: redis.NewClient(&redis.Options{
			Addr: options.RedisAddr,
		})}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*redis.Client, error) {
		r, err := do.Invoke[*Redis](i)
		if err != nil {
			return nil, err
		}

		return r.Client, nil
	})
}
