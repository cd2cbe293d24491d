// Package health exposes the liveness endpoint covering the service's
// storage dependencies.
package health

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Checker reports connectivity to one dependency.
type Checker interface {
	Ping(ctx context.Context) error
}

// RedisChecker adapts redis.Client to Checker.
type RedisChecker struct {
	client *redis.Client
}

// NewRedisChecker creates a Redis health checker.
func NewRedisChecker(client *redis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

// Ping checks Redis connectivity.
func (r *RedisChecker) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// PostgresChecker adapts pgxpool.Pool to Checker.
type PostgresChecker struct {
	pool *pgxpool.Pool
}

// NewPostgresChecker creates a Postgres health checker.
func NewPostgresChecker(pool *pgxpool.Pool) *PostgresChecker {
	return &PostgresChecker{pool: pool}
}

// Ping checks Postgres connectivity.
func (p *PostgresChecker) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Handler answers the health check endpoint.
type Handler struct {
	postgres Checker
	redis    Checker
}

// NewHandler creates a health handler over the given dependency checkers.
func NewHandler(postgres, redis Checker) *Handler {
	return &Handler{
		postgres: postgres,
		redis:    redis,
	}
}

// Response reports overall and per-dependency health.
type Response struct {
	Body struct {
		Status   string `json:"status"`
		Postgres string `json:"postgres"`
		Redis    string `json:"redis"`
	}
}

// Check pings each dependency. Any unhealthy dependency degrades the
// overall status; the endpoint itself always answers 200 so probes can
// distinguish a degraded service from a dead one.
func (h *Handler) Check(ctx context.Context, _ *struct{}) (*Response, error) {
	resp := &Response{}
	resp.Body.Status = "ok"
	resp.Body.Postgres = statusOf(ctx, h.postgres)
	resp.Body.Redis = statusOf(ctx, h.redis)

	if resp.Body.Postgres != "healthy" || resp.Body.Redis != "healthy" {
		resp.Body.Status = "degraded"
	}

	return resp, nil
}

func statusOf(ctx context.Context, c Checker) string {
	if err := c.Ping(ctx); err != nil {
		return "unhealthy"
	}

	return "healthy"
}

// RegisterRoutes registers the health check route.
func RegisterRoutes(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "health-check",
		Method:      http.MethodGet,
		Path:        "/health",
		Summary:     "Health check",
		Tags:        []string{"Health"},
	}, h.Check)
}
