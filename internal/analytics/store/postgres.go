package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkshrink/linkshrink/internal/analytics"
)

// Postgres persists analytics events into the link_events table.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres-backed analytics store.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) SaveLinkCreated(ctx context.Context, event *analytics.LinkCreatedEvent) error {
	query := `
		INSERT INTO link_events (kind, code, occurred_at, client_ip, user_agent, detail)
		VALUES ('created', $1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.CreatedAt,
		nullable(event.ClientIP),
		nullable(event.UserAgent),
		nullable(event.CreatedBy),
	)
	if err != nil {
		return fmt.Errorf("insert link created event: %w", err)
	}

	return nil
}

func (p *Postgres) SaveLinkVisited(ctx context.Context, event *analytics.LinkVisitedEvent) error {
	query := `
		INSERT INTO link_events (kind, code, occurred_at, client_ip, user_agent, detail)
		VALUES ('visited', $1, $2, $3, $4, $5)
	`

	_, err := p.pool.Exec(ctx, query,
		event.Code,
		event.VisitedAt,
		nullable(event.ClientIP),
		nullable(event.UserAgent),
		nullable(event.Referrer),
	)
	if err != nil {
		return fmt.Errorf("insert link visited event: %w", err)
	}

	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

// Compile-time check.
var _ analytics.Store = (*Postgres)(nil)
