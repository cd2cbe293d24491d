package authn

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// PostgresDirectory reads the users table maintained by the account system.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a Postgres-backed user directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) UserBySessionToken(ctx context.Context, token string) (*User, error) {
	query := `
		SELECT id, COALESCE(plan, 'FREE')
		FROM users
		WHERE session_token = $1
	`

	var (
		id   int64
		plan string
	)

	err := d.pool.QueryRow(ctx, query, token).Scan(&id, &plan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUnknownSession
		}

		return nil, fmt.Errorf("look up session token: %w", err)
	}

	return &User{
		ID:   strconv.FormatInt(id, 10),
		Plan: shortlink.Plan(plan),
	}, nil
}

// Compile-time check.
var _ Directory = (*PostgresDirectory)(nil)
