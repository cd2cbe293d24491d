package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// uniqueViolation is the SQLSTATE for unique-index conflicts.
const uniqueViolation = "23505"

// PostgresStore is the PostgreSQL implementation of shortlink.Repository.
// The unique index on short_links.code is the authoritative uniqueness
// guarantee; Create maps its violation to shortlink.ErrCodeExists.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Postgres-backed link store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (p *PostgresStore) Create(ctx context.Context, code shortlink.Code, originalURL string, createdBy shortlink.Identity) (*shortlink.ShortLink, error) {
	query := `
		INSERT INTO short_links (code, original_url, created_by)
		VALUES ($1, $2, $3)
		RETURNING id, visit_count, created_at
	`

	link := &shortlink.ShortLink{
		Code:        code,
		OriginalURL: originalURL,
		CreatedBy:   createdBy,
	}

	err := p.pool.QueryRow(ctx, query, string(code), originalURL, createdBy.Key()).
		Scan(&link.ID, &link.VisitCount, &link.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, shortlink.ErrCodeExists
		}

		return nil, fmt.Errorf("insert short link: %w", err)
	}

	return link, nil
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	query := `
		SELECT id, code, original_url, created_by, visit_count, created_at
		FROM short_links
		WHERE code = $1
	`

	return scanLink(p.pool.QueryRow(ctx, query, string(code)))
}

func (p *PostgresStore) Exists(ctx context.Context, code shortlink.Code) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM short_links WHERE code = $1)`

	var exists bool

	if err := p.pool.QueryRow(ctx, query, string(code)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check short link existence: %w", err)
	}

	return exists, nil
}

func (p *PostgresStore) IncrementVisit(ctx context.Context, code shortlink.Code) error {
	query := `
		UPDATE short_links
		SET visit_count = visit_count + 1
		WHERE code = $1
	`

	tag, err := p.pool.Exec(ctx, query, string(code))
	if err != nil {
		return fmt.Errorf("increment visit count: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return shortlink.ErrNotFound
	}

	return nil
}

func (p *PostgresStore) CountCreatedSince(ctx context.Context, createdBy shortlink.Identity, since time.Time) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM short_links
		WHERE created_by = $1 AND created_at >= $2
	`

	var count int64

	if err := p.pool.QueryRow(ctx, query, createdBy.Key(), since).Scan(&count); err != nil {
		return 0, fmt.Errorf("count created links: %w", err)
	}

	return count, nil
}

func scanLink(row pgx.Row) (*shortlink.ShortLink, error) {
	var (
		link      shortlink.ShortLink
		code      string
		createdBy *string
	)

	err := row.Scan(&link.ID, &code, &link.OriginalURL, &createdBy, &link.VisitCount, &link.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortlink.ErrNotFound
		}

		return nil, fmt.Errorf("scan short link: %w", err)
	}

	link.Code = shortlink.Code(code)

	if createdBy != nil && *createdBy != "" {
		identity, err := shortlink.ParseIdentityKey(*createdBy)
		if err != nil {
			return nil, fmt.Errorf("scan short link owner: %w", err)
		}

		link.CreatedBy = identity
	}

	return &link, nil
}

// Compile-time check.
var _ shortlink.Repository = (*PostgresStore)(nil)
