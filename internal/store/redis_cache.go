package store

import (
	"context"
	"strconv"
	"time"

	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/redis/go-redis/v9"
)

// CachedStore wraps a shortlink.Repository with Redis caching for the hot
// redirect path. Writes go through to the inner store first; cache errors
// degrade to the inner store and never fail the operation. Quota counting
// always hits the inner store, since the ledger needs authoritative counts.
type CachedStore struct {
	inner  shortlink.Repository
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewCachedStore creates a Redis cache decorator around inner.
func NewCachedStore(inner shortlink.Repository, client *redis.Client, ttl time.Duration) *CachedStore {
	return &CachedStore{
		inner:  inner,
		client: client,
		prefix: "link:",
		ttl:    ttl,
	}
}

func (c *CachedStore) Create(ctx context.Context, code shortlink.Code, originalURL string, createdBy shortlink.Identity) (*shortlink.ShortLink, error) {
	link, err := c.inner.Create(ctx, code, originalURL, createdBy)
	if err != nil {
		return nil, err
	}

	c.cache(ctx, link)

	return link, nil
}

func (c *CachedStore) GetByCode(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	if link, err := c.fromCache(ctx, code); err == nil {
		return link, nil
	}

	link, err := c.inner.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	c.cache(ctx, link)

	return link, nil
}

// Exists prefers the cache: a cached code is definitely taken. A cache
// miss still has to consult the inner store, which holds the truth.
func (c *CachedStore) Exists(ctx context.Context, code shortlink.Code) (bool, error) {
	n, err := c.client.Exists(ctx, c.key(code)).Result()
	if err == nil && n > 0 {
		return true, nil
	}

	return c.inner.Exists(ctx, code)
}

func (c *CachedStore) IncrementVisit(ctx context.Context, code shortlink.Code) error {
	if err := c.inner.IncrementVisit(ctx, code); err != nil {
		return err
	}

	// Keep a cached counter coherent; HIncrBy on a missing key would
	// resurrect a partial entry, so only bump existing ones.
	key := c.key(code)
	if n, err := c.client.Exists(ctx, key).Result(); err == nil && n > 0 {
		_ = c.client.HIncrBy(ctx, key, "visit_count", 1).Err()
	}

	return nil
}

func (c *CachedStore) CountCreatedSince(ctx context.Context, createdBy shortlink.Identity, since time.Time) (int64, error) {
	return c.inner.CountCreatedSince(ctx, createdBy, since)
}

func (c *CachedStore) key(code shortlink.Code) string {
	return c.prefix + string(code)
}

func (c *CachedStore) cache(ctx context.Context, link *shortlink.ShortLink) {
	key := c.key(link.Code)

	pipe := c.client.Pipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"id":           link.ID,
		"code":         string(link.Code),
		"original_url": link.OriginalURL,
		"created_by":   link.CreatedBy.Key(),
		"visit_count":  link.VisitCount,
		"created_at":   link.CreatedAt.UnixNano(),
	})

	if c.ttl > 0 {
		pipe.Expire(ctx, key, c.ttl)
	}

	_, _ = pipe.Exec(ctx)
}

func (c *CachedStore) fromCache(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	fields, err := c.client.HGetAll(ctx, c.key(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(fields) == 0 {
		return nil, shortlink.ErrNotFound
	}

	link := &shortlink.ShortLink{
		Code:        shortlink.Code(fields["code"]),
		OriginalURL: fields["original_url"],
	}

	link.ID, _ = strconv.ParseInt(fields["id"], 10, 64)
	link.VisitCount, _ = strconv.ParseInt(fields["visit_count"], 10, 64)

	if nanos, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		link.CreatedAt = time.Unix(0, nanos)
	}

	if identity, err := shortlink.ParseIdentityKey(fields["created_by"]); err == nil {
		link.CreatedBy = identity
	}

	return link, nil
}

// Compile-time check.
var _ shortlink.Repository = (*CachedStore)(nil)
