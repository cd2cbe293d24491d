package container

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/linkshrink/linkshrink/internal/authn"
	"github.com/linkshrink/linkshrink/internal/quota"
	"github.com/linkshrink/linkshrink/internal/ratelimit"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/linkshrink/linkshrink/internal/store"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// RepositoryPackage provides the link repository: Postgres as the source
// of truth, fronted by the Redis read cache.
func RepositoryPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (shortlink.Repository, error) {
		options := do.MustInvoke[*Options](i)

		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		ttl := time.Duration(options.CacheTTL) * time.Second

		return store.NewCachedStore(store.NewPostgresStore(pool), client, ttl), nil
	})
}

// ShortenerPackage provides code generation, allocation, the link service,
// and the quota ledger.
func ShortenerPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*shortlink.Service, error) {
		repo, err := do.Invoke[shortlink.Repository](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		alloc := shortlink.NewAllocator(shortlink.NewNanoidGenerator(), repo, logger)

		return shortlink.NewService(repo, alloc, logger), nil
	})

	do.Provide(injector, func(i *do.Injector) (*quota.Ledger, error) {
		repo, err := do.Invoke[shortlink.Repository](i)
		if err != nil {
			return nil, err
		}

		return quota.NewLedger(repo), nil
	})
}

// AuthPackage provides the session directory and cookie resolver.
func AuthPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (authn.Directory, error) {
		pool, err := do.Invoke[*pgxpool.Pool](i)
		if err != nil {
			return nil, err
		}

		return authn.NewPostgresDirectory(pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (*authn.Resolver, error) {
		directory, err := do.Invoke[authn.Directory](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		return authn.NewResolver(directory, logger), nil
	})
}

// RateLimitPackage provides the Redis-backed request limiter.
func RateLimitPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (ratelimit.Store, error) {
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		return store.NewRateLimitRedisStore(client), nil
	})

	do.Provide(injector, func(i *do.Injector) (ratelimit.Limiter, error) {
		options := do.MustInvoke[*Options](i)

		st, err := do.Invoke[ratelimit.Store](i)
		if err != nil {
			return nil, err
		}

		return ratelimit.NewSlidingWindowLimiter(st, int64(options.RateLimitMax), time.Minute), nil
	})
}
