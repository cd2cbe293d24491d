package container

import (
	"fmt"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor" // CBOR format support for huma
	"github.com/go-chi/chi/v5"
	"github.com/linkshrink/linkshrink/internal/analytics"
	"github.com/linkshrink/linkshrink/internal/authn"
	"github.com/linkshrink/linkshrink/internal/handlers"
	"github.com/linkshrink/linkshrink/internal/health"
	"github.com/linkshrink/linkshrink/internal/messaging"
	"github.com/linkshrink/linkshrink/internal/middleware"
	"github.com/linkshrink/linkshrink/internal/quota"
	"github.com/linkshrink/linkshrink/internal/ratelimit"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// HTTPPackage provides the router and the fully wired huma API: shared
// middlewares, link routes, and the health endpoint.
func HTTPPackage(injector *do.Injector) {
	do.Provide(injector, func(_ *do.Injector) (*chi.Mux, error) {
		return chi.NewMux(), nil
	})

	do.Provide(injector, func(i *do.Injector) (huma.API, error) {
		options := do.MustInvoke[*Options](i)

		router, err := do.Invoke[*chi.Mux](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		resolver, err := do.Invoke[*authn.Resolver](i)
		if err != nil {
			return nil, err
		}

		limiter, err := do.Invoke[ratelimit.Limiter](i)
		if err != nil {
			return nil, err
		}

		limitStore, err := do.Invoke[ratelimit.Store](i)
		if err != nil {
			return nil, err
		}

		svc, err := do.Invoke[*shortlink.Service](i)
		if err != nil {
			return nil, err
		}

		ledger, err := do.Invoke[*quota.Ledger](i)
		if err != nil {
			return nil, err
		}

		publishCreated, err := do.Invoke[messaging.Publish[analytics.LinkCreatedEvent]](i)
		if err != nil {
			return nil, err
		}

		publishVisited, err := do.Invoke[messaging.Publish[analytics.LinkVisitedEvent]](i)
		if err != nil {
			return nil, err
		}

		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		rd, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		api := humachi.New(router, huma.DefaultConfig("LinkShrink", "1.0.0"))
		api.UseMiddleware(
			middleware.RequestMeta(api),
			middleware.Identity(api, resolver),
			middleware.RateLimiter(api, limiter, limitStore, logger),
		)

		baseURL := options.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://localhost:%d", options.Port)
		}

		linkHandler := handlers.NewLinkHandler(svc, ledger, baseURL, publishCreated, publishVisited, logger)
		handlers.RegisterRoutes(api, linkHandler)

		health.RegisterRoutes(api, health.NewHandler(
			health.NewPostgresChecker(pg.Pool),
			health.NewRedisChecker(rd),
		))

		return api, nil
	})
}
