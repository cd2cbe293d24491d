package handlers

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkshrink/linkshrink/internal/ratelimit"
)

// RegisterRoutes registers the shortener routes with per-endpoint rate
// limit configuration.
func RegisterRoutes(api huma.API, h *LinkHandler) {
	// Creation is the expensive write path and gets the strictest limits.
	huma.Register(api, huma.Operation{
		OperationID:   "shorten-url",
		Method:        http.MethodPost,
		Path:          "/api/shorten",
		Summary:       "Create short link",
		Description:   "Allocates a unique short code for the given URL, subject to the free-tier monthly quota.",
		Tags:          []string{"Links"},
		DefaultStatus: http.StatusCreated,
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 10},
					{Window: time.Hour, Max: 100},
				},
			},
		},
	}, h.Shorten)

	huma.Register(api, huma.Operation{
		OperationID: "get-link-stats",
		Method:      http.MethodGet,
		Path:        "/api/urls/{shortCode}",
		Summary:     "Get link stats",
		Description: "Returns the destination URL and visit count for a short code.",
		Tags:        []string{"Links"},
	}, h.Stats)

	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/shorten/quota",
		Summary:     "Get monthly quota",
		Description: "Reports the caller's monthly creation limit, usage, and remainder.",
		Tags:        []string{"Links"},
	}, h.Quota)

	// The redirect path runs far hotter than the API.
	huma.Register(api, huma.Operation{
		OperationID: "redirect",
		Method:      http.MethodGet,
		Path:        "/{shortCode}",
		Summary:     "Redirect to original URL",
		Description: "Redirects to the URL behind a short code and records the visit.",
		Tags:        []string{"Links"},
		Metadata: map[string]any{
			ratelimit.MetadataKey: ratelimit.EndpointConfig{
				Limits: []ratelimit.LimitConfig{
					{Window: time.Minute, Max: 1000},
				},
			},
		},
	}, h.Redirect)
}
