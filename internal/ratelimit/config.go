package ratelimit

import (
	"time"

	"github.com/danielgtaylor/huma/v2"
)

// MetadataKey is the huma operation metadata key for per-endpoint limits.
const MetadataKey = "ratelimit"

// LimitConfig is one window/ceiling pair.
type LimitConfig struct {
	Window time.Duration
	Max    int64
}

// EndpointConfig overrides rate limiting for a single operation: disable
// it outright, or replace the default limiter with custom limits. The
// redirect path runs far hotter than the API and gets its own ceilings.
type EndpointConfig struct {
	Disabled bool
	Limits   []LimitConfig
}

// GetEndpointConfig extracts the endpoint config from the operation
// metadata, or nil when the operation carries none.
func GetEndpointConfig(ctx huma.Context) *EndpointConfig {
	op := ctx.Operation()
	if op == nil || op.Metadata == nil {
		return nil
	}

	if cfg, ok := op.Metadata[MetadataKey].(EndpointConfig); ok {
		return &cfg
	}

	return nil
}
