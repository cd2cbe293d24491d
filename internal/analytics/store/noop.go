// Package store provides analytics store implementations.
package store

import (
	"context"

	"github.com/linkshrink/linkshrink/internal/analytics"
	"go.uber.org/zap"
)

// Noop logs analytics events instead of persisting them. Used when no
// analytics database is configured.
type Noop struct {
	logger *zap.Logger
}

// NewNoop creates a logging no-op analytics store.
func NewNoop(logger *zap.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) SaveLinkCreated(_ context.Context, event *analytics.LinkCreatedEvent) error {
	n.logger.Info("link created",
		zap.String("code", event.Code),
		zap.String("originalUrl", event.OriginalURL),
		zap.String("createdBy", event.CreatedBy),
		zap.Time("createdAt", event.CreatedAt),
	)

	return nil
}

func (n *Noop) SaveLinkVisited(_ context.Context, event *analytics.LinkVisitedEvent) error {
	n.logger.Info("link visited",
		zap.String("code", event.Code),
		zap.Time("visitedAt", event.VisitedAt),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Noop)(nil)
