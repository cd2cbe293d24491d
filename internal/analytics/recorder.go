package analytics

import (
	"context"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/linkshrink/linkshrink/internal/messaging"
	"go.uber.org/zap"
)

// Recorder adapts the analytics store to messaging handlers.
type Recorder struct {
	store  Store
	logger *zap.Logger
}

// NewRecorder creates a recorder over the given store.
func NewRecorder(store Store, logger *zap.Logger) *Recorder {
	return &Recorder{
		store:  store,
		logger: logger,
	}
}

// HandleLinkCreated persists a creation event.
func (r *Recorder) HandleLinkCreated(ctx context.Context, event *LinkCreatedEvent) error {
	if err := r.store.SaveLinkCreated(ctx, event); err != nil {
		return err
	}

	r.logger.Debug("recorded link created event", zap.String("code", event.Code))

	return nil
}

// HandleLinkVisited persists a visit event.
func (r *Recorder) HandleLinkVisited(ctx context.Context, event *LinkVisitedEvent) error {
	if err := r.store.SaveLinkVisited(ctx, event); err != nil {
		return err
	}

	r.logger.Debug("recorded link visited event", zap.String("code", event.Code))

	return nil
}

// Consumers builds the consumer set for both topics on a shared subscriber.
func (r *Recorder) Consumers(subscriber message.Subscriber, logger *zap.Logger) []messaging.Runnable {
	return []messaging.Runnable{
		messaging.NewConsumer(subscriber, TopicLinkCreated, r.HandleLinkCreated, logger),
		messaging.NewConsumer(subscriber, TopicLinkVisited, r.HandleLinkVisited, logger),
	}
}
