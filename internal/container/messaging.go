package container

import (
	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/linkshrink/linkshrink/internal/analytics"
	analyticsstore "github.com/linkshrink/linkshrink/internal/analytics/store"
	"github.com/linkshrink/linkshrink/internal/messaging"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
)

// PublisherGroupPackage provides the Redis stream publisher and the typed
// publish functions for the link lifecycle topics.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		publisher, err := redisstream.NewPublisher(redisstream.PublisherConfig{
			Client: client,
		}, watermill.NewStdLogger(false, false))
		if err != nil {
			return nil, err
		}

		return messaging.NewPublisherGroup(publisher), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkCreatedEvent], error) {
		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublishFunc[analytics.LinkCreatedEvent](group.Publisher(), analytics.TopicLinkCreated), nil
	})

	do.Provide(injector, func(i *do.Injector) (messaging.Publish[analytics.LinkVisitedEvent], error) {
		group, err := do.Invoke[*messaging.PublisherGroup](i)
		if err != nil {
			return nil, err
		}

		return messaging.NewPublishFunc[analytics.LinkVisitedEvent](group.Publisher(), analytics.TopicLinkVisited), nil
	})
}

// ConsumerGroupPackage provides the analytics consumer group reading the
// link lifecycle topics from Redis streams and persisting them.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		options := do.MustInvoke[*Options](i)

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		// Without a database the consumer still drains the streams.
		if options.DatabaseURL == "" {
			return analyticsstore.NewNoop(logger), nil
		}

		pg, err := do.Invoke[*Postgres](i)
		if err != nil {
			return nil, err
		}

		return analyticsstore.NewPostgres(pg.Pool), nil
	})

	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		options := do.MustInvoke[*Options](i)

		client, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}

		return redisstream.NewSubscriber(redisstream.SubscriberConfig{
			Client:        client,
			ConsumerGroup: options.ConsumerGroup,
		}, watermill.NewStdLogger(false, false))
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		subscriber, err := do.Invoke[message.Subscriber](i)
		if err != nil {
			return nil, err
		}

		logger, err := do.Invoke[*zap.Logger](i)
		if err != nil {
			return nil, err
		}

		st, err := do.Invoke[analytics.Store](i)
		if err != nil {
			return nil, err
		}

		group := messaging.NewConsumerGroup(subscriber, logger)

		recorder := analytics.NewRecorder(st, logger)
		for _, consumer := range recorder.Consumers(subscriber, logger) {
			group.Add(consumer)
		}

		return group, nil
	})
}
