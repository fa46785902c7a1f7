package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	chatdomain "messenger-notifier/internal/chat/domain"
	"messenger-notifier/internal/notification/usecase"
	"messenger-notifier/internal/trigger"

	"cloud.google.com/go/pubsub"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// Handler processes one message-created delivery.
type Handler interface {
	Handle(ctx context.Context, event *chatdomain.MessageCreated) error
}

// Service pulls message-created events from a Pub/Sub subscription.
type Service struct {
	pubsubClient   *pubsub.Client
	handler        Handler
	logger         *zap.Logger
	topicName      string
	subName        string
	maxOutstanding int
}

func NewService(ctx context.Context, projectID, topicName, subName string, maxOutstanding int, handler Handler, logger *zap.Logger, opts ...option.ClientOption) (*Service, error) {
	if projectID == "" {
		projectID = pubsub.DetectProjectID
	}
	client, err := pubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}

	return &Service{
		pubsubClient:   client,
		handler:        handler,
		logger:         logger.Named("pubsub"),
		topicName:      topicName,
		subName:        subName,
		maxOutstanding: maxOutstanding,
	}, nil
}

// Start blocks receiving messages until ctx is cancelled. In-flight
// messages run to completion before Start returns; their handlers do not
// observe the cancellation.
func (s *Service) Start(ctx context.Context) error {
	s.logger.Info("Starting subscriber", zap.String("topic", s.topicName), zap.String("subscription", s.subName))

	sub, err := s.ensureSubscription(ctx)
	if err != nil {
		return err
	}
	sub.ReceiveSettings.MaxOutstandingMessages = s.maxOutstanding

	s.logger.Info("Listening for messages", zap.String("subscription", s.subName))
	err = sub.Receive(ctx, func(ctx context.Context, msg *pubsub.Message) {
		if s.process(context.WithoutCancel(ctx), msg.ID, msg.Data) {
			msg.Ack()
		} else {
			msg.Nack()
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("receive on %s: %w", s.subName, err)
	}
	s.logger.Info("Subscriber stopped")
	return nil
}

func (s *Service) ensureSubscription(ctx context.Context) (*pubsub.Subscription, error) {
	sub := s.pubsubClient.Subscription(s.subName)
	exists, err := sub.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check subscription %s: %w", s.subName, err)
	}
	if exists {
		return sub, nil
	}

	topic := s.pubsubClient.Topic(s.topicName)
	topicExists, err := topic.Exists(ctx)
	if err != nil {
		return nil, fmt.Errorf("check topic %s: %w", s.topicName, err)
	}
	if !topicExists {
		return nil, fmt.Errorf("topic %s does not exist, cannot create subscription", s.topicName)
	}

	sub, err = s.pubsubClient.CreateSubscription(ctx, s.subName, pubsub.SubscriptionConfig{
		Topic:       topic,
		AckDeadline: 30 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("create subscription %s: %w", s.subName, err)
	}
	s.logger.Info("Created subscription", zap.String("subscription", s.subName))
	return sub, nil
}

// process reports whether the message should be acked. Undecodable payloads
// and messages without participants are acked since a redelivery cannot
// succeed either.
func (s *Service) process(ctx context.Context, msgID string, data []byte) bool {
	log := s.logger.With(zap.String("pubsub_message_id", msgID))

	event, err := trigger.DecodeFirestoreEvent(data)
	if err != nil {
		log.Error("Dropping undecodable event", zap.Error(err), zap.ByteString("body", data))
		return true
	}
	if event.EventID == "" {
		event.EventID = msgID
	}

	if err := s.handler.Handle(ctx, event); err != nil {
		if errors.Is(err, usecase.ErrInvalidMessage) {
			log.Error("Dropping invalid message", zap.Error(err))
			return true
		}
		log.Warn("Event will be redelivered", zap.Error(err))
		return false
	}
	return true
}

func (s *Service) Close() error {
	return s.pubsubClient.Close()
}
