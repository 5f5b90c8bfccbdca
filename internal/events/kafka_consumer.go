package events

import (
	"context"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/application"
	"github.com/PawsProtect/service-welfare/internal/platform/domain"
	"github.com/PawsProtect/service-welfare/internal/platform/kafka"
)

// Identity provider event types.
const (
	UserRegistered = "identity.user.registered"
	UserUpdated    = "identity.user.updated"
)

// UserRegistrar stores profiles announced by the identity provider.
type UserRegistrar interface {
	RegisterUser(ctx context.Context, in application.RegisterUserInput) (*application.UserDTO, error)
}

// ConsumeMetrics counts handled events.
type ConsumeMetrics interface {
	RecordEventConsumed(eventType, outcome string)
}

// UserEventConsumer keeps the users collection in step with the identity
// provider.
type UserEventConsumer struct {
	consumer *kafka.Consumer
	service  UserRegistrar
	metrics  ConsumeMetrics
	logger   *zap.Logger
}

// NewUserEventConsumer creates a new UserEventConsumer.
func NewUserEventConsumer(
	brokers []string,
	groupID, topic string,
	service UserRegistrar,
	metrics ConsumeMetrics,
	logger *zap.Logger,
) *UserEventConsumer {
	return &UserEventConsumer{
		consumer: kafka.NewConsumer(brokers, groupID, topic, logger),
		service:  service,
		metrics:  metrics,
		logger:   logger,
	}
}

// Start begins consuming user events. This blocks until the context is cancelled.
func (c *UserEventConsumer) Start(ctx context.Context) error {
	return c.consumer.Consume(ctx, c.handleMessage)
}

// Close closes the underlying Kafka consumer.
func (c *UserEventConsumer) Close() error {
	return c.consumer.Close()
}

func (c *UserEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	cloudEvent, err := kafka.ParseCloudEvent(msg.Value)
	if err != nil {
		c.logger.Error("failed to parse cloud event from user topic",
			zap.Error(err),
			zap.String("raw", string(msg.Value)),
		)
		c.record("unknown", "malformed")
		return nil // Don't retry malformed messages
	}

	switch cloudEvent.Type {
	case UserRegistered, UserUpdated:
		return c.handleUser(ctx, cloudEvent)
	default:
		c.logger.Debug("ignoring unhandled user event type",
			zap.String("type", cloudEvent.Type),
		)
		c.record(cloudEvent.Type, "ignored")
		return nil
	}
}

func (c *UserEventConsumer) handleUser(ctx context.Context, cloudEvent kafka.CloudEvent) error {
	var in application.RegisterUserInput
	if err := cloudEvent.ParseData(&in); err != nil {
		c.logger.Error("failed to parse user event data", zap.Error(err))
		c.record(cloudEvent.Type, "malformed")
		return nil
	}

	if _, err := c.service.RegisterUser(ctx, in); err != nil {
		if domain.IsValidation(err) {
			c.logger.Warn("dropping invalid user event",
				zap.String("user_id", in.UserID),
				zap.Error(err),
			)
			c.record(cloudEvent.Type, "invalid")
			return nil
		}
		c.logger.Error("failed to store user profile",
			zap.String("user_id", in.UserID),
			zap.Error(err),
		)
		c.record(cloudEvent.Type, "store_error")
		return err
	}

	c.record(cloudEvent.Type, "success")
	return nil
}

func (c *UserEventConsumer) record(eventType, outcome string) {
	if c.metrics != nil {
		c.metrics.RecordEventConsumed(eventType, outcome)
	}
}
