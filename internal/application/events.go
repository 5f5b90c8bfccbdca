package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/PawsProtect/service-welfare/internal/platform/kafka"
)

// Event types published by the service.
const (
	EventSource            = "service-welfare"
	EventAppointmentBooked = "pawsprotect.appointment.booked"
	EventReportSubmitted   = "pawsprotect.report.submitted"
	EventAdoptionRequested = "pawsprotect.adoption.requested"
)

// EventPublisher publishes CloudEvents. *kafka.Producer satisfies it.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event kafka.CloudEvent) error
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Metrics receives domain outcome counts. *metrics.Collector satisfies it.
type Metrics interface {
	RecordBooking(clinicID, outcome string)
	RecordReport(outcome string)
	RecordAdoptionRequest(outcome string)
	RecordFilterResult(n int)
}

type noopMetrics struct{}

func (noopMetrics) RecordBooking(string, string) {}
func (noopMetrics) RecordReport(string) {}
func (noopMetrics) RecordAdoptionRequest(string) {}
func (noopMetrics) RecordFilterResult(int) {}

// Deps are the cross-cutting collaborators shared by every service. Nil
// fields fall back to no-ops and the system clock.
type Deps struct {
	Publisher EventPublisher
	Topic     string
	Metrics   Metrics
	Clock     Clock
	Logger    *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Metrics == nil {
		d.Metrics = noopMetrics{}
	}
	if d.Clock == nil {
		d.Clock = systemClock{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	return d
}

// publishEvent emits an event. Publishing failures are logged and never
// fail the calling operation.
func (d Deps) publishEvent(ctx context.Context, eventType, key string, data any) {
	if d.Publisher == nil {
		return
	}
	cloudEvent, err := kafka.NewCloudEvent(EventSource, eventType, data)
	if err != nil {
		d.Logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}
	if err := d.Publisher.Publish(ctx, d.Topic, key, cloudEvent); err != nil {
		d.Logger.Error("failed to publish event",
			zap.String("topic", d.Topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
