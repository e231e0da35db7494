package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/loopmarket/service-rental/internal/domain/booking"
	"github.com/loopmarket/service-rental/internal/pkg/kafka"
)

const eventSource = "service-rental"

// Publisher emits booking lifecycle events. Publishing is fire-and-forget:
// a broker failure is logged and never fails the originating request.
type Publisher struct {
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewPublisher creates a Publisher. A nil producer disables publishing,
// which unit tests rely on.
func NewPublisher(producer *kafka.Producer, logger *zap.Logger) *Publisher {
	return &Publisher{producer: producer, logger: logger}
}

// BookingCreated publishes a booking.created event.
func (p *Publisher) BookingCreated(ctx context.Context, b *booking.Booking) {
	p.publish(ctx, BookingCreated, BookingCreatedEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID(),
		ItemName:   b.Item().Name(),
		BookerID:   b.Booker().ID(),
		OwnerID:    b.Item().Owner().ID(),
		Start:      b.Start(),
		End:        b.End(),
		OccurredAt: time.Now().UTC(),
	})
}

// BookingResolved publishes booking.approved or booking.rejected depending
// on the booking's terminal status.
func (p *Publisher) BookingResolved(ctx context.Context, b *booking.Booking) {
	eventType := BookingRejected
	if b.Status() == booking.StatusApproved {
		eventType = BookingApproved
	}
	p.publish(ctx, eventType, BookingResolvedEvent{
		BookingID:  b.ID(),
		ItemID:     b.Item().ID(),
		BookerID:   b.Booker().ID(),
		OwnerID:    b.Item().Owner().ID(),
		Status:     b.Status().String(),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(ctx context.Context, eventType string, data any) {
	if p.producer == nil {
		return
	}

	ce, err := kafka.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		p.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := p.producer.PublishEvent(ctx, TopicBookingEvents, ce); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
