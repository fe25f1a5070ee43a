package sessions

import (
	"context"

	"cinebook/internal/notifications"
	"cinebook/pkg/logger"
)

// kafkaEvents publishes session lifecycle events through the notifications
// producer. Publishing is best effort: a broker outage never fails the
// booking operation that triggered the event.
type kafkaEvents struct {
	producer notifications.Producer
	log      *logger.Logger
}

func NewKafkaEvents(producer notifications.Producer, log *logger.Logger) EventPublisher {
	return &kafkaEvents{
		producer: producer,
		log:      log,
	}
}

func (k *kafkaEvents) SessionCreated(ctx context.Context, session *BookingSession) {
	k.publish(ctx, notifications.EventSessionCreated, session)
}

func (k *kafkaEvents) SessionExpired(ctx context.Context, session *BookingSession) {
	k.publish(ctx, notifications.EventSessionExpired, session)
}

func (k *kafkaEvents) SessionCancelled(ctx context.Context, session *BookingSession) {
	k.publish(ctx, notifications.EventSessionCanceled, session)
}

func (k *kafkaEvents) BookingPaid(ctx context.Context, session *BookingSession) {
	event := k.baseEvent(notifications.EventBookingPaid, session)
	event.SeatLabels = seatLabels(session)
	event.FinalAmount = session.FinalAmount
	k.send(ctx, event)
}

func (k *kafkaEvents) publish(ctx context.Context, eventType notifications.EventType, session *BookingSession) {
	k.send(ctx, k.baseEvent(eventType, session))
}

func (k *kafkaEvents) baseEvent(eventType notifications.EventType, session *BookingSession) *notifications.BookingEvent {
	return &notifications.BookingEvent{
		Type:       eventType,
		SessionID:  session.ID.String(),
		CustomerID: session.CustomerID.String(),
		ShowtimeID: session.ShowtimeID.String(),
	}
}

func (k *kafkaEvents) send(ctx context.Context, event *notifications.BookingEvent) {
	if err := k.producer.Publish(ctx, event); err != nil {
		k.log.ErrorWithContext(ctx, "failed to publish booking event", err, map[string]interface{}{
			"event_type": string(event.Type),
			"session_id": event.SessionID,
		})
	}
}
