package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/email"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/pkg/messaging"
	"github.com/romasdental/clinic-portal/pkg/metrics"
)

// BookingEventWorker consumes booking lifecycle events.
type BookingEventWorker struct {
	broker  messaging.Broker
	channel string
	mailer  email.Service
	metrics *metrics.Metrics
}

// NewBookingEventWorker wires the worker. mailer may be nil, in which case
// events are only logged.
func NewBookingEventWorker(broker messaging.Broker, channel string, mailer email.Service, m *metrics.Metrics) *BookingEventWorker {
	return &BookingEventWorker{
		broker:  broker,
		channel: channel,
		mailer:  mailer,
		metrics: m,
	}
}

// Start blocks until ctx is done or the subscription ends.
func (w *BookingEventWorker) Start(ctx context.Context) error {
	log.Info().Str("channel", w.channel).Msg("booking event worker started")
	defer log.Info().Str("channel", w.channel).Msg("booking event worker stopped")
	return messaging.Consume(ctx, w.broker, w.channel, w.Handle)
}

// Handle processes one raw event.
func (w *BookingEventWorker) Handle(ctx context.Context, payload []byte) error {
	var event model.BookingEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		w.metrics.ObserveWorkerEvent("invalid", err)
		return fmt.Errorf("failed to decode booking event: %w", err)
	}
	if event.Booking == nil {
		err := fmt.Errorf("booking event %s has no booking", event.Type)
		w.metrics.ObserveWorkerEvent(string(event.Type), err)
		return err
	}

	log.Info().
		Str("event", string(event.Type)).
		Str("booking_id", event.Booking.ID).
		Int("booking_number", event.Booking.BookingNumber).
		Str("status", string(event.Booking.Status)).
		Msg("booking event received")

	var err error
	if w.mailer != nil && notify(event) {
		if err = w.mailer.SendBookingNotice(ctx, event); err != nil {
			err = fmt.Errorf("failed to mail booking %d: %w", event.Booking.BookingNumber, err)
		}
	}
	w.metrics.ObserveWorkerEvent(string(event.Type), err)
	return err
}

// notify reports whether the clinic inbox gets a copy of event.
func notify(event model.BookingEvent) bool {
	switch event.Type {
	case model.BookingEventCreated:
		return true
	case model.BookingEventStatusChanged:
		return event.Booking.Status == model.BookingStatusCancelled
	}
	return false
}
