package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/config"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/messaging"
	"github.com/romasdental/clinic-portal/pkg/metrics"
)

// Catalog lists the service titles a booking may name.
type Catalog interface {
	Titles(ctx context.Context) ([]string, error)
}

// Config holds the clinic settings used for validation and notifications.
type Config struct {
	Rules            Rules
	Location         *time.Location
	ClinicName       string
	Address          string
	NotifyNumbers    []string
	CountryCode      string
	MessagingBaseURL string
	Channel          string
}

// NewConfig derives the booking settings from the clinic configuration.
func NewConfig(clinic config.ClinicConfig, channel string) (Config, error) {
	closed, err := clinic.ClosedWeekday()
	if err != nil {
		return Config{}, fmt.Errorf("invalid closed day: %w", err)
	}
	loc, err := clinic.Location()
	if err != nil {
		return Config{}, fmt.Errorf("invalid timezone: %w", err)
	}
	return Config{
		Rules:            Rules{ClosedDay: closed, TimeSlots: clinic.TimeSlots},
		Location:         loc,
		ClinicName:       clinic.Name,
		Address:          clinic.Address,
		NotifyNumbers:    clinic.NotifyNumbers,
		CountryCode:      clinic.CountryCode,
		MessagingBaseURL: clinic.MessagingBaseURL,
		Channel:          channel,
	}, nil
}

type Service struct {
	repo    repository.BookingRepository
	catalog Catalog
	broker  messaging.Broker
	metrics *metrics.Metrics
	cfg     Config

	now   func() time.Time
	newID func() string
}

// NewService wires the booking service. catalog, broker and m may be nil.
func NewService(repo repository.BookingRepository, catalog Catalog, broker messaging.Broker, m *metrics.Metrics, cfg Config) *Service {
	return &Service{
		repo:    repo,
		catalog: catalog,
		broker:  broker,
		metrics: m,
		cfg:     cfg,
		now:     func() time.Time { return time.Now().UTC() },
		newID:   func() string { return uuid.New().String() },
	}
}

// Create validates the form, stores a pending booking under the next number
// and returns the links that notify the clinic.
func (s *Service) Create(ctx context.Context, req model.BookingRequest) (*model.BookingReceipt, error) {
	rules := s.cfg.Rules
	rules.Today = Today(s.now(), s.cfg.Location)
	clean, errs := Validate(req, rules, s.serviceTitles(ctx))
	if len(errs) > 0 {
		return nil, apperrors.Validation(errs)
	}

	b := &model.Booking{
		ID:         s.newID(),
		Name:       clean.Name,
		Mobile:     clean.Mobile,
		Service:    clean.Service,
		Date:       clean.Date,
		Time:       clean.Time,
		Status:     model.BookingStatusPending,
		Timestamps: model.Timestamps{CreatedAt: s.now()},
	}
	if err := s.repo.CreateNumbered(ctx, b); err != nil {
		return nil, apperrors.Store("save booking", err)
	}
	s.metrics.BookingCreated()

	message := ClinicMessage(s.cfg.ClinicName, b)
	links := make([]model.NotificationLink, 0, len(s.cfg.NotifyNumbers))
	for _, number := range s.cfg.NotifyNumbers {
		links = append(links, model.NotificationLink{
			Kind:      model.NotificationClinic,
			Recipient: number,
			URL:       Link(s.cfg.MessagingBaseURL, s.cfg.CountryCode, number, message),
		})
	}
	s.metrics.LinksProduced(string(model.NotificationClinic), len(links))

	log.Info().
		Str("booking_id", b.ID).
		Int("booking_number", b.BookingNumber).
		Str("service", b.Service).
		Msg("booking created")

	s.publish(ctx, model.BookingEvent{
		Type:       model.BookingEventCreated,
		Booking:    b,
		Message:    message,
		OccurredAt: b.CreatedAt,
	})

	return &model.BookingReceipt{Booking: b, Links: links}, nil
}

// UpdateStatus sets any known status regardless of the current one. Moving
// into confirmed yields a link that notifies the patient.
func (s *Service) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.StatusChange, error) {
	if !status.Valid() {
		return nil, apperrors.Validation(map[string]string{"status": "Invalid status"})
	}

	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.repo.UpdateStatus(ctx, id, status, now); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, apperrors.Store("update booking", err)
	}

	change := &model.StatusChange{Booking: b, PreviousStatus: b.Status}
	b.Status = status
	b.UpdatedAt = &now
	s.metrics.StatusChanged(string(status))

	var message string
	if status == model.BookingStatusConfirmed && change.PreviousStatus != model.BookingStatusConfirmed {
		message = ConfirmationMessage(s.cfg.ClinicName, s.cfg.Address, b)
		change.Link = &model.NotificationLink{
			Kind:      model.NotificationConfirmation,
			Recipient: b.Mobile,
			URL:       Link(s.cfg.MessagingBaseURL, s.cfg.CountryCode, b.Mobile, message),
		}
		s.metrics.LinksProduced(string(model.NotificationConfirmation), 1)
	}

	log.Info().
		Str("booking_id", id).
		Str("from", string(change.PreviousStatus)).
		Str("to", string(status)).
		Msg("booking status updated")

	s.publish(ctx, model.BookingEvent{
		Type:       model.BookingEventStatusChanged,
		Booking:    b,
		Previous:   change.PreviousStatus,
		Message:    message,
		OccurredAt: now,
	})

	return change, nil
}

func (s *Service) Get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("booking", err)
		}
		return nil, apperrors.Store("load booking", err)
	}
	return b, nil
}

// List returns every booking, newest first.
func (s *Service) List(ctx context.Context) ([]*model.Booking, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Store("load bookings", err)
	}
	return items, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("booking", err)
		}
		return apperrors.Store("delete booking", err)
	}

	log.Info().Str("booking_id", id).Msg("booking deleted")
	s.publish(ctx, model.BookingEvent{
		Type:       model.BookingEventDeleted,
		Booking:    b,
		OccurredAt: s.now(),
	})
	return nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *Service) CountPending(ctx context.Context) (int, error) {
	return s.repo.CountByStatus(ctx, model.BookingStatusPending)
}

func (s *Service) serviceTitles(ctx context.Context) []string {
	if s.catalog == nil {
		return nil
	}
	titles, err := s.catalog.Titles(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("service list unavailable, accepting any service")
		return nil
	}
	if len(titles) == 0 {
		log.Warn().Msg("service list is empty, accepting any service")
	}
	return titles
}

// publish is best-effort.
func (s *Service) publish(ctx context.Context, event model.BookingEvent) {
	if s.broker == nil || s.cfg.Channel == "" {
		return
	}
	err := s.broker.Publish(ctx, s.cfg.Channel, event)
	s.metrics.ObservePublish(s.cfg.Channel, err)
	if err != nil {
		log.Warn().Err(err).
			Str("event", string(event.Type)).
			Str("booking_id", event.Booking.ID).
			Msg("failed to publish booking event")
	}
}
