package worker

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/email"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

// PendingDigestWorker periodically reports bookings still awaiting review.
type PendingDigestWorker struct {
	repo     repository.BookingRepository
	mailer   email.Service
	to       string
	interval time.Duration
}

func NewPendingDigestWorker(repo repository.BookingRepository, mailer email.Service, to string, interval time.Duration) *PendingDigestWorker {
	return &PendingDigestWorker{
		repo:     repo,
		mailer:   mailer,
		to:       to,
		interval: interval,
	}
}

func (w *PendingDigestWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.run(ctx); err != nil {
				log.Error().Err(err).Msg("pending digest failed")
			}
		}
	}
}

func (w *PendingDigestWorker) run(ctx context.Context) error {
	bookings, err := w.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bookings: %w", err)
	}

	var pending []*model.Booking
	for _, b := range bookings {
		if b.Status == model.BookingStatusPending {
			pending = append(pending, b)
		}
	}

	log.Info().Int("pending", len(pending)).Msg("pending bookings")
	if len(pending) == 0 || w.mailer == nil {
		return nil
	}
	return w.mailer.SendCustom(ctx, w.to, fmt.Sprintf("%d bookings awaiting confirmation", len(pending)), Digest(pending))
}

// Digest lists bookings one per line.
func Digest(bookings []*model.Booking) string {
	var sb strings.Builder
	for _, b := range bookings {
		fmt.Fprintf(&sb, "#%d  %s  %s  %s  %s (%s)\n", b.BookingNumber, b.Date, b.Time, b.Service, b.Name, b.Mobile)
	}
	return sb.String()
}
