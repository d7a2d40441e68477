package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

// bookingNumberLock is the advisory lock key serialising number assignment.
const bookingNumberLock int64 = 0x5244_4331

const bookingColumns = `id, booking_number, name, mobile, service,
		appointment_date, time_slot, status, created_at, updated_at`

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(base BaseRepository) repository.BookingRepository {
	return &bookingRepository{BaseRepository: base}
}

// CreateNumbered takes a transaction scoped advisory lock so concurrent
// submissions read the current maximum one at a time. The unique constraint
// on booking_number backs this up.
func (r *bookingRepository) CreateNumbered(ctx context.Context, b *model.Booking) error {
	start := time.Now()
	err := r.WithTx(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, bookingNumberLock); err != nil {
			return fmt.Errorf("failed to lock booking numbers: %w", err)
		}

		var last int
		if err := tx.GetContext(ctx, &last,
			`SELECT COALESCE(MAX(booking_number), $1) FROM bookings`,
			model.BookingNumberBase,
		); err != nil {
			return fmt.Errorf("failed to read last booking number: %w", err)
		}

		query := `
		INSERT INTO bookings (
			id, booking_number, name, mobile, service,
			appointment_date, time_slot, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
		if _, err := tx.ExecContext(ctx, query,
			b.ID,
			last+1,
			b.Name,
			b.Mobile,
			b.Service,
			b.Date,
			b.Time,
			b.Status,
			b.CreatedAt,
		); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		b.BookingNumber = last + 1
		return nil
	})
	r.observe("bookings.create", start, err)
	return err
}

func (r *bookingRepository) Get(ctx context.Context, id string) (*model.Booking, error) {
	start := time.Now()
	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)
	err = notFound(err)
	r.observe("bookings.get", start, ignoreNotFound(err))
	if err != nil {
		if err == repository.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) List(ctx context.Context) ([]*model.Booking, error) {
	start := time.Now()
	bookings := []*model.Booking{}
	err := r.db.SelectContext(ctx, &bookings,
		`SELECT `+bookingColumns+` FROM bookings ORDER BY created_at DESC, booking_number DESC`)
	r.observe("bookings.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus, at time.Time) error {
	query := `
		UPDATE bookings
		SET status = $1, updated_at = $2
		WHERE id = $3
	`
	err := r.execAffecting(ctx, "bookings.update_status", query, status, at, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	return err
}

func (r *bookingRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "bookings.delete", `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete booking: %w", err)
	}
	return err
}

func (r *bookingRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "bookings")
}

func (r *bookingRepository) CountByStatus(ctx context.Context, status model.BookingStatus) (int, error) {
	start := time.Now()
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM bookings WHERE status = $1`, status)
	r.observe("bookings.count_status", start, err)
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return n, nil
}
