package repository

import (
	"context"
	"errors"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
)

// ErrNotFound is returned when no record matches the given key.
var ErrNotFound = errors.New("record not found")

// All repository interfaces in one file
type (
	// BookingRepository handles appointment bookings
	BookingRepository interface {
		// CreateNumbered assigns the next booking number and inserts b in
		// one serialised step.
		CreateNumbered(ctx context.Context, b *model.Booking) error
		Get(ctx context.Context, id string) (*model.Booking, error)
		List(ctx context.Context) ([]*model.Booking, error)
		UpdateStatus(ctx context.Context, id string, status model.BookingStatus, at time.Time) error
		Delete(ctx context.Context, id string) error
		Count(ctx context.Context) (int, error)
		CountByStatus(ctx context.Context, status model.BookingStatus) (int, error)
	}

	// CollectionRepository stores the records of one listed collection.
	CollectionRepository[T model.Entity] interface {
		List(ctx context.Context) ([]T, error)
		Get(ctx context.Context, id string) (T, error)
		Create(ctx context.Context, item T) error
		Update(ctx context.Context, item T) error
		Delete(ctx context.Context, id string) error
		Count(ctx context.Context) (int, error)
	}

	// ContentRepository stores singleton documents by key.
	ContentRepository interface {
		Get(ctx context.Context, key string, dest interface{}) error
		Put(ctx context.Context, key string, doc interface{}) error
	}
)

// Repositories groups every store the API needs.
type Repositories struct {
	Bookings    BookingRepository
	Services    CollectionRepository[*model.Service]
	Blogs       CollectionRepository[*model.Blog]
	Gallery     CollectionRepository[*model.GalleryImage]
	FAQs        CollectionRepository[*model.FAQ]
	SocialLinks CollectionRepository[*model.SocialLink]
	Content     ContentRepository
}
