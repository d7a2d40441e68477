package dashboard

import (
	"context"

	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

// Counter is anything that can count its records.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Bookings counts bookings overall and those awaiting review.
type Bookings interface {
	Counter
	CountPending(ctx context.Context) (int, error)
}

type Service struct {
	bookings Bookings
	blogs    Counter
	gallery  Counter
	services Counter
}

func NewService(bookings Bookings, blogs, gallery, services Counter) *Service {
	return &Service{bookings: bookings, blogs: blogs, gallery: gallery, services: services}
}

// Summary gathers the admin overview counts.
func (s *Service) Summary(ctx context.Context) (*model.Dashboard, error) {
	var d model.Dashboard
	counts := []struct {
		dst   *int
		count func(context.Context) (int, error)
	}{
		{&d.TotalBookings, s.bookings.Count},
		{&d.PendingBookings, s.bookings.CountPending},
		{&d.TotalBlogs, s.blogs.Count},
		{&d.TotalImages, s.gallery.Count},
		{&d.TotalServices, s.services.Count},
	}
	for _, c := range counts {
		n, err := c.count(ctx)
		if err != nil {
			return nil, apperrors.Store("load dashboard", err)
		}
		*c.dst = n
	}
	return &d, nil
}
