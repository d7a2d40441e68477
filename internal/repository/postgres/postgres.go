package postgres

import (
	"github.com/jmoiron/sqlx"

	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/pkg/metrics"
)

func NewRepositories(db *sqlx.DB, m *metrics.Metrics) *repository.Repositories {
	base := NewBaseRepository(db, m)
	return &repository.Repositories{
		Bookings:    NewBookingRepository(base),
		Services:    NewServiceRepository(base),
		Blogs:       NewBlogRepository(base),
		Gallery:     NewGalleryRepository(base),
		FAQs:        NewFAQRepository(base),
		SocialLinks: NewSocialLinkRepository(base),
		Content:     NewContentRepository(base),
	}
}
