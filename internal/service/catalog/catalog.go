package catalog

import (
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/internal/storage"
	"github.com/romasdental/clinic-portal/pkg/validator"
)

// Service groups the site's collections.
type Service struct {
	Services    *Collection[*model.Service]
	Blogs       *Collection[*model.Blog]
	Gallery     *Collection[*model.GalleryImage]
	FAQs        *Collection[*model.FAQ]
	SocialLinks *Collection[*model.SocialLink]

	// Titles caches service titles for booking validation.
	Titles *TitleCache
}

func NewService(repos *repository.Repositories, blobs storage.BlobStore, v *validator.Validator, titlesTTL time.Duration) *Service {
	s := &Service{
		Services:    New[*model.Service](Options{Name: "service", Plural: "services"}, repos.Services, blobs, v),
		Blogs:       New[*model.Blog](Options{Name: "blog", Plural: "blogs", KeyPrefix: "blogs"}, repos.Blogs, blobs, v),
		Gallery:     New[*model.GalleryImage](Options{Name: "gallery image", Plural: "gallery", KeyPrefix: "gallery", ImageRequired: true}, repos.Gallery, blobs, v),
		FAQs:        New[*model.FAQ](Options{Name: "faq", Plural: "faqs"}, repos.FAQs, blobs, v),
		SocialLinks: New[*model.SocialLink](Options{Name: "social link", Plural: "social-links"}, repos.SocialLinks, blobs, v),
	}
	s.Titles = NewTitleCache(s.Services, titlesTTL)
	return s
}
