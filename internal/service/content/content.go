package content

import (
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/internal/storage"
	"github.com/romasdental/clinic-portal/pkg/validator"
)

type (
	HomeDocument  = Document[model.HomeContent, *model.HomeContent]
	AboutDocument = Document[model.AboutContent, *model.AboutContent]
	StatsDocument = Document[model.Stats, *model.Stats]
)

// Service groups the site's singleton documents.
type Service struct {
	Home  *HomeDocument
	About *AboutDocument
	Stats *StatsDocument
}

func NewService(repo repository.ContentRepository, blobs storage.BlobStore, v *validator.Validator) *Service {
	return &Service{
		Home: New[model.HomeContent, *model.HomeContent](Options[model.HomeContent]{
			Key:         model.HomeContentKey,
			Name:        "home content",
			ImagePrefix: "home-content",
			ImageStem:   "hero",
			Default:     model.DefaultHomeContent,
		}, repo, blobs, v),
		About: New[model.AboutContent, *model.AboutContent](Options[model.AboutContent]{
			Key:         model.AboutContentKey,
			Name:        "about content",
			ImagePrefix: "about-content",
			ImageStem:   "main",
			Default:     model.DefaultAboutContent,
		}, repo, blobs, v),
		Stats: New[model.Stats, *model.Stats](Options[model.Stats]{
			Key:     model.StatsKey,
			Name:    "stats",
			Default: model.DefaultStats,
		}, repo, blobs, v),
	}
}
