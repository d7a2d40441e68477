package catalog

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/romasdental/clinic-portal/internal/model"
)

const titlesKey = "service-titles"

// TitleCache serves the service titles used to validate bookings. Writes to
// the services collection invalidate it.
type TitleCache struct {
	services *Collection[*model.Service]
	cache    *cache.Cache
}

func NewTitleCache(services *Collection[*model.Service], ttl time.Duration) *TitleCache {
	tc := &TitleCache{
		services: services,
		cache:    cache.New(ttl, 2*ttl),
	}
	services.OnChange(tc.Invalidate)
	return tc
}

func (t *TitleCache) Titles(ctx context.Context) ([]string, error) {
	if cached, ok := t.cache.Get(titlesKey); ok {
		return cached.([]string), nil
	}

	items, err := t.services.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	titles := make([]string, 0, len(items))
	for _, s := range items {
		titles = append(titles, s.Title)
	}
	t.cache.SetDefault(titlesKey, titles)
	return titles, nil
}

func (t *TitleCache) Invalidate() {
	t.cache.Delete(titlesKey)
}
