package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

const galleryColumns = `id, title, description, category, image_url,
		s3_key, created_at, updated_at`

type galleryRepository struct {
	BaseRepository
}

func NewGalleryRepository(base BaseRepository) repository.CollectionRepository[*model.GalleryImage] {
	return &galleryRepository{BaseRepository: base}
}

func (r *galleryRepository) List(ctx context.Context) ([]*model.GalleryImage, error) {
	start := time.Now()
	items := []*model.GalleryImage{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+galleryColumns+` FROM gallery_images ORDER BY created_at DESC`)
	r.observe("gallery_images.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list gallery images: %w", err)
	}
	return items, nil
}

func (r *galleryRepository) Get(ctx context.Context, id string) (*model.GalleryImage, error) {
	start := time.Now()
	var item model.GalleryImage
	err := notFound(r.db.GetContext(ctx, &item,
		`SELECT `+galleryColumns+` FROM gallery_images WHERE id = $1`, id))
	r.observe("gallery_images.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get gallery image: %w", err)
	}
	return &item, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *model.GalleryImage) error {
	query := `
		INSERT INTO gallery_images (
			id, title, description, category, image_url,
			s3_key, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Category,
		item.URL,
		item.Key,
		item.CreatedAt,
	)
	r.observe("gallery_images.create", start, err)
	if err != nil {
		return fmt.Errorf("failed to create gallery image: %w", err)
	}
	return nil
}

func (r *galleryRepository) Update(ctx context.Context, item *model.GalleryImage) error {
	query := `
		UPDATE gallery_images
		SET title = $1, description = $2, category = $3, image_url = $4, s3_key = $5, updated_at = $6
		WHERE id = $7
	`
	err := r.execAffecting(ctx, "gallery_images.update", query,
		item.Title,
		item.Description,
		item.Category,
		item.URL,
		item.Key,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update gallery image: %w", err)
	}
	return err
}

func (r *galleryRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "gallery_images.delete", `DELETE FROM gallery_images WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete gallery image: %w", err)
	}
	return err
}

func (r *galleryRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "gallery_images")
}
