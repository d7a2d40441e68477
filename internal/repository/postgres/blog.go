package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

const blogColumns = `id, title, content, excerpt, category,
		author, link, image_url, s3_key, created_at,
		updated_at`

type blogRepository struct {
	BaseRepository
}

func NewBlogRepository(base BaseRepository) repository.CollectionRepository[*model.Blog] {
	return &blogRepository{BaseRepository: base}
}

func (r *blogRepository) List(ctx context.Context) ([]*model.Blog, error) {
	start := time.Now()
	items := []*model.Blog{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+blogColumns+` FROM blogs ORDER BY created_at DESC`)
	r.observe("blogs.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list blogs: %w", err)
	}
	return items, nil
}

func (r *blogRepository) Get(ctx context.Context, id string) (*model.Blog, error) {
	start := time.Now()
	var item model.Blog
	err := notFound(r.db.GetContext(ctx, &item,
		`SELECT `+blogColumns+` FROM blogs WHERE id = $1`, id))
	r.observe("blogs.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get blog: %w", err)
	}
	return &item, nil
}

func (r *blogRepository) Create(ctx context.Context, item *model.Blog) error {
	query := `
		INSERT INTO blogs (
			id, title, content, excerpt, category,
			author, link, image_url, s3_key, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Content,
		item.Excerpt,
		item.Category,
		item.Author,
		item.Link,
		item.URL,
		item.Key,
		item.CreatedAt,
	)
	r.observe("blogs.create", start, err)
	if err != nil {
		return fmt.Errorf("failed to create blog: %w", err)
	}
	return nil
}

func (r *blogRepository) Update(ctx context.Context, item *model.Blog) error {
	query := `
		UPDATE blogs
		SET title = $1, content = $2, excerpt = $3, category = $4, author = $5, link = $6, image_url = $7, s3_key = $8, updated_at = $9
		WHERE id = $10
	`
	err := r.execAffecting(ctx, "blogs.update", query,
		item.Title,
		item.Content,
		item.Excerpt,
		item.Category,
		item.Author,
		item.Link,
		item.URL,
		item.Key,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update blog: %w", err)
	}
	return err
}

func (r *blogRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "blogs.delete", `DELETE FROM blogs WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete blog: %w", err)
	}
	return err
}

func (r *blogRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "blogs")
}
