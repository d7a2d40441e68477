package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

const socialLinkColumns = `id, name, url, icon, color,
		sort_order, created_at, updated_at`

type socialLinkRepository struct {
	BaseRepository
}

func NewSocialLinkRepository(base BaseRepository) repository.CollectionRepository[*model.SocialLink] {
	return &socialLinkRepository{BaseRepository: base}
}

func (r *socialLinkRepository) List(ctx context.Context) ([]*model.SocialLink, error) {
	start := time.Now()
	items := []*model.SocialLink{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+socialLinkColumns+` FROM social_links ORDER BY sort_order ASC, created_at ASC`)
	r.observe("social_links.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list social links: %w", err)
	}
	return items, nil
}

func (r *socialLinkRepository) Get(ctx context.Context, id string) (*model.SocialLink, error) {
	start := time.Now()
	var item model.SocialLink
	err := notFound(r.db.GetContext(ctx, &item,
		`SELECT `+socialLinkColumns+` FROM social_links WHERE id = $1`, id))
	r.observe("social_links.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get social link: %w", err)
	}
	return &item, nil
}

func (r *socialLinkRepository) Create(ctx context.Context, item *model.SocialLink) error {
	query := `
		INSERT INTO social_links (
			id, name, url, icon, color,
			sort_order, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Name,
		item.URL,
		item.Icon,
		item.Color,
		item.Order,
		item.CreatedAt,
	)
	r.observe("social_links.create", start, err)
	if err != nil {
		return fmt.Errorf("failed to create social link: %w", err)
	}
	return nil
}

func (r *socialLinkRepository) Update(ctx context.Context, item *model.SocialLink) error {
	query := `
		UPDATE social_links
		SET name = $1, url = $2, icon = $3, color = $4, sort_order = $5, updated_at = $6
		WHERE id = $7
	`
	err := r.execAffecting(ctx, "social_links.update", query,
		item.Name,
		item.URL,
		item.Icon,
		item.Color,
		item.Order,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update social link: %w", err)
	}
	return err
}

func (r *socialLinkRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "social_links.delete", `DELETE FROM social_links WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete social link: %w", err)
	}
	return err
}

func (r *socialLinkRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "social_links")
}
