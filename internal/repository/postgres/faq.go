package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

const faqColumns = `id, question, answer, display_order, created_at,
		updated_at`

type faqRepository struct {
	BaseRepository
}

func NewFAQRepository(base BaseRepository) repository.CollectionRepository[*model.FAQ] {
	return &faqRepository{BaseRepository: base}
}

func (r *faqRepository) List(ctx context.Context) ([]*model.FAQ, error) {
	start := time.Now()
	items := []*model.FAQ{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+faqColumns+` FROM faqs ORDER BY display_order ASC, created_at ASC`)
	r.observe("faqs.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list faqs: %w", err)
	}
	return items, nil
}

func (r *faqRepository) Get(ctx context.Context, id string) (*model.FAQ, error) {
	start := time.Now()
	var item model.FAQ
	err := notFound(r.db.GetContext(ctx, &item,
		`SELECT `+faqColumns+` FROM faqs WHERE id = $1`, id))
	r.observe("faqs.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	return &item, nil
}

func (r *faqRepository) Create(ctx context.Context, item *model.FAQ) error {
	query := `
		INSERT INTO faqs (
			id, question, answer, display_order, created_at
		) VALUES ($1, $2, $3, $4, $5)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Question,
		item.Answer,
		item.DisplayOrder,
		item.CreatedAt,
	)
	r.observe("faqs.create", start, err)
	if err != nil {
		return fmt.Errorf("failed to create faq: %w", err)
	}
	return nil
}

func (r *faqRepository) Update(ctx context.Context, item *model.FAQ) error {
	query := `
		UPDATE faqs
		SET question = $1, answer = $2, display_order = $3, updated_at = $4
		WHERE id = $5
	`
	err := r.execAffecting(ctx, "faqs.update", query,
		item.Question,
		item.Answer,
		item.DisplayOrder,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update faq: %w", err)
	}
	return err
}

func (r *faqRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "faqs.delete", `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete faq: %w", err)
	}
	return err
}

func (r *faqRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "faqs")
}
