package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
)

const serviceColumns = `id, title, description, icon, display_order,
		created_at, updated_at`

type serviceRepository struct {
	BaseRepository
}

func NewServiceRepository(base BaseRepository) repository.CollectionRepository[*model.Service] {
	return &serviceRepository{BaseRepository: base}
}

func (r *serviceRepository) List(ctx context.Context) ([]*model.Service, error) {
	start := time.Now()
	items := []*model.Service{}
	err := r.db.SelectContext(ctx, &items,
		`SELECT `+serviceColumns+` FROM services ORDER BY display_order ASC, created_at ASC`)
	r.observe("services.list", start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return items, nil
}

func (r *serviceRepository) Get(ctx context.Context, id string) (*model.Service, error) {
	start := time.Now()
	var item model.Service
	err := notFound(r.db.GetContext(ctx, &item,
		`SELECT `+serviceColumns+` FROM services WHERE id = $1`, id))
	r.observe("services.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &item, nil
}

func (r *serviceRepository) Create(ctx context.Context, item *model.Service) error {
	query := `
		INSERT INTO services (
			id, title, description, icon, display_order,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
	`
	start := time.Now()
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Description,
		item.Icon,
		item.DisplayOrder,
		item.CreatedAt,
	)
	r.observe("services.create", start, err)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *serviceRepository) Update(ctx context.Context, item *model.Service) error {
	query := `
		UPDATE services
		SET title = $1, description = $2, icon = $3, display_order = $4, updated_at = $5
		WHERE id = $6
	`
	err := r.execAffecting(ctx, "services.update", query,
		item.Title,
		item.Description,
		item.Icon,
		item.DisplayOrder,
		item.UpdatedAt,
		item.ID,
	)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to update service: %w", err)
	}
	return err
}

func (r *serviceRepository) Delete(ctx context.Context, id string) error {
	err := r.execAffecting(ctx, "services.delete", `DELETE FROM services WHERE id = $1`, id)
	if err != nil && err != repository.ErrNotFound {
		return fmt.Errorf("failed to delete service: %w", err)
	}
	return err
}

func (r *serviceRepository) Count(ctx context.Context) (int, error) {
	return r.count(ctx, "services")
}
