package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/romasdental/clinic-portal/internal/repository"
)

type contentRepository struct {
	BaseRepository
}

func NewContentRepository(base BaseRepository) repository.ContentRepository {
	return &contentRepository{BaseRepository: base}
}

// Get decodes the document stored under key into dest.
func (r *contentRepository) Get(ctx context.Context, key string, dest interface{}) error {
	start := time.Now()
	var body []byte
	err := notFound(r.db.GetContext(ctx, &body,
		`SELECT body FROM content_documents WHERE content_key = $1`, key))
	r.observe("content_documents.get", start, ignoreNotFound(err))
	if err == repository.ErrNotFound {
		return err
	}
	if err != nil {
		return fmt.Errorf("failed to get content %s: %w", key, err)
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("failed to decode content %s: %w", key, err)
	}
	return nil
}

// Put overwrites the whole document stored under key.
func (r *contentRepository) Put(ctx context.Context, key string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode content %s: %w", key, err)
	}

	query := `
		INSERT INTO content_documents (content_key, body, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (content_key)
		DO UPDATE SET body = EXCLUDED.body, updated_at = EXCLUDED.updated_at
	`
	start := time.Now()
	_, err = r.db.ExecContext(ctx, query, key, body, time.Now().UTC())
	r.observe("content_documents.put", start, err)
	if err != nil {
		return fmt.Errorf("failed to save content %s: %w", key, err)
	}
	return nil
}
