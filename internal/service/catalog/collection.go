package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/internal/storage"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/validator"
)

// Options name a collection. KeyPrefix is the object key prefix for
// uploaded images and is empty for collections without images. With
// ImageRequired every record must carry an upload or an image URL.
type Options struct {
	Name          string
	Plural        string
	KeyPrefix     string
	ImageRequired bool
}

// Collection implements list, read and write operations over one kind of
// record, keeping any uploaded image in step with the record.
type Collection[T model.Entity] struct {
	opts     Options
	repo     repository.CollectionRepository[T]
	blobs    storage.BlobStore
	validate *validator.Validator
	onChange []func()

	now   func() time.Time
	newID func() string
}

// New creates a collection. blobs may be nil, in which case uploads are
// refused.
func New[T model.Entity](opts Options, repo repository.CollectionRepository[T], blobs storage.BlobStore, v *validator.Validator) *Collection[T] {
	if v == nil {
		v = validator.New()
	}
	return &Collection[T]{
		opts:     opts,
		repo:     repo,
		blobs:    blobs,
		validate: v,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.New().String() },
	}
}

func (c *Collection[T]) Name() string { return c.opts.Name }

// OnChange registers fn to run after every successful write.
func (c *Collection[T]) OnChange(fn func()) {
	c.onChange = append(c.onChange, fn)
}

// GetAll returns every record in collection order.
func (c *Collection[T]) GetAll(ctx context.Context) ([]T, error) {
	items, err := c.repo.List(ctx)
	if err != nil {
		return nil, apperrors.Store("load "+c.opts.Plural, err)
	}
	return items, nil
}

func (c *Collection[T]) Get(ctx context.Context, id string) (T, error) {
	item, err := c.repo.Get(ctx, id)
	if err != nil {
		var zero T
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperrors.NotFound(c.opts.Name, err)
		}
		return zero, apperrors.Store("load "+c.opts.Name, err)
	}
	return item, nil
}

func (c *Collection[T]) Count(ctx context.Context) (int, error) {
	return c.repo.Count(ctx)
}

// Create stores item under a new id. When file is given it is uploaded
// first and referenced from the record.
func (c *Collection[T]) Create(ctx context.Context, item T, file *storage.Upload) (T, error) {
	var zero T
	holder, err := c.prepare(item, file)
	if err != nil {
		return zero, err
	}

	id := c.newID()
	item.SetEntityID(id)
	meta := item.Meta()
	meta.CreatedAt = c.now()
	meta.UpdatedAt = nil

	var fresh string
	if holder != nil {
		ref := holder.Image()
		ref.Key = ""
		if err := c.requireImage(ref, file); err != nil {
			return zero, err
		}
		if file != nil {
			obj, err := c.upload(ctx, id, meta.CreatedAt, file)
			if err != nil {
				return zero, err
			}
			ref = model.ImageRef{URL: obj.URL, Key: obj.Key}
			fresh = obj.Key
		}
		holder.SetImage(ref)
	}

	if err := c.repo.Create(ctx, item); err != nil {
		c.discard(ctx, fresh)
		return zero, apperrors.Store("save "+c.opts.Name, err)
	}

	log.Info().Str("collection", c.opts.Plural).Str("id", id).Msg("record created")
	c.changed()
	return item, nil
}

// Update overwrites the record id with item. Without a file the stored
// image is kept unless item names a different external URL. A replaced
// upload is removed after the write succeeds.
func (c *Collection[T]) Update(ctx context.Context, id string, item T, file *storage.Upload) (T, error) {
	var zero T
	existing, err := c.Get(ctx, id)
	if err != nil {
		return zero, err
	}

	holder, err := c.prepare(item, file)
	if err != nil {
		return zero, err
	}

	item.SetEntityID(id)
	now := c.now()
	meta := item.Meta()
	meta.CreatedAt = existing.Meta().CreatedAt
	meta.UpdatedAt = &now

	var old model.ImageRef
	var fresh string
	if holder != nil {
		old = any(existing).(model.ImageHolder).Image()
		ref := model.MergeImage(old, holder.Image())
		if err := c.requireImage(ref, file); err != nil {
			return zero, err
		}
		if file != nil {
			obj, err := c.upload(ctx, id, now, file)
			if err != nil {
				return zero, err
			}
			ref = model.ImageRef{URL: obj.URL, Key: obj.Key}
			fresh = obj.Key
		}
		holder.SetImage(ref)
	}

	if err := c.repo.Update(ctx, item); err != nil {
		if fresh != old.Key {
			c.discard(ctx, fresh)
		}
		if errors.Is(err, repository.ErrNotFound) {
			return zero, apperrors.NotFound(c.opts.Name, err)
		}
		return zero, apperrors.Store("update "+c.opts.Name, err)
	}

	if holder != nil && old.Key != "" && old.Key != holder.Image().Key {
		c.discard(ctx, old.Key)
	}

	log.Info().Str("collection", c.opts.Plural).Str("id", id).Msg("record updated")
	c.changed()
	return item, nil
}

// Delete removes the record and then, best-effort, its uploaded image.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	existing, err := c.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(c.opts.Name, err)
		}
		return apperrors.Store("delete "+c.opts.Name, err)
	}

	if holder, ok := any(existing).(model.ImageHolder); ok {
		c.discard(ctx, holder.Image().Key)
	}

	log.Info().Str("collection", c.opts.Plural).Str("id", id).Msg("record deleted")
	c.changed()
	return nil
}

// prepare applies defaults and validates item. It returns the item's image
// holder, or nil when the record has no image.
func (c *Collection[T]) prepare(item T, file *storage.Upload) (model.ImageHolder, error) {
	if d, ok := any(item).(model.Defaulter); ok {
		d.ApplyDefaults()
	}
	if fields := c.validate.Struct(item); len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	holder, ok := any(item).(model.ImageHolder)
	if !ok || c.opts.KeyPrefix == "" {
		if file != nil {
			return nil, apperrors.BadRequest(c.opts.Plural+" do not take images", nil)
		}
		return nil, nil
	}
	if file != nil && c.blobs == nil {
		return nil, apperrors.BadRequest("image uploads are not configured", nil)
	}
	return holder, nil
}

func (c *Collection[T]) requireImage(ref model.ImageRef, file *storage.Upload) error {
	if c.opts.ImageRequired && file == nil && ref.URL == "" {
		return apperrors.Validation(map[string]string{"image": "Please upload an image or provide an image URL"})
	}
	return nil
}

// upload stores file under a key stamped with at, so a new upload never
// overwrites the object a stored record still points at.
func (c *Collection[T]) upload(ctx context.Context, id string, at time.Time, file *storage.Upload) (*storage.Object, error) {
	stem := fmt.Sprintf("%s-%d", id, at.UnixMilli())
	obj, err := c.blobs.Put(ctx, storage.Key(c.opts.KeyPrefix, stem, file.Name), file)
	if err != nil {
		return nil, apperrors.Store("upload image", err)
	}
	return obj, nil
}

// discard deletes key best-effort.
func (c *Collection[T]) discard(ctx context.Context, key string) {
	if key == "" || c.blobs == nil {
		return
	}
	if err := c.blobs.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete image")
	}
}

func (c *Collection[T]) changed() {
	for _, fn := range c.onChange {
		fn()
	}
}
