package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/repository"
	"github.com/romasdental/clinic-portal/internal/storage"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/validator"
)

// Options describe one singleton document.
type Options[T any] struct {
	Key  string
	Name string
	// ImagePrefix and ImageStem form upload keys as prefix/stem-<unixms>-name.
	ImagePrefix string
	ImageStem   string
	Default     func() *T
}

type normalizer interface {
	Normalize()
}

// Document reads and overwrites one singleton document.
type Document[T any, P interface {
	*T
	model.Document
}] struct {
	opts     Options[T]
	repo     repository.ContentRepository
	blobs    storage.BlobStore
	validate *validator.Validator
	now      func() time.Time
}

func New[T any, P interface {
	*T
	model.Document
}](opts Options[T], repo repository.ContentRepository, blobs storage.BlobStore, v *validator.Validator) *Document[T, P] {
	if v == nil {
		v = validator.New()
	}
	return &Document[T, P]{
		opts:     opts,
		repo:     repo,
		blobs:    blobs,
		validate: v,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Get returns the stored document, or the default when none was saved yet.
func (d *Document[T, P]) Get(ctx context.Context) (P, error) {
	doc := P(new(T))
	err := d.repo.Get(ctx, d.opts.Key, doc)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		doc = P(d.opts.Default())
	case err != nil:
		return nil, apperrors.Store("load "+d.opts.Name, err)
	}
	if n, ok := any(doc).(normalizer); ok {
		n.Normalize()
	}
	return doc, nil
}

// Update overwrites the whole document. A given file replaces the image;
// otherwise the stored image is kept unless doc names another URL.
func (d *Document[T, P]) Update(ctx context.Context, doc P, file *storage.Upload) (P, error) {
	if fields := d.validate.Struct(doc); len(fields) > 0 {
		return nil, apperrors.Validation(fields)
	}

	holder, hasImage := any(doc).(model.ImageHolder)
	if file != nil && (!hasImage || d.opts.ImagePrefix == "") {
		return nil, apperrors.BadRequest(d.opts.Name+" does not take an image", nil)
	}
	if file != nil && d.blobs == nil {
		return nil, apperrors.BadRequest("image uploads are not configured", nil)
	}

	now := d.now()
	var old model.ImageRef
	var fresh string
	if hasImage {
		current, err := d.Get(ctx)
		if err != nil {
			return nil, err
		}
		old = any(current).(model.ImageHolder).Image()
		ref := model.MergeImage(old, holder.Image())
		if file != nil {
			stem := fmt.Sprintf("%s-%d", d.opts.ImageStem, now.UnixMilli())
			obj, err := d.blobs.Put(ctx, storage.Key(d.opts.ImagePrefix, stem, file.Name), file)
			if err != nil {
				return nil, apperrors.Store("upload image", err)
			}
			ref = model.ImageRef{URL: obj.URL, Key: obj.Key}
			fresh = obj.Key
		}
		holder.SetImage(ref)
	}

	if n, ok := any(doc).(normalizer); ok {
		n.Normalize()
	}
	doc.Touch(now)

	if err := d.repo.Put(ctx, d.opts.Key, doc); err != nil {
		d.discard(ctx, fresh)
		return nil, apperrors.Store("save "+d.opts.Name, err)
	}

	if hasImage && old.Key != holder.Image().Key && d.owns(old.Key) {
		d.discard(ctx, old.Key)
	}

	log.Info().Str("content", d.opts.Key).Msg("content updated")
	return doc, nil
}

func (d *Document[T, P]) owns(key string) bool {
	return key != "" && d.opts.ImagePrefix != "" && strings.HasPrefix(key, d.opts.ImagePrefix+"/")
}

func (d *Document[T, P]) discard(ctx context.Context, key string) {
	if key == "" || d.blobs == nil {
		return
	}
	if err := d.blobs.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to delete image")
	}
}
