package model

import (
	"time"
)

// Timestamps contains the audit fields shared by every stored record
type Timestamps struct {
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" db:"updated_at"`
}

// Meta exposes the timestamps of the embedding record.
func (t *Timestamps) Meta() *Timestamps {
	return t
}

// Entity is a record of a listed collection.
type Entity interface {
	EntityID() string
	SetEntityID(id string)
	Meta() *Timestamps
}

// ImageRef points at an uploaded object. Key is empty for external URLs.
type ImageRef struct {
	URL string `json:"imageUrl,omitempty" db:"image_url"`
	Key string `json:"s3Key,omitempty" db:"s3_key"`
}

// Image returns the reference itself.
func (r *ImageRef) Image() ImageRef {
	return *r
}

// SetImage replaces the reference.
func (r *ImageRef) SetImage(ref ImageRef) {
	*r = ref
}

// MergeImage resolves the image of an update that carries no file. An empty
// or unchanged URL keeps old. Keys are never taken from the client.
func MergeImage(old, incoming ImageRef) ImageRef {
	if incoming.URL == "" || incoming.URL == old.URL {
		return old
	}
	return ImageRef{URL: incoming.URL}
}

// ImageHolder is implemented by records that carry one uploaded image.
type ImageHolder interface {
	Image() ImageRef
	SetImage(ref ImageRef)
}

// Defaulter is implemented by records that fill unset fields before a write.
type Defaulter interface {
	ApplyDefaults()
}
