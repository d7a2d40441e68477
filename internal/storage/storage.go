package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Upload is a file handed to the store.
type Upload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// Object is a stored file and its public address.
type Object struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// BlobStore keeps uploaded images.
type BlobStore interface {
	Put(ctx context.Context, key string, upload *Upload) (*Object, error)
	Delete(ctx context.Context, key string) error
}

// CleanName reduces a client supplied file name to a safe key segment.
func CleanName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, name)
	if name == "" || strings.Trim(name, ".") == "" {
		return "upload"
	}
	return name
}

// Key joins a prefix, a stem and the cleaned file name as prefix/stem-name.
func Key(prefix, stem, fileName string) string {
	return fmt.Sprintf("%s/%s-%s", strings.TrimRight(prefix, "/"), stem, CleanName(fileName))
}
