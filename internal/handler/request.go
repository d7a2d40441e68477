package handler

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/internal/storage"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

const (
	// PayloadField holds the JSON record in multipart requests.
	PayloadField = "payload"
	// ImageField holds the optional uploaded image.
	ImageField = "image"
)

// IsMultipart reports whether the request is a multipart form.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// BindPayload decodes the record from a JSON body, or from the payload field
// of a multipart form.
func BindPayload(c *gin.Context, dst interface{}) error {
	if !IsMultipart(c) {
		if err := c.ShouldBindJSON(dst); err != nil {
			return bindError(err)
		}
		return nil
	}

	payload := c.PostForm(PayloadField)
	if payload == "" {
		return apperrors.BadRequest("missing "+PayloadField+" field", nil)
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return apperrors.BadRequest("invalid "+PayloadField+" field", err)
	}
	return nil
}

func bindError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return apperrors.BadRequest("request body too large", err)
	}
	if errors.Is(err, io.EOF) {
		return apperrors.BadRequest("request body is empty", err)
	}
	return apperrors.BadRequest("invalid request body", err)
}

// ImageUpload returns the uploaded image, or nil when the request has none.
// The caller must call the returned close function.
func ImageUpload(c *gin.Context) (*storage.Upload, func(), error) {
	noop := func() {}
	if !IsMultipart(c) {
		return nil, noop, nil
	}

	header, err := c.FormFile(ImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, noop, nil
	}
	if err != nil {
		return nil, noop, apperrors.BadRequest("invalid image upload", err)
	}

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, noop, apperrors.Validation(map[string]string{ImageField: "image must be an image file"})
	}

	f, err := header.Open()
	if err != nil {
		return nil, noop, apperrors.BadRequest("invalid image upload", err)
	}
	return newUpload(header, f), func() { f.Close() }, nil
}

func newUpload(header *multipart.FileHeader, body io.Reader) *storage.Upload {
	return &storage.Upload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        body,
	}
}
