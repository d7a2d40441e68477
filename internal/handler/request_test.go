package handler

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

type record struct {
	Title string `json:"title"`
}

func newContext(req *http.Request) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func multipartRequest(t *testing.T, payload string, fileName, contentType string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if payload != "" {
		require.NoError(t, w.WriteField(PayloadField, payload))
	}
	if fileName != "" {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+ImageField+`"; filename="`+fileName+`"`)
		h.Set("Content-Type", contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestBindPayloadJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"Implants"}`))
	req.Header.Set("Content-Type", "application/json")

	var rec record
	require.NoError(t, BindPayload(newContext(req), &rec))
	assert.Equal(t, "Implants", rec.Title)
}

func TestBindPayloadEmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", http.NoBody)
	req.Header.Set("Content-Type", "application/json")

	err := BindPayload(newContext(req), &record{})
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.ErrBadRequest))
}

func TestBindPayloadMultipart(t *testing.T) {
	c := newContext(multipartRequest(t, `{"title":"Whitening"}`, "", ""))

	var rec record
	require.NoError(t, BindPayload(c, &rec))
	assert.Equal(t, "Whitening", rec.Title)
}

func TestBindPayloadMultipartMissingField(t *testing.T) {
	c := newContext(multipartRequest(t, "", "a.jpg", "image/jpeg"))

	err := BindPayload(c, &record{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing payload field")
}

func TestImageUploadWithoutFile(t *testing.T) {
	c := newContext(multipartRequest(t, `{"title":"x"}`, "", ""))

	file, done, err := ImageUpload(c)
	defer done()
	require.NoError(t, err)
	assert.Nil(t, file)
}

func TestImageUploadRejectsNonImage(t *testing.T) {
	c := newContext(multipartRequest(t, `{"title":"x"}`, "notes.pdf", "application/pdf"))

	_, done, err := ImageUpload(c)
	defer done()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, "image must be an image file", appErr.Fields[ImageField])
}

func TestImageUploadReadsFile(t *testing.T) {
	c := newContext(multipartRequest(t, `{"title":"x"}`, "smile.png", "image/png"))

	file, done, err := ImageUpload(c)
	defer done()
	require.NoError(t, err)
	require.NotNil(t, file)
	assert.Equal(t, "smile.png", file.Name)
	assert.Equal(t, "image/png", file.ContentType)

	body, err := io.ReadAll(file.Body)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(body))
}
