package catalog

import (
	"bytes"
	"context"
	"encoding/json"
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

	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/storage"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
)

type fakeCollection struct {
	items    []*model.Blog
	received *model.Blog
	fileName string
	fileBody string
	updateID string
}

func (f *fakeCollection) GetAll(context.Context) ([]*model.Blog, error) { return f.items, nil }

func (f *fakeCollection) Get(_ context.Context, id string) (*model.Blog, error) {
	for _, b := range f.items {
		if b.ID == id {
			return b, nil
		}
	}
	return nil, apperrors.NotFound("blog", nil)
}

func (f *fakeCollection) Create(_ context.Context, item *model.Blog, file *storage.Upload) (*model.Blog, error) {
	f.capture(item, file)
	item.ID = "b1"
	return item, nil
}

func (f *fakeCollection) Update(_ context.Context, id string, item *model.Blog, file *storage.Upload) (*model.Blog, error) {
	f.updateID = id
	f.capture(item, file)
	item.ID = id
	return item, nil
}

func (f *fakeCollection) Delete(context.Context, string) error { return nil }

func (f *fakeCollection) capture(item *model.Blog, file *storage.Upload) {
	f.received = item
	if file != nil {
		f.fileName = file.Name
		body, _ := io.ReadAll(file.Body)
		f.fileBody = string(body)
	}
}

func newEngine(c Collection[*model.Blog]) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(c, "/blogs", func() *model.Blog { return &model.Blog{} })
	h.RegisterPublicRoutes(r.Group("/api/v1"))
	h.RegisterAdminRoutes(r.Group("/api/v1/admin"))
	return r
}

func TestListEmpty(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(&fakeCollection{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/blogs", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"items":[],"count":0}`, w.Body.String())
}

func TestGetMissing(t *testing.T) {
	w := httptest.NewRecorder()
	newEngine(&fakeCollection{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/blogs/nope", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateFromJSON(t *testing.T) {
	fc := &fakeCollection{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/blogs", strings.NewReader(`{"title":"Flossing 101"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newEngine(fc).ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Flossing 101", fc.received.Title)
	assert.Empty(t, fc.fileName)
}

func TestUpdateFromMultipart(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("payload", `{"title":"Braces","category":"orthodontics"}`))
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="braces.jpg"`)
	h.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("jpeg"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/blogs/b9", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	fc := &fakeCollection{}
	newEngine(fc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "b9", fc.updateID)
	assert.Equal(t, "orthodontics", fc.received.Category)
	assert.Equal(t, "braces.jpg", fc.fileName)
	assert.Equal(t, "jpeg", fc.fileBody)

	var resp struct {
		Data model.Blog `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "b9", resp.Data.ID)
}

func TestCreateRejectsMalformedJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/blogs", strings.NewReader(`{"title":`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	newEngine(&fakeCollection{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
