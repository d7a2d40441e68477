package catalog

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/internal/handler"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/storage"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

// Collection is the catalog behaviour the handler needs.
type Collection[T model.Entity] interface {
	GetAll(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, item T, file *storage.Upload) (T, error)
	Update(ctx context.Context, id string, item T, file *storage.Upload) (T, error)
	Delete(ctx context.Context, id string) error
}

// Handler serves one collection under path.
type Handler[T model.Entity] struct {
	collection Collection[T]
	path       string
	newItem    func() T
}

func NewHandler[T model.Entity](collection Collection[T], path string, newItem func() T) *Handler[T] {
	return &Handler[T]{collection: collection, path: path, newItem: newItem}
}

func (h *Handler[T]) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET(h.path, h.List)
	r.GET(h.path+"/:id", h.Get)
}

func (h *Handler[T]) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST(h.path, h.Create)
	r.PUT(h.path+"/:id", h.Update)
	r.DELETE(h.path+"/:id", h.Delete)
}

func (h *Handler[T]) List(c *gin.Context) {
	items, err := h.collection.GetAll(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, items)
}

func (h *Handler[T]) Get(c *gin.Context) {
	item, err := h.collection.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, item)
}

func (h *Handler[T]) Create(c *gin.Context) {
	item, file, done, err := h.bind(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer done()

	created, err := h.collection.Create(c.Request.Context(), item, file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusCreated, created)
}

func (h *Handler[T]) Update(c *gin.Context) {
	item, file, done, err := h.bind(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer done()

	updated, err := h.collection.Update(c.Request.Context(), c.Param("id"), item, file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, updated)
}

func (h *Handler[T]) Delete(c *gin.Context) {
	if err := h.collection.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Deleted successfully")
}

func (h *Handler[T]) bind(c *gin.Context) (T, *storage.Upload, func(), error) {
	item := h.newItem()
	if err := handler.BindPayload(c, item); err != nil {
		return item, nil, func() {}, err
	}
	file, done, err := handler.ImageUpload(c)
	return item, file, done, err
}
