package content

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/internal/handler"
	"github.com/romasdental/clinic-portal/internal/model"
	"github.com/romasdental/clinic-portal/internal/storage"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

// Document is the singleton behaviour the handler needs.
type Document[P model.Document] interface {
	Get(ctx context.Context) (P, error)
	Update(ctx context.Context, doc P, file *storage.Upload) (P, error)
}

// Handler serves one singleton document under path.
type Handler[T any, P interface {
	*T
	model.Document
}] struct {
	document Document[P]
	path     string
}

func NewHandler[T any, P interface {
	*T
	model.Document
}](document Document[P], path string) *Handler[T, P] {
	return &Handler[T, P]{document: document, path: path}
}

func (h *Handler[T, P]) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.GET(h.path, h.Get)
}

func (h *Handler[T, P]) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT(h.path, h.Update)
}

func (h *Handler[T, P]) Get(c *gin.Context) {
	doc, err := h.document.Get(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, doc)
}

func (h *Handler[T, P]) Update(c *gin.Context) {
	doc := P(new(T))
	if err := handler.BindPayload(c, doc); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	file, done, err := handler.ImageUpload(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	defer done()

	updated, err := h.document.Update(c.Request.Context(), doc, file)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, updated)
}
