package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/romasdental/clinic-portal/internal/middleware"
	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

type Service interface {
	Login(ctx context.Context, req model.LoginRequest) (*model.Session, error)
	Logout(ctx context.Context, id string)
}

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes mounts login behind mw, usually a rate limiter. It
// sits under /admin but must stay outside the session guard.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc) {
	r.POST("/admin/login", append(append([]gin.HandlerFunc{}, mw...), h.Login)...)
}

// RegisterAdminRoutes expects r to be guarded by middleware.RequireAdmin.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/logout", h.Logout)
	r.GET("/session", h.Session)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(map[string]string{
			"credentials": "Email and password are required",
		}))
		return
	}

	session, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("Admin login failed")
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, session)
}

func (h *Handler) Logout(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(model.ErrSessionNotFound))
		return
	}

	h.svc.Logout(c.Request.Context(), session.ID)
	httputil.RespondWithMessage(c, "Logged out successfully")
}

func (h *Handler) Session(c *gin.Context) {
	session, ok := middleware.SessionFrom(c)
	if !ok {
		httputil.RespondWithError(c, apperrors.Unauthorized(model.ErrSessionNotFound))
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, session)
}
