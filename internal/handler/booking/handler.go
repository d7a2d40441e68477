package booking

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/romasdental/clinic-portal/internal/model"
	apperrors "github.com/romasdental/clinic-portal/pkg/errors"
	"github.com/romasdental/clinic-portal/pkg/httputil"
)

// Service is the booking behaviour the handler needs.
type Service interface {
	Create(ctx context.Context, req model.BookingRequest) (*model.BookingReceipt, error)
	List(ctx context.Context) ([]*model.Booking, error)
	Get(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.StatusChange, error)
	Delete(ctx context.Context, id string) error
}

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the booking form endpoint behind mw.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, mw ...gin.HandlerFunc) {
	r.POST("/bookings", append(append([]gin.HandlerFunc{}, mw...), h.CreateBooking)...)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id/status", h.UpdateStatus)
		bookings.DELETE("/:id", h.DeleteBooking)
	}
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBind(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	receipt, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithLinks(c, http.StatusCreated, receipt.Booking, receipt.Links)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithList(c, bookings)
}

func (h *Handler) GetBooking(c *gin.Context) {
	booking, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, booking)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(map[string]string{"status": "status is required"}))
		return
	}

	change, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if change.Link != nil {
		httputil.RespondWithLinks(c, http.StatusOK, change, []model.NotificationLink{*change.Link})
		return
	}
	httputil.RespondWithSuccess(c, http.StatusOK, change)
}

func (h *Handler) DeleteBooking(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithMessage(c, "Booking deleted successfully")
}
