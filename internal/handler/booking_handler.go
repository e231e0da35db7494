package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loopmarket/service-rental/internal/application"
	"github.com/loopmarket/service-rental/internal/pkg/middleware"
	"github.com/loopmarket/service-rental/internal/pkg/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/bookings")
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListByBooker)
		bookings.GET("/owner", h.ListByOwner)
		bookings.GET("/:bookingId", h.GetByID)
		bookings.PATCH("/:bookingId", h.Approve)
	}
}

// Create handles POST /bookings.
func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetByID handles GET /bookings/:bookingId.
func (h *BookingHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	bookingID, err := parseID(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), bookingID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Approve handles PATCH /bookings/:bookingId?approved=true|false.
func (h *BookingHandler) Approve(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	bookingID, err := parseID(c, "bookingId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "approved query parameter must be true or false")
		return
	}

	result, err := h.service.Approve(c.Request.Context(), bookingID, userID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByBooker handles GET /bookings.
func (h *BookingHandler) ListByBooker(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListByBooker(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByOwner handles GET /bookings/owner?state=.
func (h *BookingHandler) ListByOwner(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	state := c.DefaultQuery("state", application.StateAll)

	result, err := h.service.ListByOwner(c.Request.Context(), userID, state)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
