package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/loopmarket/service-rental/internal/application"
	"github.com/loopmarket/service-rental/internal/pkg/middleware"
	"github.com/loopmarket/service-rental/internal/pkg/response"
)

// RequestHandler handles HTTP requests for item requests.
type RequestHandler struct {
	service *application.RequestService
}

// NewRequestHandler creates a new RequestHandler.
func NewRequestHandler(service *application.RequestService) *RequestHandler {
	return &RequestHandler{service: service}
}

// RegisterRoutes registers all item-request routes on the given router group.
func (h *RequestHandler) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", h.Create)
		requests.GET("", h.ListOwn)
		requests.GET("/all", h.ListOthers)
		requests.GET("/:requestId", h.GetByID)
	}
}

// Create handles POST /requests.
func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	var req application.CreateRequestRequest
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

// ListOwn handles GET /requests.
func (h *RequestHandler) ListOwn(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListOwn(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListOthers handles GET /requests/all?from=&size=.
func (h *RequestHandler) ListOthers(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	from, err := parseIntQuery(c, "from", 0)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	size, err := parseIntQuery(c, "size", 10)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.ListOthers(c.Request.Context(), userID, from, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetByID handles GET /requests/:requestId.
func (h *RequestHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	requestID, err := parseID(c, "requestId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), requestID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
