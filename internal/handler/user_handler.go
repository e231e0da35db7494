package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/loopmarket/service-rental/internal/application"
	"github.com/loopmarket/service-rental/internal/pkg/response"
)

// UserHandler handles HTTP requests for user accounts. User routes carry no
// identity header; they are the administrative surface the gateway exposes.
type UserHandler struct {
	service *application.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *application.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// RegisterRoutes registers all user routes on the given router group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.POST("", h.Create)
		users.GET("", h.List)
		users.GET("/:userId", h.GetByID)
		users.PATCH("/:userId", h.Update)
		users.DELETE("/:userId", h.Delete)
	}
}

// Create handles POST /users.
func (h *UserHandler) Create(c *gin.Context) {
	var req application.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Update handles PATCH /users/:userId.
func (h *UserHandler) Update(c *gin.Context) {
	userID, err := parseID(c, "userId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetByID handles GET /users/:userId.
func (h *UserHandler) GetByID(c *gin.Context) {
	userID, err := parseID(c, "userId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// List handles GET /users.
func (h *UserHandler) List(c *gin.Context) {
	result, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Delete handles DELETE /users/:userId.
func (h *UserHandler) Delete(c *gin.Context) {
	userID, err := parseID(c, "userId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
