package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/loopmarket/service-rental/internal/application"
	"github.com/loopmarket/service-rental/internal/pkg/middleware"
	"github.com/loopmarket/service-rental/internal/pkg/response"
)

// ItemHandler handles HTTP requests for item listings and comments.
type ItemHandler struct {
	service *application.ItemService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(service *application.ItemService) *ItemHandler {
	return &ItemHandler{service: service}
}

// RegisterRoutes registers all item routes on the given router group.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/items")
	{
		items.POST("", h.Create)
		items.GET("", h.ListByOwner)
		items.GET("/search", h.Search)
		items.GET("/:itemId", h.GetByID)
		items.PATCH("/:itemId", h.Update)
		items.POST("/:itemId/comment", h.AddComment)
	}
}

// Create handles POST /items.
func (h *ItemHandler) Create(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	var req application.CreateItemRequest
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

// Update handles PATCH /items/:itemId.
func (h *ItemHandler) Update(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	itemID, err := parseID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Update(c.Request.Context(), itemID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetByID handles GET /items/:itemId. Booking info is attached only when the
// caller owns the item.
func (h *ItemHandler) GetByID(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	itemID, err := parseID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GetByID(c.Request.Context(), itemID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListByOwner handles GET /items.
func (h *ItemHandler) ListByOwner(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	result, err := h.service.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// Search handles GET /items/search?text=.
func (h *ItemHandler) Search(c *gin.Context) {
	result, err := h.service.Search(c.Request.Context(), c.Query("text"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddComment handles POST /items/:itemId/comment.
func (h *ItemHandler) AddComment(c *gin.Context) {
	userID, ok := middleware.RequireCallerID(c)
	if !ok {
		return
	}

	itemID, err := parseID(c, "itemId")
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var req application.AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), itemID, userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}
