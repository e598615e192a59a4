package handlers

import (
	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/items"
	"robotpacc/internal/infrastructure/http/v1/dto"
)

const defaultHistoryLimit = 50

// ItemHandler handles HTTP requests for the item catalog.
type ItemHandler struct {
	*BaseHandler
	service *items.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *items.Service) *ItemHandler {
	return &ItemHandler{BaseHandler: base, service: service}
}

// Create handles POST /items
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Item added successfully", "item": dto.FromItem(item)})
}

// List handles GET /items?search=
func (h *ItemHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	res, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(res, dto.FromItem))
}

// Get handles GET /items/:code
func (h *ItemHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("code"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Update handles PUT /items/:code. Quantity and average cost are not
// accepted here.
func (h *ItemHandler) Update(c *gin.Context) {
	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(c.Request.Context(), c.Param("code"), req.Apply)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// Delete handles DELETE /items/:code
func (h *ItemHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("code")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// OverwriteStock handles PUT /items/:code/stock
func (h *ItemHandler) OverwriteStock(c *gin.Context) {
	var req dto.OverwriteStockRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.OverwriteStock(c.Request.Context(), c.Param("code"), *req.Qty, *req.AvgCost)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItem(item))
}

// History handles GET /items/:code/history?limit=
func (h *ItemHandler) History(c *gin.Context) {
	code := c.Param("code")
	entries, err := h.service.History(c.Request.Context(), code, h.ParseIntQuery(c, "limit", defaultHistoryLimit))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.HistoryResponse{ItemCode: code, Entries: entries})
}
