package handlers

import (
	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/infrastructure/http/v1/dto"
)

// InwardHandler handles HTTP requests for stock receipts.
type InwardHandler struct {
	*BaseHandler
	service *inward.Service
}

// NewInwardHandler creates a new inward handler.
func NewInwardHandler(base *BaseHandler, service *inward.Service) *InwardHandler {
	return &InwardHandler{BaseHandler: base, service: service}
}

// Create handles POST /inward
func (h *InwardHandler) Create(c *gin.Context) {
	var req dto.CreateInwardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Process(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromInwardResult(res))
}

// List handles GET /inward?itemcode=&phone=
func (h *InwardHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	res, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(res, dto.FromReceipt))
}

// Get handles GET /inward/:uuid
func (h *InwardHandler) Get(c *gin.Context) {
	r, err := h.service.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromReceipt(r))
}

// Update handles PUT /inward/:uuid
func (h *InwardHandler) Update(c *gin.Context) {
	var req dto.UpdateInwardRequest
	if !h.BindJSON(c, &req) {
		return
	}
	r, err := h.service.Update(c.Request.Context(), c.Param("uuid"), req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromReceipt(r))
}

// Delete handles DELETE /inward/:uuid
func (h *InwardHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// OutwardHandler handles HTTP requests for stock issues.
type OutwardHandler struct {
	*BaseHandler
	service *outward.Service
}

// NewOutwardHandler creates a new outward handler.
func NewOutwardHandler(base *BaseHandler, service *outward.Service) *OutwardHandler {
	return &OutwardHandler{BaseHandler: base, service: service}
}

// Create handles POST /outward
func (h *OutwardHandler) Create(c *gin.Context) {
	var req dto.CreateOutwardRequest
	if !h.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Process(c.Request.Context(), req.ToInput())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromOutwardResult(res))
}

// List handles GET /outward?itemcode=&phone=
func (h *OutwardHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	res, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(res, dto.FromIssue))
}

// Get handles GET /outward/:uuid
func (h *OutwardHandler) Get(c *gin.Context) {
	i, err := h.service.Get(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIssue(i))
}

// Update handles PUT /outward/:uuid
func (h *OutwardHandler) Update(c *gin.Context) {
	var req dto.UpdateOutwardRequest
	if !h.BindJSON(c, &req) {
		return
	}
	i, err := h.service.Update(c.Request.Context(), c.Param("uuid"), req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromIssue(i))
}

// Delete handles DELETE /outward/:uuid
func (h *OutwardHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("uuid")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
