package handlers

import (
	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/suppliers"
	"robotpacc/internal/infrastructure/http/v1/dto"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	*BaseHandler
	service *suppliers.Service
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *suppliers.Service) *SupplierHandler {
	return &SupplierHandler{BaseHandler: base, service: service}
}

// Create handles POST /suppliers
func (h *SupplierHandler) Create(c *gin.Context) {
	var req dto.CreateSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	sup := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), sup); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Supplier added successfully", "supplier": dto.FromSupplier(sup)})
}

// List handles GET /suppliers?search=
func (h *SupplierHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	res, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(res, dto.FromSupplier))
}

// Get handles GET /suppliers/:phone
func (h *SupplierHandler) Get(c *gin.Context) {
	sup, err := h.service.Get(c.Request.Context(), c.Param("phone"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromSupplier(sup))
}

// Delete handles DELETE /suppliers/:phone
func (h *SupplierHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("phone")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	*BaseHandler
	service *customers.Service
}

// NewCustomerHandler creates a new customer handler.
func NewCustomerHandler(base *BaseHandler, service *customers.Service) *CustomerHandler {
	return &CustomerHandler{BaseHandler: base, service: service}
}

// Create handles POST /customers
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !h.BindJSON(c, &req) {
		return
	}

	cust := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), cust); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{"message": "Customer added successfully", "customer": dto.FromCustomer(cust)})
}

// List handles GET /customers?search=
func (h *CustomerHandler) List(c *gin.Context) {
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}
	res, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.NewListResponse(res, dto.FromCustomer))
}

// Get handles GET /customers/:phone
func (h *CustomerHandler) Get(c *gin.Context) {
	cust, err := h.service.Get(c.Request.Context(), c.Param("phone"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromCustomer(cust))
}

// Delete handles DELETE /customers/:phone
func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("phone")); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
