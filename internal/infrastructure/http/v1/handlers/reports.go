package handlers

import (
	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/reports"
	"robotpacc/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{BaseHandler: base, service: service}
}

// LowStock handles GET /reports/low-stock
func (h *ReportsHandler) LowStock(c *gin.Context) {
	list, err := h.service.ListLowStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.LowStockResponse{LowStockItems: dto.FromItems(list)})
}

// Expired handles GET /reports/expired
func (h *ReportsHandler) Expired(c *gin.Context) {
	list, err := h.service.ListExpired(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromItems(list))
}

// StockOverview handles GET /reports/stock-overview
func (h *ReportsHandler) StockOverview(c *gin.Context) {
	overview, err := h.service.StockOverview(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, overview)
}

// SalesSummary handles GET /reports/sales-summary
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	sum, err := h.service.SalesSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, sum)
}

// TopSelling handles GET /reports/top-selling?limit=
func (h *ReportsHandler) TopSelling(c *gin.Context) {
	top, err := h.service.TopSelling(c.Request.Context(), h.ParseIntQuery(c, "limit", reports.DefaultTopSellingLimit))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, top)
}

// RecentMovements handles GET /reports/recent-movements?limit=
func (h *ReportsHandler) RecentMovements(c *gin.Context) {
	recent, err := h.service.RecentMovements(c.Request.Context(), h.ParseIntQuery(c, "limit", reports.DefaultRecentLimit))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, recent)
}

// ProfitsTotal handles GET /reports/profits-total
func (h *ReportsHandler) ProfitsTotal(c *gin.Context) {
	total, err := h.service.ProfitsTotal(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, total)
}

// AverageCost handles GET /reports/avg-cost
func (h *ReportsHandler) AverageCost(c *gin.Context) {
	avg, err := h.service.AverageCost(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, avg)
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	d, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromDashboard(d))
}

// Movements handles GET /reports/movements/:kind
func (h *ReportsHandler) Movements(c *gin.Context) {
	kind, err := reports.ParseMovementKind(c.Param("kind"))
	if err != nil {
		h.Error(c, err)
		return
	}
	var q dto.ListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	list, err := h.service.ListMovements(c.Request.Context(), kind, q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromMovementList(list))
}
