// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"robotpacc/internal/domain/customers"
	"robotpacc/internal/domain/export"
	"robotpacc/internal/domain/inward"
	"robotpacc/internal/domain/items"
	"robotpacc/internal/domain/outward"
	"robotpacc/internal/domain/reports"
	"robotpacc/internal/domain/suppliers"
	"robotpacc/internal/infrastructure/http/v1/handlers"
	"robotpacc/internal/infrastructure/http/v1/middleware"
	"robotpacc/pkg/logger"
)

// RouterConfig holds the services exposed over HTTP.
type RouterConfig struct {
	Items     *items.Service
	Suppliers *suppliers.Service
	Customers *customers.Service
	Inward    *inward.Service
	Outward   *outward.Service
	Reports   *reports.Service
	Export    *export.Service

	// DB backs the readiness and info endpoints.
	DB handlers.DBHealth

	// Logger for request logging
	Logger *logger.Logger

	// Debug switches gin into debug mode.
	Debug bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Default()
	}

	router := gin.New()

	// Recovery sits innermost so that ErrorHandler renders the recovered panic.
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.Recovery())

	healthHandler := handlers.NewHealthHandler(cfg.DB)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
		health.GET("/info", healthHandler.Info)
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")

	registerItemRoutes(api.Group("/items"), handlers.NewItemHandler(base, cfg.Items))
	RegisterCatalogRoutes(api.Group("/suppliers"), handlers.NewSupplierHandler(base, cfg.Suppliers), "phone")
	RegisterCatalogRoutes(api.Group("/customers"), handlers.NewCustomerHandler(base, cfg.Customers), "phone")
	RegisterMovementRoutes(api.Group("/inward"), handlers.NewInwardHandler(base, cfg.Inward))
	RegisterMovementRoutes(api.Group("/outward"), handlers.NewOutwardHandler(base, cfg.Outward))
	registerReportRoutes(api.Group("/reports"), handlers.NewReportsHandler(base, cfg.Reports))

	exportHandler := handlers.NewExportHandler(base, cfg.Export)
	api.GET("/export/:kind", exportHandler.Export)

	return router
}

func registerItemRoutes(g *gin.RouterGroup, h *handlers.ItemHandler) {
	g.GET("", h.List)
	g.POST("", h.Create)
	g.GET("/:code", h.Get)
	g.PUT("/:code", h.Update)
	g.DELETE("/:code", h.Delete)
	g.PUT("/:code/stock", h.OverwriteStock)
	g.GET("/:code/history", h.History)
}

func registerReportRoutes(g *gin.RouterGroup, h *handlers.ReportsHandler) {
	g.GET("/low-stock", h.LowStock)
	g.GET("/expired", h.Expired)
	g.GET("/stock-overview", h.StockOverview)
	g.GET("/sales-summary", h.SalesSummary)
	g.GET("/top-selling", h.TopSelling)
	g.GET("/recent-movements", h.RecentMovements)
	g.GET("/profits-total", h.ProfitsTotal)
	g.GET("/avg-cost", h.AverageCost)
	g.GET("/dashboard", h.Dashboard)
	g.GET("/movements/:kind", h.Movements)
}
