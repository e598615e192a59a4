package v1

import "github.com/gin-gonic/gin"

// CatalogRouteHandler is implemented by catalogs keyed by a natural key
// (suppliers, customers).
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Delete(c *gin.Context)
}

// MovementRouteHandler is implemented by the inward and outward handlers.
type MovementRouteHandler interface {
	CatalogRouteHandler
	Update(c *gin.Context)
}

// RegisterCatalogRoutes registers list, create, get and delete under key.
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler, key string) {
	group.GET("", handler.List)
	group.POST("", handler.Create)
	group.GET("/:"+key, handler.Get)
	group.DELETE("/:"+key, handler.Delete)
}

// RegisterMovementRoutes registers catalog routes plus the administrative
// correction endpoint.
func RegisterMovementRoutes(group *gin.RouterGroup, handler MovementRouteHandler) {
	RegisterCatalogRoutes(group, handler, "uuid")
	group.PUT("/:uuid", handler.Update)
}
