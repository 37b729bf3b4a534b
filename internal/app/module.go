package app

import "github.com/gin-gonic/gin"

// Module is implemented by each resource module so the app can register its
// routes without knowing about individual handlers.
type Module interface {
	// RegisterRoutes registers the module's API routes on the /api/v1 group.
	RegisterRoutes(api *gin.RouterGroup)
}
