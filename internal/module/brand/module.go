package brand

import "github.com/gin-gonic/gin"

// BrandModule implements the app.Module interface for the brand domain.
type BrandModule struct {
	handler *BrandHandler
}

// NewModule creates a new BrandModule with the given handler.
// Panics if h is nil.
func NewModule(h *BrandHandler) *BrandModule {
	if h == nil {
		panic("brand.NewModule: handler must not be nil")
	}
	return &BrandModule{handler: h}
}

// RegisterRoutes registers brand API routes.
func (m *BrandModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/brands", m.handler.Create)
	api.GET("/brands/:id", m.handler.Get)
	api.GET("/brands", m.handler.List)
	api.PUT("/brands/:id", m.handler.Update)
	api.DELETE("/brands/:id", m.handler.Delete)
}
