package color

import "github.com/gin-gonic/gin"

// ColorModule implements the app.Module interface for the color domain.
type ColorModule struct {
	handler *ColorHandler
}

// NewModule creates a new ColorModule with the given handler.
// Panics if h is nil.
func NewModule(h *ColorHandler) *ColorModule {
	if h == nil {
		panic("color.NewModule: handler must not be nil")
	}
	return &ColorModule{handler: h}
}

// RegisterRoutes registers color API routes.
func (m *ColorModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/colors", m.handler.Create)
	api.GET("/colors/:id", m.handler.Get)
	api.GET("/colors", m.handler.List)
	api.PUT("/colors/:id", m.handler.Update)
	api.DELETE("/colors/:id", m.handler.Delete)
}
