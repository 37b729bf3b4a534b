package repair

import "github.com/gin-gonic/gin"

// ServiceModule implements the app.Module interface for the repair service domain.
type ServiceModule struct {
	handler *ServiceHandler
}

// NewModule creates a new ServiceModule with the given handler.
// Panics if h is nil.
func NewModule(h *ServiceHandler) *ServiceModule {
	if h == nil {
		panic("repair.NewModule: handler must not be nil")
	}
	return &ServiceModule{handler: h}
}

// RegisterRoutes registers repair service API routes. The export route is
// registered before the :id route so "export" is not parsed as an ID.
func (m *ServiceModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/services", m.handler.Create)
	api.POST("/services/import", m.handler.Import)
	api.GET("/services/export", m.handler.Export)
	api.GET("/services/:id", m.handler.Get)
	api.GET("/services", m.handler.List)
	api.PUT("/services/:id", m.handler.Update)
	api.DELETE("/services/:id", m.handler.Delete)
}
