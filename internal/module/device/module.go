package device

import "github.com/gin-gonic/gin"

// DeviceModule implements the app.Module interface for the device domain.
type DeviceModule struct {
	handler *DeviceHandler
}

// NewModule creates a new DeviceModule with the given handler.
// Panics if h is nil.
func NewModule(h *DeviceHandler) *DeviceModule {
	if h == nil {
		panic("device.NewModule: handler must not be nil")
	}
	return &DeviceModule{handler: h}
}

// RegisterRoutes registers device API routes. The export route is registered
// before the :id route so "export" is not parsed as an ID.
func (m *DeviceModule) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/devices", m.handler.Create)
	api.POST("/devices/import", m.handler.Import)
	api.GET("/devices/export", m.handler.Export)
	api.GET("/devices/:id", m.handler.Get)
	api.GET("/devices", m.handler.List)
	api.PUT("/devices/:id", m.handler.Update)
	api.DELETE("/devices/:id", m.handler.Delete)

	api.POST("/devices/:id/variants", m.handler.AddVariant)
	api.GET("/devices/:id/variants", m.handler.ListVariants)
	api.PUT("/devices/:id/variants/:variantId", m.handler.UpdateVariant)
	api.DELETE("/devices/:id/variants/:variantId", m.handler.RemoveVariant)
}
