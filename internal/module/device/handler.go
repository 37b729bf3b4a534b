package device

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// DeviceHandler handles REST API requests for the device resource.
type DeviceHandler struct {
	svc           domain.DeviceService
	maxImportSize int64
}

// NewHandler creates a new DeviceHandler with the given service.
// maxImportSize bounds uploaded workbooks in bytes.
func NewHandler(svc domain.DeviceService, maxImportSize int64) *DeviceHandler {
	return &DeviceHandler{svc: svc, maxImportSize: maxImportSize}
}

// Create handles POST /api/v1/devices.
func (h *DeviceHandler) Create(c *gin.Context) {
	var req DeviceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	device, err := h.svc.CreateDevice(c.Request.Context(), req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, device)
}

// Get handles GET /api/v1/devices/:id.
func (h *DeviceHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	device, err := h.svc.GetDevice(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, device)
}

// List handles GET /api/v1/devices.
func (h *DeviceHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListDevices(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/devices/:id.
func (h *DeviceHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req DeviceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	device, err := h.svc.UpdateDevice(c.Request.Context(), id, req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, device)
}

// Delete handles DELETE /api/v1/devices/:id.
func (h *DeviceHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteDevice(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// AddVariant handles POST /api/v1/devices/:id/variants.
func (h *DeviceHandler) AddVariant(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req VariantRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	variant, err := h.svc.AddVariant(c.Request.Context(), id, req.CapacityGB, req.ExtraPrice)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, variant)
}

// ListVariants handles GET /api/v1/devices/:id/variants.
func (h *DeviceHandler) ListVariants(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	variants, err := h.svc.ListVariants(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, variants)
}

// UpdateVariant handles PUT /api/v1/devices/:id/variants/:variantId.
func (h *DeviceHandler) UpdateVariant(c *gin.Context) {
	id, variantID, ok := h.variantParams(c)
	if !ok {
		return
	}

	var req VariantRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	variant, err := h.svc.UpdateVariant(c.Request.Context(), id, variantID, req.CapacityGB, req.ExtraPrice)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, variant)
}

// RemoveVariant handles DELETE /api/v1/devices/:id/variants/:variantId.
func (h *DeviceHandler) RemoveVariant(c *gin.Context) {
	id, variantID, ok := h.variantParams(c)
	if !ok {
		return
	}

	if err := h.svc.RemoveVariant(c.Request.Context(), id, variantID); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Import handles POST /api/v1/devices/import. It expects a multipart form
// with the workbook under the "file" field.
func (h *DeviceHandler) Import(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "missing file upload", err))
		return
	}
	if fileHeader.Size > h.maxImportSize {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "file too large", nil))
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "unreadable file upload", err))
		return
	}
	defer f.Close()

	report, err := h.svc.Import(c.Request.Context(), f)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, report)
}

// Export handles GET /api/v1/devices/export. The current search and filter
// query parameters apply; pagination does not.
func (h *DeviceHandler) Export(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	filename := fmt.Sprintf("devices-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.Export(c.Request.Context(), req, c.Writer); err != nil {
		// Headers may already be written; best effort status.
		c.Status(http.StatusInternalServerError)
		return
	}
}

func (h *DeviceHandler) variantParams(c *gin.Context) (deviceID, variantID uint, ok bool) {
	deviceID, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return 0, 0, false
	}
	variantID, err = pkg.ParseUintParam(c, "variantId")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return 0, 0, false
	}
	return deviceID, variantID, true
}
