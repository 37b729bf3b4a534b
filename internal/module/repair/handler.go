package repair

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ServiceHandler handles REST API requests for the repair service resource.
type ServiceHandler struct {
	svc           domain.RepairServiceService
	maxImportSize int64
}

// NewHandler creates a new ServiceHandler with the given service.
// maxImportSize bounds uploaded workbooks in bytes.
func NewHandler(svc domain.RepairServiceService, maxImportSize int64) *ServiceHandler {
	return &ServiceHandler{svc: svc, maxImportSize: maxImportSize}
}

// Create handles POST /api/v1/services.
func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	svc, err := h.svc.CreateService(c.Request.Context(), req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, svc)
}

// Get handles GET /api/v1/services/:id.
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	svc, err := h.svc.GetService(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, svc)
}

// List handles GET /api/v1/services.
func (h *ServiceHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListServices(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/services/:id.
func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req ServiceRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	svc, err := h.svc.UpdateService(c.Request.Context(), id, req.input())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, svc)
}

// Delete handles DELETE /api/v1/services/:id.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteService(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Import handles POST /api/v1/services/import. It expects a multipart form
// with the workbook under the "file" field.
func (h *ServiceHandler) Import(c *gin.Context) {
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

// Export handles GET /api/v1/services/export. The current search and filter
// query parameters apply; pagination does not.
func (h *ServiceHandler) Export(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	filename := fmt.Sprintf("services-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if err := h.svc.Export(c.Request.Context(), req, c.Writer); err != nil {
		// Headers may already be written; best effort status.
		c.Status(http.StatusInternalServerError)
		return
	}
}
