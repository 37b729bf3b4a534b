package color

import (
	"github.com/gin-gonic/gin"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// CreateColorRequest represents the input for creating a new color.
type CreateColorRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Hex  string `json:"hex" form:"hex" binding:"required,len=7"`
}

// UpdateColorRequest represents the input for updating an existing color.
type UpdateColorRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=100"`
	Hex  string `json:"hex" form:"hex" binding:"required,len=7"`
}

// ColorHandler handles REST API requests for the color resource.
type ColorHandler struct {
	svc domain.ColorService
}

// NewHandler creates a new ColorHandler with the given service.
func NewHandler(svc domain.ColorService) *ColorHandler {
	return &ColorHandler{svc: svc}
}

// Create handles POST /api/v1/colors.
func (h *ColorHandler) Create(c *gin.Context) {
	var req CreateColorRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	color, err := h.svc.CreateColor(c.Request.Context(), req.Name, req.Hex)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, color)
}

// Get handles GET /api/v1/colors/:id.
func (h *ColorHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	color, err := h.svc.GetColor(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, color)
}

// List handles GET /api/v1/colors.
func (h *ColorHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListColors(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/colors/:id.
func (h *ColorHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateColorRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	color, err := h.svc.UpdateColor(c.Request.Context(), id, req.Name, req.Hex)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, color)
}

// Delete handles DELETE /api/v1/colors/:id.
func (h *ColorHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteColor(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}
