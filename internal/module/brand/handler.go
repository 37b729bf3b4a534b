package brand

import (
	"github.com/gin-gonic/gin"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// BrandHandler handles REST API requests for the brand resource.
type BrandHandler struct {
	svc domain.BrandService
}

// NewHandler creates a new BrandHandler with the given service.
func NewHandler(svc domain.BrandService) *BrandHandler {
	return &BrandHandler{svc: svc}
}

// Create handles POST /api/v1/brands.
func (h *BrandHandler) Create(c *gin.Context) {
	var req CreateBrandRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	brand, err := h.svc.CreateBrand(c.Request.Context(), req.Name, req.LogoURL, activeOrDefault(req.Active))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Created(c, brand)
}

// Get handles GET /api/v1/brands/:id.
func (h *BrandHandler) Get(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	brand, err := h.svc.GetBrand(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, brand)
}

// List handles GET /api/v1/brands.
func (h *BrandHandler) List(c *gin.Context) {
	req := pkg.ParsePageRequest(c)

	result, err := h.svc.ListBrands(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Update handles PUT /api/v1/brands/:id.
func (h *BrandHandler) Update(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	var req UpdateBrandRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	brand, err := h.svc.UpdateBrand(c.Request.Context(), id, req.Name, req.LogoURL, activeOrDefault(req.Active))
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, brand)
}

// Delete handles DELETE /api/v1/brands/:id.
func (h *BrandHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseIDParam(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	if err := h.svc.DeleteBrand(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// activeOrDefault treats an omitted active flag as true.
func activeOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
