package brand

// CreateBrandRequest represents the input for creating a new brand.
type CreateBrandRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=1,max=100"`
	LogoURL string `json:"logo_url" form:"logo_url" binding:"omitempty,url,max=500"`
	Active  *bool  `json:"active" form:"active"`
}

// UpdateBrandRequest represents the input for updating an existing brand.
type UpdateBrandRequest struct {
	Name    string `json:"name" form:"name" binding:"required,min=1,max=100"`
	LogoURL string `json:"logo_url" form:"logo_url" binding:"omitempty,url,max=500"`
	Active  *bool  `json:"active" form:"active"`
}
