package device

import "github.com/fixstack/deviceadmin/internal/domain"

// DeviceRequest is the payload for creating or updating a device.
type DeviceRequest struct {
	BrandID     uint    `json:"brand_id" binding:"required"`
	Model       string  `json:"model" binding:"required,max=150"`
	ReleaseYear int     `json:"release_year" binding:"omitempty,gte=1990"`
	BasePrice   float64 `json:"base_price" binding:"gte=0"`
	Active      *bool   `json:"active"`
}

func (r DeviceRequest) input() domain.DeviceInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return domain.DeviceInput{
		BrandID:     r.BrandID,
		Model:       r.Model,
		ReleaseYear: r.ReleaseYear,
		BasePrice:   r.BasePrice,
		Active:      active,
	}
}

// VariantRequest is the payload for creating or updating a storage variant.
type VariantRequest struct {
	CapacityGB int     `json:"capacity_gb" binding:"required,gt=0"`
	ExtraPrice float64 `json:"extra_price" binding:"gte=0"`
}
