package domain

import "context"

// Brand represents a device manufacturer in the catalog.
type Brand struct {
	BaseModel
	Name    string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Slug    string `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	LogoURL string `gorm:"size:500" json:"logo_url"`
	Active  bool   `gorm:"default:true" json:"active"`
}

// BrandRepository defines the data access interface for brands.
type BrandRepository interface {
	Create(ctx context.Context, brand *Brand) error
	GetByID(ctx context.Context, id uint) (*Brand, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Brand], error)
	Update(ctx context.Context, brand *Brand) error
	Delete(ctx context.Context, id uint) error
}

// BrandService defines the business logic interface for brands.
type BrandService interface {
	CreateBrand(ctx context.Context, name, logoURL string, active bool) (*Brand, error)
	GetBrand(ctx context.Context, id uint) (*Brand, error)
	ListBrands(ctx context.Context, req PageRequest) (*PageResult[Brand], error)
	UpdateBrand(ctx context.Context, id uint, name, logoURL string, active bool) (*Brand, error)
	DeleteBrand(ctx context.Context, id uint) error
}
