package domain

import "context"

// Color represents a device color option.
type Color struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Hex  string `gorm:"size:7;not null" json:"hex"`
}

// ColorRepository defines the data access interface for colors.
type ColorRepository interface {
	Create(ctx context.Context, color *Color) error
	GetByID(ctx context.Context, id uint) (*Color, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Color], error)
	Update(ctx context.Context, color *Color) error
	Delete(ctx context.Context, id uint) error
}

// ColorService defines the business logic interface for colors.
type ColorService interface {
	CreateColor(ctx context.Context, name, hex string) (*Color, error)
	GetColor(ctx context.Context, id uint) (*Color, error)
	ListColors(ctx context.Context, req PageRequest) (*PageResult[Color], error)
	UpdateColor(ctx context.Context, id uint, name, hex string) (*Color, error)
	DeleteColor(ctx context.Context, id uint) error
}
