package domain

import (
	"context"
	"io"
)

// RepairService represents a repair offering with its price and time estimate.
type RepairService struct {
	BaseModel
	Name             string  `gorm:"size:150;uniqueIndex;not null" json:"name"`
	Category         string  `gorm:"size:100;index;not null" json:"category"`
	Price            float64 `gorm:"not null" json:"price"`
	EstimatedMinutes int     `json:"estimated_minutes"`
	Active           bool    `gorm:"default:true" json:"active"`
}

// RepairServiceRepository defines the data access interface for repair services.
type RepairServiceRepository interface {
	Create(ctx context.Context, svc *RepairService) error
	GetByID(ctx context.Context, id uint) (*RepairService, error)
	List(ctx context.Context, req PageRequest) (*PageResult[RepairService], error)
	ListAll(ctx context.Context, req PageRequest) ([]RepairService, error)
	Update(ctx context.Context, svc *RepairService) error
	Delete(ctx context.Context, id uint) error
}

// RepairServiceInput carries the writable fields of a repair service.
type RepairServiceInput struct {
	Name             string
	Category         string
	Price            float64
	EstimatedMinutes int
	Active           bool
}

// RepairServiceService defines the business logic interface for repair services.
type RepairServiceService interface {
	CreateService(ctx context.Context, in RepairServiceInput) (*RepairService, error)
	GetService(ctx context.Context, id uint) (*RepairService, error)
	ListServices(ctx context.Context, req PageRequest) (*PageResult[RepairService], error)
	UpdateService(ctx context.Context, id uint, in RepairServiceInput) (*RepairService, error)
	DeleteService(ctx context.Context, id uint) error

	Import(ctx context.Context, r io.Reader) (*ImportReport, error)
	Export(ctx context.Context, req PageRequest, w io.Writer) error
}
