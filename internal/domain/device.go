package domain

import (
	"context"
	"io"
)

// Device represents a device model in the resale catalog.
type Device struct {
	BaseModel
	BrandID     uint             `gorm:"index;not null" json:"brand_id"`
	Brand       *Brand           `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	Model       string           `gorm:"size:150;not null" json:"model"`
	Slug        string           `gorm:"size:150;uniqueIndex;not null" json:"slug"`
	ReleaseYear int              `json:"release_year"`
	BasePrice   float64          `gorm:"not null" json:"base_price"`
	Active      bool             `gorm:"default:true" json:"active"`
	Variants    []StorageVariant `gorm:"foreignKey:DeviceID" json:"variants,omitempty"`
}

// StorageVariant is a storage capacity option of a device with its price
// adjustment relative to the device base price.
type StorageVariant struct {
	BaseModel
	DeviceID   uint    `gorm:"index;not null" json:"device_id"`
	CapacityGB int     `gorm:"not null" json:"capacity_gb"`
	ExtraPrice float64 `json:"extra_price"`
}

// DeviceRepository defines the data access interface for devices and their
// storage variants.
type DeviceRepository interface {
	Create(ctx context.Context, device *Device) error
	GetByID(ctx context.Context, id uint) (*Device, error)
	List(ctx context.Context, req PageRequest) (*PageResult[Device], error)
	ListAll(ctx context.Context, req PageRequest) ([]Device, error)
	Update(ctx context.Context, device *Device) error
	Delete(ctx context.Context, id uint) error

	CreateVariant(ctx context.Context, variant *StorageVariant) error
	ListVariants(ctx context.Context, deviceID uint) ([]StorageVariant, error)
	UpdateVariant(ctx context.Context, variant *StorageVariant) error
	DeleteVariant(ctx context.Context, deviceID, variantID uint) error
}

// DeviceService defines the business logic interface for devices.
type DeviceService interface {
	CreateDevice(ctx context.Context, in DeviceInput) (*Device, error)
	GetDevice(ctx context.Context, id uint) (*Device, error)
	ListDevices(ctx context.Context, req PageRequest) (*PageResult[Device], error)
	UpdateDevice(ctx context.Context, id uint, in DeviceInput) (*Device, error)
	DeleteDevice(ctx context.Context, id uint) error

	AddVariant(ctx context.Context, deviceID uint, capacityGB int, extraPrice float64) (*StorageVariant, error)
	ListVariants(ctx context.Context, deviceID uint) ([]StorageVariant, error)
	UpdateVariant(ctx context.Context, deviceID, variantID uint, capacityGB int, extraPrice float64) (*StorageVariant, error)
	RemoveVariant(ctx context.Context, deviceID, variantID uint) error

	Import(ctx context.Context, r io.Reader) (*ImportReport, error)
	Export(ctx context.Context, req PageRequest, w io.Writer) error
}

// DeviceInput carries the writable fields of a device.
type DeviceInput struct {
	BrandID     uint
	Model       string
	ReleaseYear int
	BasePrice   float64
	Active      bool
}
