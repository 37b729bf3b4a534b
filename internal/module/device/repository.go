package device

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// Allowed fields for sorting, searching, and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "model", "slug", "brand_id", "release_year", "base_price", "created_at", "updated_at"}
	allowedFilterFields = []string{"model", "slug", "brand_id", "release_year", "base_price", "active"}
	searchFields        = []string{"model", "slug"}
)

// deviceRepository implements domain.DeviceRepository using GORM.
type deviceRepository struct {
	db *gorm.DB
}

// NewRepository creates a new DeviceRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.DeviceRepository {
	return &deviceRepository{db: db}
}

// Create inserts a new device into the database.
func (r *deviceRepository) Create(ctx context.Context, device *domain.Device) error {
	if err := r.db.WithContext(ctx).Create(device).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a device with its brand and storage variants.
func (r *deviceRepository) GetByID(ctx context.Context, id uint) (*domain.Device, error) {
	var device domain.Device
	if err := r.db.WithContext(ctx).
		Preload("Brand").
		Preload("Variants").
		First(&device, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &device, nil
}

// List returns a paginated, sorted, searched, and filtered list of devices.
// Brands are preloaded; variants are not, to keep list payloads small.
func (r *deviceRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Device], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Device{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
		)

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var devices []domain.Device
	if err := base.Preload("Brand").Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&devices).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(devices, total, req), nil
}

// ListAll returns every device matching the request's search and filters,
// without pagination. Used by exports.
func (r *deviceRepository) ListAll(ctx context.Context, req domain.PageRequest) ([]domain.Device, error) {
	var devices []domain.Device
	if err := r.db.WithContext(ctx).Model(&domain.Device{}).
		Preload("Brand").
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
			pkg.Sort(req, allowedSortFields),
		).Find(&devices).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return devices, nil
}

// Update saves changes to an existing device.
func (r *deviceRepository) Update(ctx context.Context, device *domain.Device) error {
	if err := r.db.WithContext(ctx).Save(device).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a device and its storage variants.
func (r *deviceRepository) Delete(ctx context.Context, id uint) error {
	return pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Device{}, id)
		if result.Error != nil {
			return pkg.MapDBError(result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("device_id = ?", id).Delete(&domain.StorageVariant{}).Error; err != nil {
			return pkg.MapDBError(err)
		}
		return nil
	})
}

// CreateVariant inserts a new storage variant.
func (r *deviceRepository) CreateVariant(ctx context.Context, variant *domain.StorageVariant) error {
	if err := r.db.WithContext(ctx).Create(variant).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ListVariants returns all storage variants of a device ordered by capacity.
func (r *deviceRepository) ListVariants(ctx context.Context, deviceID uint) ([]domain.StorageVariant, error) {
	var variants []domain.StorageVariant
	if err := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Order("capacity_gb ASC").
		Find(&variants).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return variants, nil
}

// UpdateVariant saves changes to an existing storage variant.
func (r *deviceRepository) UpdateVariant(ctx context.Context, variant *domain.StorageVariant) error {
	if err := r.db.WithContext(ctx).Save(variant).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// DeleteVariant removes a storage variant, scoped to its device so a variant
// of another device cannot be deleted through a mismatched URL.
func (r *deviceRepository) DeleteVariant(ctx context.Context, deviceID, variantID uint) error {
	result := r.db.WithContext(ctx).
		Where("device_id = ?", deviceID).
		Delete(&domain.StorageVariant{}, variantID)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
