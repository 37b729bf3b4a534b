package brand

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// Allowed fields for sorting, searching, and filtering in List queries.
var (
	allowedSortFields   = []string{"id", "name", "slug", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "slug", "active"}
	searchFields        = []string{"name", "slug"}
)

// brandRepository implements domain.BrandRepository using GORM.
type brandRepository struct {
	db *gorm.DB
}

// NewRepository creates a new BrandRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.BrandRepository {
	return &brandRepository{db: db}
}

// Create inserts a new brand into the database.
func (r *brandRepository) Create(ctx context.Context, brand *domain.Brand) error {
	if err := r.db.WithContext(ctx).Create(brand).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a brand by its primary key.
func (r *brandRepository) GetByID(ctx context.Context, id uint) (*domain.Brand, error) {
	var brand domain.Brand
	if err := r.db.WithContext(ctx).First(&brand, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &brand, nil
}

// List returns a paginated, sorted, searched, and filtered list of brands.
func (r *brandRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Brand], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Brand{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
		)

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var brands []domain.Brand
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&brands).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(brands, total, req), nil
}

// Update saves changes to an existing brand.
func (r *brandRepository) Update(ctx context.Context, brand *domain.Brand) error {
	if err := r.db.WithContext(ctx).Save(brand).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Delete removes a brand by ID.
func (r *brandRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Brand{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
