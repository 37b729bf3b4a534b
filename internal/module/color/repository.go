package color

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

var (
	allowedSortFields   = []string{"id", "name", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "hex"}
	searchFields        = []string{"name", "hex"}
)

// colorRepository implements domain.ColorRepository using GORM.
type colorRepository struct {
	db *gorm.DB
}

// NewRepository creates a new ColorRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.ColorRepository {
	return &colorRepository{db: db}
}

func (r *colorRepository) Create(ctx context.Context, color *domain.Color) error {
	if err := r.db.WithContext(ctx).Create(color).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *colorRepository) GetByID(ctx context.Context, id uint) (*domain.Color, error) {
	var color domain.Color
	if err := r.db.WithContext(ctx).First(&color, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &color, nil
}

func (r *colorRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Color], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Color{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
		)

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var colors []domain.Color
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&colors).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(colors, total, req), nil
}

func (r *colorRepository) Update(ctx context.Context, color *domain.Color) error {
	if err := r.db.WithContext(ctx).Save(color).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *colorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Color{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
