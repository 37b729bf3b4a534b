package plan

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

var (
	allowedSortFields   = []string{"id", "name", "monthly_price", "message_quota", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "active", "monthly_price", "message_quota"}
	searchFields        = []string{"name", "features"}
)

// planRepository implements domain.PlanRepository using GORM.
type planRepository struct {
	db *gorm.DB
}

// NewRepository creates a new PlanRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.PlanRepository {
	return &planRepository{db: db}
}

func (r *planRepository) Create(ctx context.Context, plan *domain.Plan) error {
	if err := r.db.WithContext(ctx).Create(plan).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *planRepository) GetByID(ctx context.Context, id uint) (*domain.Plan, error) {
	var plan domain.Plan
	if err := r.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &plan, nil
}

func (r *planRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Plan], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.Plan{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
		)

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var plans []domain.Plan
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&plans).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(plans, total, req), nil
}

func (r *planRepository) Update(ctx context.Context, plan *domain.Plan) error {
	if err := r.db.WithContext(ctx).Save(plan).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *planRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Plan{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
