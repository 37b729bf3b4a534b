package repair

import (
	"context"

	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

var (
	allowedSortFields   = []string{"id", "name", "category", "price", "estimated_minutes", "created_at", "updated_at"}
	allowedFilterFields = []string{"name", "category", "active", "price", "estimated_minutes"}
	searchFields        = []string{"name", "category"}
)

// repairRepository implements domain.RepairServiceRepository using GORM.
type repairRepository struct {
	db *gorm.DB
}

// NewRepository creates a new RepairServiceRepository backed by the given GORM database.
func NewRepository(db *gorm.DB) domain.RepairServiceRepository {
	return &repairRepository{db: db}
}

func (r *repairRepository) Create(ctx context.Context, svc *domain.RepairService) error {
	if err := r.db.WithContext(ctx).Create(svc).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *repairRepository) GetByID(ctx context.Context, id uint) (*domain.RepairService, error) {
	var svc domain.RepairService
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &svc, nil
}

func (r *repairRepository) List(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.RepairService], error) {
	var total int64
	base := r.db.WithContext(ctx).Model(&domain.RepairService{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
		)

	if err := base.Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var svcs []domain.RepairService
	if err := base.Scopes(
		pkg.Paginate(req),
		pkg.Sort(req, allowedSortFields),
	).Find(&svcs).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(svcs, total, req), nil
}

// ListAll returns every repair service matching the request's search and
// filters, without pagination. Used by exports.
func (r *repairRepository) ListAll(ctx context.Context, req domain.PageRequest) ([]domain.RepairService, error) {
	var svcs []domain.RepairService
	if err := r.db.WithContext(ctx).Model(&domain.RepairService{}).
		Scopes(
			pkg.Search(req, searchFields),
			pkg.Filter(req, allowedFilterFields),
			pkg.Sort(req, allowedSortFields),
		).Find(&svcs).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return svcs, nil
}

func (r *repairRepository) Update(ctx context.Context, svc *domain.RepairService) error {
	if err := r.db.WithContext(ctx).Save(svc).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *repairRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.RepairService{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
