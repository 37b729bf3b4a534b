package brand

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// brandService implements domain.BrandService.
type brandService struct {
	repo domain.BrandRepository
}

// NewService creates a new BrandService with the given repository.
func NewService(repo domain.BrandRepository) domain.BrandService {
	return &brandService{repo: repo}
}

// CreateBrand validates input, builds a Brand, and persists it via the repository.
func (s *brandService) CreateBrand(ctx context.Context, name, logoURL string, active bool) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	brand := &domain.Brand{
		Name:    name,
		Slug:    pkg.Slugify(name),
		LogoURL: strings.TrimSpace(logoURL),
		Active:  active,
	}

	if err := s.repo.Create(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// GetBrand retrieves a brand by ID.
func (s *brandService) GetBrand(ctx context.Context, id uint) (*domain.Brand, error) {
	return s.repo.GetByID(ctx, id)
}

// ListBrands returns a paginated list of brands.
func (s *brandService) ListBrands(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Brand], error) {
	return s.repo.List(ctx, req)
}

// UpdateBrand loads the existing brand, applies changes, and persists them.
func (s *brandService) UpdateBrand(ctx context.Context, id uint, name, logoURL string, active bool) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if err := validateName(name); err != nil {
		return nil, err
	}

	brand, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	brand.Name = name
	brand.Slug = pkg.Slugify(name)
	brand.LogoURL = strings.TrimSpace(logoURL)
	brand.Active = active

	if err := s.repo.Update(ctx, brand); err != nil {
		return nil, err
	}

	return brand, nil
}

// DeleteBrand removes a brand by ID.
func (s *brandService) DeleteBrand(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// validateName checks that the brand name is present and within bounds.
func validateName(name string) error {
	if name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}
	return nil
}
