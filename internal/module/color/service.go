package color

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/fixstack/deviceadmin/internal/domain"
)

// hexPattern matches a #-prefixed 6-digit hex color code.
var hexPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// colorService implements domain.ColorService.
type colorService struct {
	repo domain.ColorRepository
}

// NewService creates a new ColorService with the given repository.
func NewService(repo domain.ColorRepository) domain.ColorService {
	return &colorService{repo: repo}
}

// CreateColor validates input, builds a Color, and persists it.
func (s *colorService) CreateColor(ctx context.Context, name, hex string) (*domain.Color, error) {
	name = strings.TrimSpace(name)
	hex = strings.ToLower(strings.TrimSpace(hex))
	if err := validateColor(name, hex); err != nil {
		return nil, err
	}

	color := &domain.Color{Name: name, Hex: hex}
	if err := s.repo.Create(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// GetColor retrieves a color by ID.
func (s *colorService) GetColor(ctx context.Context, id uint) (*domain.Color, error) {
	return s.repo.GetByID(ctx, id)
}

// ListColors returns a paginated list of colors.
func (s *colorService) ListColors(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Color], error) {
	return s.repo.List(ctx, req)
}

// UpdateColor loads the existing color, applies changes, and persists them.
func (s *colorService) UpdateColor(ctx context.Context, id uint, name, hex string) (*domain.Color, error) {
	name = strings.TrimSpace(name)
	hex = strings.ToLower(strings.TrimSpace(hex))
	if err := validateColor(name, hex); err != nil {
		return nil, err
	}

	color, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	color.Name = name
	color.Hex = hex

	if err := s.repo.Update(ctx, color); err != nil {
		return nil, err
	}
	return color, nil
}

// DeleteColor removes a color by ID.
func (s *colorService) DeleteColor(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// validateColor checks name presence/length and hex code format.
func validateColor(name, hex string) error {
	if name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}
	if !hexPattern.MatchString(hex) {
		return domain.NewAppError(domain.CodeValidation, "hex must be a #rrggbb color code", nil)
	}
	return nil
}
