package plan

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fixstack/deviceadmin/internal/domain"
)

// featureSeparator joins the plan feature list into its stored string form.
const featureSeparator = ","

// planService implements domain.PlanService.
type planService struct {
	repo domain.PlanRepository
}

// NewService creates a new PlanService with the given repository.
func NewService(repo domain.PlanRepository) domain.PlanService {
	return &planService{repo: repo}
}

// CreatePlan validates input, builds a Plan, and persists it.
func (s *planService) CreatePlan(ctx context.Context, in domain.PlanInput) (*domain.Plan, error) {
	in.Name = strings.TrimSpace(in.Name)
	features := normalizeFeatures(in.Features)
	if err := validatePlan(in, features); err != nil {
		return nil, err
	}

	plan := &domain.Plan{
		Name:         in.Name,
		MonthlyPrice: in.MonthlyPrice,
		MessageQuota: in.MessageQuota,
		Features:     strings.Join(features, featureSeparator),
		Active:       in.Active,
	}

	if err := s.repo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// GetPlan retrieves a plan by ID.
func (s *planService) GetPlan(ctx context.Context, id uint) (*domain.Plan, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPlans returns a paginated list of plans.
func (s *planService) ListPlans(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Plan], error) {
	return s.repo.List(ctx, req)
}

// UpdatePlan loads the existing plan, applies changes, and persists them.
func (s *planService) UpdatePlan(ctx context.Context, id uint, in domain.PlanInput) (*domain.Plan, error) {
	in.Name = strings.TrimSpace(in.Name)
	features := normalizeFeatures(in.Features)
	if err := validatePlan(in, features); err != nil {
		return nil, err
	}

	plan, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	plan.Name = in.Name
	plan.MonthlyPrice = in.MonthlyPrice
	plan.MessageQuota = in.MessageQuota
	plan.Features = strings.Join(features, featureSeparator)
	plan.Active = in.Active

	if err := s.repo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// DeletePlan removes a plan by ID.
func (s *planService) DeletePlan(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// normalizeFeatures trims entries and drops empties, preserving order.
func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// validatePlan checks the plan's field-level rules.
func validatePlan(in domain.PlanInput, features []string) error {
	if in.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(in.Name) > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}
	if in.MonthlyPrice < 0 {
		return domain.NewAppError(domain.CodeValidation, "monthly_price must not be negative", nil)
	}
	if in.MessageQuota < 0 {
		return domain.NewAppError(domain.CodeValidation, "message_quota must not be negative", nil)
	}
	if len(features) == 0 {
		return domain.NewAppError(domain.CodeValidation, "at least one feature is required", nil)
	}
	return nil
}
