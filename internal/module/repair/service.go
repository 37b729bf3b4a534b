package repair

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// exportHeader is the column layout shared by exports and imports.
var exportHeader = []string{"name", "category", "price", "estimated_minutes", "active"}

// repairService implements domain.RepairServiceService.
type repairService struct {
	repo domain.RepairServiceRepository
}

// NewService creates a new RepairServiceService with the given repository.
func NewService(repo domain.RepairServiceRepository) domain.RepairServiceService {
	return &repairService{repo: repo}
}

// CreateService validates input, builds a RepairService, and persists it.
func (s *repairService) CreateService(ctx context.Context, in domain.RepairServiceInput) (*domain.RepairService, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	svc := &domain.RepairService{
		Name:             in.Name,
		Category:         in.Category,
		Price:            in.Price,
		EstimatedMinutes: in.EstimatedMinutes,
		Active:           in.Active,
	}

	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// GetService retrieves a repair service by ID.
func (s *repairService) GetService(ctx context.Context, id uint) (*domain.RepairService, error) {
	return s.repo.GetByID(ctx, id)
}

// ListServices returns a paginated list of repair services.
func (s *repairService) ListServices(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.RepairService], error) {
	return s.repo.List(ctx, req)
}

// UpdateService loads the existing repair service, applies changes, and persists them.
func (s *repairService) UpdateService(ctx context.Context, id uint, in domain.RepairServiceInput) (*domain.RepairService, error) {
	in = normalizeInput(in)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	svc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	svc.Name = in.Name
	svc.Category = in.Category
	svc.Price = in.Price
	svc.EstimatedMinutes = in.EstimatedMinutes
	svc.Active = in.Active

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	return svc, nil
}

// DeleteService removes a repair service by ID.
func (s *repairService) DeleteService(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// Import reads an xlsx stream and creates one repair service per data row.
// Rows that fail to parse or persist are reported individually; valid rows
// are still imported. Row numbers in the report are 1-based workbook rows
// (the header is row 1).
func (s *repairService) Import(ctx context.Context, r io.Reader) (*domain.ImportReport, error) {
	header, rows, err := pkg.ReadSheet(r)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, "unreadable spreadsheet", err)
	}
	cols, err := mapColumns(header)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeValidation, err.Error(), nil)
	}

	report := &domain.ImportReport{}
	for i, row := range rows {
		rowNum := i + 2

		in, err := parseRow(cols, row)
		if err != nil {
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: rowNum, Message: err.Error()})
			continue
		}

		if _, err := s.CreateService(ctx, in); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		report.Imported++
	}

	return report, nil
}

// Export writes every repair service matching the request's search and filters
// to w as an xlsx workbook.
func (s *repairService) Export(ctx context.Context, req domain.PageRequest, w io.Writer) error {
	svcs, err := s.repo.ListAll(ctx, req)
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(svcs))
	for _, svc := range svcs {
		rows = append(rows, []any{svc.Name, svc.Category, svc.Price, svc.EstimatedMinutes, svc.Active})
	}

	if err := pkg.WriteSheet(w, exportHeader, rows); err != nil {
		return domain.NewAppError(domain.CodeInternal, "failed to build workbook", err)
	}
	return nil
}

// mapColumns resolves the header row to column indexes. Required columns must
// be present; order is free.
func mapColumns(header []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "category", "price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

// parseRow converts one spreadsheet row into a RepairServiceInput.
func parseRow(cols map[string]int, row []string) (domain.RepairServiceInput, error) {
	var in domain.RepairServiceInput

	in.Name = strings.TrimSpace(pkg.Cell(row, cols["name"]))
	in.Category = strings.TrimSpace(pkg.Cell(row, cols["category"]))

	priceRaw := strings.TrimSpace(pkg.Cell(row, cols["price"]))
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return in, fmt.Errorf("invalid price %q", priceRaw)
	}
	in.Price = price

	in.EstimatedMinutes = 0
	if idx, ok := cols["estimated_minutes"]; ok {
		if raw := strings.TrimSpace(pkg.Cell(row, idx)); raw != "" {
			minutes, err := strconv.Atoi(raw)
			if err != nil {
				return in, fmt.Errorf("invalid estimated_minutes %q", raw)
			}
			in.EstimatedMinutes = minutes
		}
	}

	in.Active = true
	if idx, ok := cols["active"]; ok {
		if raw := strings.TrimSpace(pkg.Cell(row, idx)); raw != "" {
			active, err := strconv.ParseBool(strings.ToLower(raw))
			if err != nil {
				return in, fmt.Errorf("invalid active %q", raw)
			}
			in.Active = active
		}
	}

	return in, nil
}

// normalizeInput trims string fields.
func normalizeInput(in domain.RepairServiceInput) domain.RepairServiceInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Category = strings.TrimSpace(in.Category)
	return in
}

// validateInput checks the repair service field rules.
func validateInput(in domain.RepairServiceInput) error {
	if in.Name == "" {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(in.Name) > 150 {
		return domain.NewAppError(domain.CodeValidation, "name must be at most 150 characters", nil)
	}
	if in.Category == "" {
		return domain.NewAppError(domain.CodeValidation, "category is required", nil)
	}
	if in.Price < 0 {
		return domain.NewAppError(domain.CodeValidation, "price must not be negative", nil)
	}
	if in.EstimatedMinutes < 0 {
		return domain.NewAppError(domain.CodeValidation, "estimated_minutes must not be negative", nil)
	}
	return nil
}
