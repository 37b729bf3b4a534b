package device

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/fixstack/deviceadmin/internal/domain"
	"github.com/fixstack/deviceadmin/internal/pkg"
)

// exportHeader is the column layout shared by exports and imports. The brand
// column is informational on export; imports resolve brands by brand_id.
var exportHeader = []string{"brand_id", "brand", "model", "release_year", "base_price", "active"}

// deviceService implements domain.DeviceService.
type deviceService struct {
	repo   domain.DeviceRepository
	brands domain.BrandRepository
}

// NewService creates a new DeviceService with the given repositories.
func NewService(repo domain.DeviceRepository, brands domain.BrandRepository) domain.DeviceService {
	return &deviceService{repo: repo, brands: brands}
}

// CreateDevice validates input, resolves the brand, and persists a new device.
// The slug is derived from the brand slug and the model name.
func (s *deviceService) CreateDevice(ctx context.Context, in domain.DeviceInput) (*domain.Device, error) {
	in.Model = strings.TrimSpace(in.Model)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	brand, err := s.brands.GetByID(ctx, in.BrandID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "brand does not exist", nil)
		}
		return nil, err
	}

	device := &domain.Device{
		BrandID:     brand.ID,
		Model:       in.Model,
		Slug:        pkg.Slugify(brand.Slug + " " + in.Model),
		ReleaseYear: in.ReleaseYear,
		BasePrice:   in.BasePrice,
		Active:      in.Active,
	}

	if err := s.repo.Create(ctx, device); err != nil {
		return nil, err
	}
	device.Brand = brand
	return device, nil
}

// GetDevice retrieves a device with its brand and storage variants.
func (s *deviceService) GetDevice(ctx context.Context, id uint) (*domain.Device, error) {
	return s.repo.GetByID(ctx, id)
}

// ListDevices returns a paginated list of devices.
func (s *deviceService) ListDevices(ctx context.Context, req domain.PageRequest) (*domain.PageResult[domain.Device], error) {
	return s.repo.List(ctx, req)
}

// UpdateDevice loads the existing device, applies changes, and persists them.
// Changing the brand or model recomputes the slug.
func (s *deviceService) UpdateDevice(ctx context.Context, id uint, in domain.DeviceInput) (*domain.Device, error) {
	in.Model = strings.TrimSpace(in.Model)
	if err := validateInput(in); err != nil {
		return nil, err
	}

	device, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	brand, err := s.brands.GetByID(ctx, in.BrandID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "brand does not exist", nil)
		}
		return nil, err
	}

	device.BrandID = brand.ID
	device.Model = in.Model
	device.Slug = pkg.Slugify(brand.Slug + " " + in.Model)
	device.ReleaseYear = in.ReleaseYear
	device.BasePrice = in.BasePrice
	device.Active = in.Active

	if err := s.repo.Update(ctx, device); err != nil {
		return nil, err
	}
	device.Brand = brand
	return device, nil
}

// DeleteDevice removes a device and its storage variants.
func (s *deviceService) DeleteDevice(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// AddVariant creates a storage variant for an existing device.
func (s *deviceService) AddVariant(ctx context.Context, deviceID uint, capacityGB int, extraPrice float64) (*domain.StorageVariant, error) {
	if err := validateVariant(capacityGB, extraPrice); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}

	variant := &domain.StorageVariant{
		DeviceID:   deviceID,
		CapacityGB: capacityGB,
		ExtraPrice: extraPrice,
	}
	if err := s.repo.CreateVariant(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// ListVariants returns the storage variants of a device.
func (s *deviceService) ListVariants(ctx context.Context, deviceID uint) ([]domain.StorageVariant, error) {
	if _, err := s.repo.GetByID(ctx, deviceID); err != nil {
		return nil, err
	}
	return s.repo.ListVariants(ctx, deviceID)
}

// UpdateVariant applies changes to a storage variant of the given device.
func (s *deviceService) UpdateVariant(ctx context.Context, deviceID, variantID uint, capacityGB int, extraPrice float64) (*domain.StorageVariant, error) {
	if err := validateVariant(capacityGB, extraPrice); err != nil {
		return nil, err
	}

	variants, err := s.repo.ListVariants(ctx, deviceID)
	if err != nil {
		return nil, err
	}

	var variant *domain.StorageVariant
	for i := range variants {
		if variants[i].ID == variantID {
			variant = &variants[i]
			break
		}
	}
	if variant == nil {
		return nil, domain.ErrNotFound
	}

	variant.CapacityGB = capacityGB
	variant.ExtraPrice = extraPrice
	if err := s.repo.UpdateVariant(ctx, variant); err != nil {
		return nil, err
	}
	return variant, nil
}

// RemoveVariant deletes a storage variant of the given device.
func (s *deviceService) RemoveVariant(ctx context.Context, deviceID, variantID uint) error {
	return s.repo.DeleteVariant(ctx, deviceID, variantID)
}

// Import reads an xlsx stream and creates one device per data row. Rows that
// fail to parse or persist are reported individually; valid rows are still
// imported. Row numbers in the report are 1-based workbook rows (the header
// is row 1).
func (s *deviceService) Import(ctx context.Context, r io.Reader) (*domain.ImportReport, error) {
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

		if _, err := s.CreateDevice(ctx, in); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, domain.RowError{Row: rowNum, Message: err.Error()})
			continue
		}
		report.Imported++
	}

	return report, nil
}

// Export writes every device matching the request's search and filters to w
// as an xlsx workbook.
func (s *deviceService) Export(ctx context.Context, req domain.PageRequest, w io.Writer) error {
	devices, err := s.repo.ListAll(ctx, req)
	if err != nil {
		return err
	}

	rows := make([][]any, 0, len(devices))
	for _, d := range devices {
		brandName := ""
		if d.Brand != nil {
			brandName = d.Brand.Name
		}
		rows = append(rows, []any{d.BrandID, brandName, d.Model, d.ReleaseYear, d.BasePrice, d.Active})
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
	for _, required := range []string{"brand_id", "model", "base_price"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}
	return cols, nil
}

// parseRow converts one spreadsheet row into a DeviceInput.
func parseRow(cols map[string]int, row []string) (domain.DeviceInput, error) {
	var in domain.DeviceInput

	brandRaw := strings.TrimSpace(pkg.Cell(row, cols["brand_id"]))
	brandID, err := strconv.ParseUint(brandRaw, 10, 32)
	if err != nil || brandID == 0 {
		return in, fmt.Errorf("invalid brand_id %q", brandRaw)
	}
	in.BrandID = uint(brandID)

	in.Model = strings.TrimSpace(pkg.Cell(row, cols["model"]))

	priceRaw := strings.TrimSpace(pkg.Cell(row, cols["base_price"]))
	price, err := strconv.ParseFloat(priceRaw, 64)
	if err != nil {
		return in, fmt.Errorf("invalid base_price %q", priceRaw)
	}
	in.BasePrice = price

	if idx, ok := cols["release_year"]; ok {
		if raw := strings.TrimSpace(pkg.Cell(row, idx)); raw != "" {
			year, err := strconv.Atoi(raw)
			if err != nil {
				return in, fmt.Errorf("invalid release_year %q", raw)
			}
			in.ReleaseYear = year
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

// validateInput checks the device field rules.
func validateInput(in domain.DeviceInput) error {
	if in.BrandID == 0 {
		return domain.NewAppError(domain.CodeValidation, "brand_id is required", nil)
	}
	if in.Model == "" {
		return domain.NewAppError(domain.CodeValidation, "model is required", nil)
	}
	if utf8.RuneCountInString(in.Model) > 150 {
		return domain.NewAppError(domain.CodeValidation, "model must be at most 150 characters", nil)
	}
	if in.ReleaseYear != 0 && (in.ReleaseYear < 1990 || in.ReleaseYear > time.Now().Year()+1) {
		return domain.NewAppError(domain.CodeValidation, "release_year is out of range", nil)
	}
	if in.BasePrice < 0 {
		return domain.NewAppError(domain.CodeValidation, "base_price must not be negative", nil)
	}
	return nil
}

// validateVariant checks the storage variant field rules.
func validateVariant(capacityGB int, extraPrice float64) error {
	if capacityGB <= 0 {
		return domain.NewAppError(domain.CodeValidation, "capacity_gb must be positive", nil)
	}
	if extraPrice < 0 {
		return domain.NewAppError(domain.CodeValidation, "extra_price must not be negative", nil)
	}
	return nil
}
