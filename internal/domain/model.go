package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest holds pagination, sorting, search, and filtering parameters.
//
// Filter keys follow these conventions:
//   - "field"       exact match
//   - "field__like" substring match
//   - "field_min"   numeric lower bound (inclusive)
//   - "field_max"   numeric upper bound (inclusive)
type PageRequest struct {
	Page     int
	PageSize int
	Sort     string
	Search   string
	Filter   map[string]string
}

// PageResult is the canonical paginated list shape returned by every List
// operation. TotalPages is always at least 1, even when Total is zero, so
// pagination stays stable on empty results.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// RowError describes a single failed row in a bulk import.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// ImportReport summarizes the outcome of a bulk spreadsheet import.
type ImportReport struct {
	Imported int        `json:"imported"`
	Failed   int        `json:"failed"`
	Errors   []RowError `json:"errors,omitempty"`
}
