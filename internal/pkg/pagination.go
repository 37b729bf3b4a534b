package pkg

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fixstack/deviceadmin/internal/domain"
)

const (
	defaultPage     = 1
	defaultPageSize = 20
	maxPageSize     = 100
	defaultSort     = "id:desc"
)

// reservedParams lists query parameter names used for pagination, sorting,
// and search, not for filtering.
var reservedParams = map[string]bool{
	"page":      true,
	"page_size": true,
	"sort":      true,
	"search":    true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePageRequest extracts pagination, sorting, search, and filtering
// parameters from query params. Empty filter values are dropped entirely, so
// an empty scalar filter and an absent one produce the same request.
func ParsePageRequest(c *gin.Context) domain.PageRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	if page < 1 {
		page = defaultPage
	}

	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	sort := c.DefaultQuery("sort", defaultSort)
	search := strings.TrimSpace(c.Query("search"))

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.PageRequest{
		Page:     page,
		PageSize: pageSize,
		Sort:     sort,
		Search:   search,
		Filter:   filter,
	}
}

// Paginate returns a GORM scope that applies LIMIT and OFFSET based on the page request.
func Paginate(req domain.PageRequest) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		offset := (req.Page - 1) * req.PageSize
		return db.Offset(offset).Limit(req.PageSize)
	}
}

// Sort returns a GORM scope that applies ORDER BY based on the page request.
// Only field names present in the allowed list are accepted; others are silently ignored.
// Field names are validated against a strict pattern to prevent SQL injection.
func Sort(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		parts := strings.SplitN(req.Sort, ":", 2)
		if len(parts) != 2 {
			return db
		}

		field := strings.TrimSpace(parts[0])
		direction := strings.TrimSpace(strings.ToLower(parts[1]))

		if direction != "asc" && direction != "desc" {
			return db
		}

		if !validFieldName.MatchString(field) {
			return db
		}

		if !isAllowed(field, allowed) {
			return db
		}

		return db.Order(field + " " + direction)
	}
}

// Search returns a GORM scope that applies a case-insensitive substring match
// of the free-text search term against every field in the given list, joined
// with OR. An empty term or field list leaves the query untouched.
func Search(req domain.PageRequest, fields []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(req.Search)
		if term == "" || len(fields) == 0 {
			return db
		}

		var conds []string
		var args []any
		for _, f := range fields {
			if !validFieldName.MatchString(f) {
				continue
			}
			conds = append(conds, f+" LIKE ?")
			args = append(args, "%"+term+"%")
		}
		if len(conds) == 0 {
			return db
		}

		return db.Where(strings.Join(conds, " OR "), args...)
	}
}

// Filter returns a GORM scope that applies WHERE conditions based on the page request filters.
// Only filter keys whose base field is present in the allowed list are applied;
// others are silently ignored.
//
//   - "field__like" produces field LIKE '%value%'
//   - "field_min"   produces field >= value
//   - "field_max"   produces field <= value
//   - anything else produces field = value
func Filter(req domain.PageRequest, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for key, value := range req.Filter {
			field, op := splitFilterKey(key)
			if !validFieldName.MatchString(field) {
				continue
			}
			if !isAllowed(field, allowed) {
				continue
			}

			switch op {
			case "like":
				db = db.Where(field+" LIKE ?", "%"+value+"%")
			case "min":
				db = db.Where(field+" >= ?", value)
			case "max":
				db = db.Where(field+" <= ?", value)
			default:
				db = db.Where(field+" = ?", value)
			}
		}
		return db
	}
}

// splitFilterKey separates a filter key into its base field name and operator
// suffix ("like", "min", "max", or "" for exact match).
func splitFilterKey(key string) (field, op string) {
	switch {
	case strings.HasSuffix(key, "__like"):
		return strings.TrimSuffix(key, "__like"), "like"
	case strings.HasSuffix(key, "_min"):
		return strings.TrimSuffix(key, "_min"), "min"
	case strings.HasSuffix(key, "_max"):
		return strings.TrimSuffix(key, "_max"), "max"
	default:
		return key, ""
	}
}

// NewPageResult creates a PageResult with computed TotalPages.
// TotalPages is never below 1, even for an empty result.
func NewPageResult[T any](items []T, total int64, req domain.PageRequest) *domain.PageResult[T] {
	totalPages := 1
	if req.PageSize > 0 {
		if tp := int(math.Ceil(float64(total) / float64(req.PageSize))); tp > 1 {
			totalPages = tp
		}
	}

	if items == nil {
		items = []T{}
	}

	return &domain.PageResult[T]{
		Items:      items,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}
}

// isAllowed checks if a field name is in the allowed list.
func isAllowed(field string, allowed []string) bool {
	return slices.Contains(allowed, field)
}
