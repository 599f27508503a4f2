package persistence

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hamsefx10-lgtm/revlo-backend/internal/domain/shared"
)

// ValidateSortField validates a sort field against a whitelist to
// prevent SQL injection through ORDER BY. Returns the fallback when
// the field is not allowed.
func ValidateSortField(field string, allowed map[string]bool, fallback string) string {
	if allowed[field] {
		return field
	}
	return fallback
}

// ValidateSortOrder validates a sort direction, defaulting to DESC
func ValidateSortOrder(dir string) string {
	if strings.EqualFold(dir, "asc") {
		return "ASC"
	}
	return "DESC"
}

// ApplyFilter applies sorting and pagination from a shared.Filter.
// Sort fields are validated against the allowed whitelist.
func ApplyFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	sortField := ValidateSortField(filter.OrderBy, allowed, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.PageSize > 0 {
		query = query.Limit(filter.PageSize)
		offset := (filter.Page - 1) * filter.PageSize
		if offset > 0 {
			query = query.Offset(offset)
		}
	}
	return query
}
