package repositories

import (
	"strings"

	"gorm.io/gorm"

	domainerrors "dragon-roster.backend/internal/domain/errors"
	"dragon-roster.backend/pkg/utils"
)

func paginate(query *gorm.DB, pagination utils.PaginationParams) *gorm.DB {
	if pagination.Limit > 0 {
		return query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}
	return query
}

// likeTerm builds a case-insensitive LIKE operand; the column side must be
// wrapped in LOWER().
func likeTerm(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

func hasSearch(search string) bool {
	return strings.TrimSpace(search) != ""
}

func domainNotFound() error {
	return domainerrors.ErrNotFound
}
