package persistence

import (
	"fmt"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"gorm.io/gorm"
)

// identityFilter translates shared.Filter for the uuid-keyed identity tables.
// It is deliberately independent of the catalog translator: the identity
// store never supports range operators on its string keys, and LIKE matching
// is restricted to name-ish columns.
type identityFilter struct {
	columns     map[string]string
	likeColumns map[string]bool
}

func (f identityFilter) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = f.applyWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		if column, ok := f.columns[filter.OrderBy]; ok {
			orderDir := "ASC"
			if strings.ToLower(filter.OrderDir) == "desc" {
				orderDir = "DESC"
			}
			query = query.Order(column + " " + orderDir)
		}
	}

	return query
}

func (f identityFilter) applyWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if !filter.IncludeInactive {
		query = query.Where("is_active = ?", true)
	}

	for _, cmp := range filter.Comparisons {
		column, ok := f.columns[cmp.Field]
		if !ok {
			continue
		}
		switch cmp.Op {
		case shared.OpEq:
			query = query.Where(column+" = ?", cmp.Value)
		case shared.OpNeq:
			query = query.Where(column+" <> ?", cmp.Value)
		case shared.OpLike:
			if f.likeColumns[cmp.Field] {
				query = query.Where(column+" ILIKE ?", fmt.Sprintf("%%%v%%", cmp.Value))
			}
		}
	}

	return query
}
