package persistence

import (
	"fmt"
	"strings"

	"github.com/Ammar-000/PointOfSale/internal/domain/shared"
	"gorm.io/gorm"
)

// catalogFilter translates shared.Filter for the integer-keyed catalog and
// ordering tables. Each store family has its own translator; a filter is a
// list of field comparisons, not a predicate object shared across stores.
type catalogFilter struct {
	// columns whitelists filterable/sortable JSON field names and maps them
	// to column names. Unknown fields are ignored.
	columns map[string]string

	// softDeletable tables get an implicit is_active = true clause unless the
	// filter asks for inactive rows.
	softDeletable bool
}

func (f catalogFilter) apply(query *gorm.DB, filter shared.Filter) *gorm.DB {
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

func (f catalogFilter) applyWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if f.softDeletable && !filter.IncludeInactive {
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
		case shared.OpGt:
			query = query.Where(column+" > ?", cmp.Value)
		case shared.OpGte:
			query = query.Where(column+" >= ?", cmp.Value)
		case shared.OpLt:
			query = query.Where(column+" < ?", cmp.Value)
		case shared.OpLte:
			query = query.Where(column+" <= ?", cmp.Value)
		case shared.OpLike:
			query = query.Where(column+" ILIKE ?", fmt.Sprintf("%%%v%%", cmp.Value))
		}
	}

	return query
}
