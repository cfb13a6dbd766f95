package shared

import "context"

// Reader provides read operations shared by all repositories. ID is the key
// type: int for catalog/ordering entities, string for identity entities.
type Reader[T any, ID comparable] interface {
	FindByID(ctx context.Context, id ID) (*T, error)
	FindAll(ctx context.Context, filter Filter) ([]T, error)
	Count(ctx context.Context, filter Filter) (int64, error)
}

// Writer provides create/update persistence. Save inserts when the entity id
// is unset and updates otherwise.
type Writer[T any] interface {
	Save(ctx context.Context, entity *T) error
}

// HardDeleter physically removes rows. DeleteRange is atomic per call: one
// missing id aborts the whole batch.
type HardDeleter[ID comparable] interface {
	Delete(ctx context.Context, id ID) error
	DeleteRange(ctx context.Context, ids []ID) error
}

// Repository composes the capabilities of a hard-deletable entity store.
type Repository[T any, ID comparable] interface {
	Reader[T, ID]
	Writer[T]
	HardDeleter[ID]
}

// SoftDeletableRepository composes the capabilities of a soft-deletable entity
// store. Reads honor Filter.IncludeInactive; Save persists the IsActive flag,
// so soft delete and restore go through Save.
type SoftDeletableRepository[T any, ID comparable] interface {
	Reader[T, ID]
	Writer[T]
}

// ActingUserChecker verifies that the user id claiming to perform a mutation
// belongs to an existing active account. Every mutating service operation
// runs this guard before touching storage.
type ActingUserChecker interface {
	ExistsActive(ctx context.Context, id string) (bool, error)
}

// ComparisonOp is the operator of a single field comparison.
type ComparisonOp string

const (
	OpEq   ComparisonOp = "eq"
	OpNeq  ComparisonOp = "neq"
	OpGt   ComparisonOp = "gt"
	OpGte  ComparisonOp = "gte"
	OpLt   ComparisonOp = "lt"
	OpLte  ComparisonOp = "lte"
	OpLike ComparisonOp = "like"
)

// FieldComparison is one clause of a caller-supplied filter. The same list of
// comparisons is translated independently per backing store; there is no
// shared predicate object crossing store boundaries.
type FieldComparison struct {
	Field string       `json:"field"`
	Op    ComparisonOp `json:"op"`
	Value any          `json:"value"`
}

// Filter represents query filter options. Comparisons are combined with AND.
// IncludeInactive widens reads of soft-deletable entities to inactive rows;
// it is ignored for hard-deletable entities.
type Filter struct {
	Page            int
	PageSize        int
	OrderBy         string
	OrderDir        string
	Comparisons     []FieldComparison
	IncludeInactive bool
}

// DefaultFilter returns a filter with default values
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 20,
		OrderBy:  "id",
		OrderDir: "asc",
	}
}

// Validate rejects non-positive paging values when paging is requested.
func (f Filter) Validate() *DomainError {
	if f.Page < 0 || f.PageSize < 0 {
		return NewValidationError("Page and page size must be greater than zero")
	}
	if (f.Page == 0) != (f.PageSize == 0) {
		return NewValidationError("Page and page size must be supplied together")
	}
	return nil
}

// Paginated represents a paginated result
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPaginated creates a new paginated result
func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	totalPages := 0
	if pageSize > 0 {
		totalPages = int(total) / pageSize
		if int(total)%pageSize > 0 {
			totalPages++
		}
	}
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}
