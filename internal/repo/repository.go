package repo

import (
	"context"
	"errors"
)

// TransactionFunc runs inside a transaction; the Repo it receives is
// bound to that transaction.
type TransactionFunc func(context.Context, Repo) error

// Repo is the persistence boundary of the managers. The sql package
// carries the gorm implementation; tests may substitute their own.
type Repo interface {
	Create(ctx context.Context, m Model) error
	List(ctx context.Context, m Model, result any, query Query) (int, error)
	Delete(ctx context.Context, m Model, query Query) (bool, error)
	First(ctx context.Context, m Model, query Query) (bool, error)
	Patch(ctx context.Context, m Model, query Query) (bool, error)
	Set(ctx context.Context, m Model) error
	Transaction(ctx context.Context, txFunc TransactionFunc) error
}

// Model is anything the repository can persist. Every model names its
// own table.
type Model interface {
	TableName() string
}

const (
	DefaultLimit = 100
	MaxLimit     = 500
)

var (
	ErrNotFound         = errors.New("no matching record")
	ErrUniqueConstraint = errors.New("unique constraint violated")
	ErrCreateFailed     = errors.New("create failed")
	ErrUpdateFailed     = errors.New("update failed")
	ErrDeleteFailed     = errors.New("delete failed")
	ErrLookupFailed     = errors.New("lookup failed")
	ErrUpsertFailed     = errors.New("upsert failed")
	ErrTransaction      = errors.New("transaction failed")
)

// Pagination is the page-addressed window used by list endpoints.
// Pages are 1-based; a zero or negative limit falls back to DefaultLimit.
type Pagination struct {
	Page  int
	Limit int
}

func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}

	if limit <= 0 {
		limit = DefaultLimit
	}

	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages reports the page count for a record total. An empty result
// still has one page.
func (p Pagination) TotalPages(totalRecords int) int {
	if totalRecords <= 0 {
		return 1
	}

	pages := totalRecords / p.Limit
	if totalRecords%p.Limit > 0 {
		pages++
	}

	return pages
}

// Apply sets the query window from the pagination.
func (p Pagination) Apply(q *Query) *Query {
	return q.SetLimit(p.Limit).SetOffset(p.Offset())
}

// ProcessInBatch pages through every record matching baseQuery and hands
// each page to processFunc, so large result sets never sit in memory at
// once. Processing stops on the first error.
func ProcessInBatch[T Model](
	ctx context.Context,
	repo Repo,
	baseQuery *Query,
	batchSize int,
	processFunc func([]*T) error,
) error {
	for page := 1; ; page++ {
		var items []*T

		query := NewPagination(page, batchSize).Apply(baseQuery)

		total, err := repo.List(ctx, *new(T), &items, *query)
		if err != nil {
			return err
		}

		err = processFunc(items)
		if err != nil {
			return err
		}

		if page*batchSize >= total {
			return nil
		}
	}
}
