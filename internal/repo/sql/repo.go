package sql

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Bostads-AB-Mimer/onecore-keys/internal/errs"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/log"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo"
	"github.com/Bostads-AB-Mimer/onecore-keys/internal/repo/violations"
)

var (
	ErrUnsupportedOrderDirective = errors.New("unsupported order directive")
	ErrUnsupportedCondition      = errors.New("unsupported query condition")
)

// Repository implements repo.Repo on a gorm connection.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db: db,
	}
}

// Create stores a new record. Constraint violations surface as
// repo.ErrUniqueConstraint so callers can map them to a conflict.
func (r *Repository) Create(ctx context.Context, m repo.Model) error {
	err := r.db.WithContext(ctx).Create(m).Error
	if err != nil {
		log.Error(ctx, "database create failed", err)

		if errors.Is(err, gorm.ErrDuplicatedKey) || violations.IsUniqueConstraint(err) {
			return errs.Wrap(repo.ErrUniqueConstraint, err)
		}

		return errs.Wrap(repo.ErrCreateFailed, err)
	}

	return nil
}

// List loads the records matched by query into result, which must be a
// pointer to a slice. The returned count is the number of matching rows
// before limit and offset are applied.
func (r *Repository) List(
	ctx context.Context,
	m repo.Model,
	result any,
	query repo.Query,
) (int, error) {
	var count int64

	db, err := applyConditions(r.db.WithContext(ctx).Model(result), query)
	if err != nil {
		return 0, err
	}

	db = db.Count(&count)
	if db.Error != nil {
		return 0, errs.Wrap(repo.ErrLookupFailed, db.Error)
	}

	db, err = applyOrdering(db, query)
	if err != nil {
		return 0, err
	}

	res := applyWindow(db, query).Find(result)
	if res.Error != nil {
		return 0, errs.Wrap(repo.ErrLookupFailed, res.Error)
	}

	return int(count), nil
}

// Delete removes the rows matched by query, or m by primary key when
// the query is empty. It reports whether anything was deleted.
func (r *Repository) Delete(
	ctx context.Context,
	m repo.Model,
	query repo.Query,
) (bool, error) {
	db, err := applyConditions(r.db.WithContext(ctx).Clauses(clause.Returning{}), query)
	if err != nil {
		return false, err
	}

	result := db.Delete(m)
	if result.Error != nil {
		log.Error(ctx, "database delete failed", result.Error)
		return false, errs.Wrap(repo.ErrDeleteFailed, result.Error)
	}

	return result.RowsAffected > 0, nil
}

// First fills m with the first matching record. Populated fields of m
// narrow the search, so a struct with its primary key set loads that row.
func (r *Repository) First(
	ctx context.Context,
	m repo.Model,
	query repo.Query,
) (bool, error) {
	db, err := applyConditions(r.db.WithContext(ctx).Model(m), query)
	if err != nil {
		return false, err
	}

	res := db.First(m)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, errs.Wrap(repo.ErrNotFound, res.Error)
		}

		log.Error(ctx, "database lookup failed", res.Error)

		return false, errs.Wrap(repo.ErrLookupFailed, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Patch updates the row addressed by the primary key of m. Only
// non-zero fields are written unless the query asks for all fields. It
// reports whether a row changed.
func (r *Repository) Patch(
	ctx context.Context,
	m repo.Model,
	query repo.Query,
) (bool, error) {
	db := r.db.WithContext(ctx).Model(m).Clauses(clause.Returning{})
	if query.UpdateAllFields {
		db = db.Select("*") //nolint:unqueryvet
	}

	db, err := applyConditions(db, query)
	if err != nil {
		return false, errs.Wrap(repo.ErrUpdateFailed, err)
	}

	res := db.Updates(m)
	if res.Error != nil {
		log.Error(ctx, "database update failed", res.Error)

		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return false, errs.Wrap(repo.ErrNotFound, res.Error)
		}

		if violations.IsUniqueConstraint(res.Error) ||
			errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, errs.Wrap(repo.ErrUniqueConstraint, res.Error)
		}

		return false, errs.Wrap(repo.ErrUpdateFailed, res.Error)
	}

	return res.RowsAffected > 0, nil
}

// Set creates the record or, when its primary key already exists,
// overwrites every field of the stored row.
func (r *Repository) Set(ctx context.Context, m repo.Model) error {
	err := r.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			UpdateAll: true,
		},
	).Create(m).Error
	if err != nil {
		log.Error(ctx, "database upsert failed", err)
		return errs.Wrap(repo.ErrUpsertFailed, err)
	}

	return nil
}

// Transaction wraps txFunc inside a database transaction. The transaction
// commits when txFunc returns nil and rolls back when it returns an error.
// txFunc receives a Repo bound to the transaction connection.
func (r *Repository) Transaction(ctx context.Context, txFunc repo.TransactionFunc) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return txFunc(ctx, NewRepository(tx))
	})
	if err != nil {
		return errs.Wrap(repo.ErrTransaction, err)
	}

	return nil
}

// applyConditions translates the query conditions and preloads onto db.
// Conditions chain with AND.
func applyConditions(db *gorm.DB, query repo.Query) (*gorm.DB, error) {
	for _, cond := range query.Conditions {
		var err error

		db, err = applyCondition(db, cond)
		if err != nil {
			return nil, err
		}
	}

	for _, assoc := range query.Preloads {
		db = db.Preload(assoc)
	}

	return db, nil
}

func applyCondition(db *gorm.DB, cond repo.Condition) (*gorm.DB, error) {
	field := string(cond.Field)

	switch cond.Op {
	case repo.OpEqual:
		if isSliceValue(cond.Value) {
			return db.Where(field+" IN ?", cond.Value), nil
		}

		return db.Where(field+" = ?", cond.Value), nil
	case repo.OpNotEqual:
		return db.Where(field+" <> ?", cond.Value), nil
	case repo.OpGreaterThan:
		return db.Where(field+" > ?", cond.Value), nil
	case repo.OpLessThan:
		return db.Where(field+" < ?", cond.Value), nil
	case repo.OpContains:
		// LOWER + LIKE behaves the same on postgres and sqlite.
		pattern := "%" + strings.ToLower(fmt.Sprint(cond.Value)) + "%"
		return db.Where("LOWER("+field+") LIKE ?", pattern), nil
	case repo.OpIsNull:
		return db.Where(field + " IS NULL"), nil
	case repo.OpNotNull:
		return db.Where(field + " IS NOT NULL"), nil
	default:
		return nil, errs.Wrapf(ErrUnsupportedCondition, string(cond.Op))
	}
}

func applyOrdering(db *gorm.DB, query repo.Query) (*gorm.DB, error) {
	for _, order := range query.Orders {
		switch order.Direction {
		case repo.Asc, repo.Desc:
			db = db.Order(string(order.Field) + " " + string(order.Direction))
		default:
			return nil, errs.Wrapf(ErrUnsupportedOrderDirective, string(order.Direction))
		}
	}

	return db, nil
}

func applyWindow(db *gorm.DB, query repo.Query) *gorm.DB {
	if query.Limit <= 0 {
		query.Limit = repo.DefaultLimit
	}

	return db.Offset(query.Offset).Limit(query.Limit)
}

// isSliceValue reports whether v is a slice or array, excluding
// uuid.UUID whose underlying type is a byte array.
func isSliceValue(v any) bool {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return false
	}

	return rv.Type() != reflect.TypeFor[uuid.UUID]()
}
