package testutils

import (
	"gorm.io/gorm"
)

// Operation selects which gorm processors a forced error hooks into.
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpQuery  Operation = "query"
	OpRow    Operation = "row"
	OpRaw    Operation = "raw"
)

var allOperations = []Operation{OpCreate, OpUpdate, OpDelete, OpQuery, OpRow, OpRaw}

const forcedCallbackName = "testutils:forced_error"

// ForceDBError makes the listed gorm operations on db fail with err until
// the returned restore function runs. Listing no operations fails them all.
// Tests use it to drive repository failures without touching the database.
func ForceDBError(db *gorm.DB, err error, ops ...Operation) (restore func()) {
	if len(ops) == 0 {
		ops = allOperations
	}

	inject := func(tx *gorm.DB) {
		_ = tx.AddError(err)
	}

	for _, op := range ops {
		register, _ := callbackHooks(db, op)
		_ = register(forcedCallbackName, inject)
	}

	return func() {
		for _, op := range ops {
			_, remove := callbackHooks(db, op)
			_ = remove(forcedCallbackName)
		}
	}
}

// callbackHooks returns the register and remove functions anchored just
// before the default gorm callback for op.
func callbackHooks(
	db *gorm.DB,
	op Operation,
) (register func(string, func(*gorm.DB)) error, remove func(string) error) {
	switch op {
	case OpCreate:
		cb := db.Callback().Create().Before("gorm:create")
		return cb.Register, cb.Remove
	case OpUpdate:
		cb := db.Callback().Update().Before("gorm:update")
		return cb.Register, cb.Remove
	case OpDelete:
		cb := db.Callback().Delete().Before("gorm:delete")
		return cb.Register, cb.Remove
	case OpQuery:
		cb := db.Callback().Query().Before("gorm:query")
		return cb.Register, cb.Remove
	case OpRow:
		cb := db.Callback().Row().Before("gorm:row")
		return cb.Register, cb.Remove
	default:
		cb := db.Callback().Raw().Before("gorm:raw")
		return cb.Register, cb.Remove
	}
}
