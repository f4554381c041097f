package violations

import "errors"

// SQLite extended result codes for uniqueness violations, surfaced by the
// driver through a Code method. See https://www.sqlite.org/rescode.html.
const (
	SqliteConstraintPrimaryKey = 1555
	SqliteConstraintUnique     = 2067
)

type sqliteError interface {
	Code() int
}

// isSqliteUniqueConstraint checks if the error is a SQLite unique or primary
// key constraint violation
func isSqliteUniqueConstraint(err error) bool {
	var sqliteErr sqliteError
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()

	return code == SqliteConstraintPrimaryKey || code == SqliteConstraintUnique
}
