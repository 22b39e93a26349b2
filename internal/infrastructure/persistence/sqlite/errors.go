package sqlite

import (
	"errors"

	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// IsBusy reports lock contention on the database file. Another connection
// held the write lock past busy_timeout, so the statement can be retried.
func IsBusy(err error) bool {
	code, ok := errorCode(err)
	return ok && (code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED)
}

func isUniqueViolation(err error) bool {
	code, ok := errorCode(err)
	return ok && code == sqlite3.SQLITE_CONSTRAINT
}

// errorCode returns the primary result code; extended codes carry it in the
// low byte.
func errorCode(err error) (int, bool) {
	var sqliteErr *moderncsqlite.Error
	if !errors.As(err, &sqliteErr) {
		return 0, false
	}
	return sqliteErr.Code() & 0xff, true
}
