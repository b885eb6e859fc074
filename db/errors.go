package db

import (
	"strings"

	"github.com/teranos/semval/errors"
)

// ErrDatabaseClosed marks store operations that ran after the fact
// database was closed.
var ErrDatabaseClosed = errors.New("database is closed")

const closedHint = "the database was closed before the operation finished; rerun the command"

// MarkClosed turns a driver "database is closed" error into
// ErrDatabaseClosed, keeping the driver error as detail. Other errors,
// nil included, are returned unchanged.
func MarkClosed(err error) error {
	if err == nil || errors.Is(err, ErrDatabaseClosed) {
		return err
	}
	if strings.Contains(err.Error(), "database is closed") {
		return errors.WithHint(errors.WithSecondaryError(ErrDatabaseClosed, err), closedHint)
	}
	return err
}

// IsDatabaseClosed reports whether err comes from a closed database,
// marked or raw from the driver.
func IsDatabaseClosed(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseClosed) {
		return true
	}
	return strings.Contains(err.Error(), "database is closed")
}
