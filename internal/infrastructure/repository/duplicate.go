package repository

import (
	"strings"

	"github.com/orris-inc/warden/internal/shared/errors"
)

// duplicateColumn returns the first of columns named by a unique violation.
// Every unique index name carries its column names, so both the sqlite
// ("UNIQUE constraint failed: t.col") and mysql ("for key 'idx_t_col'")
// messages are matched on the index part only, never on the offending value.
func duplicateColumn(err error, columns ...string) (string, bool) {
	if !errors.IsDuplicateError(err) {
		return "", false
	}
	msg := err.Error()
	for _, marker := range []string{"for key ", "constraint failed: "} {
		if i := strings.LastIndex(msg, marker); i >= 0 {
			msg = msg[i+len(marker):]
			break
		}
	}
	for _, col := range columns {
		if strings.Contains(msg, col) {
			return col, true
		}
	}
	return "", true
}

// isDuplicateOn reports whether err is a unique violation of an index on column
func isDuplicateOn(err error, column string) bool {
	col, dup := duplicateColumn(err, column)
	return dup && col == column
}
