// Package sqlutil provides small helpers for building and scanning SQL queries.
package sqlutil

import (
	"database/sql"
	"strings"
)

// InClauseIDs returns a comma-separated list of "?" placeholders and the
// corresponding args slice for a set of numeric IDs.
//
// If ids is empty, it returns "NULL" and no args, so `IN (NULL)` matches nothing.
func InClauseIDs(ids []int64) (placeholders string, args []any) {
	if len(ids) == 0 {
		return "NULL", nil
	}
	ph := make([]string, len(ids))
	args = make([]any, len(ids))
	for i, id := range ids {
		ph[i] = "?"
		args[i] = id
	}
	return strings.Join(ph, ", "), args
}

// ScanRows scans all rows into a slice using the provided scanner.
func ScanRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}
