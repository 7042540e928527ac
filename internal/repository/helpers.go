package repository

import (
	"database/sql"
	"fmt"
)

// requireAffected turns a zero-row write into sql.ErrNoRows so services can
// report the missing record.
func requireAffected(res sql.Result, op string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
