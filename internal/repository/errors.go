// Package repository holds the SQL data access for every lead-intake table.
// Queries are written once with "?" placeholders and rebound per driver.
//
// Sentinel errors let handlers tell failure kinds apart: ErrNotFound maps to
// 404 and ErrConflict to 409.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// ErrNotFound is returned when a lookup or targeted update matches no row.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert collides with a unique key, such as
// a second payment row for the same checkout session.
var ErrConflict = errors.New("conflict")

// isUniqueViolation recognizes duplicate-key errors from either driver.
func isUniqueViolation(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	var pe *pq.Error
	if errors.As(err, &pe) {
		return pe.Code == "23505"
	}
	return false
}
