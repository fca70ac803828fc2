// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"errors"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

type violation int

const (
	violationNone violation = iota
	violationUnique
	violationForeignKey
	violationCheck
)

// classify maps driver constraint errors onto the violations handlers care about.
func classify(err error) violation {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Name() {
		case "unique_violation":
			return violationUnique
		case "foreign_key_violation":
			return violationForeignKey
		case "check_violation":
			return violationCheck
		}
		return violationNone
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return violationUnique
		case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
			return violationForeignKey
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return violationCheck
		}
	}

	return violationNone
}

func isUniqueViolation(err error) bool     { return classify(err) == violationUnique }
func isForeignKeyViolation(err error) bool { return classify(err) == violationForeignKey }
func isCheckViolation(err error) bool      { return classify(err) == violationCheck }
