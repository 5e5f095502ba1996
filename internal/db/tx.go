// Package db holds small helpers over database/sql.
package db

import (
	"database/sql"
)

// WithTx runs fn inside a transaction: committed when fn returns nil,
// rolled back otherwise.
func WithTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Exec runs each statement in order inside one transaction.
func Exec(db *sql.DB, stmts ...string) error {
	return WithTx(db, func(tx *sql.Tx) error {
		for _, stmt := range stmts {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
