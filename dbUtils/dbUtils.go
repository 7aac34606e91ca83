package dbutils

import (
	"github.com/pkg/errors"
	db "github.com/upper/db/v4"
)

// Deletes every row of the given tables, in the given order (children before parents)
func ClearTables(sess db.Session, tables ...string) error {
	for _, table := range tables {
		if _, err := sess.SQL().DeleteFrom(table).Exec(); err != nil {
			return errors.Wrapf(err, "clear %s", table)
		}
	}
	return nil
}

// Returns the number of rows in a table
func CountRows(sess db.Session, table string) (uint64, error) {
	n, err := sess.Collection(table).Find().Count()
	if err != nil {
		return 0, errors.Wrapf(err, "count %s", table)
	}
	return n, nil
}

// Executes the schema statements in order
func CreateSchema(sess db.Session, ddl []string) error {
	for _, stmt := range ddl {
		if _, err := sess.SQL().Exec(stmt); err != nil {
			return errors.Wrap(err, "create schema")
		}
	}
	return nil
}
