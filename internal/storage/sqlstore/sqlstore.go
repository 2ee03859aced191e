// Package sqlstore persists users, polls, choices, votes and the audit log in
// a relational database. PostgreSQL (lib/pq) and SQLite (modernc.org/sqlite)
// share the same queries.
package sqlstore

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// sqliteLower is a Unicode aware LOWER for SQLite, whose builtin only folds
// ASCII letters.
const sqliteLower = "unicode_lower"

func init() {
	err := sqlite.RegisterDeterministicScalarFunction(sqliteLower, 1, func(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
		switch v := args[0].(type) {
		case string:
			return strings.ToLower(v), nil
		case []byte:
			return strings.ToLower(string(v)), nil
		default:
			return v, nil
		}
	})
	if err != nil {
		panic(err)
	}
}

type Storage struct {
	db    *sql.DB
	now   func() time.Time
	lower string
}

func New(driver, dsn string) (*Storage, error) {
	const op = "storage.sqlstore.New"

	if driver != DriverPostgres && driver != DriverSQLite {
		return nil, fmt.Errorf("%s: unsupported driver %q", op, driver)
	}

	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// sqlite serialises writers; a single connection avoids SQLITE_BUSY between pooled conns
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s := NewWithDB(db)
	if driver == DriverSQLite {
		s.lower = sqliteLower
	}
	return s, nil
}

// NewWithDB wraps an already opened database handle.
func NewWithDB(db *sql.DB) *Storage {
	return &Storage{
		db:    db,
		now:   func() time.Time { return time.Now().UTC() },
		lower: "LOWER",
	}
}

// sqliteDSN turns on foreign key enforcement unless dsn sets it already.
// SQLite applies the pragma per connection, so it has to travel in the DSN.
func sqliteDSN(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_pragma=foreign_keys(1)"
	}
	return dsn + "?_pragma=foreign_keys(1)"
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		case sqlite3.SQLITE_CONSTRAINT:
			return strings.Contains(liteErr.Error(), "UNIQUE")
		}
	}

	return false
}

// escapeLike makes s match literally inside a LIKE pattern using '\' as escape.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
