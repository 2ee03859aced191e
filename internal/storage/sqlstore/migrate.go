package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/14kear/online_polls/migrations"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

// NewMigrator opens its own connection to dsn and returns a migrate instance
// reading the embedded schema for driver. Closing the migrator closes the
// connection.
func NewMigrator(driver, dsn string) (*migrate.Migrate, error) {
	const op = "storage.sqlstore.NewMigrator"

	src, err := iofs.New(migrations.FS, driver)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if driver == DriverSQLite {
		dsn = sqliteDSN(dsn)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var dbDriver database.Driver
	switch driver {
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(db, &postgres.Config{})
	case DriverSQLite:
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	default:
		err = fmt.Errorf("unsupported driver %q", driver)
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return m, nil
}

// Migrate applies every pending up migration.
func Migrate(driver, dsn string) error {
	const op = "storage.sqlstore.Migrate"

	m, err := NewMigrator(driver, dsn)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
