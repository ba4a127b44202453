package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// Migrate brings the schema up to date using the embedded migrations for
// the given driver.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	dialect, dir := "mysql", "migrations/mysql"
	switch driver {
	case DriverSQLite:
		dialect, dir = "sqlite3", "migrations/sqlite"
	case DriverMySQL, "":
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(logrus.WithField("component", "migrate"))
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, dir)
}
