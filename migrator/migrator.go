package migrator

import (
	"database/sql"
	"embed"

	"github.com/GuiaBolso/darwin"
	"github.com/diegoclair/sqlmigrator"
)

//go:embed sql/*.sql
var SqlFiles embed.FS

// Migrate applies the embedded migrations with the dialect matching the
// driver the connection was opened with.
func Migrate(db *sql.DB, driver string) error {
	var dialect darwin.Dialect = darwin.SqliteDialect{}
	if driver == "postgres" {
		dialect = darwin.PostgresDialect{}
	}

	m := sqlmigrator.New(db, dialect)

	return m.Migrate(SqlFiles, "sql")
}
