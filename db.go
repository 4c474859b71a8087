package calendarx

import (
	"context"
	"database/sql"

	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// OpenDB opens a sqlite-backed bun database. The DSN follows the sqlite
// driver conventions; "file::memory:?cache=shared" yields an in-memory
// database suitable for tests.
func OpenDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to open database")
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*User)(nil), (*Task)(nil))

	return db, nil
}

// CreateSchema creates the users and tasks tables when they do not exist
// yet. The schema is small enough that startup-time creation replaces a
// migration pipeline.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*User)(nil),
		(*Task)(nil),
	}

	for _, model := range models {
		_, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			WithForeignKeys().
			Exec(ctx)
		if err != nil {
			return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create schema")
		}
	}

	return nil
}
