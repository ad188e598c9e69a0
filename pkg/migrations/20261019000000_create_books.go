package migrations

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"
)

func init() {
	up := func(_ context.Context, db *bun.DB) error {
		// AUTOINCREMENT (and identity columns on Postgres) never hand out an id
		// twice, even after every row has been deleted.
		id := "id INTEGER PRIMARY KEY AUTOINCREMENT"
		if db.Dialect().Name() == dialect.PG {
			id = "id INTEGER PRIMARY KEY GENERATED BY DEFAULT AS IDENTITY"
		}

		_, err := db.Exec(`
			CREATE TABLE books (
				` + id + `,
				created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				updated_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
				author_first_name TEXT NOT NULL CHECK (author_first_name <> ''),
				author_last_name TEXT NOT NULL CHECK (author_last_name <> ''),
				type TEXT NOT NULL CHECK (type <> ''),
				category TEXT NOT NULL CHECK (category <> '')
			)
		`)
		return errors.WithStack(err)
	}

	down := func(_ context.Context, db *bun.DB) error {
		_, err := db.Exec(`DROP TABLE IF EXISTS books`)
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
