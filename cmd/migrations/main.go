package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/bookchain/bookchain/pkg/config"
	"github.com/bookchain/bookchain/pkg/database"
	"github.com/bookchain/bookchain/pkg/migrations"
	"github.com/robinjoseph08/golib/logger"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

func main() {
	log := logger.New()

	cfg, err := config.New()
	if err != nil {
		log.Err(err).Fatal("config error")
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Err(err).Fatal("database error")
	}
	defer db.Close()

	migrator := migrate.NewMigrator(db, migrations.Migrations)

	app := &cli.App{
		Name:  "migrations",
		Usage: "apply, undo, and inspect books schema changes",
		Description: fmt.Sprintf("Operates on the %s database selected by DATABASE_DRIVER (currently %q).",
			cfg.AppTitle, cfg.DatabaseDriver),
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create the bun_migrations bookkeeping tables",
				Action: func(c *cli.Context) error {
					return migrator.Init(c.Context)
				},
			},
			{
				Name:  "migrate",
				Usage: "apply every pending migration as one group",
				Action: func(c *cli.Context) error {
					group, err := migrations.BringUpToDate(c.Context, db)
					if err != nil {
						return err
					}
					if group.ID == 0 {
						fmt.Println("Schema already up to date")
						return nil
					}
					fmt.Printf("Applied group %d: %s\n", group.ID, group.Migrations)
					return nil
				},
			},
			{
				Name:  "rollback",
				Usage: "undo the most recently applied group",
				Action: func(c *cli.Context) error {
					group, err := migrator.Rollback(c.Context)
					if err != nil {
						return err
					}
					if group.ID == 0 {
						fmt.Println("Nothing applied, nothing to undo")
						return nil
					}
					fmt.Printf("Undid group %d: %s\n", group.ID, group.Migrations)
					return nil
				},
			},
			{
				Name:  "reset",
				Usage: "undo every applied group, leaving no books table",
				Action: func(c *cli.Context) error {
					for {
						group, err := migrator.Rollback(c.Context)
						if err != nil {
							return err
						}
						if group.ID == 0 {
							break
						}
						fmt.Printf("Undid group %d: %s\n", group.ID, group.Migrations)
					}
					fmt.Println("All migrations undone")
					return nil
				},
			},
			{
				Name:      "create",
				Usage:     "scaffold a new Go migration in pkg/migrations",
				ArgsUsage: "<words describing the change>",
				Action: func(c *cli.Context) error {
					if c.NArg() == 0 {
						return cli.Exit("a migration name is required", 1)
					}
					name := strings.Join(c.Args().Slice(), "_")
					mf, err := migrator.CreateGoMigration(c.Context, name, migrate.WithGoTemplate(migrationTemplate))
					if err != nil {
						return err
					}
					fmt.Printf("Wrote %s to %s\n", mf.Name, mf.Path)
					return nil
				},
			},
			{
				Name:  "status",
				Usage: "list applied and pending migrations",
				Action: func(c *cli.Context) error {
					ms, err := migrator.MigrationsWithStatus(c.Context)
					if err != nil {
						return err
					}
					fmt.Printf("Known:   %s\n", ms)
					fmt.Printf("Pending: %s\n", ms.Unapplied())
					fmt.Printf("Latest group: %s\n", ms.LastGroup())
					return nil
				},
			},
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Err(err).Fatal("migrations command failed")
	}
}

// migrationTemplate mirrors pkg/migrations: raw SQL through db.Exec, wrapped
// with a stack, registered on the shared Migrations collection.
const migrationTemplate = `package %s

import (
	"context"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

func init() {
	up := func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, "")
		return errors.WithStack(err)
	}

	down := func(ctx context.Context, db *bun.DB) error {
		_, err := db.ExecContext(ctx, "")
		return errors.WithStack(err)
	}

	Migrations.MustRegister(up, down)
}
`
