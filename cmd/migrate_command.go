// Package cmd holds the toplevel commands of the mds-store binary.
package cmd

import (
	"context"

	"github.com/mobile-directing-system/mds-store/cmd/flags"
	"github.com/mobile-directing-system/mds-store/repos/db"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

type MigrateCommand struct {
	Up   UpCommand   `command:"up" description:"Migrate database to latest version"`
	Down DownCommand `command:"down" description:"Roll back one (or all) database migrations"`
}

type UpCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`
}

type DownCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`

	All bool `long:"all" description:"Roll back all migrations instead of just the most recent one"`
}

func (cmd UpCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("mds-store").WithName("migrate-up")
	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.ApplyMigrations(ctx, logger, conn, db.MigrationsTableName, db.Migrations)
}

func (cmd DownCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("mds-store").WithName("migrate-down")
	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	return sqlx.RollbackMigrations(ctx, logger, conn, db.MigrationsTableName, db.Migrations, cmd.All)
}
