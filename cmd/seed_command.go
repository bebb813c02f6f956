package cmd

import (
	"context"
	"os"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/cmd/flags"
	"github.com/mobile-directing-system/mds-store/ioutilx"
	"github.com/mobile-directing-system/mds-store/logging"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos/db"
	"github.com/mobile-directing-system/mds-store/sqlx"
	"github.com/mobile-directing-system/mds-store/store"
)

// SeedCommand bootstraps a fresh database with an admin account and,
// optionally, a set of development fixtures created through the regular
// store API.
type SeedCommand struct {
	Logger flags.LagerFlag

	DB flags.DBFlag `group:"DB" namespace:"db"`

	AdminUsername string `long:"admin-username" description:"Username of the bootstrap admin account" default:"admin"`
	AdminPassword string `long:"admin-password" description:"Password of the bootstrap admin account" required:"true"`

	Fixtures        bool   `long:"fixtures" description:"Also create development fixture users, operations and groups"`
	SecurityLogFile string `long:"security-log-file" description:"Append security events in CEF format to this file"`
}

func (cmd SeedCommand) Execute([]string) error {
	logger := cmd.Logger.Logger("mds-store").WithName("seed")
	ctx := context.Background()

	conn, err := cmd.DB.Connect(ctx, logger)
	if err != nil {
		return err
	}
	defer conn.Close()

	synced, err := sqlx.VerifyAppliedMigrations(ctx, logger, conn, db.MigrationsTableName, db.Migrations)
	if err != nil {
		return err
	}
	if !synced {
		return ErrMigrationsOutOfSync
	}

	dataService := db.NewDataService(conn)

	// The admin account is written through the repo: with an empty database
	// there is no session that could authorize it.
	_, err = dataService.CreateUser(ctx, logger, mds.User{
		Username:  cmd.AdminUsername,
		FirstName: "Admin",
		LastName:  "Admin",
		IsActive:  true,
		IsAdmin:   true,
		Pass:      cmd.AdminPassword,
	})
	if err == mds.ErrUserAlreadyExists {
		logger.Info(adminAlreadySeeded)
	} else if err != nil {
		return err
	}

	if !cmd.Fixtures {
		return nil
	}

	return cmd.seedFixtures(ctx, logger, dataService)
}

// seedFixtures exercises the store API end to end: everything below goes
// through the permission guard as the admin account.
func (cmd SeedCommand) seedFixtures(ctx context.Context, logger logx.Logger, dataService *db.DataService) error {
	var storeOpts []store.Option

	if cmd.SecurityLogFile != "" {
		logFile, err := ioutilx.OpenLogFile(cmd.SecurityLogFile)
		if err != nil {
			logger.Error(failedToOpenSecurityLogFile, err, logx.Data{Key: "path", Value: cmd.SecurityLogFile})
			return err
		}
		defer logFile.Close()

		hostname, err := os.Hostname()
		if err != nil {
			hostname = "localhost"
		}

		storeOpts = append(storeOpts, store.WithSecurityLogger(logging.NewCEFLogger(
			logFile,
			"mobile_directing",
			"mds-store",
			version,
			logging.Hostname(hostname),
			0,
		)))
	}

	s := store.NewStore(dataService, dataService, dataService, dataService, storeOpts...)

	ok, err := s.Login(ctx, logger, cmd.AdminUsername, cmd.AdminPassword)
	if err != nil {
		return err
	}
	if !ok {
		return ErrSeedLoginFailed
	}
	defer s.Logout(ctx, logger)

	dispatcher, err := s.AddUser(ctx, logger, mds.User{
		Username:  "dispatcher",
		FirstName: "Dana",
		LastName:  "Dispatcher",
		IsActive:  true,
		Pass:      cmd.AdminPassword,
	})
	if err != nil && err != mds.ErrUserAlreadyExists {
		return err
	}

	runner, err := s.AddUser(ctx, logger, mds.User{
		Username:  "runner",
		FirstName: "Robin",
		LastName:  "Runner",
		IsActive:  true,
		Pass:      cmd.AdminPassword,
	})
	if err != nil && err != mds.ErrUserAlreadyExists {
		return err
	}

	operation, err := s.AddOperation(ctx, logger, mds.Operation{
		Title:       "Exercise",
		Description: "Development fixture operation.",
	})
	if err != nil {
		return err
	}

	err = s.SetOperationMembers(ctx, logger, operation.ID, []string{dispatcher.ID, runner.ID})
	if err != nil {
		return err
	}

	_, err = s.AddGroup(ctx, logger, mds.Group{
		Title:       "Field",
		Description: "Development fixture group.",
		OperationID: operation.ID,
		Members:     []string{runner.ID},
	})
	if err != nil {
		return err
	}

	return s.SetPermissions(ctx, logger, dispatcher.ID, []mds.Permission{
		{Name: mds.PermissionUserView},
		{Name: mds.PermissionOperationViewAny},
		{Name: mds.PermissionOperationMembersView},
		{Name: mds.PermissionGroupView},
	})
}
