package sqlx_test

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"code.cloudfoundry.org/lager/lagertest"
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
	. "github.com/mobile-directing-system/mds-store/sqlx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("#RollbackMigrations", func() {
	var (
		migrationTableName string

		logger logx.Logger

		fakeConn *sql.DB
		mock     sqlmock.Sqlmock
		err      error

		conn *DB

		ctx context.Context

		migrations []Migration

		appliedAt time.Time
	)

	BeforeEach(func() {
		migrationTableName = "mds_migrations"

		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-sqlx"))

		fakeConn, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		conn = &DB{
			Conn: fakeConn,
		}

		appliedAt = time.Now()

		ctx = context.Background()

		migrations = []Migration{
			{
				Name: "migration_1",
				Down: func(ctx context.Context, logger logx.Logger, tx *Tx) error {
					_, err := tx.ExecContext(ctx, "SOME FAKE MIGRATION 1")

					return err
				},
			},
			{
				Name: "migration_2",
				Down: func(ctx context.Context, logger logx.Logger, tx *Tx) error {
					_, err := tx.ExecContext(ctx, "SOME FAKE MIGRATION 2")

					return err
				},
			},
		}
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	Context("without 'all'", func() {
		It("rolls back only the most recent applied migration", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + migrationTableName).
				WillReturnRows(sqlmock.NewRows([]string{"version", "name", "applied_at"}).
					AddRow("0", "migration_1", appliedAt).
					AddRow("1", "migration_2", appliedAt),
				)

			mock.ExpectBegin()
			mock.ExpectExec("SOME FAKE MIGRATION 2").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("DELETE FROM " + migrationTableName + " WHERE version").
				WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()

			err := RollbackMigrations(ctx, logger, conn, migrationTableName, migrations, false)
			Expect(err).NotTo(HaveOccurred())
		})

		It("skips migrations that were never applied", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + migrationTableName).
				WillReturnRows(sqlmock.NewRows([]string{"version", "name", "applied_at"}).
					AddRow("0", "migration_1", appliedAt),
				)

			mock.ExpectBegin()
			mock.ExpectExec("SOME FAKE MIGRATION 1").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("DELETE FROM " + migrationTableName + " WHERE version").
				WithArgs(0).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()

			err := RollbackMigrations(ctx, logger, conn, migrationTableName, migrations, false)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Context("with 'all'", func() {
		It("rolls back every applied migration, newest first", func() {
			mock.ExpectQuery("SELECT version, name, applied_at FROM " + migrationTableName).
				WillReturnRows(sqlmock.NewRows([]string{"version", "name", "applied_at"}).
					AddRow("0", "migration_1", appliedAt).
					AddRow("1", "migration_2", appliedAt),
				)

			mock.ExpectBegin()
			mock.ExpectExec("SOME FAKE MIGRATION 2").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("DELETE FROM " + migrationTableName + " WHERE version").
				WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()
			mock.ExpectBegin()
			mock.ExpectExec("SOME FAKE MIGRATION 1").
				WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec("DELETE FROM " + migrationTableName + " WHERE version").
				WithArgs(0).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectCommit()

			err := RollbackMigrations(ctx, logger, conn, migrationTableName, migrations, true)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	It("rolls the transaction back when a down migration fails", func() {
		downErr := errors.New("some-down-error")
		migrations[1].Down = func(ctx context.Context, logger logx.Logger, tx *Tx) error {
			return downErr
		}

		mock.ExpectQuery("SELECT version, name, applied_at FROM " + migrationTableName).
			WillReturnRows(sqlmock.NewRows([]string{"version", "name", "applied_at"}).
				AddRow("0", "migration_1", appliedAt).
				AddRow("1", "migration_2", appliedAt),
			)

		mock.ExpectBegin()
		mock.ExpectRollback()

		err := RollbackMigrations(ctx, logger, conn, migrationTableName, migrations, false)
		Expect(err).To(MatchError(downErr))
	})
})
