package db_test

import (
	"context"
	"database/sql"

	"code.cloudfoundry.org/lager/lagertest"
	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/logx/lagerx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/repos/db"
	"github.com/mobile-directing-system/mds-store/sqlx"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("DataService users", func() {
	var (
		fakeConn *sql.DB
		mock     sqlmock.Sqlmock

		subject *db.DataService

		ctx    context.Context
		logger logx.Logger
	)

	BeforeEach(func() {
		var err error
		fakeConn, mock, err = sqlmock.New()
		Expect(err).NotTo(HaveOccurred())

		subject = db.NewDataService(&sqlx.DB{Conn: fakeConn})

		ctx = context.Background()
		logger = lagerx.NewLogger(lagertest.NewTestLogger("mds-db"))
	})

	AfterEach(func() {
		Expect(mock.ExpectationsWereMet()).To(Succeed())
	})

	Describe("#CreateUser", func() {
		It("inserts the user with a generated id", func() {
			mock.ExpectExec("INSERT INTO user").
				WillReturnResult(sqlmock.NewResult(0, 1))

			created, err := subject.CreateUser(ctx, logger, mds.User{
				Username:  "alice",
				FirstName: "Alice",
				LastName:  "Lane",
				IsActive:  true,
				Pass:      "pw",
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).NotTo(BeEmpty())
		})

		It("maps a duplicate key error to ErrUserAlreadyExists", func() {
			mock.ExpectExec("INSERT INTO user").
				WillReturnError(&mysql.MySQLError{Number: sqlx.MySQLErrorCodeDuplicateKey})

			_, err := subject.CreateUser(ctx, logger, mds.User{Username: "alice"})

			Expect(err).To(MatchError(mds.ErrUserAlreadyExists))
		})
	})

	Describe("#FindUser", func() {
		It("maps no rows to ErrUserNotFound", func() {
			mock.ExpectQuery("SELECT id, username, first_name, last_name, is_active, is_admin, pass FROM user WHERE id").
				WithArgs("some-id").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}))

			_, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: "some-id"})

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})

		It("scans the stored record", func() {
			mock.ExpectQuery("SELECT id, username, first_name, last_name, is_active, is_admin, pass FROM user WHERE id").
				WithArgs("some-id").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}).
					AddRow("some-id", "alice", "Alice", "Lane", true, false, "pw"))

			user, err := subject.FindUser(ctx, logger, repos.FindUserQuery{UserID: "some-id"})

			Expect(err).NotTo(HaveOccurred())
			Expect(user).To(Equal(mds.User{
				ID:        "some-id",
				Username:  "alice",
				FirstName: "Alice",
				LastName:  "Lane",
				IsActive:  true,
				Pass:      "pw",
			}))
		})
	})

	Describe("#UserExists", func() {
		It("counts matching rows", func() {
			mock.ExpectQuery("SELECT COUNT").
				WithArgs("some-id").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

			exists, err := subject.UserExists(ctx, logger, repos.FindUserQuery{UserID: "some-id"})

			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})
	})

	Describe("#UpdateUser", func() {
		It("fails with ErrUserNotFound before issuing the update", func() {
			mock.ExpectQuery("SELECT COUNT").
				WithArgs("some-id").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

			err := subject.UpdateUser(ctx, logger, mds.User{ID: "some-id"})

			Expect(err).To(MatchError(mds.ErrUserNotFound))
		})
	})

	Describe("#ListUsers", func() {
		It("counts the table and pages with order and stable tiebreak", func() {
			mock.ExpectQuery("SELECT COUNT").
				WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
			mock.ExpectQuery("SELECT id, username, first_name, last_name, is_active, is_admin, pass FROM user ORDER BY username DESC, id ASC LIMIT 2 OFFSET 1").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}).
					AddRow("id-1", "carol", "Carol", "Chen", true, false, "pw").
					AddRow("id-2", "bob", "Bob", "Barker", true, false, "pw"))

			users, total, err := subject.ListUsers(ctx, logger, repos.ListUsersQuery{
				Page:  repos.Page{Offset: 1, Amount: 2},
				Order: repos.Ordering{Field: repos.OrderByUsername, Desc: true},
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(3))
			Expect(users).To(HaveLen(2))
			Expect(users[0].Username).To(Equal("carol"))
		})
	})

	Describe("#SearchUsers", func() {
		It("matches the substring against username and both name columns", func() {
			mock.ExpectQuery("SELECT id, username, first_name, last_name, is_active, is_admin, pass FROM user WHERE").
				WithArgs("%ali%", "%ali%", "%ali%").
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}).
					AddRow("id-1", "alice", "Alice", "Lane", true, false, "pw"))

			users, err := subject.SearchUsers(ctx, logger, repos.SearchUsersQuery{Query: "ali"})

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
			Expect(users[0].Username).To(Equal("alice"))
		})

		It("matches LIKE wildcards in the query literally", func() {
			pattern := `%50\%\_off\\%`
			mock.ExpectQuery("SELECT id, username, first_name, last_name, is_active, is_admin, pass FROM user WHERE").
				WithArgs(pattern, pattern, pattern).
				WillReturnRows(sqlmock.NewRows([]string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}))

			users, err := subject.SearchUsers(ctx, logger, repos.SearchUsersQuery{Query: `50%_off\`})

			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(BeEmpty())
		})
	})
})
