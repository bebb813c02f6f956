package db

import (
	"context"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/sqlx"
	uuid "github.com/satori/go.uuid"
)

var userColumns = []string{"id", "username", "first_name", "last_name", "is_active", "is_admin", "pass"}

var userOrderColumns = map[string]string{
	repos.OrderByUsername:  "username",
	repos.OrderByFirstName: "first_name",
	repos.OrderByLastName:  "last_name",
}

func (s *DataService) CreateUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) (mds.User, error) {
	return createUser(ctx, logger.WithName("data-service"), s.conn, user)
}

func (s *DataService) FindUser(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserQuery,
) (mds.User, error) {
	return findUser(ctx, logger.WithName("data-service"), s.conn, query)
}

func (s *DataService) FindUserByUsername(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserByUsernameQuery,
) (mds.User, error) {
	logger = logger.WithName("data-service").WithName("find-user-by-username")

	row := squirrel.Select(userColumns...).
		From("user").
		Where(squirrel.Eq{"username": query.Username}).
		RunWith(s.conn.Conn).
		QueryRowContext(ctx)

	return scanUser(logger, row)
}

func (s *DataService) UserExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserQuery,
) (bool, error) {
	return userExists(ctx, logger.WithName("data-service"), s.conn, query.UserID)
}

func (s *DataService) UpdateUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) error {
	logger = logger.WithName("data-service").WithName("update-user")

	exists, err := userExists(ctx, logger, s.conn, user.ID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errUserNotFound)
		return mds.ErrUserNotFound
	}

	_, err = squirrel.Update("user").
		Set("username", user.Username).
		Set("first_name", user.FirstName).
		Set("last_name", user.LastName).
		Set("is_active", user.IsActive).
		Set("is_admin", user.IsAdmin).
		Set("pass", user.Pass).
		Where(squirrel.Eq{"id": user.ID}).
		RunWith(s.conn.Conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		return nil
	case *mysql.MySQLError:
		if e.Number == sqlx.MySQLErrorCodeDuplicateKey {
			logger.Debug(errUserAlreadyExists)
			return mds.ErrUserAlreadyExists
		}
		logger.Error(failedToUpdateUser, err)
		return err
	default:
		logger.Error(failedToUpdateUser, err)
		return err
	}
}

func (s *DataService) SetUserPassword(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	pass string,
) error {
	logger = logger.WithName("data-service").WithName("set-user-password")

	exists, err := userExists(ctx, logger, s.conn, userID)
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errUserNotFound)
		return mds.ErrUserNotFound
	}

	_, err = squirrel.Update("user").
		Set("pass", pass).
		Where(squirrel.Eq{"id": userID}).
		RunWith(s.conn.Conn).
		ExecContext(ctx)

	if err != nil {
		logger.Error(failedToSetUserPassword, err)
		return err
	}

	return nil
}

func (s *DataService) ListUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUsersQuery,
) ([]mds.User, int, error) {
	logger = logger.WithName("data-service").WithName("list-users")

	var total int
	err := squirrel.Select("COUNT(*)").
		From("user").
		RunWith(s.conn.Conn).
		ScanContext(ctx, &total)
	if err != nil {
		logger.Error(failedToCountRows, err)
		return nil, 0, err
	}

	offset, amount := pageClamp(query.Page)

	rows, err := squirrel.Select(userColumns...).
		From("user").
		OrderBy(orderClause(query.Order, userOrderColumns)...).
		Limit(uint64(amount)).
		Offset(uint64(offset)).
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListUsers, err)
		return nil, 0, err
	}
	defer rows.Close()

	users, err := collectUsers(logger, rows)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (s *DataService) SearchUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchUsersQuery,
) ([]mds.User, error) {
	logger = logger.WithName("data-service").WithName("search-users")

	pattern := likePattern(query.Query)
	builder := squirrel.Select(userColumns...).
		From("user").
		Where(squirrel.Or{
			squirrel.Like{"username": pattern},
			squirrel.Like{"first_name": pattern},
			squirrel.Like{"last_name": pattern},
		}).
		OrderBy("id ASC")

	if query.Offset > 0 {
		builder = builder.Offset(uint64(query.Offset))
	}
	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}

	rows, err := builder.
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToSearchUsers, err)
		return nil, err
	}
	defer rows.Close()

	return collectUsers(logger, rows)
}

func createUser(
	ctx context.Context,
	logger logx.Logger,
	conn squirrel.BaseRunner,
	user mds.User,
) (mds.User, error) {
	logger = logger.WithName("create-user")

	if user.ID == "" {
		user.ID = uuid.NewV4().String()
	}

	_, err := squirrel.Insert("user").
		Columns(userColumns...).
		Values(user.ID, user.Username, user.FirstName, user.LastName, user.IsActive, user.IsAdmin, user.Pass).
		RunWith(conn).
		ExecContext(ctx)

	switch e := err.(type) {
	case nil:
		return user, nil
	case *mysql.MySQLError:
		if e.Number == sqlx.MySQLErrorCodeDuplicateKey {
			logger.Debug(errUserAlreadyExists)
			return mds.User{}, mds.ErrUserAlreadyExists
		}
		logger.Error(failedToCreateUser, err)
		return mds.User{}, err
	default:
		logger.Error(failedToCreateUser, err)
		return mds.User{}, err
	}
}

func findUser(
	ctx context.Context,
	logger logx.Logger,
	conn *sqlx.DB,
	query repos.FindUserQuery,
) (mds.User, error) {
	logger = logger.WithName("find-user")

	row := squirrel.Select(userColumns...).
		From("user").
		Where(squirrel.Eq{"id": query.UserID}).
		RunWith(conn.Conn).
		QueryRowContext(ctx)

	return scanUser(logger, row)
}

func userExists(
	ctx context.Context,
	logger logx.Logger,
	conn *sqlx.DB,
	userID string,
) (bool, error) {
	var count int
	err := squirrel.Select("COUNT(*)").
		From("user").
		Where(squirrel.Eq{"id": userID}).
		RunWith(conn.Conn).
		ScanContext(ctx, &count)
	if err != nil {
		logger.Error(failedToFindUser, err)
		return false, err
	}

	return count > 0, nil
}

func scanUser(logger logx.Logger, row squirrel.RowScanner) (mds.User, error) {
	var user mds.User
	err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.IsActive, &user.IsAdmin, &user.Pass)

	switch err {
	case nil:
		return user, nil
	case sql.ErrNoRows:
		logger.Debug(errUserNotFound)
		return mds.User{}, mds.ErrUserNotFound
	default:
		logger.Error(failedToFindUser, err)
		return mds.User{}, err
	}
}

func collectUsers(logger logx.Logger, rows *sql.Rows) ([]mds.User, error) {
	users := []mds.User{}
	for rows.Next() {
		var user mds.User
		err := rows.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.IsActive, &user.IsAdmin, &user.Pass)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return users, nil
}

// likePattern turns a free-text query into a LIKE pattern matching the
// literal substring. %, _ and \ carry meaning inside LIKE and are escaped.
func likePattern(query string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(query)
	return "%" + escaped + "%"
}
