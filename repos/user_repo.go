package repos

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
)

type FindUserQuery struct {
	UserID string
}

type FindUserByUsernameQuery struct {
	Username string
}

type ListUsersQuery struct {
	Page  Page
	Order Ordering
}

type SearchUsersQuery struct {
	Query  string
	Limit  int
	Offset int
}

// UserRepo stores raw user records, password included. Blanking passwords for
// callers is the store's job, not the repo's.
type UserRepo interface {
	CreateUser(
		ctx context.Context,
		logger logx.Logger,
		user mds.User,
	) (mds.User, error)

	FindUser(
		ctx context.Context,
		logger logx.Logger,
		query FindUserQuery,
	) (mds.User, error)

	FindUserByUsername(
		ctx context.Context,
		logger logx.Logger,
		query FindUserByUsernameQuery,
	) (mds.User, error)

	UserExists(
		ctx context.Context,
		logger logx.Logger,
		query FindUserQuery,
	) (bool, error)

	UpdateUser(
		ctx context.Context,
		logger logx.Logger,
		user mds.User,
	) error

	SetUserPassword(
		ctx context.Context,
		logger logx.Logger,
		userID string,
		pass string,
	) error

	ListUsers(
		ctx context.Context,
		logger logx.Logger,
		query ListUsersQuery,
	) ([]mds.User, int, error)

	SearchUsers(
		ctx context.Context,
		logger logx.Logger,
		query SearchUsersQuery,
	) ([]mds.User, error)
}
