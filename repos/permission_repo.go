package repos

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
)

type ListUserPermissionsQuery struct {
	UserID string
}

type PermissionRepo interface {
	// ListUserPermissions returns the grants recorded for the user. A user
	// without recorded grants yields an empty list, not an error.
	ListUserPermissions(
		ctx context.Context,
		logger logx.Logger,
		query ListUserPermissionsQuery,
	) ([]mds.Permission, error)

	// SetUserPermissions replaces the grant list wholesale.
	SetUserPermissions(
		ctx context.Context,
		logger logx.Logger,
		userID string,
		permissions []mds.Permission,
	) error
}
