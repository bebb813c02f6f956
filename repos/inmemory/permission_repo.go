package inmemory

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

func (s *Store) ListUserPermissions(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUserPermissionsQuery,
) ([]mds.Permission, error) {
	return copyPermissions(s.permissions[query.UserID]), nil
}

func (s *Store) SetUserPermissions(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	permissions []mds.Permission,
) error {
	s.permissions[userID] = copyPermissions(permissions)

	logger.Debug(success, logx.Data{Key: "user.id", Value: userID})

	return nil
}

func copyPermissions(permissions []mds.Permission) []mds.Permission {
	if permissions == nil {
		return nil
	}

	copied := make([]mds.Permission, len(permissions))
	for i, permission := range permissions {
		copied[i] = permission
		if permission.Options != nil {
			options := make(map[string]interface{}, len(permission.Options))
			for k, v := range permission.Options {
				options[k] = v
			}
			copied[i].Options = options
		}
	}

	return copied
}
