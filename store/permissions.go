package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// GetPermissions returns the permission set granted to a user. Principals may
// read their own set; reading another user's requires permissions.view.
func (s *Store) GetPermissions(
	ctx context.Context,
	logger logx.Logger,
	userID string,
) ([]mds.Permission, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireSelfOrLocked(ctx, logger, "GetPermissions", userID, mds.PermissionPermissionsView); err != nil {
		return nil, err
	}

	exists, err := s.users.UserExists(ctx, logger, repos.FindUserQuery{UserID: userID})
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: userID})
		return nil, mds.ErrUserNotFound
	}

	return s.permissions.ListUserPermissions(ctx, logger, repos.ListUserPermissionsQuery{UserID: userID})
}

// SetPermissions replaces a user's permission set. Requires
// permissions.update.
func (s *Store) SetPermissions(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	permissions []mds.Permission,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.users.UserExists(ctx, logger, repos.FindUserQuery{UserID: userID})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: userID})
		return mds.ErrUserNotFound
	}

	if err := s.requireLocked(ctx, logger, "SetPermissions", mds.PermissionPermissionsUpdate); err != nil {
		return err
	}

	return s.permissions.SetUserPermissions(ctx, logger, userID, permissions)
}
