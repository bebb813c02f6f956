package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// HasPermission reports whether the current principal holds every one of the
// required permissions. Admins hold everything; without a logged-in principal
// nothing is held.
func (s *Store) HasPermission(
	ctx context.Context,
	logger logx.Logger,
	required ...mds.PermissionName,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasPermissionLocked(ctx, logger, required...)
}

func (s *Store) hasPermissionLocked(
	ctx context.Context,
	logger logx.Logger,
	required ...mds.PermissionName,
) (bool, error) {
	if !s.session.loggedIn {
		return false, nil
	}

	user, err := s.users.FindUser(ctx, logger, repos.FindUserQuery{UserID: s.session.userID})
	if err == mds.ErrUserNotFound {
		return false, nil
	} else if err != nil {
		logger.Error(failedToFindUser, err)
		return false, err
	}

	if user.IsAdmin {
		return true, nil
	}

	granted, err := s.permissions.ListUserPermissions(ctx, logger, repos.ListUserPermissionsQuery{
		UserID: s.session.userID,
	})
	if err != nil {
		logger.Error(failedToListPermissions, err)
		return false, err
	}

	for _, name := range required {
		if !permissionGranted(granted, name) {
			return false, nil
		}
	}

	return true, nil
}

func permissionGranted(granted []mds.Permission, name mds.PermissionName) bool {
	for _, permission := range granted {
		if permission.Name == name {
			return true
		}
	}
	return false
}

// requireLocked turns a failed permission check into ErrUnauthorized and an
// audit event. op names the denied operation in the security log.
func (s *Store) requireLocked(
	ctx context.Context,
	logger logx.Logger,
	op string,
	required ...mds.PermissionName,
) error {
	ok, err := s.hasPermissionLocked(ctx, logger, required...)
	if err != nil {
		return err
	}
	if !ok {
		logger.Debug(errNotAuthorized, logx.Data{Key: "operation", Value: op})
		s.securityLogger.Log(ctx, op, nameAuthzDenied,
			logx.SecurityData{Key: "userID", Value: s.session.userID})
		return mds.NewErrUnauthorized(required...)
	}

	return nil
}

// requireSelfOrLocked grants access when the target is the principal itself,
// regardless of granted permissions.
func (s *Store) requireSelfOrLocked(
	ctx context.Context,
	logger logx.Logger,
	op string,
	targetUserID string,
	required ...mds.PermissionName,
) error {
	if s.session.loggedIn && s.session.userID == targetUserID {
		return nil
	}

	return s.requireLocked(ctx, logger, op, required...)
}
