package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// GetUsers lists users. Requires user.view. Passwords are blanked.
func (s *Store) GetUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUsersQuery,
) ([]mds.User, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "GetUsers", mds.PermissionUserView); err != nil {
		return nil, 0, err
	}

	users, total, err := s.users.ListUsers(ctx, logger, query)
	if err != nil {
		return nil, 0, err
	}

	return blankPasswords(users), total, nil
}

// GetUser returns a single user. Principals may always read their own record;
// anything else requires user.view.
func (s *Store) GetUser(
	ctx context.Context,
	logger logx.Logger,
	userID string,
) (mds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.getUserLocked(ctx, logger, userID)
}

func (s *Store) getUserLocked(
	ctx context.Context,
	logger logx.Logger,
	userID string,
) (mds.User, error) {
	if err := s.requireSelfOrLocked(ctx, logger, "GetUser", userID, mds.PermissionUserView); err != nil {
		return mds.User{}, err
	}

	user, err := s.users.FindUser(ctx, logger, repos.FindUserQuery{UserID: userID})
	if err != nil {
		return mds.User{}, err
	}

	return blankPassword(user), nil
}

// GetUserByUsername resolves a user by their unique username. The self
// exception applies when the username is the principal's own.
func (s *Store) GetUserByUsername(
	ctx context.Context,
	logger logx.Logger,
	username string,
) (mds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isSelfUsernameLocked(ctx, logger, username) {
		if err := s.requireLocked(ctx, logger, "GetUserByUsername", mds.PermissionUserView); err != nil {
			return mds.User{}, err
		}
	}

	user, err := s.users.FindUserByUsername(ctx, logger, repos.FindUserByUsernameQuery{
		Username: username,
	})
	if err != nil {
		return mds.User{}, err
	}

	return blankPassword(user), nil
}

func (s *Store) isSelfUsernameLocked(ctx context.Context, logger logx.Logger, username string) bool {
	if !s.session.loggedIn {
		return false
	}

	self, err := s.users.FindUser(ctx, logger, repos.FindUserQuery{UserID: s.session.userID})
	if err != nil {
		return false
	}

	return self.Username == username
}

// UserExists requires user.view.
func (s *Store) UserExists(
	ctx context.Context,
	logger logx.Logger,
	userID string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "UserExists", mds.PermissionUserView); err != nil {
		return false, err
	}

	return s.users.UserExists(ctx, logger, repos.FindUserQuery{UserID: userID})
}

// AddUser creates a user. Requires user.create. Fails with ErrUserAlreadyExists
// when the username is taken and with an invalid-input error when a required
// field is empty.
func (s *Store) AddUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) (mds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "AddUser", mds.PermissionUserCreate); err != nil {
		return mds.User{}, err
	}

	if err := validateUser(user); err != nil {
		logger.Debug(errInvalidInput)
		return mds.User{}, err
	}

	created, err := s.users.CreateUser(ctx, logger, user)
	if err != nil {
		return mds.User{}, err
	}

	return blankPassword(created), nil
}

// UpdateUser replaces the stored record (the password field is untouched;
// UpdateUserPassword owns that). Requires user.update, or the target being
// the principal. Flipping is_active additionally requires
// user.set-active-state, flipping is_admin requires user.set-admin.
func (s *Store) UpdateUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.users.FindUser(ctx, logger, repos.FindUserQuery{UserID: user.ID})
	if err != nil {
		return err
	}

	if err := validateUser(user); err != nil {
		logger.Debug(errInvalidInput)
		return err
	}

	if err := s.requireSelfOrLocked(ctx, logger, "UpdateUser", user.ID, mds.PermissionUserUpdate); err != nil {
		return err
	}

	if existing.IsActive != user.IsActive {
		if err := s.requireLocked(ctx, logger, "UpdateUser", mds.PermissionUserSetActiveState); err != nil {
			return err
		}
	}
	if existing.IsAdmin != user.IsAdmin {
		if err := s.requireLocked(ctx, logger, "UpdateUser", mds.PermissionUserSetAdmin); err != nil {
			return err
		}
	}

	user.Pass = existing.Pass

	return s.users.UpdateUser(ctx, logger, user)
}

// UpdateUserPassword requires user.update-pass and a non-empty new password.
func (s *Store) UpdateUserPassword(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	newPassword string,
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

	if newPassword == "" {
		logger.Debug(errInvalidInput)
		return mds.ErrUserPasswordEmpty
	}

	if err := s.requireLocked(ctx, logger, "UpdateUserPassword", mds.PermissionUserUpdatePass); err != nil {
		return err
	}

	return s.users.SetUserPassword(ctx, logger, userID, newPassword)
}

// SearchUsers scans username, first and last name for the given substring.
// Requires user.view.
func (s *Store) SearchUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchUsersQuery,
) ([]mds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "SearchUsers", mds.PermissionUserView); err != nil {
		return nil, err
	}

	users, err := s.users.SearchUsers(ctx, logger, query)
	if err != nil {
		return nil, err
	}

	return blankPasswords(users), nil
}

func blankPassword(user mds.User) mds.User {
	user.Pass = ""
	return user
}

func blankPasswords(users []mds.User) []mds.User {
	blanked := make([]mds.User, len(users))
	for i, user := range users {
		blanked[i] = blankPassword(user)
	}
	return blanked
}
