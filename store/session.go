package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// Login matches the credentials against the stored raw records and, on
// success, makes that user the store's principal. It reports whether the
// credentials matched; unknown usernames are not an error.
func (s *Store) Login(
	ctx context.Context,
	logger logx.Logger,
	username string,
	password string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.users.FindUserByUsername(ctx, logger, repos.FindUserByUsernameQuery{
		Username: username,
	})
	if err == mds.ErrUserNotFound {
		s.securityLogger.Log(ctx, sigLogin, nameLoginFailure,
			logx.SecurityData{Key: "username", Value: username})
		return false, nil
	} else if err != nil {
		return false, err
	}

	if user.Pass != password {
		s.securityLogger.Log(ctx, sigLogin, nameLoginFailure,
			logx.SecurityData{Key: "username", Value: username})
		return false, nil
	}

	s.session.loggedIn = true
	s.session.userID = user.ID

	logger.Debug(success, logx.Data{Key: "user.id", Value: user.ID})
	s.securityLogger.Log(ctx, sigLogin, nameLoginSuccess,
		logx.SecurityData{Key: "userID", Value: user.ID})

	return true, nil
}

// Logout clears the session. It is a no-op without a logged-in principal.
func (s *Store) Logout(ctx context.Context, logger logx.Logger) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.session.loggedIn {
		return
	}

	s.securityLogger.Log(ctx, sigLogout, nameLogout,
		logx.SecurityData{Key: "userID", Value: s.session.userID})

	s.session.loggedIn = false
	s.session.userID = ""
}

// LoggedInUser returns the principal's user ID, if any.
func (s *Store) LoggedInUser() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.session.userID, s.session.loggedIn
}
