package inmemory

import (
	"context"
	"sort"
	"strings"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	uuid "github.com/satori/go.uuid"
)

func (s *Store) CreateUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) (mds.User, error) {
	for _, existing := range s.users {
		if existing.Username == user.Username {
			err := mds.ErrUserAlreadyExists
			logger.Debug(errUserAlreadyExists, logx.Data{Key: "user.username", Value: user.Username})
			return mds.User{}, err
		}
	}

	user.ID = uuid.NewV4().String()
	s.users[user.ID] = user

	logger.Debug(success, logx.Data{Key: "user.id", Value: user.ID})

	return user, nil
}

func (s *Store) FindUser(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserQuery,
) (mds.User, error) {
	user, exists := s.users[query.UserID]
	if !exists {
		logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: query.UserID})
		return mds.User{}, mds.ErrUserNotFound
	}

	return user, nil
}

func (s *Store) FindUserByUsername(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserByUsernameQuery,
) (mds.User, error) {
	var (
		found   mds.User
		matches int
	)

	for _, user := range s.users {
		if user.Username == query.Username {
			found = user
			matches++
		}
	}

	switch matches {
	case 0:
		logger.Debug(errUserNotFound, logx.Data{Key: "user.username", Value: query.Username})
		return mds.User{}, mds.ErrUserNotFound
	case 1:
		return found, nil
	default:
		// Unreachable as long as CreateUser enforces uniqueness.
		logger.Debug(errUserAmbiguous, logx.Data{Key: "user.username", Value: query.Username})
		return mds.User{}, mds.ErrUserAmbiguous
	}
}

func (s *Store) UserExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindUserQuery,
) (bool, error) {
	_, exists := s.users[query.UserID]
	return exists, nil
}

func (s *Store) UpdateUser(
	ctx context.Context,
	logger logx.Logger,
	user mds.User,
) error {
	if _, exists := s.users[user.ID]; !exists {
		logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: user.ID})
		return mds.ErrUserNotFound
	}

	s.users[user.ID] = user

	logger.Debug(success, logx.Data{Key: "user.id", Value: user.ID})

	return nil
}

func (s *Store) SetUserPassword(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	pass string,
) error {
	user, exists := s.users[userID]
	if !exists {
		logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: userID})
		return mds.ErrUserNotFound
	}

	user.Pass = pass
	s.users[userID] = user

	return nil
}

func (s *Store) ListUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUsersQuery,
) ([]mds.User, int, error) {
	users := s.allUsers()
	sortUsers(users, query.Order)

	total := len(users)
	offset, end := pageBounds(query.Page, total)

	return users[offset:end], total, nil
}

func (s *Store) SearchUsers(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchUsersQuery,
) ([]mds.User, error) {
	users := s.allUsers()
	offset, limit := searchBounds(query.Offset, query.Limit)

	var results []mds.User
	skipped := 0
	for _, user := range users {
		if !userMatches(user, query.Query) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		results = append(results, user)
		if limit >= 0 && len(results) == limit {
			break
		}
	}

	return results, nil
}

// allUsers snapshots the map in ID order so that repeated listings page
// through a stable sequence.
func (s *Store) allUsers() []mds.User {
	users := make([]mds.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool {
		return users[i].ID < users[j].ID
	})

	return users
}

func sortUsers(users []mds.User, order repos.Ordering) {
	var less func(i, j int) bool

	switch order.Field {
	case repos.OrderByUsername:
		less = func(i, j int) bool { return users[i].Username < users[j].Username }
	case repos.OrderByFirstName:
		less = func(i, j int) bool { return users[i].FirstName < users[j].FirstName }
	case repos.OrderByLastName:
		less = func(i, j int) bool { return users[i].LastName < users[j].LastName }
	default:
		if order.Desc {
			reverseUsers(users)
		}
		return
	}

	sort.SliceStable(users, less)
	if order.Desc {
		reverseUsers(users)
	}
}

func reverseUsers(users []mds.User) {
	for i, j := 0, len(users)-1; i < j; i, j = i+1, j-1 {
		users[i], users[j] = users[j], users[i]
	}
}

func userMatches(user mds.User, query string) bool {
	return strings.Contains(user.Username, query) ||
		strings.Contains(user.FirstName, query) ||
		strings.Contains(user.LastName, query)
}
