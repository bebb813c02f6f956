// Package recording wraps the entity store so that the duration of every
// call is fed to a DurationRecorder, e.g. a stats.Histogram.
package recording

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/store"
)

type DurationRecorder interface {
	Observe(duration time.Duration) error
}

type Store struct {
	store    *store.Store
	recorder DurationRecorder
	clock    clock.Clock
}

func NewStore(s *store.Store, recorder DurationRecorder, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	return &Store{
		store:    s,
		recorder: recorder,
		clock:    o.clock,
	}
}

// observe records the elapsed duration of a successful call. A recorder
// failure surfaces as FailedToObserveDurationError so callers can tell it
// apart from a store failure.
func (s *Store) observe(start time.Time) error {
	if err := s.recorder.Observe(s.clock.Since(start)); err != nil {
		return FailedToObserveDurationError{Err: err}
	}
	return nil
}

func (s *Store) Login(ctx context.Context, logger logx.Logger, username, password string) (bool, error) {
	start := s.clock.Now()
	ok, err := s.store.Login(ctx, logger, username, password)
	if err != nil {
		return false, err
	}

	return ok, s.observe(start)
}

func (s *Store) Logout(ctx context.Context, logger logx.Logger) {
	s.store.Logout(ctx, logger)
}

func (s *Store) LoggedInUser() (string, bool) {
	return s.store.LoggedInUser()
}

func (s *Store) HasPermission(ctx context.Context, logger logx.Logger, required ...mds.PermissionName) (bool, error) {
	start := s.clock.Now()
	ok, err := s.store.HasPermission(ctx, logger, required...)
	if err != nil {
		return false, err
	}

	return ok, s.observe(start)
}

func (s *Store) GetUsers(ctx context.Context, logger logx.Logger, query repos.ListUsersQuery) ([]mds.User, int, error) {
	start := s.clock.Now()
	users, total, err := s.store.GetUsers(ctx, logger, query)
	if err != nil {
		return nil, 0, err
	}

	return users, total, s.observe(start)
}

func (s *Store) GetUser(ctx context.Context, logger logx.Logger, userID string) (mds.User, error) {
	start := s.clock.Now()
	user, err := s.store.GetUser(ctx, logger, userID)
	if err != nil {
		return mds.User{}, err
	}

	return user, s.observe(start)
}

func (s *Store) GetUserByUsername(ctx context.Context, logger logx.Logger, username string) (mds.User, error) {
	start := s.clock.Now()
	user, err := s.store.GetUserByUsername(ctx, logger, username)
	if err != nil {
		return mds.User{}, err
	}

	return user, s.observe(start)
}

func (s *Store) UserExists(ctx context.Context, logger logx.Logger, userID string) (bool, error) {
	start := s.clock.Now()
	exists, err := s.store.UserExists(ctx, logger, userID)
	if err != nil {
		return false, err
	}

	return exists, s.observe(start)
}

func (s *Store) AddUser(ctx context.Context, logger logx.Logger, user mds.User) (mds.User, error) {
	start := s.clock.Now()
	created, err := s.store.AddUser(ctx, logger, user)
	if err != nil {
		return mds.User{}, err
	}

	return created, s.observe(start)
}

func (s *Store) UpdateUser(ctx context.Context, logger logx.Logger, user mds.User) error {
	start := s.clock.Now()
	if err := s.store.UpdateUser(ctx, logger, user); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) UpdateUserPassword(ctx context.Context, logger logx.Logger, userID, newPassword string) error {
	start := s.clock.Now()
	if err := s.store.UpdateUserPassword(ctx, logger, userID, newPassword); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) SearchUsers(ctx context.Context, logger logx.Logger, query repos.SearchUsersQuery) ([]mds.User, error) {
	start := s.clock.Now()
	users, err := s.store.SearchUsers(ctx, logger, query)
	if err != nil {
		return nil, err
	}

	return users, s.observe(start)
}

func (s *Store) GetOperations(ctx context.Context, logger logx.Logger, query repos.ListOperationsQuery) ([]mds.Operation, int, error) {
	start := s.clock.Now()
	operations, total, err := s.store.GetOperations(ctx, logger, query)
	if err != nil {
		return nil, 0, err
	}

	return operations, total, s.observe(start)
}

func (s *Store) AddOperation(ctx context.Context, logger logx.Logger, operation mds.Operation) (mds.Operation, error) {
	start := s.clock.Now()
	created, err := s.store.AddOperation(ctx, logger, operation)
	if err != nil {
		return mds.Operation{}, err
	}

	return created, s.observe(start)
}

func (s *Store) GetOperation(ctx context.Context, logger logx.Logger, operationID string) (mds.Operation, error) {
	start := s.clock.Now()
	operation, err := s.store.GetOperation(ctx, logger, operationID)
	if err != nil {
		return mds.Operation{}, err
	}

	return operation, s.observe(start)
}

func (s *Store) OperationExists(ctx context.Context, logger logx.Logger, operationID string) (bool, error) {
	start := s.clock.Now()
	exists, err := s.store.OperationExists(ctx, logger, operationID)
	if err != nil {
		return false, err
	}

	return exists, s.observe(start)
}

func (s *Store) UpdateOperation(ctx context.Context, logger logx.Logger, operation mds.Operation) error {
	start := s.clock.Now()
	if err := s.store.UpdateOperation(ctx, logger, operation); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) GetOperationMembers(ctx context.Context, logger logx.Logger, operationID string) ([]mds.User, error) {
	start := s.clock.Now()
	members, err := s.store.GetOperationMembers(ctx, logger, operationID)
	if err != nil {
		return nil, err
	}

	return members, s.observe(start)
}

func (s *Store) SetOperationMembers(ctx context.Context, logger logx.Logger, operationID string, userIDs []string) error {
	start := s.clock.Now()
	if err := s.store.SetOperationMembers(ctx, logger, operationID, userIDs); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) SearchOperations(ctx context.Context, logger logx.Logger, query repos.SearchOperationsQuery) ([]mds.Operation, error) {
	start := s.clock.Now()
	operations, err := s.store.SearchOperations(ctx, logger, query)
	if err != nil {
		return nil, err
	}

	return operations, s.observe(start)
}

func (s *Store) GetGroups(ctx context.Context, logger logx.Logger, query repos.ListGroupsQuery) ([]mds.Group, int, error) {
	start := s.clock.Now()
	groups, total, err := s.store.GetGroups(ctx, logger, query)
	if err != nil {
		return nil, 0, err
	}

	return groups, total, s.observe(start)
}

func (s *Store) GetGroup(ctx context.Context, logger logx.Logger, groupID string) (mds.Group, error) {
	start := s.clock.Now()
	group, err := s.store.GetGroup(ctx, logger, groupID)
	if err != nil {
		return mds.Group{}, err
	}

	return group, s.observe(start)
}

func (s *Store) GroupExists(ctx context.Context, logger logx.Logger, groupID string) (bool, error) {
	start := s.clock.Now()
	exists, err := s.store.GroupExists(ctx, logger, groupID)
	if err != nil {
		return false, err
	}

	return exists, s.observe(start)
}

func (s *Store) AddGroup(ctx context.Context, logger logx.Logger, group mds.Group) (mds.Group, error) {
	start := s.clock.Now()
	created, err := s.store.AddGroup(ctx, logger, group)
	if err != nil {
		return mds.Group{}, err
	}

	return created, s.observe(start)
}

func (s *Store) UpdateGroup(ctx context.Context, logger logx.Logger, group mds.Group) error {
	start := s.clock.Now()
	if err := s.store.UpdateGroup(ctx, logger, group); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) DeleteGroup(ctx context.Context, logger logx.Logger, groupID string) error {
	start := s.clock.Now()
	if err := s.store.DeleteGroup(ctx, logger, groupID); err != nil {
		return err
	}

	return s.observe(start)
}

func (s *Store) GetPermissions(ctx context.Context, logger logx.Logger, userID string) ([]mds.Permission, error) {
	start := s.clock.Now()
	permissions, err := s.store.GetPermissions(ctx, logger, userID)
	if err != nil {
		return nil, err
	}

	return permissions, s.observe(start)
}

func (s *Store) SetPermissions(ctx context.Context, logger logx.Logger, userID string, permissions []mds.Permission) error {
	start := s.clock.Now()
	if err := s.store.SetPermissions(ctx, logger, userID, permissions); err != nil {
		return err
	}

	return s.observe(start)
}
