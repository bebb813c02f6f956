package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// GetGroups requires group.view.
func (s *Store) GetGroups(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListGroupsQuery,
) ([]mds.Group, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "GetGroups", mds.PermissionGroupView); err != nil {
		return nil, 0, err
	}

	return s.groups.ListGroups(ctx, logger, query)
}

// GetGroup requires group.view.
func (s *Store) GetGroup(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) (mds.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "GetGroup", mds.PermissionGroupView); err != nil {
		return mds.Group{}, err
	}

	return s.groups.FindGroup(ctx, logger, repos.FindGroupQuery{GroupID: groupID})
}

// GroupExists requires group.view.
func (s *Store) GroupExists(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "GroupExists", mds.PermissionGroupView); err != nil {
		return false, err
	}

	return s.groups.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: groupID})
}

// AddGroup requires group.create. Every member must exist, and when the group
// is tied to an operation, every member must belong to that operation.
func (s *Store) AddGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) (mds.Group, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "AddGroup", mds.PermissionGroupCreate); err != nil {
		return mds.Group{}, err
	}

	if err := s.validateGroupLocked(ctx, logger, group); err != nil {
		logger.Debug(errInvalidInput)
		return mds.Group{}, err
	}

	return s.groups.CreateGroup(ctx, logger, group)
}

// UpdateGroup replaces the stored record. Requires group.update.
func (s *Store) UpdateGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.groups.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errGroupNotFound, logx.Data{Key: "group.id", Value: group.ID})
		return mds.ErrGroupNotFound
	}

	if err := s.validateGroupLocked(ctx, logger, group); err != nil {
		logger.Debug(errInvalidInput)
		return err
	}

	if err := s.requireLocked(ctx, logger, "UpdateGroup", mds.PermissionGroupUpdate); err != nil {
		return err
	}

	return s.groups.UpdateGroup(ctx, logger, group)
}

// DeleteGroup requires group.delete.
func (s *Store) DeleteGroup(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.groups.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: groupID})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errGroupNotFound, logx.Data{Key: "group.id", Value: groupID})
		return mds.ErrGroupNotFound
	}

	if err := s.requireLocked(ctx, logger, "DeleteGroup", mds.PermissionGroupDelete); err != nil {
		return err
	}

	return s.groups.DeleteGroup(ctx, logger, groupID)
}
