package inmemory

import (
	"context"
	"sort"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	uuid "github.com/satori/go.uuid"
)

func (s *Store) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) (mds.Group, error) {
	group.ID = uuid.NewV4().String()
	group.Members = append([]string(nil), group.Members...)
	s.groups[group.ID] = group

	logger.Debug(success, logx.Data{Key: "group.id", Value: group.ID})

	return copyGroup(group), nil
}

func (s *Store) FindGroup(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindGroupQuery,
) (mds.Group, error) {
	group, exists := s.groups[query.GroupID]
	if !exists {
		logger.Debug(errGroupNotFound, logx.Data{Key: "group.id", Value: query.GroupID})
		return mds.Group{}, mds.ErrGroupNotFound
	}

	return copyGroup(group), nil
}

func (s *Store) GroupExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindGroupQuery,
) (bool, error) {
	_, exists := s.groups[query.GroupID]
	return exists, nil
}

func (s *Store) UpdateGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) error {
	if _, exists := s.groups[group.ID]; !exists {
		logger.Debug(errGroupNotFound, logx.Data{Key: "group.id", Value: group.ID})
		return mds.ErrGroupNotFound
	}

	group.Members = append([]string(nil), group.Members...)
	s.groups[group.ID] = group

	logger.Debug(success, logx.Data{Key: "group.id", Value: group.ID})

	return nil
}

func (s *Store) DeleteGroup(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) error {
	if _, exists := s.groups[groupID]; !exists {
		logger.Debug(errGroupNotFound, logx.Data{Key: "group.id", Value: groupID})
		return mds.ErrGroupNotFound
	}

	delete(s.groups, groupID)

	logger.Debug(success, logx.Data{Key: "group.id", Value: groupID})

	return nil
}

func (s *Store) ListGroups(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListGroupsQuery,
) ([]mds.Group, int, error) {
	groups := s.allGroups()
	sortGroups(groups, query.Order)

	total := len(groups)
	offset, end := pageBounds(query.Page, total)

	return groups[offset:end], total, nil
}

func (s *Store) ListGroupsByOperation(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
) ([]mds.Group, error) {
	var groups []mds.Group
	for _, group := range s.allGroups() {
		if group.OperationID == operationID {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

func (s *Store) allGroups() []mds.Group {
	groups := make([]mds.Group, 0, len(s.groups))
	for _, group := range s.groups {
		groups = append(groups, copyGroup(group))
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].ID < groups[j].ID
	})

	return groups
}

func sortGroups(groups []mds.Group, order repos.Ordering) {
	var less func(i, j int) bool

	switch order.Field {
	case repos.OrderByTitle:
		less = func(i, j int) bool { return groups[i].Title < groups[j].Title }
	case repos.OrderByDescription:
		less = func(i, j int) bool { return groups[i].Description < groups[j].Description }
	default:
		if order.Desc {
			reverseGroups(groups)
		}
		return
	}

	sort.SliceStable(groups, less)
	if order.Desc {
		reverseGroups(groups)
	}
}

func reverseGroups(groups []mds.Group) {
	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
}

// copyGroup detaches the members slice so callers can mutate results freely.
func copyGroup(group mds.Group) mds.Group {
	group.Members = append([]string(nil), group.Members...)
	return group
}
