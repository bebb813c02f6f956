package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

// GetOperations lists operations. Principals without operation.view.any are
// not rejected; they see only the operations they are a member of.
func (s *Store) GetOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListOperationsQuery,
) ([]mds.Operation, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewAny, err := s.hasPermissionLocked(ctx, logger, mds.PermissionOperationViewAny)
	if err != nil {
		return nil, 0, err
	}

	if viewAny {
		return s.operations.ListOperations(ctx, logger, query)
	}

	return s.operations.ListOperationsForMember(ctx, logger, repos.ListOperationsForMemberQuery{
		UserID: s.session.userID,
		Page:   query.Page,
		Order:  query.Order,
	})
}

// AddOperation requires operation.create. Start must precede End when both
// are set.
func (s *Store) AddOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) (mds.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "AddOperation", mds.PermissionOperationCreate); err != nil {
		return mds.Operation{}, err
	}

	if err := validateOperation(operation); err != nil {
		logger.Debug(errInvalidInput)
		return mds.Operation{}, err
	}

	return s.operations.CreateOperation(ctx, logger, operation)
}

// GetOperation requires operation.view.any.
func (s *Store) GetOperation(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
) (mds.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "GetOperation", mds.PermissionOperationViewAny); err != nil {
		return mds.Operation{}, err
	}

	return s.operations.FindOperation(ctx, logger, repos.FindOperationQuery{OperationID: operationID})
}

// OperationExists requires operation.view.any.
func (s *Store) OperationExists(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked(ctx, logger, "OperationExists", mds.PermissionOperationViewAny); err != nil {
		return false, err
	}

	return s.operations.OperationExists(ctx, logger, repos.FindOperationQuery{OperationID: operationID})
}

// UpdateOperation replaces the stored record. Requires operation.update.
func (s *Store) UpdateOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.operations.OperationExists(ctx, logger, repos.FindOperationQuery{
		OperationID: operation.ID,
	})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: operation.ID})
		return mds.ErrOperationNotFound
	}

	if err := validateOperation(operation); err != nil {
		logger.Debug(errInvalidInput)
		return err
	}

	if err := s.requireLocked(ctx, logger, "UpdateOperation", mds.PermissionOperationUpdate); err != nil {
		return err
	}

	return s.operations.UpdateOperation(ctx, logger, operation)
}

// GetOperationMembers resolves the operation's member list to user records.
// Requires operation.members.view; each member is then read under the same
// visibility rule as GetUser.
func (s *Store) GetOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
) ([]mds.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.operations.OperationExists(ctx, logger, repos.FindOperationQuery{
		OperationID: operationID,
	})
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: operationID})
		return nil, mds.ErrOperationNotFound
	}

	if err := s.requireLocked(ctx, logger, "GetOperationMembers", mds.PermissionOperationMembersView); err != nil {
		return nil, err
	}

	memberIDs, err := s.operations.ListOperationMembers(ctx, logger, repos.FindOperationQuery{
		OperationID: operationID,
	})
	if err != nil {
		return nil, err
	}

	members := make([]mds.User, 0, len(memberIDs))
	for _, memberID := range memberIDs {
		member, err := s.getUserLocked(ctx, logger, memberID)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

// SetOperationMembers replaces the operation's member list. Requires
// operation.members.update and every referenced user to exist. Groups tied to
// the operation are cascaded: members no longer in the operation are dropped
// from them.
func (s *Store) SetOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
	userIDs []string,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.operations.OperationExists(ctx, logger, repos.FindOperationQuery{
		OperationID: operationID,
	})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: operationID})
		return mds.ErrOperationNotFound
	}

	for _, userID := range userIDs {
		userExists, err := s.users.UserExists(ctx, logger, repos.FindUserQuery{UserID: userID})
		if err != nil {
			return err
		}
		if !userExists {
			logger.Debug(errUserNotFound, logx.Data{Key: "user.id", Value: userID})
			return mds.ErrUserNotFound
		}
	}

	if err := s.requireLocked(ctx, logger, "SetOperationMembers", mds.PermissionOperationMembersUpdate); err != nil {
		return err
	}

	if err := s.operations.SetOperationMembers(ctx, logger, operationID, userIDs); err != nil {
		return err
	}

	return s.cascadeMembershipLocked(ctx, logger, operationID, userIDs)
}

// cascadeMembershipLocked re-validates and rewrites every group tied to the
// operation, filtering out members that left it.
func (s *Store) cascadeMembershipLocked(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
	userIDs []string,
) error {
	memberSet := make(map[string]struct{}, len(userIDs))
	for _, userID := range userIDs {
		memberSet[userID] = struct{}{}
	}

	groups, err := s.groups.ListGroupsByOperation(ctx, logger, operationID)
	if err != nil {
		return err
	}

	for _, group := range groups {
		filtered := make([]string, 0, len(group.Members))
		for _, memberID := range group.Members {
			if _, ok := memberSet[memberID]; ok {
				filtered = append(filtered, memberID)
			}
		}

		if len(filtered) == len(group.Members) {
			continue
		}

		group.Members = filtered
		if err := s.validateGroupLocked(ctx, logger, group); err != nil {
			return err
		}
		if err := s.groups.UpdateGroup(ctx, logger, group); err != nil {
			return err
		}
	}

	return nil
}

// SearchOperations scans title and description for the given substring. The
// membership-visibility fallback of GetOperations applies here as well.
func (s *Store) SearchOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchOperationsQuery,
) ([]mds.Operation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	viewAny, err := s.hasPermissionLocked(ctx, logger, mds.PermissionOperationViewAny)
	if err != nil {
		return nil, err
	}

	if viewAny {
		return s.operations.SearchOperations(ctx, logger, query)
	}

	// Filter before paging so offset and limit count visible matches only.
	matches, err := s.operations.SearchOperations(ctx, logger, repos.SearchOperationsQuery{
		Query: query.Query,
	})
	if err != nil {
		return nil, err
	}

	var visible []mds.Operation
	for _, operation := range matches {
		memberIDs, err := s.operations.ListOperationMembers(ctx, logger, repos.FindOperationQuery{
			OperationID: operation.ID,
		})
		if err != nil {
			return nil, err
		}
		for _, memberID := range memberIDs {
			if memberID == s.session.userID {
				visible = append(visible, operation)
				break
			}
		}
	}

	offset := query.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > len(visible) {
		offset = len(visible)
	}
	visible = visible[offset:]

	if query.Limit > 0 && len(visible) > query.Limit {
		visible = visible[:query.Limit]
	}

	return visible, nil
}
