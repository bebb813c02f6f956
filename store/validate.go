package store

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

func validateUser(user mds.User) error {
	if user.Username == "" {
		return mds.ErrUserUsernameEmpty
	}
	if user.FirstName == "" {
		return mds.ErrUserFirstNameEmpty
	}
	if user.LastName == "" {
		return mds.ErrUserLastNameEmpty
	}
	return nil
}

func validateOperation(operation mds.Operation) error {
	if operation.Title == "" {
		return mds.ErrOperationTitleEmpty
	}
	if !operation.Start.IsZero() && !operation.End.IsZero() && !operation.Start.Before(operation.End) {
		return mds.ErrOperationEndBeforeStart
	}
	return nil
}

// validateGroupLocked checks the group's own fields plus the referential
// rules: every member exists, and when the group is tied to an operation,
// every member is a member of that operation.
func (s *Store) validateGroupLocked(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) error {
	if group.Title == "" {
		return mds.ErrGroupTitleEmpty
	}

	for _, memberID := range group.Members {
		exists, err := s.users.UserExists(ctx, logger, repos.FindUserQuery{UserID: memberID})
		if err != nil {
			return err
		}
		if !exists {
			logger.Debug(errInvalidInput, logx.Data{Key: "group.member", Value: memberID})
			return mds.ErrGroupMemberNotFound
		}
	}

	if group.OperationID == "" {
		return nil
	}

	operationExists, err := s.operations.OperationExists(ctx, logger, repos.FindOperationQuery{
		OperationID: group.OperationID,
	})
	if err != nil {
		return err
	}
	if !operationExists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: group.OperationID})
		return mds.ErrOperationNotFound
	}

	operationMembers, err := s.operations.ListOperationMembers(ctx, logger, repos.FindOperationQuery{
		OperationID: group.OperationID,
	})
	if err != nil {
		return err
	}

	memberSet := make(map[string]struct{}, len(operationMembers))
	for _, memberID := range operationMembers {
		memberSet[memberID] = struct{}{}
	}

	for _, memberID := range group.Members {
		if _, ok := memberSet[memberID]; !ok {
			logger.Debug(errInvalidInput, logx.Data{Key: "group.member", Value: memberID})
			return mds.ErrGroupMemberNotInOperation
		}
	}

	return nil
}
