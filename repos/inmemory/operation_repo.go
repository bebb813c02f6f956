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

func (s *Store) CreateOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) (mds.Operation, error) {
	operation.ID = uuid.NewV4().String()
	s.operations[operation.ID] = operation
	s.operationMembers[operation.ID] = nil

	logger.Debug(success, logx.Data{Key: "operation.id", Value: operation.ID})

	return operation, nil
}

func (s *Store) FindOperation(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) (mds.Operation, error) {
	operation, exists := s.operations[query.OperationID]
	if !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: query.OperationID})
		return mds.Operation{}, mds.ErrOperationNotFound
	}

	return operation, nil
}

func (s *Store) OperationExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) (bool, error) {
	_, exists := s.operations[query.OperationID]
	return exists, nil
}

func (s *Store) UpdateOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) error {
	if _, exists := s.operations[operation.ID]; !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: operation.ID})
		return mds.ErrOperationNotFound
	}

	s.operations[operation.ID] = operation

	logger.Debug(success, logx.Data{Key: "operation.id", Value: operation.ID})

	return nil
}

func (s *Store) ListOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListOperationsQuery,
) ([]mds.Operation, int, error) {
	operations := s.allOperations()
	sortOperations(operations, query.Order)

	total := len(operations)
	offset, end := pageBounds(query.Page, total)

	return operations[offset:end], total, nil
}

func (s *Store) ListOperationsForMember(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListOperationsForMemberQuery,
) ([]mds.Operation, int, error) {
	var operations []mds.Operation
	for _, operation := range s.allOperations() {
		if s.operationHasMember(operation.ID, query.UserID) {
			operations = append(operations, operation)
		}
	}

	sortOperations(operations, query.Order)

	total := len(operations)
	offset, end := pageBounds(query.Page, total)

	return operations[offset:end], total, nil
}

func (s *Store) SearchOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchOperationsQuery,
) ([]mds.Operation, error) {
	operations := s.allOperations()
	offset, limit := searchBounds(query.Offset, query.Limit)

	var results []mds.Operation
	skipped := 0
	for _, operation := range operations {
		if !operationMatches(operation, query.Query) {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}

		results = append(results, operation)
		if limit >= 0 && len(results) == limit {
			break
		}
	}

	return results, nil
}

func (s *Store) ListOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) ([]string, error) {
	if _, exists := s.operations[query.OperationID]; !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: query.OperationID})
		return nil, mds.ErrOperationNotFound
	}

	members := s.operationMembers[query.OperationID]

	return append([]string(nil), members...), nil
}

func (s *Store) SetOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
	userIDs []string,
) error {
	if _, exists := s.operations[operationID]; !exists {
		logger.Debug(errOperationNotFound, logx.Data{Key: "operation.id", Value: operationID})
		return mds.ErrOperationNotFound
	}

	s.operationMembers[operationID] = append([]string(nil), userIDs...)

	logger.Debug(success, logx.Data{Key: "operation.id", Value: operationID})

	return nil
}

func (s *Store) operationHasMember(operationID, userID string) bool {
	for _, member := range s.operationMembers[operationID] {
		if member == userID {
			return true
		}
	}
	return false
}

func (s *Store) allOperations() []mds.Operation {
	operations := make([]mds.Operation, 0, len(s.operations))
	for _, operation := range s.operations {
		operations = append(operations, operation)
	}

	sort.Slice(operations, func(i, j int) bool {
		return operations[i].ID < operations[j].ID
	})

	return operations
}

func sortOperations(operations []mds.Operation, order repos.Ordering) {
	var less func(i, j int) bool

	switch order.Field {
	case repos.OrderByTitle:
		less = func(i, j int) bool { return operations[i].Title < operations[j].Title }
	case repos.OrderByDescription:
		less = func(i, j int) bool { return operations[i].Description < operations[j].Description }
	case repos.OrderByStart:
		less = func(i, j int) bool { return operations[i].Start.Before(operations[j].Start) }
	case repos.OrderByEnd:
		less = func(i, j int) bool { return operations[i].End.Before(operations[j].End) }
	default:
		if order.Desc {
			reverseOperations(operations)
		}
		return
	}

	sort.SliceStable(operations, less)
	if order.Desc {
		reverseOperations(operations)
	}
}

func reverseOperations(operations []mds.Operation) {
	for i, j := 0, len(operations)-1; i < j; i, j = i+1, j-1 {
		operations[i], operations[j] = operations[j], operations[i]
	}
}

func operationMatches(operation mds.Operation, query string) bool {
	return strings.Contains(operation.Title, query) ||
		strings.Contains(operation.Description, query)
}
