package repos

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
)

type FindOperationQuery struct {
	OperationID string
}

type ListOperationsQuery struct {
	Page  Page
	Order Ordering
}

type ListOperationsForMemberQuery struct {
	UserID string
	Page   Page
	Order  Ordering
}

type SearchOperationsQuery struct {
	Query  string
	Limit  int
	Offset int
}

type OperationRepo interface {
	CreateOperation(
		ctx context.Context,
		logger logx.Logger,
		operation mds.Operation,
	) (mds.Operation, error)

	FindOperation(
		ctx context.Context,
		logger logx.Logger,
		query FindOperationQuery,
	) (mds.Operation, error)

	OperationExists(
		ctx context.Context,
		logger logx.Logger,
		query FindOperationQuery,
	) (bool, error)

	UpdateOperation(
		ctx context.Context,
		logger logx.Logger,
		operation mds.Operation,
	) error

	ListOperations(
		ctx context.Context,
		logger logx.Logger,
		query ListOperationsQuery,
	) ([]mds.Operation, int, error)

	// ListOperationsForMember restricts the listing to operations the given
	// user is a member of. This backs the partial-visibility fallback for
	// principals without operation.view.any.
	ListOperationsForMember(
		ctx context.Context,
		logger logx.Logger,
		query ListOperationsForMemberQuery,
	) ([]mds.Operation, int, error)

	SearchOperations(
		ctx context.Context,
		logger logx.Logger,
		query SearchOperationsQuery,
	) ([]mds.Operation, error)

	// ListOperationMembers returns member user IDs in their stored order.
	ListOperationMembers(
		ctx context.Context,
		logger logx.Logger,
		query FindOperationQuery,
	) ([]string, error)

	// SetOperationMembers replaces the member list wholesale. Cascading the
	// change into dependent groups is the store's responsibility.
	SetOperationMembers(
		ctx context.Context,
		logger logx.Logger,
		operationID string,
		userIDs []string,
	) error
}
