package repos

import (
	"context"

	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
)

type FindGroupQuery struct {
	GroupID string
}

type ListGroupsQuery struct {
	Page  Page
	Order Ordering
}

type GroupRepo interface {
	CreateGroup(
		ctx context.Context,
		logger logx.Logger,
		group mds.Group,
	) (mds.Group, error)

	FindGroup(
		ctx context.Context,
		logger logx.Logger,
		query FindGroupQuery,
	) (mds.Group, error)

	GroupExists(
		ctx context.Context,
		logger logx.Logger,
		query FindGroupQuery,
	) (bool, error)

	UpdateGroup(
		ctx context.Context,
		logger logx.Logger,
		group mds.Group,
	) error

	DeleteGroup(
		ctx context.Context,
		logger logx.Logger,
		groupID string,
	) error

	ListGroups(
		ctx context.Context,
		logger logx.Logger,
		query ListGroupsQuery,
	) ([]mds.Group, int, error)

	// ListGroupsByOperation backs the membership cascade: shrinking an
	// operation's member list must visit every group tied to it.
	ListGroupsByOperation(
		ctx context.Context,
		logger logx.Logger,
		operationID string,
	) ([]mds.Group, error)
}
