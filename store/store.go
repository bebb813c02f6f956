// Package store implements the permission-gated entity store of the Mobile
// Directing System: users, operations, groups, operation membership and
// per-user permission grants, all gated behind the current session's
// capabilities.
//
// Cross-entity invariants (group members must stay a subset of the group's
// operation members) are enforced on every write, so the store serializes all
// operations behind a single mutex per instance.
package store

import (
	"context"
	"sync"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
)

type Store struct {
	mu sync.Mutex

	users       repos.UserRepo
	operations  repos.OperationRepo
	groups      repos.GroupRepo
	permissions repos.PermissionRepo

	securityLogger logx.SecurityLogger

	session session
}

// session is per-Store state: exactly one principal may be logged in per
// instance at a time.
type session struct {
	loggedIn bool
	userID   string
}

func NewStore(
	users repos.UserRepo,
	operations repos.OperationRepo,
	groups repos.GroupRepo,
	permissions repos.PermissionRepo,
	opts ...Option,
) *Store {
	config := &options{
		securityLogger: &emptySecurityLogger{},
	}

	for _, opt := range opts {
		opt(config)
	}

	return &Store{
		users:          users,
		operations:     operations,
		groups:         groups,
		permissions:    permissions,
		securityLogger: config.securityLogger,
	}
}

type Option func(*options)

func WithSecurityLogger(logger logx.SecurityLogger) Option {
	return func(o *options) {
		o.securityLogger = logger
	}
}

type options struct {
	securityLogger logx.SecurityLogger
}

type emptySecurityLogger struct{}

func (l *emptySecurityLogger) Log(context.Context, string, string, ...logx.SecurityData) {}
