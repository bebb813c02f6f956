// Package inmemory provides the map-backed store used for development and
// testing. It is not safe for concurrent use; callers serialize access.
package inmemory

import (
	mds "github.com/mobile-directing-system/mds-store"
)

type Store struct {
	users      map[string]mds.User
	operations map[string]mds.Operation
	groups     map[string]mds.Group

	operationMembers map[string][]string
	permissions      map[string][]mds.Permission
}

func NewStore() *Store {
	return &Store{
		users:            make(map[string]mds.User),
		operations:       make(map[string]mds.Operation),
		groups:           make(map[string]mds.Group),
		operationMembers: make(map[string][]string),
		permissions:      make(map[string][]mds.Permission),
	}
}
