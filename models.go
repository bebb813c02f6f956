package mds

import "time"

// User is a person that can log in to the directing system. Pass is
// write-only: every read path of the store returns it blanked.
type User struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	IsActive  bool
	IsAdmin   bool
	Pass      string
}

// Operation is a mission or incident record. Start and End are optional;
// when both are set, Start must be strictly before End.
type Operation struct {
	ID          string
	Title       string
	Description string
	Start       time.Time
	End         time.Time
	IsArchived  bool
}

// Group bundles users, optionally scoped to an operation. When OperationID is
// set, every member must also be a member of that operation.
type Group struct {
	ID          string
	Title       string
	Description string
	OperationID string
	Members     []string
}

// Permission is a single capability grant for a user.
type Permission struct {
	Name    PermissionName
	Options map[string]interface{}
}

// PermissionName identifies a capability. The set is closed; checks compare
// by name.
type PermissionName string

const (
	PermissionUserView           PermissionName = "user.view"
	PermissionUserCreate         PermissionName = "user.create"
	PermissionUserUpdate         PermissionName = "user.update"
	PermissionUserUpdatePass     PermissionName = "user.update-pass"
	PermissionUserSetActiveState PermissionName = "user.set-active-state"
	PermissionUserSetAdmin       PermissionName = "user.set-admin"

	PermissionOperationViewAny       PermissionName = "operation.view.any"
	PermissionOperationCreate        PermissionName = "operation.create"
	PermissionOperationUpdate        PermissionName = "operation.update"
	PermissionOperationMembersView   PermissionName = "operation.members.view"
	PermissionOperationMembersUpdate PermissionName = "operation.members.update"

	PermissionGroupView   PermissionName = "group.view"
	PermissionGroupCreate PermissionName = "group.create"
	PermissionGroupUpdate PermissionName = "group.update"
	PermissionGroupDelete PermissionName = "group.delete"

	PermissionPermissionsView   PermissionName = "permissions.view"
	PermissionPermissionsUpdate PermissionName = "permissions.update"
)
