package db

import (
	"github.com/mobile-directing-system/mds-store/repos/db/migrations"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var MigrationsTableName = "mds_migrations"

var Migrations = []sqlx.Migration{
	{
		Name: "create_users_table",
		Up:   migrations.CreateUsersTableUp,
		Down: migrations.CreateUsersTableDown,
	},
	{
		Name: "create_operations_table",
		Up:   migrations.CreateOperationsTableUp,
		Down: migrations.CreateOperationsTableDown,
	},
	{
		Name: "create_operation_members_table",
		Up:   migrations.CreateOperationMembersTableUp,
		Down: migrations.CreateOperationMembersTableDown,
	},
	{
		Name: "create_groups_table",
		Up:   migrations.CreateGroupsTableUp,
		Down: migrations.CreateGroupsTableDown,
	},
	{
		Name: "create_group_members_table",
		Up:   migrations.CreateGroupMembersTableUp,
		Down: migrations.CreateGroupMembersTableDown,
	},
	{
		Name: "create_permissions_table",
		Up:   migrations.CreatePermissionsTableUp,
		Down: migrations.CreatePermissionsTableDown,
	},
}
