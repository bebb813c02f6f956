package migrations

import (
	"context"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createGroupMembersTable = `
CREATE TABLE IF NOT EXISTS user_group_member
(
  group_id VARCHAR(36) NOT NULL,
  user_id VARCHAR(36) NOT NULL,
  position INT NOT NULL,
  PRIMARY KEY (group_id, user_id),
  FOREIGN KEY (group_id) REFERENCES user_group (id),
  FOREIGN KEY (user_id) REFERENCES user (id)
)
`

var deleteGroupMembersTable = `DROP TABLE user_group_member`

func CreateGroupMembersTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-group-members-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createGroupMembersTable)

	return err
}

func CreateGroupMembersTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-group-members-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteGroupMembersTable)

	return err
}
