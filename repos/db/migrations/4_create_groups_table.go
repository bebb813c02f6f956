package migrations

import (
	"context"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createGroupsTable = `
CREATE TABLE IF NOT EXISTS user_group
(
  id VARCHAR(36) NOT NULL PRIMARY KEY,
  title VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  description TEXT CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  operation_id VARCHAR(36) NULL,
  FOREIGN KEY (operation_id) REFERENCES operation (id)
)
`

var deleteGroupsTable = `DROP TABLE user_group`

func CreateGroupsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createGroupsTable)

	return err
}

func CreateGroupsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-groups-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteGroupsTable)

	return err
}
