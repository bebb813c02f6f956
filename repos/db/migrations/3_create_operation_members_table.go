package migrations

import (
	"context"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createOperationMembersTable = `
CREATE TABLE IF NOT EXISTS operation_member
(
  operation_id VARCHAR(36) NOT NULL,
  user_id VARCHAR(36) NOT NULL,
  position INT NOT NULL,
  PRIMARY KEY (operation_id, user_id),
  FOREIGN KEY (operation_id) REFERENCES operation (id),
  FOREIGN KEY (user_id) REFERENCES user (id)
)
`

var deleteOperationMembersTable = `DROP TABLE operation_member`

func CreateOperationMembersTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-operation-members-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createOperationMembersTable)

	return err
}

func CreateOperationMembersTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-operation-members-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteOperationMembersTable)

	return err
}
