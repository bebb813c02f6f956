package migrations

import (
	"context"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createPermissionsTable = `
CREATE TABLE IF NOT EXISTS user_permission
(
  user_id VARCHAR(36) NOT NULL,
  name VARCHAR(255) NOT NULL,
  options TEXT NULL,
  position INT NOT NULL,
  PRIMARY KEY (user_id, name),
  FOREIGN KEY (user_id) REFERENCES user (id)
)
`

var deletePermissionsTable = `DROP TABLE user_permission`

func CreatePermissionsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-permissions-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createPermissionsTable)

	return err
}

func CreatePermissionsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-permissions-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deletePermissionsTable)

	return err
}
