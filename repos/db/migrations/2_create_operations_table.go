package migrations

import (
	"context"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createOperationsTable = `
CREATE TABLE IF NOT EXISTS operation
(
  id VARCHAR(36) NOT NULL PRIMARY KEY,
  title VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  description TEXT CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  start_ts DATETIME NULL,
  end_ts DATETIME NULL,
  is_archived BOOLEAN NOT NULL DEFAULT FALSE
)
`

var deleteOperationsTable = `DROP TABLE operation`

func CreateOperationsTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-operations-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, createOperationsTable)

	return err
}

func CreateOperationsTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-operations-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteOperationsTable)

	return err
}
