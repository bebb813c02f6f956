package migrations

import (
	"context"
	"strings"

	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

var createUsersTable = `
CREATE TABLE IF NOT EXISTS user
(
  id VARCHAR(36) NOT NULL PRIMARY KEY,
  username VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL UNIQUE,
  first_name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  last_name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  is_admin BOOLEAN NOT NULL DEFAULT FALSE,
  pass VARCHAR(255) NOT NULL
)
`

// MariaDB 10.1 caps unique index prefixes at 767 bytes, which a
// utf8mb4 VARCHAR(255) column exceeds
var createUsersTableMariaDB = `
CREATE TABLE IF NOT EXISTS user
(
  id VARCHAR(36) NOT NULL PRIMARY KEY,
  username VARCHAR(191) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL UNIQUE,
  first_name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  last_name VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL,
  is_active BOOLEAN NOT NULL DEFAULT TRUE,
  is_admin BOOLEAN NOT NULL DEFAULT FALSE,
  pass VARCHAR(255) NOT NULL
)
`

var deleteUsersTable = `DROP TABLE user`

func CreateUsersTableUp(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-users-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	var err error

	if tx.Flavor() == sqlx.DBFlavorMariaDB && strings.HasPrefix(tx.Version(), "10.1") {
		_, err = tx.ExecContext(ctx, createUsersTableMariaDB)
	} else {
		_, err = tx.ExecContext(ctx, createUsersTable)
	}

	return err
}

func CreateUsersTableDown(ctx context.Context, logger logx.Logger, tx *sqlx.Tx) error {
	logger = logger.WithName("create-users-table")
	logger.Debug(starting)
	defer logger.Debug(finished)

	_, err := tx.ExecContext(ctx, deleteUsersTable)

	return err
}
