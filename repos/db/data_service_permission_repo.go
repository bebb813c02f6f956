package db

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/Masterminds/squirrel"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

func (s *DataService) ListUserPermissions(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListUserPermissionsQuery,
) ([]mds.Permission, error) {
	logger = logger.WithName("data-service").WithName("list-user-permissions")

	rows, err := squirrel.Select("name", "options").
		From("user_permission").
		Where(squirrel.Eq{"user_id": query.UserID}).
		OrderBy("position ASC").
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListPermissions, err)
		return nil, err
	}
	defer rows.Close()

	permissions := []mds.Permission{}
	for rows.Next() {
		var (
			name    string
			options sql.NullString
		)
		if err := rows.Scan(&name, &options); err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}

		permission := mds.Permission{Name: mds.PermissionName(name)}
		if options.Valid && options.String != "" {
			if err := json.Unmarshal([]byte(options.String), &permission.Options); err != nil {
				logger.Error(failedToDecodeOptions, err)
				return nil, err
			}
		}
		permissions = append(permissions, permission)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return permissions, nil
}

func (s *DataService) SetUserPermissions(
	ctx context.Context,
	logger logx.Logger,
	userID string,
	permissions []mds.Permission,
) (err error) {
	logger = logger.WithName("data-service").WithName("set-user-permissions")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if err != nil {
			logger.Error(failedToSetPermissions, err)
		}
		err = sqlx.Commit(logger, tx, err)
	}()

	_, err = squirrel.Delete("user_permission").
		Where(squirrel.Eq{"user_id": userID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	for position, permission := range permissions {
		var options interface{}
		if permission.Options != nil {
			var encoded []byte
			encoded, err = json.Marshal(permission.Options)
			if err != nil {
				logger.Error(failedToEncodeOptions, err)
				return
			}
			options = string(encoded)
		}

		_, err = squirrel.Insert("user_permission").
			Columns("user_id", "name", "options", "position").
			Values(userID, string(permission.Name), options, position).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return
		}
	}

	return
}
