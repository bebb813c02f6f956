package db

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/sqlx"
	uuid "github.com/satori/go.uuid"
)

var groupColumns = []string{"id", "title", "description", "operation_id"}

var groupOrderColumns = map[string]string{
	repos.OrderByTitle:       "title",
	repos.OrderByDescription: "description",
}

func (s *DataService) CreateGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) (g mds.Group, err error) {
	logger = logger.WithName("data-service").WithName("create-group")

	if group.ID == "" {
		group.ID = uuid.NewV4().String()
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if err != nil {
			logger.Error(failedToCreateGroup, err)
		}
		err = sqlx.Commit(logger, tx, err)
		if err == nil {
			g = group
		}
	}()

	_, err = squirrel.Insert("user_group").
		Columns(groupColumns...).
		Values(group.ID, group.Title, group.Description, nullString(group.OperationID)).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	err = insertGroupMembers(ctx, tx, group.ID, group.Members)

	return
}

func (s *DataService) FindGroup(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindGroupQuery,
) (mds.Group, error) {
	logger = logger.WithName("data-service").WithName("find-group")

	row := squirrel.Select(groupColumns...).
		From("user_group").
		Where(squirrel.Eq{"id": query.GroupID}).
		RunWith(s.conn.Conn).
		QueryRowContext(ctx)

	group, err := scanGroup(logger, row)
	if err != nil {
		return mds.Group{}, err
	}

	members, err := s.listGroupMembers(ctx, logger, group.ID)
	if err != nil {
		return mds.Group{}, err
	}
	group.Members = members

	return group, nil
}

func (s *DataService) GroupExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindGroupQuery,
) (bool, error) {
	logger = logger.WithName("data-service").WithName("group-exists")

	var count int
	err := squirrel.Select("COUNT(*)").
		From("user_group").
		Where(squirrel.Eq{"id": query.GroupID}).
		RunWith(s.conn.Conn).
		ScanContext(ctx, &count)
	if err != nil {
		logger.Error(failedToFindGroup, err)
		return false, err
	}

	return count > 0, nil
}

func (s *DataService) UpdateGroup(
	ctx context.Context,
	logger logx.Logger,
	group mds.Group,
) (err error) {
	logger = logger.WithName("data-service").WithName("update-group")

	exists, err := s.GroupExists(ctx, logger, repos.FindGroupQuery{GroupID: group.ID})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errGroupNotFound)
		return mds.ErrGroupNotFound
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if err != nil {
			logger.Error(failedToUpdateGroup, err)
		}
		err = sqlx.Commit(logger, tx, err)
	}()

	_, err = squirrel.Update("user_group").
		Set("title", group.Title).
		Set("description", group.Description).
		Set("operation_id", nullString(group.OperationID)).
		Where(squirrel.Eq{"id": group.ID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	_, err = squirrel.Delete("user_group_member").
		Where(squirrel.Eq{"group_id": group.ID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	err = insertGroupMembers(ctx, tx, group.ID, group.Members)

	return
}

func (s *DataService) DeleteGroup(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) (err error) {
	logger = logger.WithName("data-service").WithName("delete-group")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if err != nil && err != mds.ErrGroupNotFound {
			logger.Error(failedToDeleteGroup, err)
		}
		err = sqlx.Commit(logger, tx, err)
	}()

	_, err = squirrel.Delete("user_group_member").
		Where(squirrel.Eq{"group_id": groupID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	var result sql.Result
	result, err = squirrel.Delete("user_group").
		Where(squirrel.Eq{"id": groupID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	n, err := result.RowsAffected()
	if err != nil {
		logger.Error(failedToCountRowsAffected, err)
		return
	}
	if n == 0 {
		logger.Debug(errGroupNotFound)
		err = mds.ErrGroupNotFound
	}

	return
}

func (s *DataService) ListGroups(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListGroupsQuery,
) ([]mds.Group, int, error) {
	logger = logger.WithName("data-service").WithName("list-groups")

	var total int
	err := squirrel.Select("COUNT(*)").
		From("user_group").
		RunWith(s.conn.Conn).
		ScanContext(ctx, &total)
	if err != nil {
		logger.Error(failedToCountRows, err)
		return nil, 0, err
	}

	offset, amount := pageClamp(query.Page)

	rows, err := squirrel.Select(groupColumns...).
		From("user_group").
		OrderBy(orderClause(query.Order, groupOrderColumns)...).
		Limit(uint64(amount)).
		Offset(uint64(offset)).
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListGroups, err)
		return nil, 0, err
	}

	groups, err := collectGroups(logger, rows)
	if err != nil {
		return nil, 0, err
	}

	for i := range groups {
		members, err := s.listGroupMembers(ctx, logger, groups[i].ID)
		if err != nil {
			return nil, 0, err
		}
		groups[i].Members = members
	}

	return groups, total, nil
}

func (s *DataService) ListGroupsByOperation(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
) ([]mds.Group, error) {
	logger = logger.WithName("data-service").WithName("list-groups-by-operation")

	rows, err := squirrel.Select(groupColumns...).
		From("user_group").
		Where(squirrel.Eq{"operation_id": operationID}).
		OrderBy("id ASC").
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListGroups, err)
		return nil, err
	}

	groups, err := collectGroups(logger, rows)
	if err != nil {
		return nil, err
	}

	for i := range groups {
		members, err := s.listGroupMembers(ctx, logger, groups[i].ID)
		if err != nil {
			return nil, err
		}
		groups[i].Members = members
	}

	return groups, nil
}

func (s *DataService) listGroupMembers(
	ctx context.Context,
	logger logx.Logger,
	groupID string,
) ([]string, error) {
	rows, err := squirrel.Select("user_id").
		From("user_group_member").
		Where(squirrel.Eq{"group_id": groupID}).
		OrderBy("position ASC").
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListGroups, err)
		return nil, err
	}
	defer rows.Close()

	members := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}
		members = append(members, userID)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return members, nil
}

func insertGroupMembers(ctx context.Context, tx *sqlx.Tx, groupID string, members []string) error {
	for position, userID := range members {
		_, err := squirrel.Insert("user_group_member").
			Columns("group_id", "user_id", "position").
			Values(groupID, userID, position).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanGroup(logger logx.Logger, row squirrel.RowScanner) (mds.Group, error) {
	var (
		group       mds.Group
		operationID sql.NullString
	)

	err := row.Scan(&group.ID, &group.Title, &group.Description, &operationID)

	switch err {
	case nil:
		if operationID.Valid {
			group.OperationID = operationID.String
		}
		return group, nil
	case sql.ErrNoRows:
		logger.Debug(errGroupNotFound)
		return mds.Group{}, mds.ErrGroupNotFound
	default:
		logger.Error(failedToFindGroup, err)
		return mds.Group{}, err
	}
}

func collectGroups(logger logx.Logger, rows *sql.Rows) ([]mds.Group, error) {
	defer rows.Close()

	groups := []mds.Group{}
	for rows.Next() {
		var (
			group       mds.Group
			operationID sql.NullString
		)
		err := rows.Scan(&group.ID, &group.Title, &group.Description, &operationID)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}
		if operationID.Valid {
			group.OperationID = operationID.String
		}
		groups = append(groups, group)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return groups, nil
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
