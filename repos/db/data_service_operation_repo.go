package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	mds "github.com/mobile-directing-system/mds-store"
	"github.com/mobile-directing-system/mds-store/logx"
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/sqlx"
	uuid "github.com/satori/go.uuid"
)

var operationColumns = []string{"id", "title", "description", "start_ts", "end_ts", "is_archived"}

var operationOrderColumns = map[string]string{
	repos.OrderByTitle:       "title",
	repos.OrderByDescription: "description",
	repos.OrderByStart:       "start_ts",
	repos.OrderByEnd:         "end_ts",
}

func (s *DataService) CreateOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) (mds.Operation, error) {
	logger = logger.WithName("data-service").WithName("create-operation")

	if operation.ID == "" {
		operation.ID = uuid.NewV4().String()
	}

	_, err := squirrel.Insert("operation").
		Columns(operationColumns...).
		Values(
			operation.ID,
			operation.Title,
			operation.Description,
			nullTime(operation.Start),
			nullTime(operation.End),
			operation.IsArchived,
		).
		RunWith(s.conn.Conn).
		ExecContext(ctx)
	if err != nil {
		logger.Error(failedToCreateOperation, err)
		return mds.Operation{}, err
	}

	return operation, nil
}

func (s *DataService) FindOperation(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) (mds.Operation, error) {
	logger = logger.WithName("data-service").WithName("find-operation")

	row := squirrel.Select(operationColumns...).
		From("operation").
		Where(squirrel.Eq{"id": query.OperationID}).
		RunWith(s.conn.Conn).
		QueryRowContext(ctx)

	return scanOperation(logger, row)
}

func (s *DataService) OperationExists(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) (bool, error) {
	logger = logger.WithName("data-service").WithName("operation-exists")

	var count int
	err := squirrel.Select("COUNT(*)").
		From("operation").
		Where(squirrel.Eq{"id": query.OperationID}).
		RunWith(s.conn.Conn).
		ScanContext(ctx, &count)
	if err != nil {
		logger.Error(failedToFindOperation, err)
		return false, err
	}

	return count > 0, nil
}

func (s *DataService) UpdateOperation(
	ctx context.Context,
	logger logx.Logger,
	operation mds.Operation,
) error {
	logger = logger.WithName("data-service").WithName("update-operation")

	exists, err := s.OperationExists(ctx, logger, repos.FindOperationQuery{OperationID: operation.ID})
	if err != nil {
		return err
	}
	if !exists {
		logger.Debug(errOperationNotFound)
		return mds.ErrOperationNotFound
	}

	_, err = squirrel.Update("operation").
		Set("title", operation.Title).
		Set("description", operation.Description).
		Set("start_ts", nullTime(operation.Start)).
		Set("end_ts", nullTime(operation.End)).
		Set("is_archived", operation.IsArchived).
		Where(squirrel.Eq{"id": operation.ID}).
		RunWith(s.conn.Conn).
		ExecContext(ctx)
	if err != nil {
		logger.Error(failedToUpdateOperation, err)
		return err
	}

	return nil
}

func (s *DataService) ListOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListOperationsQuery,
) ([]mds.Operation, int, error) {
	logger = logger.WithName("data-service").WithName("list-operations")

	var total int
	err := squirrel.Select("COUNT(*)").
		From("operation").
		RunWith(s.conn.Conn).
		ScanContext(ctx, &total)
	if err != nil {
		logger.Error(failedToCountRows, err)
		return nil, 0, err
	}

	offset, amount := pageClamp(query.Page)

	rows, err := squirrel.Select(operationColumns...).
		From("operation").
		OrderBy(orderClause(query.Order, operationOrderColumns)...).
		Limit(uint64(amount)).
		Offset(uint64(offset)).
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListOperations, err)
		return nil, 0, err
	}
	defer rows.Close()

	operations, err := collectOperations(logger, rows)
	if err != nil {
		return nil, 0, err
	}

	return operations, total, nil
}

func (s *DataService) ListOperationsForMember(
	ctx context.Context,
	logger logx.Logger,
	query repos.ListOperationsForMemberQuery,
) ([]mds.Operation, int, error) {
	logger = logger.WithName("data-service").WithName("list-operations-for-member")

	var total int
	err := squirrel.Select("COUNT(*)").
		From("operation").
		Join("operation_member ON operation_member.operation_id = operation.id").
		Where(squirrel.Eq{"operation_member.user_id": query.UserID}).
		RunWith(s.conn.Conn).
		ScanContext(ctx, &total)
	if err != nil {
		logger.Error(failedToCountRows, err)
		return nil, 0, err
	}

	offset, amount := pageClamp(query.Page)

	rows, err := squirrel.Select(prefixColumns("operation", operationColumns)...).
		From("operation").
		Join("operation_member ON operation_member.operation_id = operation.id").
		Where(squirrel.Eq{"operation_member.user_id": query.UserID}).
		OrderBy(orderClause(query.Order, prefixOrderColumns("operation", operationOrderColumns))...).
		Limit(uint64(amount)).
		Offset(uint64(offset)).
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListOperations, err)
		return nil, 0, err
	}
	defer rows.Close()

	operations, err := collectOperations(logger, rows)
	if err != nil {
		return nil, 0, err
	}

	return operations, total, nil
}

func (s *DataService) SearchOperations(
	ctx context.Context,
	logger logx.Logger,
	query repos.SearchOperationsQuery,
) ([]mds.Operation, error) {
	logger = logger.WithName("data-service").WithName("search-operations")

	pattern := likePattern(query.Query)
	builder := squirrel.Select(operationColumns...).
		From("operation").
		Where(squirrel.Or{
			squirrel.Like{"title": pattern},
			squirrel.Like{"description": pattern},
		}).
		OrderBy("id ASC")

	if query.Offset > 0 {
		builder = builder.Offset(uint64(query.Offset))
	}
	if query.Limit > 0 {
		builder = builder.Limit(uint64(query.Limit))
	}

	rows, err := builder.
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToSearchOperations, err)
		return nil, err
	}
	defer rows.Close()

	return collectOperations(logger, rows)
}

func (s *DataService) ListOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	query repos.FindOperationQuery,
) ([]string, error) {
	logger = logger.WithName("data-service").WithName("list-operation-members")

	rows, err := squirrel.Select("user_id").
		From("operation_member").
		Where(squirrel.Eq{"operation_id": query.OperationID}).
		OrderBy("position ASC").
		RunWith(s.conn.Conn).
		QueryContext(ctx)
	if err != nil {
		logger.Error(failedToListOperationMembers, err)
		return nil, err
	}
	defer rows.Close()

	userIDs := []string{}
	for rows.Next() {
		var userID string
		if err := rows.Scan(&userID); err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}
		userIDs = append(userIDs, userID)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return userIDs, nil
}

func (s *DataService) SetOperationMembers(
	ctx context.Context,
	logger logx.Logger,
	operationID string,
	userIDs []string,
) (err error) {
	logger = logger.WithName("data-service").WithName("set-operation-members")

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		logger.Error(failedToStartTransaction, err)
		return
	}

	defer func() {
		if err != nil {
			logger.Error(failedToSetOperationMembers, err)
		}
		err = sqlx.Commit(logger, tx, err)
	}()

	_, err = squirrel.Delete("operation_member").
		Where(squirrel.Eq{"operation_id": operationID}).
		RunWith(tx).
		ExecContext(ctx)
	if err != nil {
		return
	}

	for position, userID := range userIDs {
		_, err = squirrel.Insert("operation_member").
			Columns("operation_id", "user_id", "position").
			Values(operationID, userID, position).
			RunWith(tx).
			ExecContext(ctx)
		if err != nil {
			return
		}
	}

	return
}

func scanOperation(logger logx.Logger, row squirrel.RowScanner) (mds.Operation, error) {
	var (
		operation mds.Operation
		start     sql.NullTime
		end       sql.NullTime
	)

	err := row.Scan(&operation.ID, &operation.Title, &operation.Description, &start, &end, &operation.IsArchived)

	switch err {
	case nil:
		if start.Valid {
			operation.Start = start.Time
		}
		if end.Valid {
			operation.End = end.Time
		}
		return operation, nil
	case sql.ErrNoRows:
		logger.Debug(errOperationNotFound)
		return mds.Operation{}, mds.ErrOperationNotFound
	default:
		logger.Error(failedToFindOperation, err)
		return mds.Operation{}, err
	}
}

func collectOperations(logger logx.Logger, rows *sql.Rows) ([]mds.Operation, error) {
	operations := []mds.Operation{}
	for rows.Next() {
		var (
			operation mds.Operation
			start     sql.NullTime
			end       sql.NullTime
		)
		err := rows.Scan(&operation.ID, &operation.Title, &operation.Description, &start, &end, &operation.IsArchived)
		if err != nil {
			logger.Error(failedToScanRow, err)
			return nil, err
		}
		if start.Valid {
			operation.Start = start.Time
		}
		if end.Valid {
			operation.End = end.Time
		}
		operations = append(operations, operation)
	}

	if err := rows.Err(); err != nil {
		logger.Error(failedToIterateOverRows, err)
		return nil, err
	}

	return operations, nil
}

func prefixColumns(table string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = table + "." + column
	}
	return prefixed
}

func prefixOrderColumns(table string, columns map[string]string) map[string]string {
	prefixed := make(map[string]string, len(columns))
	for field, column := range columns {
		prefixed[field] = table + "." + column
	}
	return prefixed
}

func nullTime(t time.Time) interface{} {
	if t.IsZero() {
		return nil
	}
	return t
}
