package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/logger"
)

// ListOptions selects one page of a searchable listing.
type ListOptions struct {
	Search string
	Offset uint64
	Limit  uint64
}

func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// searchCondition matches search case-insensitively as a substring of any column.
// It returns nil for a blank search.
func searchCondition(search string, columns ...string) squirrel.Sqlizer {
	search = strings.TrimSpace(search)
	if search == "" || len(columns) == 0 {
		return nil
	}
	pattern := "%" + search + "%"
	or := squirrel.Or{}
	for _, col := range columns {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}

// paginate runs the count and page queries of a listing. base must not carry ordering,
// limit or offset; orderBy is applied to the page query only.
func paginate[T any](ctx context.Context, q db.Querier, base squirrel.SelectBuilder, columns []string, orderBy string, opts ListOptions, scan func(pgx.Row) (T, error)) ([]T, int64, error) {
	countSQL, countArgs, err := base.Columns("COUNT(*)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count rows: %w", err)
	}

	items := make([]T, 0)
	if total == 0 {
		return items, 0, nil
	}

	pageSQL, pageArgs, err := base.Columns(columns...).
		OrderBy(orderBy).
		Limit(opts.Limit).
		Offset(opts.Offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build page query: %w", err)
	}

	rows, err := q.Query(ctx, pageSQL, pageArgs...)
	if err != nil {
		logger.Error().Err(err).Str("sql", pageSQL).Msg("Error executing page query")
		return nil, 0, fmt.Errorf("failed to query page: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, total, nil
}

// existsWhere reports whether table holds a row with column = value, ignoring the row
// with id excludeID when it is positive.
func existsWhere(ctx context.Context, q db.Querier, table, column string, value interface{}, excludeID int64) (bool, error) {
	cond := squirrel.And{squirrel.Eq{column: value}}
	if excludeID > 0 {
		cond = append(cond, squirrel.NotEq{"id": excludeID})
	}

	sub, args, err := newBuilder().Select("1").From(table).Where(cond).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, "SELECT EXISTS("+sub+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s.%s: %w", table, column, err)
	}
	return exists, nil
}

// deleteByID hard deletes a row and reports whether it existed.
func deleteByID(ctx context.Context, q db.Querier, table string, id int64) (bool, error) {
	sql, args, err := newBuilder().Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build delete query: %w", err)
	}
	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return tag.RowsAffected() > 0, nil
}

// countRows returns the number of rows of table.
func countRows(ctx context.Context, q db.Querier, table string) (int64, error) {
	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM "+table).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return total, nil
}

// distinctValues returns the sorted distinct non-empty values of a column.
func distinctValues(ctx context.Context, q db.Querier, table, column string) ([]string, error) {
	sql, args, err := newBuilder().
		Select(column).
		Distinct().
		From(table).
		Where(squirrel.NotEq{column: ""}).
		OrderBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build distinct query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query distinct %s.%s: %w", table, column, err)
	}
	defer rows.Close()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("failed to scan value: %w", err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
