package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
)

// authorLink is a many-to-many join table between authors and one output table.
type authorLink struct {
	table     string // author_book
	entityKey string // book_id
}

// Sync replaces the author set of entityID with authorIDs.
func (l authorLink) Sync(ctx context.Context, q db.Querier, entityID int64, authorIDs []int64) error {
	sb := newBuilder()

	sql, args, err := sb.Delete(l.table).Where(squirrel.Eq{l.entityKey: entityID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build detach query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to detach authors from %s: %w", l.table, err)
	}

	if len(authorIDs) == 0 {
		return nil
	}

	insert := sb.Insert(l.table).Columns(l.entityKey, "author_id")
	seen := make(map[int64]bool, len(authorIDs))
	for _, authorID := range authorIDs {
		if seen[authorID] {
			continue
		}
		seen[authorID] = true
		insert = insert.Values(entityID, authorID)
	}

	sql, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build attach query: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("failed to attach authors to %s: %w", l.table, err)
	}
	return nil
}

// Load returns the authors of each entity, ordered by name.
func (l authorLink) Load(ctx context.Context, q db.Querier, entityIDs []int64) (map[int64][]models.AuthorSummary, error) {
	result := make(map[int64][]models.AuthorSummary, len(entityIDs))
	if len(entityIDs) == 0 {
		return result, nil
	}

	sql, args, err := newBuilder().
		Select("j."+l.entityKey, "a.id", "a.name", "a.nidn", "a.sinta_id").
		From("authors a").
		Join(l.table + " j ON j.author_id = a.id").
		Where(squirrel.Eq{"j." + l.entityKey: entityIDs}).
		OrderBy("a.name", "a.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build author load query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load authors from %s: %w", l.table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var entityID int64
		var a models.AuthorSummary
		if err := rows.Scan(&entityID, &a.ID, &a.Name, &a.NIDN, &a.SintaID); err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		result[entityID] = append(result[entityID], a)
	}
	return result, rows.Err()
}

// LoadOne returns the authors of a single entity, never nil.
func (l authorLink) LoadOne(ctx context.Context, q db.Querier, entityID int64) ([]models.AuthorSummary, error) {
	byID, err := l.Load(ctx, q, []int64{entityID})
	if err != nil {
		return nil, err
	}
	if authors := byID[entityID]; authors != nil {
		return authors, nil
	}
	return []models.AuthorSummary{}, nil
}

// authorsFor returns the loaded authors of id, never nil.
func authorsFor(byID map[int64][]models.AuthorSummary, id int64) []models.AuthorSummary {
	if authors := byID[id]; authors != nil {
		return authors
	}
	return []models.AuthorSummary{}
}
