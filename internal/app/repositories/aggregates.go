package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lppm/research-portal/internal/db"
)

// outputTable describes an author-linked output table for the shared aggregate and
// bulk operations.
type outputTable struct {
	name        string
	link        authorLink
	yearColumn  string // expression over the alias t
	groupColumn string // expression over the alias t
}

// GroupCount is one bucket of a grouped count.
type GroupCount struct {
	Name  string
	Total int64
}

// ProgramCount is the number of records attributed to one study program.
type ProgramCount struct {
	StudyProgramID int64
	Name           string
	Total          int64
}

// Truncate empties the table and its join table.
func (t outputTable) Truncate(ctx context.Context, q db.Querier) error {
	sql := fmt.Sprintf("TRUNCATE TABLE %s, %s RESTART IDENTITY", t.link.table, t.name)
	if _, err := q.Exec(ctx, sql); err != nil {
		return fmt.Errorf("failed to truncate %s: %w", t.name, err)
	}
	return nil
}

func (t outputTable) groupedQuery(studyProgramID int64) squirrel.SelectBuilder {
	query := newBuilder().
		Select(t.groupColumn, "COUNT(DISTINCT t.id)").
		From(t.name + " t")

	if studyProgramID > 0 {
		query = query.
			Join(fmt.Sprintf("%s j ON j.%s = t.id", t.link.table, t.link.entityKey)).
			Join("authors a ON a.id = j.author_id").
			Where(squirrel.Eq{"a.study_program_id": studyProgramID})
	}
	return query.GroupBy(t.groupColumn).OrderBy(t.groupColumn)
}

// Grouped counts distinct records per value of the group column. A positive
// studyProgramID restricts the count to records with an author in that program.
func (t outputTable) Grouped(ctx context.Context, q db.Querier, studyProgramID int64) ([]GroupCount, error) {
	sql, args, err := t.groupedQuery(studyProgramID).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grouped query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to group %s: %w", t.name, err)
	}
	defer rows.Close()

	groups := make([]GroupCount, 0)
	for rows.Next() {
		var name *string
		var g GroupCount
		if err := rows.Scan(&name, &g.Total); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		if name != nil {
			g.Name = *name
		}
		groups = append(groups, g)
	}
	return groups, rows.Err()
}

func (t outputTable) programChartQuery(year int) squirrel.SelectBuilder {
	targetJoin := fmt.Sprintf("%s t ON t.id = j.%s", t.name, t.link.entityKey)
	var joinArgs []interface{}
	if year > 0 {
		targetJoin += fmt.Sprintf(" AND %s = ?", t.yearColumn)
		joinArgs = append(joinArgs, year)
	}

	return newBuilder().
		Select("sp.id", "sp.name", "COUNT(DISTINCT t.id)").
		From("study_programs sp").
		LeftJoin("authors a ON a.study_program_id = sp.id").
		LeftJoin(fmt.Sprintf("%s j ON j.author_id = a.id", t.link.table)).
		LeftJoin(targetJoin, joinArgs...).
		GroupBy("sp.id", "sp.name").
		OrderBy("sp.name")
}

// CountByStudyProgram counts distinct records per study program. Every program is
// returned, with 0 when it has none. A positive year filters records by their year
// column inside the join, so empty programs survive the filter.
func (t outputTable) CountByStudyProgram(ctx context.Context, q db.Querier, year int) ([]ProgramCount, error) {
	sql, args, err := t.programChartQuery(year).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build chart query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count %s by study program: %w", t.name, err)
	}
	defer rows.Close()

	counts := make([]ProgramCount, 0)
	for rows.Next() {
		var c ProgramCount
		if err := rows.Scan(&c.StudyProgramID, &c.Name, &c.Total); err != nil {
			return nil, fmt.Errorf("failed to scan program count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
