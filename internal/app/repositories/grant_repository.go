package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
)

var grantColumns = []string{
	"id", "title", "scheme_short_name", "scheme_name", "proposal_year", "funds_approved",
	"funding_source", "creators", "created_at", "updated_at",
}

// GrantRepository handles the research and services tables, which share one shape.
type GrantRepository struct {
	outputRepository
}

// NewResearchRepository creates a GrantRepository over the research table
func NewResearchRepository(database *db.PostgresDB) *GrantRepository {
	return &GrantRepository{newOutputRepository(database, researchTable, "Research not found")}
}

// NewServiceRepository creates a GrantRepository over the services table
func NewServiceRepository(database *db.PostgresDB) *GrantRepository {
	return &GrantRepository{newOutputRepository(database, servicesTable, "Service not found")}
}

func scanGrant(row pgx.Row) (models.Grant, error) {
	var g models.Grant
	err := row.Scan(&g.ID, &g.Title, &g.SchemeShortName, &g.SchemeName, &g.ProposalYear,
		&g.FundsApproved, &g.FundingSource, &g.Creators, &g.CreatedAt, &g.UpdatedAt)
	return g, err
}

// Create inserts a grant
func (r *GrantRepository) Create(ctx context.Context, g *models.Grant) error {
	now := time.Now()
	sql, args, err := r.sb.Insert(r.table.name).
		Columns("title", "scheme_short_name", "scheme_name", "proposal_year", "funds_approved",
			"funding_source", "creators", "created_at", "updated_at").
		Values(g.Title, g.SchemeShortName, g.SchemeName, g.ProposalYear, g.FundsApproved,
			g.FundingSource, g.Creators, now, now).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create %s query: %w", r.table.name, err)
	}
	if err := r.db.Conn(ctx).QueryRow(ctx, sql, args...).Scan(&g.ID, &g.CreatedAt, &g.UpdatedAt); err != nil {
		return fmt.Errorf("error creating %s: %w", r.table.name, err)
	}
	return nil
}

// Update overwrites a grant's attributes
func (r *GrantRepository) Update(ctx context.Context, g *models.Grant) error {
	sql, args, err := r.sb.Update(r.table.name).
		SetMap(map[string]interface{}{
			"title":             g.Title,
			"scheme_short_name": g.SchemeShortName,
			"scheme_name":       g.SchemeName,
			"proposal_year":     g.ProposalYear,
			"funds_approved":    g.FundsApproved,
			"funding_source":    g.FundingSource,
			"creators":          g.Creators,
			"updated_at":        time.Now(),
		}).
		Where(squirrel.Eq{"id": g.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update %s query: %w", r.table.name, err)
	}
	tag, err := r.db.Conn(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating %s: %w", r.table.name, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewResourceNotFoundError(r.notFound)
	}
	return nil
}

// GetByID retrieves a grant with its authors
func (r *GrantRepository) GetByID(ctx context.Context, id int64) (*models.Grant, error) {
	sql, args, err := r.sb.Select(grantColumns...).From(r.table.name).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get %s query: %w", r.table.name, err)
	}
	g, err := scanGrant(r.db.Conn(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewResourceNotFoundError(r.notFound)
		}
		return nil, fmt.Errorf("error retrieving %s: %w", r.table.name, err)
	}
	if g.Authors, err = r.loadAuthorsOf(ctx, g.ID); err != nil {
		return nil, err
	}
	return &g, nil
}

// List returns a page of grants matching the search on title, creators and scheme.
func (r *GrantRepository) List(ctx context.Context, opts ListOptions) ([]models.Grant, int64, error) {
	base := r.sb.Select().From(r.table.name)
	if cond := searchCondition(opts.Search, "title", "creators", "scheme_short_name"); cond != nil {
		base = base.Where(cond)
	}
	grants, total, err := paginate(ctx, r.db.Conn(ctx), base, grantColumns, "proposal_year DESC, id DESC", opts, scanGrant)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, len(grants))
	for i := range grants {
		ids[i] = grants[i].ID
	}
	authors, err := r.loadAuthors(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range grants {
		grants[i].Authors = authorsFor(authors, grants[i].ID)
	}
	return grants, total, nil
}
