package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/app/repositories"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/dberrors"
	"github.com/lppm/research-portal/internal/pkg/helpers"
)

// listOptions converts request list parameters into repository options.
func listOptions(p dto.ListParams) repositories.ListOptions {
	offset, limit := helpers.CalculateOffsetLimit(p.Page, p.PerPage)
	return repositories.ListOptions{Search: strings.TrimSpace(p.Search), Offset: offset, Limit: limit}
}

func takenMessage(field string) string {
	return fmt.Sprintf("The %s has already been taken.", strings.ReplaceAll(field, "_", " "))
}

// ensureUnique returns a validation error on field when exists reports a clash.
func ensureUnique(exists bool, err error, field string) error {
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewValidationError(field, takenMessage(field))
	}
	return nil
}

// uniqueViolation maps a unique violation on constraint to a validation error on field.
// It covers the window between the existence check and the write.
func uniqueViolation(err error, constraint, field string) error {
	if err != nil && dberrors.IsDuplicateConstraintError(err, constraint) {
		return apperrors.NewValidationError(field, takenMessage(field))
	}
	return err
}

// resolveAuthors loads the requested authors in request order. Unknown ids are
// reported per index, like "author_ids.2".
func resolveAuthors(ctx context.Context, lookup AuthorLookup, ids []int64) ([]models.AuthorSummary, error) {
	authors, err := lookup.SummariesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("error resolving authors: %w", err)
	}
	if len(authors) == len(uniqueIDs(ids)) {
		return authors, nil
	}

	found := make(map[int64]bool, len(authors))
	for _, a := range authors {
		found[a.ID] = true
	}
	verr := &apperrors.ValidationError{}
	for i, id := range ids {
		if !found[id] {
			field := fmt.Sprintf("author_ids.%d", i)
			verr.Add(field, fmt.Sprintf("The selected %s is invalid.", strings.ReplaceAll(field, "_", " ")))
		}
	}
	return nil, verr
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func summaryIDs(authors []models.AuthorSummary) []int64 {
	ids := make([]int64, len(authors))
	for i, a := range authors {
		ids[i] = a.ID
	}
	return ids
}
