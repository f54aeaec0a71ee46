package services

import (
	"errors"
	"strings"

	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/dberrors"
	"github.com/lppm/research-portal/internal/pkg/slug"
)

const slugTakenMessage = "The slug has already been taken."

// makeSlug slugifies the explicit slug when given, the fallback text otherwise.
func makeSlug(explicit, fallback string) (string, error) {
	source := strings.TrimSpace(explicit)
	if source == "" {
		source = fallback
	}
	s := slug.Make(source)
	if s == "" {
		return "", apperrors.NewValidationError("slug", "The slug field must contain letters or digits.")
	}
	return s, nil
}

func ensureSlugFree(exists bool, err error) error {
	if err != nil {
		return err
	}
	if exists {
		return apperrors.NewConflictError(slugTakenMessage)
	}
	return nil
}

// slugViolation turns a slug unique violation from a racing insert into the same
// conflict the pre-check reports.
func slugViolation(err error, constraint string) error {
	if err != nil && dberrors.IsDuplicateConstraintError(err, constraint) {
		return apperrors.NewConflictError(slugTakenMessage)
	}
	return err
}

// checkReference reports a validation error on field when lookup fails with not found.
func checkReference(err error, verr *apperrors.ValidationError, field string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, apperrors.ErrResourceNotFound) {
		verr.Add(field, "The selected "+strings.ReplaceAll(field, "_", " ")+" is invalid.")
		return nil
	}
	return err
}
