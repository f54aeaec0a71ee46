package services

import (
	"context"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/db"
)

// outputWrite persists the record with the computed creators and returns its id.
type outputWrite func(ctx context.Context, creators string) (int64, error)

// outputSaver runs the create and update flow shared by author-linked records: title
// uniqueness, author resolution, the creators column and the join rows, all in one
// transaction.
type outputSaver struct {
	tx         db.Transactor
	store      OutputStore
	authors    AuthorLookup
	constraint string
}

func (s outputSaver) save(ctx context.Context, excludeID int64, title string, authorIDs []int64, write outputWrite) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		exists, err := s.store.TitleExists(ctx, title, excludeID)
		if err := ensureUnique(exists, err, "title"); err != nil {
			return err
		}

		authors, err := resolveAuthors(ctx, s.authors, authorIDs)
		if err != nil {
			return err
		}

		id, err := write(ctx, models.CreatorsOf(authors))
		if err != nil {
			return uniqueViolation(err, s.constraint, "title")
		}
		return s.store.SyncAuthors(ctx, id, summaryIDs(authors))
	})
}
