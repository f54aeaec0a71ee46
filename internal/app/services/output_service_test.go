package services

import (
	"context"
	"errors"
	"testing"

	"github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/app/models/dto"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seededAuthors() *fakeAuthorStore {
	return newFakeAuthorStore(
		models.Author{Name: "Budi Santoso", NIDN: "001"},
		models.Author{Name: "Ani Wijaya", NIDN: "002"},
	)
}

func TestCreateBook_ComputesCreatorsAndLinks(t *testing.T) {
	ctx := context.Background()
	books := newFakeBookStore()
	tx := &fakeTx{stores: []snapshotter{books}}
	svc := NewBookService(tx, books, seededAuthors())

	book, err := svc.CreateBook(ctx, &dto.BookRequest{
		Title: " Buku Ajar ", ISBN: "978", Kategori: "Monograf", Penerbit: "Airlangga", Year: 2023,
		AuthorIDs: []int64{2, 1},
	})
	require.NoError(t, err)
	assert.Equal(t, "Buku Ajar", book.Title)
	assert.Equal(t, "Ani Wijaya, Budi Santoso", book.Creators)
	assert.Equal(t, []int64{2, 1}, books.links[book.ID])
	assert.Equal(t, 1, tx.calls)
}

func TestCreateBook_WithoutAuthors(t *testing.T) {
	books := newFakeBookStore()
	svc := NewBookService(&fakeTx{}, books, seededAuthors())

	book, err := svc.CreateBook(context.Background(), &dto.BookRequest{Title: "Solo", Year: 2020})
	require.NoError(t, err)
	assert.Empty(t, book.Creators)
	assert.Empty(t, books.links[book.ID])
}

func TestCreateBook_UnknownAuthorIsFieldError(t *testing.T) {
	books := newFakeBookStore()
	tx := &fakeTx{stores: []snapshotter{books}}
	svc := NewBookService(tx, books, seededAuthors())

	_, err := svc.CreateBook(context.Background(), &dto.BookRequest{Title: "Buku", AuthorIDs: []int64{1, 99}})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "author_ids.1")
	assert.Empty(t, books.records)
}

func TestCreateBook_DuplicateTitle(t *testing.T) {
	ctx := context.Background()
	books := newFakeBookStore()
	svc := NewBookService(&fakeTx{stores: []snapshotter{books}}, books, seededAuthors())

	_, err := svc.CreateBook(ctx, &dto.BookRequest{Title: "Sama"})
	require.NoError(t, err)
	_, err = svc.CreateBook(ctx, &dto.BookRequest{Title: "Sama"})

	var verr *apperrors.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"The title has already been taken."}, verr.Fields["title"])
	assert.Len(t, books.records, 1)
}

func TestUpdateBook(t *testing.T) {
	ctx := context.Background()
	books := newFakeBookStore()
	svc := NewBookService(&fakeTx{stores: []snapshotter{books}}, books, seededAuthors())

	created, err := svc.CreateBook(ctx, &dto.BookRequest{Title: "Lama", AuthorIDs: []int64{1}})
	require.NoError(t, err)

	updated, err := svc.UpdateBook(ctx, created.ID, &dto.BookRequest{Title: "Lama", AuthorIDs: []int64{2}})
	require.NoError(t, err, "keeping its own title is not a conflict")
	assert.Equal(t, "Ani Wijaya", updated.Creators)
	assert.Equal(t, []int64{2}, books.links[created.ID])

	_, err = svc.UpdateBook(ctx, 404, &dto.BookRequest{Title: "X"})
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListBooks_Paginates(t *testing.T) {
	ctx := context.Background()
	books := newFakeBookStore()
	svc := NewBookService(&fakeTx{}, books, seededAuthors())
	for _, title := range []string{"a1", "a2", "a3", "b1"} {
		_, err := svc.CreateBook(ctx, &dto.BookRequest{Title: title})
		require.NoError(t, err)
	}

	page, total, err := svc.ListBooks(ctx, dto.ListParams{Search: "a", Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "a3", page[0].Title)
}

func TestPublicationService_Venues(t *testing.T) {
	ctx := context.Background()
	pubs := newFakePublicationStore()
	svc := NewPublicationService(&fakeTx{}, pubs, seededAuthors())

	scopus, err := svc.CreatePublication(ctx, &dto.PublicationRequest{
		Category: "scopus", Title: "Paper", Year: 2022, Quartile: "Q1", PublicationName: "Heliyon",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ScopusVenue{Quartile: "Q1", PublicationName: "Heliyon"}, scopus.Venue)

	updated, err := svc.UpdatePublication(ctx, scopus.ID, &dto.PublicationRequest{
		Category: "google", Title: "Paper", Year: 2022, Journal: "Jurnal", Accreditation: "Sinta 2",
	})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGoogle, updated.Category())

	_, _, err = svc.ListPublications(ctx, dto.ListParams{Category: "google"})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryGoogle, pubs.lastList.Category)

	_, _, err = svc.ListPublications(ctx, dto.ListParams{Category: "wos"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGrantService_CreateAndDelete(t *testing.T) {
	ctx := context.Background()
	grants := newFakeGrantStore()
	svc := NewResearchService(&fakeTx{}, grants, seededAuthors())

	g, err := svc.CreateGrant(ctx, &dto.GrantRequest{Title: "Riset", SchemeShortName: "PDP", ProposalYear: 2024, FundsApproved: 1e7, AuthorIDs: []int64{1}})
	require.NoError(t, err)
	assert.Equal(t, "Budi Santoso", g.Creators)

	require.NoError(t, svc.DeleteGrant(ctx, g.ID))
	assert.Empty(t, grants.links)
	assert.ErrorIs(t, svc.DeleteGrant(ctx, g.ID), apperrors.ErrResourceNotFound)
}
