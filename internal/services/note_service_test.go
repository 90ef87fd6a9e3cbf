package services

import (
	"context"
	"strings"
	"testing"

	"github.com/edumarket/edumarket-backend/internal/models"
	"github.com/edumarket/edumarket-backend/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoteFixture(t *testing.T) (*NoteService, *fakeStore, *fakeUploader) {
	t.Helper()
	f := newFakeStore()
	up := &fakeUploader{}
	return NewNoteService(f, f, fakeReviews{f}, up), f, up
}

func TestNoteCreateValidates(t *testing.T) {
	svc, _, _ := newNoteFixture(t)

	_, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "  ", Price: 100})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: -1})
	assert.ErrorIs(t, err, ErrValidation)

	n, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: 500})
	require.NoError(t, err)
	assert.NotEmpty(t, n.ID)
}

func TestNoteUpdateOwnerOnly(t *testing.T) {
	svc, _, _ := newNoteFixture(t)

	n, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: 500})
	require.NoError(t, err)

	n.Title = "Calc I, revised"
	_, err = svc.Update(context.Background(), "u2", n)
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := svc.Update(context.Background(), "u1", n)
	require.NoError(t, err)
	assert.Equal(t, "Calc I, revised", got.Title)
	assert.Equal(t, "u1", got.OwnerID)
}

func TestNoteDeleteOwnerOnly(t *testing.T) {
	svc, _, _ := newNoteFixture(t)

	n, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: 500})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(context.Background(), "u2", n.ID), ErrUnauthorized)
	require.NoError(t, svc.Delete(context.Background(), "u1", n.ID))

	_, err = svc.Get(context.Background(), n.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNoteAttachFile(t *testing.T) {
	svc, _, up := newNoteFixture(t)

	n, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: 500})
	require.NoError(t, err)

	_, err = svc.AttachFile(context.Background(), "u2", n.ID, "notes.pdf", strings.NewReader("pdf"))
	assert.ErrorIs(t, err, ErrUnauthorized)

	got, err := svc.AttachFile(context.Background(), "u1", n.ID, "notes.pdf", strings.NewReader("pdf"))
	require.NoError(t, err)
	assert.Equal(t, "/files/notes.pdf", got.FileURL)
	assert.Equal(t, "notes.pdf", up.lastName)
}

func TestReviewBuyersOnly(t *testing.T) {
	svc, f, _ := newNoteFixture(t)

	n, err := svc.Create(context.Background(), models.Note{OwnerID: "u1", Title: "Calc I", Price: 10000})
	require.NoError(t, err)

	_, err = svc.AddReview(context.Background(), models.NoteReview{NoteID: n.ID, UserID: "u2", Rating: 5})
	assert.ErrorIs(t, err, ErrInvalidState)

	// u2 buys the note, then the review is accepted.
	purchaseSvc := NewPurchaseService(f, f, fakeSales{f}, fakeAudit{f}, money.NewPricing(0.10, 0.03, 200))
	_, err = purchaseSvc.Purchase(context.Background(), n.ID, "u2", "inv-1", "paid")
	require.NoError(t, err)

	rv, err := svc.AddReview(context.Background(), models.NoteReview{NoteID: n.ID, UserID: "u2", Rating: 5, Comment: "clear"})
	require.NoError(t, err)
	assert.NotEmpty(t, rv.ID)

	// Only one review per buyer.
	_, err = svc.AddReview(context.Background(), models.NoteReview{NoteID: n.ID, UserID: "u2", Rating: 3})
	assert.ErrorIs(t, err, ErrInvalidState)

	reviews, err := svc.ListReviews(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}

func TestReviewRatingBounds(t *testing.T) {
	svc, _, _ := newNoteFixture(t)

	for _, r := range []int{0, 6, -1} {
		_, err := svc.AddReview(context.Background(), models.NoteReview{NoteID: "n1", UserID: "u2", Rating: r})
		assert.ErrorIs(t, err, ErrValidation)
	}
}
