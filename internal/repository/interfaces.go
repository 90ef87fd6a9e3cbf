package repository

import (
	"context"
	"time"

	"github.com/edumarket/edumarket-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) error
	Delete(ctx context.Context, id string) error
}

type Balances interface {
	GetOrCreate(ctx context.Context, userID string) (models.Balance, error)
	Get(ctx context.Context, userID string) (models.Balance, error)
}

type Notes interface {
	Create(ctx context.Context, n models.Note) (models.Note, error)
	GetByID(ctx context.Context, id string) (models.Note, error)
	List(ctx context.Context, limit, offset int) ([]models.Note, error)
	ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error)
	Update(ctx context.Context, n models.Note) error
	Delete(ctx context.Context, id string) error
}

// SettleParams is everything the purchase settlement writes. Amounts are
// cents and already split; Events are outbox rows committed with the sale.
type SettleParams struct {
	NoteID     string
	BuyerID    string
	SellerID   string
	Price      int64
	Payout     int64
	Commission int64
	InvoiceID  string

	// Buyer snapshot fields.
	Title    string
	CoverURL string
	FileURL  string

	Events []models.OutboxEvent
}

// Purchases performs the multi-record purchase settlement as one atomic
// unit: the (note_id, user_id) unique key on purchased_notes is the
// idempotency guard, so a duplicate settle fails with ErrConflict and
// leaves every record untouched.
type Purchases interface {
	Settle(ctx context.Context, p SettleParams) (models.Sale, error)
	ListPurchased(ctx context.Context, userID string) ([]models.PurchasedNote, error)
	HasPurchased(ctx context.Context, noteID, userID string) (bool, error)
}

type Sales interface {
	GetByID(ctx context.Context, id string) (models.Sale, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]models.Sale, error)
}

// Withdrawals owns the status lifecycle. Transition and Complete are
// conditional on the current status at write time; a lost race surfaces as
// ErrInvalidTransition, never a double effect.
type Withdrawals interface {
	Create(ctx context.Context, w models.Withdrawal) (models.Withdrawal, error)
	GetByID(ctx context.Context, id string) (models.Withdrawal, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Withdrawal, error)
	List(ctx context.Context, limit, offset int) ([]models.Withdrawal, error)
	Transition(ctx context.Context, id string, from, to models.WithdrawalStatus) (models.Withdrawal, error)
	Complete(ctx context.Context, id, routingNumber string, routingDate time.Time) (models.Withdrawal, error)
}

type Reviews interface {
	Create(ctx context.Context, r models.NoteReview) (models.NoteReview, error)
	ListByNote(ctx context.Context, noteID string) ([]models.NoteReview, error)
}

type Ratings interface {
	Create(ctx context.Context, r models.CustomerRating) (models.CustomerRating, error)
	ListForUser(ctx context.Context, userID string) ([]models.CustomerRating, error)
}

type Courses interface {
	Create(ctx context.Context, c models.Course) (models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	List(ctx context.Context, limit, offset int) ([]models.Course, error)
	Update(ctx context.Context, c models.Course) error
	Delete(ctx context.Context, id string) error

	AddModule(ctx context.Context, m models.CourseModule) (models.CourseModule, error)
	GetModule(ctx context.Context, id string) (models.CourseModule, error)
	AddLesson(ctx context.Context, l models.Lesson) (models.Lesson, error)
	Content(ctx context.Context, courseID string) (models.CourseContent, error)
}

type Announcements interface {
	Create(ctx context.Context, a models.Announcement) (models.Announcement, error)
	List(ctx context.Context, limit, offset int) ([]models.Announcement, error)
}

type Notifications interface {
	Create(ctx context.Context, n models.Notification) (models.Notification, error)
	ListByUser(ctx context.Context, userID string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
}

type Outbox interface {
	Enqueue(ctx context.Context, e models.OutboxEvent) error
	FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error)
	MarkDispatched(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}
