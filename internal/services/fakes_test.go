package services

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/edumarket/edumarket-backend/internal/models"
	repo "github.com/edumarket/edumarket-backend/internal/repository"
	"github.com/google/uuid"
)

// fakeStore is an in-memory stand-in for the postgres repositories. It
// mirrors the storage contract exactly: unique keys return ErrConflict,
// conditional transitions return ErrInvalidTransition, and Settle/Complete
// are all-or-nothing under one mutex.
type fakeStore struct {
	mu          sync.Mutex
	users       map[string]models.User
	notes       map[string]models.Note
	purchased   map[string]models.PurchasedNote // note|user
	sales       map[string]models.Sale
	balances    map[string]int64
	withdrawals map[string]models.Withdrawal
	reviews     map[string]models.NoteReview // note|user
	ratings     map[string]models.CustomerRating
	events      []models.OutboxEvent
	audits      []models.AuditLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:       map[string]models.User{},
		notes:       map[string]models.Note{},
		purchased:   map[string]models.PurchasedNote{},
		sales:       map[string]models.Sale{},
		balances:    map[string]int64{},
		withdrawals: map[string]models.Withdrawal{},
		reviews:     map[string]models.NoteReview{},
		ratings:     map[string]models.CustomerRating{},
	}
}

func pairKey(a, b string) string { return a + "|" + b }

// --- repo.Notes ---

func (f *fakeStore) Create(ctx context.Context, n models.Note) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	n.CreatedAt = time.Now()
	f.notes[n.ID] = n
	return n, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.notes[id]
	if !ok {
		return models.Note{}, repo.ErrNotFound
	}
	return n, nil
}

func (f *fakeStore) List(ctx context.Context, limit, offset int) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Note
	for _, n := range f.notes {
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeStore) ListByOwner(ctx context.Context, ownerID string) ([]models.Note, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Note
	for _, n := range f.notes {
		if n.OwnerID == ownerID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeStore) Update(ctx context.Context, n models.Note) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	old, ok := f.notes[n.ID]
	if !ok {
		return repo.ErrNotFound
	}
	n.OwnerID = old.OwnerID
	n.Downloads = old.Downloads
	f.notes[n.ID] = n
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.notes, id)
	return nil
}

// --- repo.Purchases ---

func (f *fakeStore) Settle(ctx context.Context, p repo.SettleParams) (models.Sale, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := pairKey(p.NoteID, p.BuyerID)
	if _, dup := f.purchased[key]; dup {
		return models.Sale{}, repo.ErrConflict
	}

	sale := models.Sale{
		ID:         uuid.NewString(),
		NoteID:     p.NoteID,
		SellerID:   p.SellerID,
		BuyerID:    p.BuyerID,
		Amount:     p.Payout,
		Commission: p.Commission,
		InvoiceID:  p.InvoiceID,
		CreatedAt:  time.Now(),
	}
	f.sales[sale.ID] = sale
	f.purchased[key] = models.PurchasedNote{
		ID:       uuid.NewString(),
		NoteID:   p.NoteID,
		UserID:   p.BuyerID,
		SaleID:   sale.ID,
		Title:    p.Title,
		Price:    p.Price,
		CoverURL: p.CoverURL,
		FileURL:  p.FileURL,
	}
	n := f.notes[p.NoteID]
	n.Downloads++
	f.notes[p.NoteID] = n
	f.balances[p.SellerID] += p.Payout
	f.events = append(f.events, p.Events...)
	return sale, nil
}

func (f *fakeStore) ListPurchased(ctx context.Context, userID string) ([]models.PurchasedNote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PurchasedNote
	for _, p := range f.purchased {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) HasPurchased(ctx context.Context, noteID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.purchased[pairKey(noteID, userID)]
	return ok, nil
}

// --- repo.Sales ---

type fakeSales struct{ f *fakeStore }

func (s fakeSales) GetByID(ctx context.Context, id string) (models.Sale, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	sale, ok := s.f.sales[id]
	if !ok {
		return models.Sale{}, repo.ErrNotFound
	}
	return sale, nil
}

func (s fakeSales) ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]models.Sale, error) {
	s.f.mu.Lock()
	defer s.f.mu.Unlock()
	var out []models.Sale
	for _, sale := range s.f.sales {
		if sale.SellerID == sellerID {
			out = append(out, sale)
		}
	}
	return out, nil
}

// --- repo.Balances ---

type fakeBalances struct{ f *fakeStore }

func (b fakeBalances) GetOrCreate(ctx context.Context, userID string) (models.Balance, error) {
	b.f.mu.Lock()
	defer b.f.mu.Unlock()
	return models.Balance{UserID: userID, Amount: b.f.balances[userID]}, nil
}

func (b fakeBalances) Get(ctx context.Context, userID string) (models.Balance, error) {
	return b.GetOrCreate(ctx, userID)
}

// --- repo.Withdrawals ---

type fakeWithdrawals struct{ f *fakeStore }

func (w fakeWithdrawals) Create(ctx context.Context, wd models.Withdrawal) (models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	if wd.ID == "" {
		wd.ID = uuid.NewString()
	}
	wd.Status = models.WithdrawalPending
	wd.CreatedAt = time.Now()
	w.f.withdrawals[wd.ID] = wd
	return wd, nil
}

func (w fakeWithdrawals) GetByID(ctx context.Context, id string) (models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	wd, ok := w.f.withdrawals[id]
	if !ok {
		return models.Withdrawal{}, repo.ErrNotFound
	}
	return wd, nil
}

func (w fakeWithdrawals) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	var out []models.Withdrawal
	for _, wd := range w.f.withdrawals {
		if wd.UserID == userID {
			out = append(out, wd)
		}
	}
	return out, nil
}

func (w fakeWithdrawals) List(ctx context.Context, limit, offset int) ([]models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	var out []models.Withdrawal
	for _, wd := range w.f.withdrawals {
		out = append(out, wd)
	}
	return out, nil
}

func (w fakeWithdrawals) Transition(ctx context.Context, id string, from, to models.WithdrawalStatus) (models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	wd, ok := w.f.withdrawals[id]
	if !ok {
		return models.Withdrawal{}, repo.ErrNotFound
	}
	if wd.Status != from || !wd.Status.CanTransition(to) {
		return models.Withdrawal{}, repo.ErrInvalidTransition
	}
	wd.Status = to
	wd.UpdatedAt = time.Now()
	w.f.withdrawals[id] = wd
	return wd, nil
}

func (w fakeWithdrawals) Complete(ctx context.Context, id, routingNumber string, routingDate time.Time) (models.Withdrawal, error) {
	w.f.mu.Lock()
	defer w.f.mu.Unlock()
	wd, ok := w.f.withdrawals[id]
	if !ok {
		return models.Withdrawal{}, repo.ErrNotFound
	}
	if !wd.Status.CanTransition(models.WithdrawalCompleted) {
		return models.Withdrawal{}, repo.ErrInvalidTransition
	}
	if w.f.balances[wd.UserID] < wd.Amount {
		return models.Withdrawal{}, repo.ErrInsufficientFunds
	}
	w.f.balances[wd.UserID] -= wd.Amount
	wd.Status = models.WithdrawalCompleted
	wd.RoutingNumber = routingNumber
	wd.RoutingDate = &routingDate
	wd.UpdatedAt = time.Now()
	w.f.withdrawals[id] = wd
	return wd, nil
}

// --- repo.Reviews ---

type fakeReviews struct{ f *fakeStore }

func (r fakeReviews) Create(ctx context.Context, rv models.NoteReview) (models.NoteReview, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	key := pairKey(rv.NoteID, rv.UserID)
	if _, dup := r.f.reviews[key]; dup {
		return models.NoteReview{}, repo.ErrConflict
	}
	if rv.ID == "" {
		rv.ID = uuid.NewString()
	}
	rv.CreatedAt = time.Now()
	r.f.reviews[key] = rv
	return rv, nil
}

func (r fakeReviews) ListByNote(ctx context.Context, noteID string) ([]models.NoteReview, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.NoteReview
	for _, rv := range r.f.reviews {
		if rv.NoteID == noteID {
			out = append(out, rv)
		}
	}
	return out, nil
}

// --- repo.Ratings ---

type fakeRatings struct{ f *fakeStore }

func (r fakeRatings) Create(ctx context.Context, cr models.CustomerRating) (models.CustomerRating, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	key := pairKey(cr.UserID, cr.RaterID)
	if _, dup := r.f.ratings[key]; dup {
		return models.CustomerRating{}, repo.ErrConflict
	}
	if cr.ID == "" {
		cr.ID = uuid.NewString()
	}
	cr.CreatedAt = time.Now()
	r.f.ratings[key] = cr
	return cr, nil
}

func (r fakeRatings) ListForUser(ctx context.Context, userID string) ([]models.CustomerRating, error) {
	r.f.mu.Lock()
	defer r.f.mu.Unlock()
	var out []models.CustomerRating
	for _, cr := range r.f.ratings {
		if cr.UserID == userID {
			out = append(out, cr)
		}
	}
	return out, nil
}

// --- repo.Users ---

type fakeUsers struct{ f *fakeStore }

func (u fakeUsers) Create(ctx context.Context, usr models.User) (models.User, error) {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	for _, existing := range u.f.users {
		if existing.Email == usr.Email {
			return models.User{}, repo.ErrConflict
		}
	}
	if usr.ID == "" {
		usr.ID = uuid.NewString()
	}
	usr.CreatedAt = time.Now()
	u.f.users[usr.ID] = usr
	return usr, nil
}

func (u fakeUsers) GetByID(ctx context.Context, id string) (models.User, error) {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	usr, ok := u.f.users[id]
	if !ok {
		return models.User{}, repo.ErrNotFound
	}
	return usr, nil
}

func (u fakeUsers) GetByEmail(ctx context.Context, email string) (models.User, error) {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	for _, usr := range u.f.users {
		if usr.Email == email {
			return usr, nil
		}
	}
	return models.User{}, repo.ErrNotFound
}

func (u fakeUsers) List(ctx context.Context) ([]models.User, error) {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	var out []models.User
	for _, usr := range u.f.users {
		out = append(out, usr)
	}
	return out, nil
}

func (u fakeUsers) Update(ctx context.Context, usr models.User) error {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	u.f.users[usr.ID] = usr
	return nil
}

func (u fakeUsers) Delete(ctx context.Context, id string) error {
	u.f.mu.Lock()
	defer u.f.mu.Unlock()
	delete(u.f.users, id)
	return nil
}

// --- repo.Outbox ---

type fakeOutbox struct{ f *fakeStore }

func (o fakeOutbox) Enqueue(ctx context.Context, e models.OutboxEvent) error {
	o.f.mu.Lock()
	defer o.f.mu.Unlock()
	o.f.events = append(o.f.events, e)
	return nil
}

func (o fakeOutbox) FetchPending(ctx context.Context, limit int) ([]models.OutboxEvent, error) {
	o.f.mu.Lock()
	defer o.f.mu.Unlock()
	out := make([]models.OutboxEvent, len(o.f.events))
	copy(out, o.f.events)
	return out, nil
}

func (o fakeOutbox) MarkDispatched(ctx context.Context, id string) error { return nil }
func (o fakeOutbox) MarkFailed(ctx context.Context, id string) error     { return nil }

// failingOutbox simulates a dead notification sink.
type failingOutbox struct{ fakeOutbox }

func (o failingOutbox) Enqueue(ctx context.Context, e models.OutboxEvent) error {
	return errors.New("outbox unavailable")
}

// --- repo.AuditLogs ---

type fakeAudit struct{ f *fakeStore }

func (a fakeAudit) Create(ctx context.Context, l models.AuditLog) error {
	a.f.mu.Lock()
	defer a.f.mu.Unlock()
	a.f.audits = append(a.f.audits, l)
	return nil
}

// --- storage.Uploader ---

type fakeUploader struct{ lastName string }

func (u *fakeUploader) Upload(ctx context.Context, filename string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	u.lastName = filename
	return "/files/" + filename, nil
}
