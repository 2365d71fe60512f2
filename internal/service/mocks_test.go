package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/repository"
)

// fakeData is the in-memory state behind fakeStore. Methods on the repository
// adapters below are not safe for concurrent use on their own; locking is
// decided per adapter.
type fakeData struct {
	nextID   int64
	accounts map[int64]*domain.Account
	txs      []domain.Transaction
	auctions map[int64]*domain.Auction
	bids     map[int64][]domain.Bid
	listings map[int64]*domain.Listing
	bookings map[int64]*domain.Booking
	notes    []domain.Notification
}

func newFakeData() *fakeData {
	return &fakeData{
		accounts: make(map[int64]*domain.Account),
		auctions: make(map[int64]*domain.Auction),
		bids:     make(map[int64][]domain.Bid),
		listings: make(map[int64]*domain.Listing),
		bookings: make(map[int64]*domain.Booking),
	}
}

func (d *fakeData) id() int64 {
	d.nextID++
	return d.nextID
}

func (d *fakeData) clone() *fakeData {
	c := newFakeData()
	c.nextID = d.nextID
	for id, a := range d.accounts {
		copied := *a
		c.accounts[id] = &copied
	}
	for id, a := range d.auctions {
		copied := *a
		c.auctions[id] = &copied
	}
	for id, bs := range d.bids {
		c.bids[id] = append([]domain.Bid(nil), bs...)
	}
	for id, l := range d.listings {
		copied := *l
		c.listings[id] = &copied
	}
	for id, b := range d.bookings {
		copied := *b
		c.bookings[id] = &copied
	}
	c.txs = append([]domain.Transaction(nil), d.txs...)
	c.notes = append([]domain.Notification(nil), d.notes...)
	return c
}

// fakeStore implements repository.Store over fakeData. One mutex plays the
// role of the database row locks: every WithTx body runs exclusively and the
// whole state rolls back when it fails. Calls outside WithTx take the same
// lock per call.
type fakeStore struct {
	mu sync.Mutex
	d  *fakeData
}

func newFakeStore() *fakeStore {
	return &fakeStore{d: newFakeData()}
}

func (s *fakeStore) Accounts() repository.AccountRepository { return &fakeAccounts{adapter{s: s, locked: true}} }
func (s *fakeStore) Ledger() repository.LedgerRepository    { return &fakeLedger{adapter{s: s, locked: true}} }
func (s *fakeStore) Auctions() repository.AuctionRepository { return &fakeAuctions{adapter{s: s, locked: true}} }
func (s *fakeStore) Listings() repository.ListingRepository { return &fakeListings{adapter{s: s, locked: true}} }
func (s *fakeStore) Bookings() repository.BookingRepository { return &fakeBookings{adapter{s: s, locked: true}} }
func (s *fakeStore) Notifications() repository.NotificationRepository {
	return &fakeNotes{adapter{s: s, locked: true}}
}

func (s *fakeStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := s.d.clone()
	if err := fn(txStore{s: s}); err != nil {
		s.d = snapshot
		return err
	}
	return nil
}

// txStore is the transaction-scoped view handed to WithTx bodies. The
// enclosing fakeStore already holds the lock, so its adapters do not.
type txStore struct {
	s *fakeStore
}

func (t txStore) Accounts() repository.AccountRepository           { return &fakeAccounts{adapter{s: t.s}} }
func (t txStore) Ledger() repository.LedgerRepository              { return &fakeLedger{adapter{s: t.s}} }
func (t txStore) Auctions() repository.AuctionRepository           { return &fakeAuctions{adapter{s: t.s}} }
func (t txStore) Listings() repository.ListingRepository           { return &fakeListings{adapter{s: t.s}} }
func (t txStore) Bookings() repository.BookingRepository           { return &fakeBookings{adapter{s: t.s}} }
func (t txStore) Notifications() repository.NotificationRepository { return &fakeNotes{adapter{s: t.s}} }

func (t txStore) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	return fn(t)
}

type adapter struct {
	s      *fakeStore
	locked bool
}

func (a adapter) acquire() func() {
	if !a.locked {
		return func() {}
	}
	a.s.mu.Lock()
	return a.s.mu.Unlock
}

type fakeAccounts struct{ adapter }

func (r *fakeAccounts) Create(ctx context.Context, account *domain.Account) error {
	defer r.acquire()()
	account.ID = r.s.d.id()
	account.Active = true
	account.CreatedOn = time.Now()
	copied := *account
	r.s.d.accounts[account.ID] = &copied
	return nil
}

func (r *fakeAccounts) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	defer r.acquire()()
	a, ok := r.s.d.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAccounts) Deactivate(ctx context.Context, id int64) error {
	defer r.acquire()()
	a, ok := r.s.d.accounts[id]
	if !ok {
		return domain.ErrNotFound
	}
	a.Active = false
	return nil
}

type fakeLedger struct{ adapter }

func (r *fakeLedger) ApplyMovement(ctx context.Context, accountID, amountPaise int64, category domain.TransactionCategory, refType domain.ReferenceType, refID string) (*domain.Transaction, error) {
	defer r.acquire()()
	a, ok := r.s.d.accounts[accountID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if !a.Active {
		return nil, domain.ErrAccountInactive
	}
	if a.BalancePaise+amountPaise < 0 {
		return nil, fmt.Errorf("%w: account %d", domain.ErrInsufficientFunds, accountID)
	}
	a.BalancePaise += amountPaise
	tx := domain.Transaction{
		ID:            r.s.d.id(),
		AccountID:     accountID,
		AmountPaise:   amountPaise,
		Category:      category,
		ReferenceType: refType,
		ReferenceID:   refID,
		CreatedOn:     time.Now(),
	}
	r.s.d.txs = append(r.s.d.txs, tx)
	return &tx, nil
}

func (r *fakeLedger) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	defer r.acquire()()
	a, ok := r.s.d.accounts[accountID]
	if !ok {
		return 0, domain.ErrNotFound
	}
	return a.BalancePaise, nil
}

func (r *fakeLedger) ListTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error) {
	defer r.acquire()()
	var out []domain.Transaction
	for _, tx := range r.s.d.txs {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out, int32(len(out)), nil
}

type fakeAuctions struct{ adapter }

func (r *fakeAuctions) Create(ctx context.Context, auction *domain.Auction) error {
	defer r.acquire()()
	auction.ID = r.s.d.id()
	auction.Status = domain.AuctionStatusOpen
	auction.CurrentHighestBidPaise = auction.BasePricePaise
	auction.CreatedOn = time.Now()
	copied := *auction
	r.s.d.auctions[auction.ID] = &copied
	return nil
}

func (r *fakeAuctions) GetByID(ctx context.Context, id int64) (*domain.Auction, error) {
	defer r.acquire()()
	a, ok := r.s.d.auctions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *fakeAuctions) GetForUpdate(ctx context.Context, id int64) (*domain.Auction, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeAuctions) AppendBid(ctx context.Context, bid *domain.Bid) error {
	defer r.acquire()()
	bid.ID = r.s.d.id()
	bid.PlacedAt = time.Now()
	r.s.d.bids[bid.AuctionID] = append(r.s.d.bids[bid.AuctionID], *bid)
	return nil
}

func (r *fakeAuctions) UpdateLeader(ctx context.Context, auctionID, leaderAccountID, amountPaise int64) error {
	defer r.acquire()()
	a, ok := r.s.d.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	leader := leaderAccountID
	a.LeaderAccountID = &leader
	a.CurrentHighestBidPaise = amountPaise
	return nil
}

func (r *fakeAuctions) Close(ctx context.Context, auctionID int64, winnerAccountID *int64) error {
	defer r.acquire()()
	a, ok := r.s.d.auctions[auctionID]
	if !ok {
		return domain.ErrNotFound
	}
	if a.Status != domain.AuctionStatusOpen {
		return domain.ErrAuctionClosed
	}
	a.Status = domain.AuctionStatusClosed
	a.WinnerAccountID = winnerAccountID
	return nil
}

func (r *fakeAuctions) ListBids(ctx context.Context, auctionID int64) ([]domain.Bid, error) {
	defer r.acquire()()
	return append([]domain.Bid(nil), r.s.d.bids[auctionID]...), nil
}

func (r *fakeAuctions) ListByStatus(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error) {
	defer r.acquire()()
	var out []domain.Auction
	for _, a := range r.s.d.auctions {
		if a.Status == status {
			out = append(out, *a)
		}
	}
	return out, int32(len(out)), nil
}

func (r *fakeAuctions) ListExpiredOpen(ctx context.Context, now time.Time) ([]domain.Auction, error) {
	defer r.acquire()()
	var out []domain.Auction
	for _, a := range r.s.d.auctions {
		if a.Status == domain.AuctionStatusOpen && a.Deadline.Before(now) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeListings struct{ adapter }

func (r *fakeListings) Create(ctx context.Context, listing *domain.Listing) error {
	defer r.acquire()()
	listing.ID = r.s.d.id()
	listing.Status = domain.ListingStatusAvailable
	listing.CreatedOn = time.Now()
	copied := *listing
	r.s.d.listings[listing.ID] = &copied
	return nil
}

func (r *fakeListings) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	defer r.acquire()()
	l, ok := r.s.d.listings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *fakeListings) UpdateStatus(ctx context.Context, id int64, from, to domain.ListingStatus) error {
	defer r.acquire()()
	l, ok := r.s.d.listings[id]
	if !ok {
		return domain.ErrNotFound
	}
	if l.Status != from {
		return fmt.Errorf("%w: listing is %s, expected %s", domain.ErrInvalidState, l.Status, from)
	}
	l.Status = to
	return nil
}

func (r *fakeListings) ListBySeller(ctx context.Context, sellerAccountID int64) ([]domain.Listing, error) {
	defer r.acquire()()
	var out []domain.Listing
	for _, l := range r.s.d.listings {
		if l.SellerAccountID == sellerAccountID {
			out = append(out, *l)
		}
	}
	return out, nil
}

type fakeBookings struct{ adapter }

func (r *fakeBookings) Create(ctx context.Context, booking *domain.Booking) error {
	defer r.acquire()()
	booking.ID = r.s.d.id()
	booking.Status = domain.BookingStatusActive
	booking.CreatedOn = time.Now()
	copied := *booking
	r.s.d.bookings[booking.ID] = &copied
	return nil
}

func (r *fakeBookings) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	defer r.acquire()()
	b, ok := r.s.d.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookings) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	defer r.acquire()()
	b, ok := r.s.d.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (r *fakeBookings) ListByRenter(ctx context.Context, renterAccountID int64) ([]domain.Booking, error) {
	defer r.acquire()()
	var out []domain.Booking
	for _, b := range r.s.d.bookings {
		if b.RenterAccountID == renterAccountID {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeNotes struct{ adapter }

func (r *fakeNotes) Create(ctx context.Context, note *domain.Notification) error {
	defer r.acquire()()
	note.ID = r.s.d.id()
	note.CreatedOn = time.Now()
	r.s.d.notes = append(r.s.d.notes, *note)
	return nil
}

func (r *fakeNotes) List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	defer r.acquire()()
	var out []domain.Notification
	for _, n := range r.s.d.notes {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out, int32(len(out)), nil
}

func (r *fakeNotes) MarkAsRead(ctx context.Context, id, accountID int64) error {
	defer r.acquire()()
	for i := range r.s.d.notes {
		if r.s.d.notes[i].ID == id && r.s.d.notes[i].AccountID == accountID {
			r.s.d.notes[i].IsRead = true
			return nil
		}
	}
	return domain.ErrNotFound
}

// Seeding and inspection helpers used by tests around service calls.

func (s *fakeStore) seedAccount(balance int64, accountType domain.AccountType) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.d.id()
	s.d.accounts[id] = &domain.Account{
		ID:           id,
		OwnerName:    "account",
		Type:         accountType,
		BalancePaise: balance,
		Active:       true,
		CreatedOn:    time.Now(),
	}
	return id
}

func (s *fakeStore) seedListing(sellerID int64, status domain.ListingStatus) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.d.id()
	s.d.listings[id] = &domain.Listing{
		ID:              id,
		SellerAccountID: sellerID,
		Name:            "Alphonso Mangoes",
		Category:        "fruit",
		QuantityKg:      250,
		Status:          status,
		CreatedOn:       time.Now(),
	}
	return id
}

func (s *fakeStore) seedAuction(a domain.Auction) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = s.d.id()
	if a.Status == "" {
		a.Status = domain.AuctionStatusOpen
	}
	a.CreatedOn = time.Now()
	s.d.auctions[a.ID] = &a
	return a.ID
}

func (s *fakeStore) balance(accountID int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.accounts[accountID].BalancePaise
}

func (s *fakeStore) listingStatus(id int64) domain.ListingStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.d.listings[id].Status
}

func (s *fakeStore) transactions(accountID int64) []domain.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Transaction
	for _, tx := range s.d.txs {
		if tx.AccountID == accountID {
			out = append(out, tx)
		}
	}
	return out
}

func (s *fakeStore) notifications(accountID int64) []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Notification
	for _, n := range s.d.notes {
		if n.AccountID == accountID {
			out = append(out, n)
		}
	}
	return out
}

// recordedEvent is one captured publish.
type recordedEvent struct {
	Room    int64
	User    int64
	Type    events.EventType
	Payload any
}

// recordingPublisher captures publishes instead of fanning them out.
type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) PublishRoom(auctionID int64, event events.EventType, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{Room: auctionID, Type: event, Payload: payload})
}

func (p *recordingPublisher) PublishUser(accountID int64, event events.EventType, payload any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{User: accountID, Type: event, Payload: payload})
}

func (p *recordingPublisher) byType(t events.EventType) []recordedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []recordedEvent
	for _, e := range p.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}
