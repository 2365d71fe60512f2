package repository

import (
	"context"
	"time"

	"agriconnect-backend/internal/domain"
)

// Store bundles every repository plus the transactional scope they share.
// WithTx hands fn a store whose repositories all run on one transaction;
// the transaction commits only if fn returns nil.
type Store interface {
	Accounts() AccountRepository
	Ledger() LedgerRepository
	Auctions() AuctionRepository
	Listings() ListingRepository
	Bookings() BookingRepository
	Notifications() NotificationRepository
	WithTx(ctx context.Context, fn func(Store) error) error
}

type AccountRepository interface {
	Create(ctx context.Context, account *domain.Account) error
	GetByID(ctx context.Context, id int64) (*domain.Account, error)
	Deactivate(ctx context.Context, id int64) error
}

// LedgerRepository is the sole writer of account balances. ApplyMovement
// performs the balance update and the transaction insert as one unit; callers
// compose multi-account movements inside an enclosing store transaction.
type LedgerRepository interface {
	ApplyMovement(ctx context.Context, accountID, amountPaise int64, category domain.TransactionCategory, refType domain.ReferenceType, refID string) (*domain.Transaction, error)
	GetBalance(ctx context.Context, accountID int64) (int64, error)
	ListTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error)
}

type AuctionRepository interface {
	Create(ctx context.Context, auction *domain.Auction) error
	GetByID(ctx context.Context, id int64) (*domain.Auction, error)
	// GetForUpdate locks the auction row; all bid-list and status mutations
	// happen under this lock.
	GetForUpdate(ctx context.Context, id int64) (*domain.Auction, error)
	AppendBid(ctx context.Context, bid *domain.Bid) error
	UpdateLeader(ctx context.Context, auctionID, leaderAccountID, amountPaise int64) error
	Close(ctx context.Context, auctionID int64, winnerAccountID *int64) error
	ListBids(ctx context.Context, auctionID int64) ([]domain.Bid, error)
	ListByStatus(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error)
	ListExpiredOpen(ctx context.Context, now time.Time) ([]domain.Auction, error)
}

type ListingRepository interface {
	Create(ctx context.Context, listing *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	// UpdateStatus transitions the listing from one status to another as a
	// single conditional statement; a listing no longer in the expected
	// status returns ErrInvalidState, so concurrent transitions cannot both
	// win.
	UpdateStatus(ctx context.Context, id int64, from, to domain.ListingStatus) error
	ListBySeller(ctx context.Context, sellerAccountID int64) ([]domain.Listing, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ListByRenter(ctx context.Context, renterAccountID int64) ([]domain.Booking, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, accountID int64) error
}
