package service

import (
	"context"
	"time"

	"agriconnect-backend/internal/domain"
)

// WalletService exposes account provisioning and the deposit/withdraw/transfer
// surface. Real-world money enters and leaves through an external payment
// provider; by the time these methods run, the provider call has already been
// verified by the API layer.
type WalletService interface {
	OpenAccount(ctx context.Context, ownerName string, accountType domain.AccountType) (*domain.Account, error)
	DeactivateAccount(ctx context.Context, accountID int64) error
	GetAccount(ctx context.Context, accountID int64) (*domain.Account, error)
	Deposit(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error)
	Withdraw(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error)
	Transfer(ctx context.Context, fromAccountID, toAccountID, amountPaise int64) (string, error)
	GetTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error)
}

// BiddingService runs the live bidding rounds and manages the produce
// listings they sell.
type BiddingService interface {
	CreateListing(ctx context.Context, actor domain.Actor, name, category string, quantityKg int32) (*domain.Listing, error)
	ListMyListings(ctx context.Context, actor domain.Actor) ([]domain.Listing, error)
	StartAuction(ctx context.Context, actor domain.Actor, listingID, basePricePaise int64, quantityKg int32, deadline time.Time) (*domain.Auction, error)
	PlaceBid(ctx context.Context, actor domain.Actor, auctionID, amountPaise int64) (*domain.Auction, error)
	GetAuction(ctx context.Context, auctionID int64) (*domain.Auction, []domain.Bid, error)
	ListAuctions(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error)
}

// SettlementService closes auctions, manually or on behalf of the deadline
// sweeper, and pays out the winning funds.
type SettlementService interface {
	CloseAuction(ctx context.Context, actor domain.Actor, auctionID int64) (*domain.Auction, error)
}

// BookingService handles cold-storage rentals paid through the ledger.
type BookingService interface {
	BookStorage(ctx context.Context, actor domain.Actor, ownerAccountID int64, unitName string, feePaise int64) (*domain.Booking, error)
	CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) error
	ListBookings(ctx context.Context, renterAccountID int64) ([]domain.Booking, error)
}

type NotificationService interface {
	List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, accountID int64) error
}
