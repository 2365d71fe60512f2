package http

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"agriconnect-backend/internal/domain"
)

type mockWalletService struct {
	mock.Mock
}

func (m *mockWalletService) OpenAccount(ctx context.Context, ownerName string, accountType domain.AccountType) (*domain.Account, error) {
	args := m.Called(ctx, ownerName, accountType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockWalletService) DeactivateAccount(ctx context.Context, accountID int64) error {
	return m.Called(ctx, accountID).Error(0)
}

func (m *mockWalletService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *mockWalletService) Deposit(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amountPaise, providerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *mockWalletService) Withdraw(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error) {
	args := m.Called(ctx, accountID, amountPaise, providerRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *mockWalletService) Transfer(ctx context.Context, fromAccountID, toAccountID, amountPaise int64) (string, error) {
	args := m.Called(ctx, fromAccountID, toAccountID, amountPaise)
	return args.String(0), args.Error(1)
}

func (m *mockWalletService) GetTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error) {
	args := m.Called(ctx, accountID, page, pageSize)
	var txs []domain.Transaction
	if args.Get(0) != nil {
		txs = args.Get(0).([]domain.Transaction)
	}
	return txs, args.Get(1).(int32), args.Error(2)
}

type mockBiddingService struct {
	mock.Mock
}

func (m *mockBiddingService) CreateListing(ctx context.Context, actor domain.Actor, name, category string, quantityKg int32) (*domain.Listing, error) {
	args := m.Called(ctx, actor, name, category, quantityKg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *mockBiddingService) ListMyListings(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *mockBiddingService) StartAuction(ctx context.Context, actor domain.Actor, listingID, basePricePaise int64, quantityKg int32, deadline time.Time) (*domain.Auction, error) {
	args := m.Called(ctx, actor, listingID, basePricePaise, quantityKg, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *mockBiddingService) PlaceBid(ctx context.Context, actor domain.Actor, auctionID, amountPaise int64) (*domain.Auction, error) {
	args := m.Called(ctx, actor, auctionID, amountPaise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

func (m *mockBiddingService) GetAuction(ctx context.Context, auctionID int64) (*domain.Auction, []domain.Bid, error) {
	args := m.Called(ctx, auctionID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var bids []domain.Bid
	if args.Get(1) != nil {
		bids = args.Get(1).([]domain.Bid)
	}
	return args.Get(0).(*domain.Auction), bids, args.Error(2)
}

func (m *mockBiddingService) ListAuctions(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error) {
	args := m.Called(ctx, status, page, pageSize)
	var auctions []domain.Auction
	if args.Get(0) != nil {
		auctions = args.Get(0).([]domain.Auction)
	}
	return auctions, args.Get(1).(int32), args.Error(2)
}

type mockSettlementService struct {
	mock.Mock
}

func (m *mockSettlementService) CloseAuction(ctx context.Context, actor domain.Actor, auctionID int64) (*domain.Auction, error) {
	args := m.Called(ctx, actor, auctionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Auction), args.Error(1)
}

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) BookStorage(ctx context.Context, actor domain.Actor, ownerAccountID int64, unitName string, feePaise int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, ownerAccountID, unitName, feePaise)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *mockBookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID int64) error {
	return m.Called(ctx, actor, bookingID).Error(0)
}

func (m *mockBookingService) ListBookings(ctx context.Context, renterAccountID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, renterAccountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) List(ctx context.Context, accountID int64, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, accountID, limit, offset)
	var notes []domain.Notification
	if args.Get(0) != nil {
		notes = args.Get(0).([]domain.Notification)
	}
	return notes, args.Get(1).(int32), args.Error(2)
}

func (m *mockNotificationService) MarkAsRead(ctx context.Context, id, accountID int64) error {
	return m.Called(ctx, id, accountID).Error(0)
}
