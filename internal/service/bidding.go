package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/repository"
	"agriconnect-backend/internal/utils"
)

type biddingService struct {
	store           repository.Store
	publisher       events.Publisher
	escrowAccountID int64
	notifier        notifier
}

func NewBiddingService(store repository.Store, publisher events.Publisher, escrowAccountID int64) BiddingService {
	return &biddingService{
		store:           store,
		publisher:       publisher,
		escrowAccountID: escrowAccountID,
		notifier:        notifier{notes: store.Notifications(), publisher: publisher},
	}
}

func (s *biddingService) CreateListing(ctx context.Context, actor domain.Actor, name, category string, quantityKg int32) (*domain.Listing, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: listing name is required", domain.ErrInvalidState)
	}
	if quantityKg <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalidState)
	}

	listing := &domain.Listing{
		SellerAccountID: actor.AccountID,
		Name:            name,
		Category:        category,
		QuantityKg:      quantityKg,
	}
	if err := s.store.Listings().Create(ctx, listing); err != nil {
		return nil, err
	}
	return listing, nil
}

func (s *biddingService) ListMyListings(ctx context.Context, actor domain.Actor) ([]domain.Listing, error) {
	return s.store.Listings().ListBySeller(ctx, actor.AccountID)
}

func (s *biddingService) StartAuction(ctx context.Context, actor domain.Actor, listingID, basePricePaise int64, quantityKg int32, deadline time.Time) (*domain.Auction, error) {
	if basePricePaise <= 0 {
		return nil, fmt.Errorf("%w: base price must be positive", domain.ErrInvalidState)
	}
	if !deadline.After(time.Now()) {
		return nil, fmt.Errorf("%w: deadline must be in the future", domain.ErrInvalidState)
	}

	var auction *domain.Auction
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		listing, err := st.Listings().GetByID(ctx, listingID)
		if err != nil {
			return err
		}
		if listing.SellerAccountID != actor.AccountID {
			return fmt.Errorf("%w: only the seller can start bidding on a listing", domain.ErrUnauthorized)
		}
		if listing.Status != domain.ListingStatusAvailable {
			return fmt.Errorf("%w: bidding can only start on an available listing", domain.ErrInvalidState)
		}

		auction = &domain.Auction{
			ListingID:       listingID,
			SellerAccountID: listing.SellerAccountID,
			BasePricePaise:  basePricePaise,
			QuantityKg:      quantityKg,
			Deadline:        deadline,
		}
		if err := st.Auctions().Create(ctx, auction); err != nil {
			return err
		}
		// The conditional transition is what stops a concurrent start on the
		// same listing; the read above only classifies the failure.
		return st.Listings().UpdateStatus(ctx, listingID, domain.ListingStatusAvailable, domain.ListingStatusBidding)
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishRoom(auction.ID, events.EventAuctionStarted, auction)
	s.notifier.send(ctx, actor.AccountID, "Bidding started",
		fmt.Sprintf("Bidding is open on your listing with a base price of %s.", utils.FormatPaise(basePricePaise)),
		map[string]string{"auction_id": strconv.FormatInt(auction.ID, 10)})
	return auction, nil
}

// PlaceBid validates and applies one bid as a single transaction: re-read the
// auction under its row lock, re-check the price, debit the bidder into
// escrow, refund the displaced leader, append the bid. Either every movement
// commits or none does.
func (s *biddingService) PlaceBid(ctx context.Context, actor domain.Actor, auctionID, amountPaise int64) (*domain.Auction, error) {
	var (
		auction        *domain.Auction
		bids           []domain.Bid
		previousLeader *int64
		previousAmount int64
	)

	err := s.store.WithTx(ctx, func(st repository.Store) error {
		a, err := st.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if a.Status != domain.AuctionStatusOpen {
			return domain.ErrAuctionClosed
		}
		if amountPaise <= a.CurrentHighestBidPaise {
			return fmt.Errorf("%w: bid must exceed %s", domain.ErrBidTooLow, utils.FormatPaise(a.CurrentHighestBidPaise))
		}

		ref := strconv.FormatInt(a.ID, 10)
		if _, err := st.Ledger().ApplyMovement(ctx, actor.AccountID, -amountPaise, domain.CategoryBidDeduction, domain.ReferenceAuction, ref); err != nil {
			return err
		}
		if _, err := st.Ledger().ApplyMovement(ctx, s.escrowAccountID, amountPaise, domain.CategoryBidReceived, domain.ReferenceAuction, ref); err != nil {
			return err
		}

		// Return the displaced leader's funds now that they no longer lead.
		if a.LeaderAccountID != nil {
			previousLeader = a.LeaderAccountID
			previousAmount = a.CurrentHighestBidPaise
			if _, err := st.Ledger().ApplyMovement(ctx, s.escrowAccountID, -previousAmount, domain.CategoryBidRefund, domain.ReferenceAuction, ref); err != nil {
				return err
			}
			if _, err := st.Ledger().ApplyMovement(ctx, *previousLeader, previousAmount, domain.CategoryBidRefund, domain.ReferenceAuction, ref); err != nil {
				return err
			}
		}

		bid := &domain.Bid{
			AuctionID:       a.ID,
			BidderAccountID: actor.AccountID,
			AmountPaise:     amountPaise,
		}
		if err := st.Auctions().AppendBid(ctx, bid); err != nil {
			return err
		}
		if err := st.Auctions().UpdateLeader(ctx, a.ID, actor.AccountID, amountPaise); err != nil {
			return err
		}

		a.CurrentHighestBidPaise = amountPaise
		a.LeaderAccountID = &actor.AccountID
		auction = a

		bids, err = st.Auctions().ListBids(ctx, a.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publisher.PublishRoom(auction.ID, events.EventBidAccepted, events.BidAcceptedPayload{
		AuctionID:              auction.ID,
		CurrentHighestBidPaise: auction.CurrentHighestBidPaise,
		Bidders:                bidderEntries(bids),
	})

	attrs := map[string]string{"auction_id": strconv.FormatInt(auction.ID, 10)}
	s.notifier.send(ctx, actor.AccountID, "Bid placed",
		fmt.Sprintf("Your bid of %s was placed successfully.", utils.FormatPaise(amountPaise)), attrs)
	s.notifier.send(ctx, auction.SellerAccountID, "New bid",
		fmt.Sprintf("A new bid of %s has been placed on your listing.", utils.FormatPaise(amountPaise)), attrs)
	if previousLeader != nil {
		s.notifier.send(ctx, *previousLeader, "Outbid",
			fmt.Sprintf("You have been outbid; your %s has been refunded.", utils.FormatPaise(previousAmount)), attrs)
	}

	return auction, nil
}

func (s *biddingService) GetAuction(ctx context.Context, auctionID int64) (*domain.Auction, []domain.Bid, error) {
	auction, err := s.store.Auctions().GetByID(ctx, auctionID)
	if err != nil {
		return nil, nil, err
	}
	bids, err := s.store.Auctions().ListBids(ctx, auctionID)
	if err != nil {
		return nil, nil, err
	}
	return auction, bids, nil
}

func (s *biddingService) ListAuctions(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error) {
	return s.store.Auctions().ListByStatus(ctx, status, page, pageSize)
}

func bidderEntries(bids []domain.Bid) []events.BidderEntry {
	entries := make([]events.BidderEntry, 0, len(bids))
	for _, b := range bids {
		entries = append(entries, events.BidderEntry{
			AccountID:   b.BidderAccountID,
			AmountPaise: b.AmountPaise,
			PlacedAt:    b.PlacedAt,
		})
	}
	return entries
}
