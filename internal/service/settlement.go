package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository"
	"agriconnect-backend/internal/utils"
)

type settlementService struct {
	store           repository.Store
	publisher       events.Publisher
	escrowAccountID int64
	notifier        notifier
}

func NewSettlementService(store repository.Store, publisher events.Publisher, escrowAccountID int64) SettlementService {
	return &settlementService{
		store:           store,
		publisher:       publisher,
		escrowAccountID: escrowAccountID,
		notifier:        notifier{notes: store.Notifications(), publisher: publisher},
	}
}

// CloseAuction settles one auction: picks the stored leader as winner, pays
// escrow out to the seller, and transitions OPEN -> CLOSED. Allowed when the
// deadline has passed or the caller is the seller; the sweeper's system actor
// always takes the deadline branch.
func (s *settlementService) CloseAuction(ctx context.Context, actor domain.Actor, auctionID int64) (*domain.Auction, error) {
	var (
		auction *domain.Auction
		bids    []domain.Bid
	)

	err := s.store.WithTx(ctx, func(st repository.Store) error {
		a, err := st.Auctions().GetForUpdate(ctx, auctionID)
		if err != nil {
			return err
		}
		if a.Status != domain.AuctionStatusOpen {
			return domain.ErrAuctionClosed
		}

		deadlinePassed := !time.Now().Before(a.Deadline)
		isSeller := !actor.System && actor.AccountID == a.SellerAccountID
		if !deadlinePassed && !isSeller {
			return fmt.Errorf("%w: only the seller may close before the deadline", domain.ErrUnauthorized)
		}

		if !a.HasBids() {
			if err := st.Auctions().Close(ctx, a.ID, nil); err != nil {
				return err
			}
			// Unsold: the listing goes back up for relisting, no money moves.
			if err := st.Listings().UpdateStatus(ctx, a.ListingID, domain.ListingStatusBidding, domain.ListingStatusAvailable); err != nil {
				return err
			}
			a.Status = domain.AuctionStatusClosed
			auction = a
			return nil
		}

		winner := *a.LeaderAccountID
		amount := a.CurrentHighestBidPaise
		ref := strconv.FormatInt(a.ID, 10)

		if _, err := st.Ledger().ApplyMovement(ctx, s.escrowAccountID, -amount, domain.CategoryPayout, domain.ReferenceAuction, ref); err != nil {
			// Escrow must structurally hold the leading bid; a shortfall
			// means an upstream invariant was violated.
			if errors.Is(err, domain.ErrInsufficientFunds) || errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("%w: escrow cannot cover payout of %d for auction %d", domain.ErrLedgerInconsistency, amount, a.ID)
			}
			return err
		}
		if _, err := st.Ledger().ApplyMovement(ctx, a.SellerAccountID, amount, domain.CategoryPayout, domain.ReferenceAuction, ref); err != nil {
			return err
		}

		if err := st.Auctions().Close(ctx, a.ID, &winner); err != nil {
			return err
		}
		if err := st.Listings().UpdateStatus(ctx, a.ListingID, domain.ListingStatusBidding, domain.ListingStatusSold); err != nil {
			return err
		}

		a.Status = domain.AuctionStatusClosed
		a.WinnerAccountID = &winner
		auction = a

		bids, err = st.Auctions().ListBids(ctx, a.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrLedgerInconsistency) {
			logger.Error("Ledger inconsistency during settlement", "auctionID", auctionID, "error", err)
		}
		return nil, err
	}

	s.broadcastClose(ctx, auction, bids)
	return auction, nil
}

func (s *settlementService) broadcastClose(ctx context.Context, a *domain.Auction, bids []domain.Bid) {
	s.publisher.PublishRoom(a.ID, events.EventAuctionClosed, events.AuctionClosedPayload{
		AuctionID:       a.ID,
		WinnerAccountID: a.WinnerAccountID,
		WinningBidPaise: a.CurrentHighestBidPaise,
		Bidders:         bidderEntries(bids),
	})
	s.publisher.PublishRoom(a.ID, events.EventLeaveRoom, map[string]int64{"auction_id": a.ID})

	attrs := map[string]string{"auction_id": strconv.FormatInt(a.ID, 10)}

	if a.WinnerAccountID == nil {
		s.notifier.send(ctx, a.SellerAccountID, "Bidding closed",
			"Bidding on your listing has closed. No bids were placed.", attrs)
		return
	}

	amount := utils.FormatPaise(a.CurrentHighestBidPaise)
	s.notifier.send(ctx, a.SellerAccountID, "Listing sold",
		fmt.Sprintf("Your listing sold for %s.", amount), attrs)
	s.notifier.send(ctx, *a.WinnerAccountID, "Bid won",
		fmt.Sprintf("Congratulations! You won the bidding at %s.", amount), attrs)

	notified := map[int64]bool{*a.WinnerAccountID: true}
	for _, b := range bids {
		if notified[b.BidderAccountID] {
			continue
		}
		notified[b.BidderAccountID] = true
		s.notifier.send(ctx, b.BidderAccountID, "Bidding closed",
			"The bidding you participated in has closed. Thank you for participating.", attrs)
	}
}
