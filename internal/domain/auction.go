package domain

import "time"

type AuctionStatus string

const (
	AuctionStatusOpen   AuctionStatus = "OPEN"
	AuctionStatusClosed AuctionStatus = "CLOSED"
)

// Auction is one bidding round for a single listing. The current leader is
// stored explicitly (LeaderAccountID + CurrentHighestBidPaise) instead of
// being derived from the position of the last appended bid.
type Auction struct {
	ID                     int64         `json:"id"`
	ListingID              int64         `json:"listing_id"`
	SellerAccountID        int64         `json:"seller_account_id"`
	BasePricePaise         int64         `json:"base_price_paise"`
	QuantityKg             int32         `json:"quantity_kg"`
	Deadline               time.Time     `json:"deadline"`
	Status                 AuctionStatus `json:"status"`
	CurrentHighestBidPaise int64         `json:"current_highest_bid_paise"`
	LeaderAccountID        *int64        `json:"leader_account_id,omitempty"`
	WinnerAccountID        *int64        `json:"winner_account_id,omitempty"`
	CreatedOn              time.Time     `json:"created_on"`
}

// HasBids reports whether at least one bid has been accepted.
func (a *Auction) HasBids() bool {
	return a.LeaderAccountID != nil
}

// Bid is one accepted offer. Amounts across an auction's bids are strictly
// increasing in acceptance order.
type Bid struct {
	ID              int64     `json:"id"`
	AuctionID       int64     `json:"auction_id"`
	BidderAccountID int64     `json:"bidder_account_id"`
	AmountPaise     int64     `json:"amount_paise"`
	PlacedAt        time.Time `json:"placed_at"`
}

// Actor identifies the principal invoking a mutating operation, as supplied
// by the identity layer. The sweeper runs as the system actor, which closes
// auctions through the deadline-passed authorization branch only.
type Actor struct {
	AccountID int64
	Role      AccountType
	System    bool
}

// SystemActor is the acting identity of background jobs.
var SystemActor = Actor{System: true}
