package events

import "time"

type EventType string

const (
	EventAuctionStarted EventType = "auction-started"
	EventBidAccepted    EventType = "bid-accepted"
	EventAuctionClosed  EventType = "auction-closed"
	EventNotification   EventType = "notification"
	EventLeaveRoom      EventType = "leave-room"
	EventWalletUpdated  EventType = "wallet-updated"
)

// Event is the unit of fan-out. Delivery is fire-and-forget and
// at-least-once; auction and ledger state in the database stay the source of
// truth, a dropped event only costs UI freshness.
type Event struct {
	Type      EventType `json:"type"`
	Payload   any       `json:"payload"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the fan-out abstraction handed to the bidding and settlement
// services. Room scope addresses everyone watching one auction; user scope
// addresses one account's personal channel.
type Publisher interface {
	PublishRoom(auctionID int64, event EventType, payload any)
	PublishUser(accountID int64, event EventType, payload any)
}

// BidderEntry mirrors one accepted bid in broadcast payloads.
type BidderEntry struct {
	AccountID   int64     `json:"account_id"`
	AmountPaise int64     `json:"amount_paise"`
	PlacedAt    time.Time `json:"placed_at"`
}

// BidAcceptedPayload is broadcast to the auction room after every accepted bid.
type BidAcceptedPayload struct {
	AuctionID              int64         `json:"auction_id"`
	CurrentHighestBidPaise int64         `json:"current_highest_bid_paise"`
	Bidders                []BidderEntry `json:"bidders"`
}

// AuctionClosedPayload is broadcast to the auction room on settlement.
type AuctionClosedPayload struct {
	AuctionID       int64         `json:"auction_id"`
	WinnerAccountID *int64        `json:"winner_account_id,omitempty"`
	WinningBidPaise int64         `json:"winning_bid_paise"`
	Bidders         []BidderEntry `json:"bidders"`
}

// NotificationPayload carries the fact that a notification-worthy event
// occurred; the persisted notification row is the durable copy.
type NotificationPayload struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}
