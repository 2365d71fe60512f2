package domain

import "time"

type ListingStatus string

const (
	ListingStatusAvailable ListingStatus = "AVAILABLE"
	ListingStatusBidding   ListingStatus = "BIDDING"
	ListingStatusSold      ListingStatus = "SOLD"
)

// Listing is the produce lot an auction sells. The bidding core only flips
// its status; everything else about listings lives outside this backend.
type Listing struct {
	ID              int64         `json:"id"`
	SellerAccountID int64         `json:"seller_account_id"`
	Name            string        `json:"name"`
	Category        string        `json:"category"`
	QuantityKg      int32         `json:"quantity_kg"`
	Status          ListingStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
}
