package domain

import "time"

type BookingStatus string

const (
	BookingStatusActive    BookingStatus = "ACTIVE"
	BookingStatusCancelled BookingStatus = "CANCELLED"
)

// Booking is a cold-storage rental paid through the ledger. The paying party
// is always RenterAccountID regardless of whether a farmer or a buyer rents
// the unit.
type Booking struct {
	ID              int64         `json:"id"`
	UnitName        string        `json:"unit_name"`
	RenterAccountID int64         `json:"renter_account_id"`
	OwnerAccountID  int64         `json:"owner_account_id"`
	FeePaise        int64         `json:"fee_paise"`
	Status          BookingStatus `json:"status"`
	CreatedOn       time.Time     `json:"created_on"`
}
