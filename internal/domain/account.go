package domain

import "time"

type AccountType string

const (
	AccountTypeFarmer       AccountType = "FARMER"
	AccountTypeBuyer        AccountType = "BUYER"
	AccountTypeStorageOwner AccountType = "STORAGE_OWNER"
	AccountTypePlatform     AccountType = "PLATFORM"
)

// Account is a wallet holder. BalancePaise is kept in sync with the signed
// sum of the account's ledger transactions and never goes negative.
type Account struct {
	ID           int64       `json:"id"`
	OwnerName    string      `json:"owner_name"`
	Type         AccountType `json:"type"`
	BalancePaise int64       `json:"balance_paise"`
	Active       bool        `json:"active"`
	CreatedOn    time.Time   `json:"created_on"`
}
