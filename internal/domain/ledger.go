package domain

import "time"

type TransactionCategory string

const (
	CategoryBidDeduction  TransactionCategory = "BID_DEDUCTION"
	CategoryBidRefund     TransactionCategory = "BID_REFUND"
	CategoryBidReceived   TransactionCategory = "BID_RECEIVED"
	CategoryPayout        TransactionCategory = "PAYOUT"
	CategoryStorageFee    TransactionCategory = "STORAGE_FEE"
	CategoryStorageRefund TransactionCategory = "STORAGE_REFUND"
	CategoryDeposit       TransactionCategory = "DEPOSIT"
	CategoryWithdrawal    TransactionCategory = "WITHDRAWAL"
	CategoryTransferIn    TransactionCategory = "TRANSFER_IN"
	CategoryTransferOut   TransactionCategory = "TRANSFER_OUT"
)

type ReferenceType string

const (
	ReferenceAuction  ReferenceType = "AUCTION"
	ReferenceBooking  ReferenceType = "BOOKING"
	ReferenceTransfer ReferenceType = "TRANSFER"
	ReferenceProvider ReferenceType = "PROVIDER"
)

// Transaction is one immutable balance movement. Rows are only ever inserted,
// inside the same database transaction as the balance update they describe.
type Transaction struct {
	ID            int64               `json:"id"`
	AccountID     int64               `json:"account_id"`
	AmountPaise   int64               `json:"amount_paise"` // positive for credit, negative for debit
	Category      TransactionCategory `json:"category"`
	ReferenceType ReferenceType       `json:"reference_type"`
	ReferenceID   string              `json:"reference_id"`
	CreatedOn     time.Time           `json:"created_on"`
}
