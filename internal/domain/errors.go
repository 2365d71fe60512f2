package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when the requested auction, account, listing or
// booking does not exist.
var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidState covers business-rule violations against the current
	// state of an aggregate: closing twice, bidding on a closed auction,
	// cancelling a cancelled booking.
	ErrInvalidState = errors.New("invalid state")
	// ErrAuctionClosed is returned for any mutating call against an auction
	// that is no longer open.
	ErrAuctionClosed = fmt.Errorf("%w: auction is already closed", ErrInvalidState)
	// ErrBidTooLow is returned when a bid does not strictly exceed the
	// current highest bid. Ties are rejected.
	ErrBidTooLow = fmt.Errorf("%w: bid does not exceed the current highest bid", ErrInvalidState)
	// ErrInsufficientFunds is returned when a debit would take a balance
	// below zero.
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrUnauthorized is returned when a close is attempted before the
	// deadline by someone other than the seller.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrAccountInactive is returned when a movement targets a deactivated
	// account.
	ErrAccountInactive = fmt.Errorf("%w: account is deactivated", ErrInvalidState)
	// ErrLedgerInconsistency signals a violated internal invariant, such as
	// the escrow account missing funds it must structurally hold. It is a
	// bug signal, not a user error.
	ErrLedgerInconsistency = errors.New("ledger inconsistency detected")
)
