package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"agriconnect-backend/internal/repository"

	_ "github.com/lib/pq"
)

// DBTX is the query surface shared by *sql.DB and *sql.Tx, so every
// repository can run either standalone or inside a store transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Store struct {
	db *sql.DB

	accounts      repository.AccountRepository
	ledger        repository.LedgerRepository
	auctions      repository.AuctionRepository
	listings      repository.ListingRepository
	bookings      repository.BookingRepository
	notifications repository.NotificationRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:            db,
		accounts:      NewAccountRepository(db),
		ledger:        NewLedgerRepository(db),
		auctions:      NewAuctionRepository(db),
		listings:      NewListingRepository(db),
		bookings:      NewBookingRepository(db),
		notifications: NewNotificationRepository(db),
	}
}

func (s *Store) Accounts() repository.AccountRepository           { return s.accounts }
func (s *Store) Ledger() repository.LedgerRepository              { return s.ledger }
func (s *Store) Auctions() repository.AuctionRepository           { return s.auctions }
func (s *Store) Listings() repository.ListingRepository           { return s.listings }
func (s *Store) Bookings() repository.BookingRepository           { return s.bookings }
func (s *Store) Notifications() repository.NotificationRepository { return s.notifications }

// WithTx runs fn against a store whose repositories share one database
// transaction. fn returning an error rolls everything back; nothing partial
// is ever visible outside the transaction.
func (s *Store) WithTx(ctx context.Context, fn func(repository.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txStore := &Store{
		db:            s.db,
		accounts:      NewAccountRepository(tx),
		ledger:        NewLedgerRepository(tx),
		auctions:      NewAuctionRepository(tx),
		listings:      NewListingRepository(tx),
		bookings:      NewBookingRepository(tx),
		notifications: NewNotificationRepository(tx),
	}

	if err := fn(txStore); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("%w (rollback: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
