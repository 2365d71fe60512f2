package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/repository"
)

type auctionRepository struct {
	db DBTX
}

func NewAuctionRepository(db DBTX) repository.AuctionRepository {
	return &auctionRepository{db: db}
}

const auctionColumns = `id, listing_id, seller_account_id, base_price_paise, quantity_kg,
	deadline, status, current_highest_bid_paise, leader_account_id, winner_account_id, created_on`

func (r *auctionRepository) Create(ctx context.Context, a *domain.Auction) error {
	query := `INSERT INTO auctions
	          (listing_id, seller_account_id, base_price_paise, quantity_kg, deadline, status, current_highest_bid_paise, created_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		a.ListingID, a.SellerAccountID, a.BasePricePaise, a.QuantityKg, a.Deadline,
		domain.AuctionStatusOpen, a.BasePricePaise,
	).Scan(&a.ID, &a.CreatedOn)
	if err != nil {
		return fmt.Errorf("create auction: %w", err)
	}
	a.Status = domain.AuctionStatusOpen
	a.CurrentHighestBidPaise = a.BasePricePaise
	return nil
}

func (r *auctionRepository) GetByID(ctx context.Context, id int64) (*domain.Auction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id)
	return scanAuction(row)
}

// GetForUpdate re-reads the auction under a row lock. Every mutation of the
// bid list, leader, or status happens after this call within the same
// transaction, which serializes concurrent bids per auction while leaving
// other auctions untouched.
func (r *auctionRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Auction, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1 FOR UPDATE`, id)
	return scanAuction(row)
}

func scanAuction(row *sql.Row) (*domain.Auction, error) {
	var a domain.Auction
	err := row.Scan(&a.ID, &a.ListingID, &a.SellerAccountID, &a.BasePricePaise, &a.QuantityKg,
		&a.Deadline, &a.Status, &a.CurrentHighestBidPaise, &a.LeaderAccountID, &a.WinnerAccountID, &a.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get auction: %w", err)
	}
	return &a, nil
}

func (r *auctionRepository) AppendBid(ctx context.Context, b *domain.Bid) error {
	query := `INSERT INTO bids (auction_id, bidder_account_id, amount_paise, placed_at)
	          VALUES ($1, $2, $3, NOW()) RETURNING id, placed_at`
	err := r.db.QueryRowContext(ctx, query, b.AuctionID, b.BidderAccountID, b.AmountPaise).Scan(&b.ID, &b.PlacedAt)
	if err != nil {
		return fmt.Errorf("append bid: %w", err)
	}
	return nil
}

func (r *auctionRepository) UpdateLeader(ctx context.Context, auctionID, leaderAccountID, amountPaise int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET current_highest_bid_paise = $2, leader_account_id = $3 WHERE id = $1`,
		auctionID, amountPaise, leaderAccountID,
	)
	if err != nil {
		return fmt.Errorf("update leader: %w", err)
	}
	return nil
}

// Close transitions OPEN -> CLOSED. The status guard in the WHERE clause
// makes a second close a no-op at the storage level as well.
func (r *auctionRepository) Close(ctx context.Context, auctionID int64, winnerAccountID *int64) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE auctions SET status = $2, winner_account_id = $3 WHERE id = $1 AND status = $4`,
		auctionID, domain.AuctionStatusClosed, winnerAccountID, domain.AuctionStatusOpen,
	)
	if err != nil {
		return fmt.Errorf("close auction: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrAuctionClosed
	}
	return nil
}

func (r *auctionRepository) ListBids(ctx context.Context, auctionID int64) ([]domain.Bid, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, auction_id, bidder_account_id, amount_paise, placed_at
		 FROM bids WHERE auction_id = $1 ORDER BY id`,
		auctionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bids []domain.Bid
	for rows.Next() {
		var b domain.Bid
		if err := rows.Scan(&b.ID, &b.AuctionID, &b.BidderAccountID, &b.AmountPaise, &b.PlacedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, rows.Err()
}

func (r *auctionRepository) ListByStatus(ctx context.Context, status domain.AuctionStatus, page, pageSize int32) ([]domain.Auction, int32, error) {
	offset := (page - 1) * pageSize
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE status = $1 ORDER BY deadline LIMIT $2 OFFSET $3`,
		status, pageSize, offset,
	)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	auctions, err := collectAuctions(rows)
	if err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM auctions WHERE status = $1`, status).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return auctions, count, nil
}

// ListExpiredOpen returns every open auction whose deadline has passed; the
// sweeper closes each one in its own transaction.
func (r *auctionRepository) ListExpiredOpen(ctx context.Context, now time.Time) ([]domain.Auction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+auctionColumns+` FROM auctions WHERE status = $1 AND deadline < $2 ORDER BY deadline`,
		domain.AuctionStatusOpen, now,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAuctions(rows)
}

func collectAuctions(rows *sql.Rows) ([]domain.Auction, error) {
	var auctions []domain.Auction
	for rows.Next() {
		var a domain.Auction
		if err := rows.Scan(&a.ID, &a.ListingID, &a.SellerAccountID, &a.BasePricePaise, &a.QuantityKg,
			&a.Deadline, &a.Status, &a.CurrentHighestBidPaise, &a.LeaderAccountID, &a.WinnerAccountID, &a.CreatedOn); err != nil {
			return nil, err
		}
		auctions = append(auctions, a)
	}
	return auctions, rows.Err()
}
