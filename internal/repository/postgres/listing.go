package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/repository"
)

type listingRepository struct {
	db DBTX
}

func NewListingRepository(db DBTX) repository.ListingRepository {
	return &listingRepository{db: db}
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	query := `INSERT INTO listings (seller_account_id, name, category, quantity_kg, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		l.SellerAccountID, l.Name, l.Category, l.QuantityKg, domain.ListingStatusAvailable,
	).Scan(&l.ID, &l.CreatedOn)
	if err != nil {
		return fmt.Errorf("create listing: %w", err)
	}
	l.Status = domain.ListingStatusAvailable
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var l domain.Listing
	err := r.db.QueryRowContext(ctx,
		`SELECT id, seller_account_id, name, category, quantity_kg, status, created_on FROM listings WHERE id = $1`,
		id,
	).Scan(&l.ID, &l.SellerAccountID, &l.Name, &l.Category, &l.QuantityKg, &l.Status, &l.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return &l, nil
}

func (r *listingRepository) ListBySeller(ctx context.Context, sellerAccountID int64) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, seller_account_id, name, category, quantity_kg, status, created_on
		 FROM listings WHERE seller_account_id = $1 ORDER BY created_on DESC`,
		sellerAccountID,
	)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := rows.Scan(&l.ID, &l.SellerAccountID, &l.Name, &l.Category, &l.QuantityKg, &l.Status, &l.CreatedOn); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}

// UpdateStatus performs the transition conditionally so that two transactions
// racing on the same listing cannot both succeed; the loser matches no row.
func (r *listingRepository) UpdateStatus(ctx context.Context, id int64, from, to domain.ListingStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE listings SET status = $3 WHERE id = $1 AND status = $2`, id, from, to)
	if err != nil {
		return fmt.Errorf("update listing status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return r.classifyStaleTransition(ctx, id, from)
	}
	return nil
}

// classifyStaleTransition figures out why the conditional transition matched
// no row: the listing is gone, or another transaction moved it first.
func (r *listingRepository) classifyStaleTransition(ctx context.Context, id int64, from domain.ListingStatus) error {
	var current domain.ListingStatus
	err := r.db.QueryRowContext(ctx, `SELECT status FROM listings WHERE id = $1`, id).Scan(&current)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect listing: %w", err)
	}
	return fmt.Errorf("%w: listing is %s, expected %s", domain.ErrInvalidState, current, from)
}
