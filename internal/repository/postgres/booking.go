package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/repository"
)

type bookingRepository struct {
	db DBTX
}

func NewBookingRepository(db DBTX) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO storage_bookings (unit_name, renter_account_id, owner_account_id, fee_paise, status, created_on)
	          VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query,
		b.UnitName, b.RenterAccountID, b.OwnerAccountID, b.FeePaise, domain.BookingStatusActive,
	).Scan(&b.ID, &b.CreatedOn)
	if err != nil {
		return fmt.Errorf("create booking: %w", err)
	}
	b.Status = domain.BookingStatusActive
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var b domain.Booking
	err := r.db.QueryRowContext(ctx,
		`SELECT id, unit_name, renter_account_id, owner_account_id, fee_paise, status, created_on
		 FROM storage_bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.UnitName, &b.RenterAccountID, &b.OwnerAccountID, &b.FeePaise, &b.Status, &b.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	return &b, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE storage_bookings SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update booking status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) ListByRenter(ctx context.Context, renterAccountID int64) ([]domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, unit_name, renter_account_id, owner_account_id, fee_paise, status, created_on
		 FROM storage_bookings WHERE renter_account_id = $1 ORDER BY created_on DESC`,
		renterAccountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.UnitName, &b.RenterAccountID, &b.OwnerAccountID, &b.FeePaise, &b.Status, &b.CreatedOn); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
