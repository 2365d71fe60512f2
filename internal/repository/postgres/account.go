package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/repository"
)

type accountRepository struct {
	db DBTX
}

func NewAccountRepository(db DBTX) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	query := `INSERT INTO accounts (owner_name, account_type, balance_paise, active, created_on)
	          VALUES ($1, $2, $3, TRUE, NOW()) RETURNING id, created_on`
	err := r.db.QueryRowContext(ctx, query, a.OwnerName, a.Type, a.BalancePaise).Scan(&a.ID, &a.CreatedOn)
	if err != nil {
		return fmt.Errorf("create account: %w", err)
	}
	a.Active = true
	return nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	query := `SELECT id, owner_name, account_type, balance_paise, active, created_on
	          FROM accounts WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *accountRepository) scanOne(row *sql.Row) (*domain.Account, error) {
	var a domain.Account
	err := row.Scan(&a.ID, &a.OwnerName, &a.Type, &a.BalancePaise, &a.Active, &a.CreatedOn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &a, nil
}

// Deactivate flips the account off without deleting it; the transaction log
// referencing the account stays intact.
func (r *accountRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE accounts SET active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
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
