package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/logger"
	"agriconnect-backend/internal/repository"
)

type ledgerRepository struct {
	db DBTX
}

func NewLedgerRepository(db DBTX) repository.LedgerRepository {
	return &ledgerRepository{db: db}
}

// ApplyMovement mutates the account balance and appends the matching
// transaction row as one unit. The conditional UPDATE enforces the
// non-negative balance invariant in a single statement, so concurrent
// movements against unrelated accounts never block each other.
func (r *ledgerRepository) ApplyMovement(ctx context.Context, accountID, amountPaise int64, category domain.TransactionCategory, refType domain.ReferenceType, refID string) (*domain.Transaction, error) {
	logger.EnterMethod("ledgerRepository.ApplyMovement", "accountID", accountID, "amount", amountPaise, "category", category)

	var balance int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE accounts
		 SET balance_paise = balance_paise + $2
		 WHERE id = $1 AND active AND balance_paise + $2 >= 0
		 RETURNING balance_paise`,
		accountID, amountPaise,
	).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			reason := r.classifyRejection(ctx, accountID)
			logger.ExitMethodWithError("ledgerRepository.ApplyMovement", reason, "accountID", accountID)
			return nil, reason
		}
		return nil, fmt.Errorf("update balance: %w", err)
	}

	tx := &domain.Transaction{
		AccountID:     accountID,
		AmountPaise:   amountPaise,
		Category:      category,
		ReferenceType: refType,
		ReferenceID:   refID,
	}
	err = r.db.QueryRowContext(ctx,
		`INSERT INTO ledger_transactions (account_id, amount_paise, category, reference_type, reference_id, created_on)
		 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING id, created_on`,
		tx.AccountID, tx.AmountPaise, tx.Category, tx.ReferenceType, tx.ReferenceID,
	).Scan(&tx.ID, &tx.CreatedOn)
	if err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	logger.ExitMethod("ledgerRepository.ApplyMovement", "transactionID", tx.ID, "newBalance", balance)
	return tx, nil
}

// classifyRejection figures out why the conditional balance update matched no
// row: missing account, deactivated account, or a debit exceeding the balance.
func (r *ledgerRepository) classifyRejection(ctx context.Context, accountID int64) error {
	var active bool
	err := r.db.QueryRowContext(ctx, `SELECT active FROM accounts WHERE id = $1`, accountID).Scan(&active)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("inspect account: %w", err)
	}
	if !active {
		return domain.ErrAccountInactive
	}
	return domain.ErrInsufficientFunds
}

func (r *ledgerRepository) GetBalance(ctx context.Context, accountID int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx, `SELECT balance_paise FROM accounts WHERE id = $1`, accountID).Scan(&balance)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrNotFound
	}
	return balance, err
}

func (r *ledgerRepository) ListTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error) {
	offset := (page - 1) * pageSize
	query := `SELECT id, account_id, amount_paise, category, reference_type, reference_id, created_on
	          FROM ledger_transactions WHERE account_id = $1 ORDER BY created_on DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.db.QueryContext(ctx, query, accountID, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.AmountPaise, &tx.Category, &tx.ReferenceType, &tx.ReferenceID, &tx.CreatedOn); err != nil {
			return nil, 0, err
		}
		txs = append(txs, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var count int32
	err = r.db.QueryRowContext(ctx, `SELECT count(*) FROM ledger_transactions WHERE account_id = $1`, accountID).Scan(&count)
	if err != nil {
		return nil, 0, err
	}
	return txs, count, nil
}
