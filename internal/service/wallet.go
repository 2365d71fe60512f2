package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"agriconnect-backend/internal/domain"
	"agriconnect-backend/internal/events"
	"agriconnect-backend/internal/repository"
)

type walletService struct {
	store     repository.Store
	publisher events.Publisher
}

func NewWalletService(store repository.Store, publisher events.Publisher) WalletService {
	return &walletService{store: store, publisher: publisher}
}

func (s *walletService) OpenAccount(ctx context.Context, ownerName string, accountType domain.AccountType) (*domain.Account, error) {
	account := &domain.Account{
		OwnerName: ownerName,
		Type:      accountType,
	}
	if err := s.store.Accounts().Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *walletService) DeactivateAccount(ctx context.Context, accountID int64) error {
	return s.store.Accounts().Deactivate(ctx, accountID)
}

func (s *walletService) GetAccount(ctx context.Context, accountID int64) (*domain.Account, error) {
	return s.store.Accounts().GetByID(ctx, accountID)
}

// Deposit credits a provider-verified top-up. The provider reference keeps
// the ledger row traceable to the external payment.
func (s *walletService) Deposit(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("%w: deposit amount must be positive", domain.ErrInvalidState)
	}
	var tx *domain.Transaction
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		var err error
		tx, err = st.Ledger().ApplyMovement(ctx, accountID, amountPaise, domain.CategoryDeposit, domain.ReferenceProvider, providerRef)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publisher.PublishUser(accountID, events.EventWalletUpdated, tx)
	return tx, nil
}

func (s *walletService) Withdraw(ctx context.Context, accountID, amountPaise int64, providerRef string) (*domain.Transaction, error) {
	if amountPaise <= 0 {
		return nil, fmt.Errorf("%w: withdrawal amount must be positive", domain.ErrInvalidState)
	}
	var tx *domain.Transaction
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		var err error
		tx, err = st.Ledger().ApplyMovement(ctx, accountID, -amountPaise, domain.CategoryWithdrawal, domain.ReferenceProvider, providerRef)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.publisher.PublishUser(accountID, events.EventWalletUpdated, tx)
	return tx, nil
}

// Transfer moves funds between two wallets. Both legs share one generated
// reference and commit or roll back together.
func (s *walletService) Transfer(ctx context.Context, fromAccountID, toAccountID, amountPaise int64) (string, error) {
	if amountPaise <= 0 {
		return "", fmt.Errorf("%w: transfer amount must be positive", domain.ErrInvalidState)
	}
	transferRef := uuid.NewString()
	err := s.store.WithTx(ctx, func(st repository.Store) error {
		if _, err := st.Ledger().ApplyMovement(ctx, fromAccountID, -amountPaise, domain.CategoryTransferOut, domain.ReferenceTransfer, transferRef); err != nil {
			return err
		}
		if _, err := st.Ledger().ApplyMovement(ctx, toAccountID, amountPaise, domain.CategoryTransferIn, domain.ReferenceTransfer, transferRef); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	s.publisher.PublishUser(fromAccountID, events.EventWalletUpdated, nil)
	s.publisher.PublishUser(toAccountID, events.EventWalletUpdated, nil)
	return transferRef, nil
}

func (s *walletService) GetTransactions(ctx context.Context, accountID int64, page, pageSize int32) ([]domain.Transaction, int32, error) {
	return s.store.Ledger().ListTransactions(ctx, accountID, page, pageSize)
}
