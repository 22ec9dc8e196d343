package service

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
)

// DefaultAccountName is the fallback platform positions are moved to when
// their account is deleted.
const DefaultAccountName = "Default"

// AccountService handles account-related business logic, most importantly
// the rename cascade: positions reference accounts by name, so renaming an
// account is a bulk rewrite of the platform string on every referencing
// position, and both writes must land in the same transaction.
type AccountService struct {
	db           *sql.DB
	accountRepo  *repository.AccountRepository
	positionRepo *repository.PositionRepository
}

// NewAccountService creates a new AccountService. The *sql.DB is needed to
// open the transactions that tie the cascade together.
func NewAccountService(
	db *sql.DB,
	accountRepo *repository.AccountRepository,
	positionRepo *repository.PositionRepository,
) *AccountService {
	return &AccountService{
		db:           db,
		accountRepo:  accountRepo,
		positionRepo: positionRepo,
	}
}

// GetAccounts retrieves all accounts.
func (s *AccountService) GetAccounts() ([]model.Account, error) {
	return s.accountRepo.GetAccounts()
}

// CreateAccount creates a new user account (never a default one).
func (s *AccountService) CreateAccount(name string) (model.Account, error) {
	account := model.Account{
		ID:        uuid.NewString(),
		Name:      name,
		IsDefault: false,
	}
	if err := s.accountRepo.CreateAccount(account); err != nil {
		return model.Account{}, err
	}
	return account, nil
}

// RenameAccount renames an account and rewrites the platform of every
// position that referenced the old name, atomically. On any failure both
// writes roll back, so positions can never point at a name that no longer
// exists.
func (s *AccountService) RenameAccount(accountID, newName string) (model.Account, error) {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return model.Account{}, err
	}
	if account.Name == newName {
		return account, nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to begin rename transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := s.accountRepo.WithTx(tx).RenameAccount(accountID, newName); err != nil {
		return model.Account{}, err
	}

	moved, err := s.positionRepo.WithTx(tx).UpdatePlatform(account.Name, newName)
	if err != nil {
		return model.Account{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Account{}, fmt.Errorf("failed to commit rename transaction: %w", err)
	}

	log.Info().
		Str("account", accountID).
		Str("from", account.Name).
		Str("to", newName).
		Int64("positions", moved).
		Msg("Account renamed")

	account.Name = newName
	return account, nil
}

// DeleteAccount removes a user account. Seeded default accounts are
// protected. Positions held under the deleted account are reassigned to the
// default account in the same transaction, mirroring the rename cascade.
func (s *AccountService) DeleteAccount(accountID string) error {
	account, err := s.accountRepo.GetAccount(accountID)
	if err != nil {
		return err
	}
	if account.IsDefault {
		return apperrors.ErrAccountProtected
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin delete transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := s.positionRepo.WithTx(tx).UpdatePlatform(account.Name, DefaultAccountName); err != nil {
		return err
	}

	if err := s.accountRepo.WithTx(tx).DeleteAccount(accountID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit delete transaction: %w", err)
	}

	return nil
}
