package repository

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *AccountRepository) WithTx(tx *sql.Tx) *AccountRepository {
	return &AccountRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *AccountRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetAccounts retrieves all accounts, seeded defaults first.
func (r *AccountRepository) GetAccounts() ([]model.Account, error) {
	query := `
        SELECT id, name, is_default
        FROM account
        ORDER BY is_default DESC, name
    `
	rows, err := r.getQuerier().Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		var a model.Account
		if err := rows.Scan(&a.ID, &a.Name, &a.IsDefault); err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccount retrieves a single account by its ID.
func (r *AccountRepository) GetAccount(accountID string) (model.Account, error) {
	var a model.Account

	err := r.getQuerier().QueryRow(
		`SELECT id, name, is_default FROM account WHERE id = ?`, accountID,
	).Scan(&a.ID, &a.Name, &a.IsDefault)
	if err == sql.ErrNoRows {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to query account: %w", err)
	}

	return a, nil
}

// CreateAccount inserts a new account record. A UNIQUE violation on the name
// surfaces as ErrDuplicateAccountName.
func (r *AccountRepository) CreateAccount(a model.Account) error {
	_, err := r.getQuerier().Exec(
		`INSERT INTO account (id, name, is_default) VALUES (?, ?, ?)`,
		a.ID, a.Name, a.IsDefault,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateAccountName
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// RenameAccount updates an account's name.
func (r *AccountRepository) RenameAccount(accountID, newName string) error {
	result, err := r.getQuerier().Exec(
		`UPDATE account SET name = ? WHERE id = ?`, newName, accountID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateAccountName
		}
		return fmt.Errorf("failed to rename account: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrAccountNotFound)
}

// DeleteAccount removes an account by its ID.
func (r *AccountRepository) DeleteAccount(accountID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrAccountNotFound)
}

// isUniqueViolation reports whether the error is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite does not export a typed error for this, so the
// message is matched.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
