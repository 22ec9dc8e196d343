package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPositionNotFound indicates that a position with the given ID does not exist.
	ErrPositionNotFound = errors.New("position not found")

	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrFundNotFound indicates that the market data vendor has no fund for the given code.
	ErrFundNotFound = errors.New("fund not found")

	// ErrSettingNotFound indicates no record for the given setting key.
	ErrSettingNotFound = errors.New("setting not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidNav indicates that a position entry cannot be saved because the
	// net asset value is non-positive.
	ErrInvalidNav = errors.New("net asset value must be positive")

	// ErrInvalidShares indicates that a position entry cannot be saved because
	// the share count is not a finite number greater than zero.
	ErrInvalidShares = errors.New("share count must be a positive number")

	// ErrDegenerateReturnSeries indicates a cumulative-return series ending at
	// exactly -100%, which makes the NAV reconstruction undefined.
	ErrDegenerateReturnSeries = errors.New("cumulative return series ends at -100%")

	// ErrAccountProtected indicates an attempt to delete a seeded default account.
	ErrAccountProtected = errors.New("default account cannot be deleted")

	// ErrDuplicateAccountName indicates that an account with the same name already
	// exists. Names must be unique because positions reference accounts by name.
	ErrDuplicateAccountName = errors.New("account name already exists")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These indicate that an operation failed, but not due to
// missing entities or validation issues.
var (
	ErrFailedToRetrievePositions = errors.New("failed to retrieve positions")
	ErrFailedToRetrieveAccounts  = errors.New("failed to retrieve accounts")
	ErrFailedToGetSummary        = errors.New("failed to get portfolio summary")
	ErrFailedToRetrieveHistory   = errors.New("failed to retrieve fund history")
	ErrFailedToSearchFunds       = errors.New("failed to search funds")
	ErrFailedToRefresh           = errors.New("failed to refresh market data")
)
