package testutil

import (
	"database/sql"
	"math/rand"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
)

func NewTestPositionService(t *testing.T, db *sql.DB) *service.PositionService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)

	return service.NewPositionService(positionRepo)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	accountRepo := repository.NewAccountRepository(db)
	positionRepo := repository.NewPositionRepository(db)

	return service.NewAccountService(db, accountRepo, positionRepo)
}

// NewTestFundService creates a FundService backed by the given mock market
// client, so tests never make real vendor calls.
func NewTestFundService(t *testing.T, db *sql.DB, market service.MarketClient) *service.FundService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)

	return service.NewFundService(positionRepo, market)
}

// NewTestRefreshService creates a RefreshService backed by the given mock
// market client.
func NewTestRefreshService(t *testing.T, db *sql.DB, market service.MarketClient, concurrency int) *service.RefreshService {
	t.Helper()

	positionRepo := repository.NewPositionRepository(db)

	return service.NewRefreshService(positionRepo, market, concurrency)
}

// TestFernetKey is a fixed 32-byte base64 fernet key for tests. Never use
// it outside of tests.
const TestFernetKey = "QUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUFBQUE="

func NewTestSettingService(t *testing.T, db *sql.DB) *service.SettingService {
	t.Helper()

	settingRepo, err := repository.NewSettingRepository(db, TestFernetKey)
	if err != nil {
		t.Fatalf("Failed to create setting repository: %v", err)
	}

	return service.NewSettingService(settingRepo)
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeFundCode generates a realistic six-digit fund code for testing.
//
// Example usage:
//
//	code := testutil.MakeFundCode()
//	// Returns: "002481"
func MakeFundCode() string {
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return "00" + strconv.Itoa(1000+rand.Intn(9000))
}

// MakeFundName generates a unique fund name for testing.
//
// Example usage:
//
//	name := testutil.MakeFundName("Growth Fund")
//	// Returns: "Growth Fund XYZ789"
func MakeFundName(base string) string {
	if base == "" {
		base = "Fund"
	}
	return base + " " + randomAlphanumeric(6)
}

// MakeAccountName generates a unique account name for testing.
//
// Example usage:
//
//	name := testutil.MakeAccountName("Broker")
//	// Returns: "Broker ABC123"
func MakeAccountName(base string) string {
	if base == "" {
		base = "Account"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
