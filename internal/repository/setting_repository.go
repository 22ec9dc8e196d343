package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
)

// SettingKeyVendorToken is the system_setting key holding the market data
// vendor's API token.
const SettingKeyVendorToken = "vendor_token"

// SettingRepository provides access to the system_setting table. Values for
// credential keys are fernet-encrypted at rest; a nil key disables the
// encrypted operations.
type SettingRepository struct {
	db  *sql.DB
	key *fernet.Key
}

// NewSettingRepository creates a new SettingRepository. encodedKey is a
// base64 fernet key or empty to disable encrypted settings.
func NewSettingRepository(db *sql.DB, encodedKey string) (*SettingRepository, error) {
	r := &SettingRepository{db: db}

	if encodedKey != "" {
		key, err := fernet.DecodeKey(encodedKey)
		if err != nil {
			return nil, fmt.Errorf("failed to decode settings encryption key: %w", err)
		}
		r.key = key
	}

	return r, nil
}

// SetSecret stores an encrypted value for the given key, replacing any
// previous value.
func (r *SettingRepository) SetSecret(key, value string) error {
	if r.key == nil {
		return fmt.Errorf("settings encryption key not configured")
	}

	token, err := fernet.EncryptAndSign([]byte(value), r.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt setting %q: %w", key, err)
	}

	query := `
        INSERT INTO system_setting (id, "key", value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT("key") DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
    `
	if _, err := r.db.Exec(query, uuid.NewString(), key, string(token), time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to store setting %q: %w", key, err)
	}
	return nil
}

// GetSecret retrieves and decrypts the value for the given key.
func (r *SettingRepository) GetSecret(key string) (string, error) {
	if r.key == nil {
		return "", apperrors.ErrSettingNotFound
	}

	var stored string
	err := r.db.QueryRow(
		`SELECT value FROM system_setting WHERE "key" = ?`, key,
	).Scan(&stored)
	if err == sql.ErrNoRows {
		return "", apperrors.ErrSettingNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to query setting %q: %w", key, err)
	}

	// TTL 0: vendor tokens are rotated manually, not expired.
	plain := fernet.VerifyAndDecrypt([]byte(stored), 0, []*fernet.Key{r.key})
	if plain == nil {
		return "", fmt.Errorf("failed to decrypt setting %q", key)
	}
	return string(plain), nil
}
