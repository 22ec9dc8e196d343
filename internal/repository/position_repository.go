package repository

import (
	"database/sql"
	"fmt"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
)

// PositionRepository provides data access methods for the position table.
type PositionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPositionRepository creates a new PositionRepository with the provided database connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside
// the given transaction.
func (r *PositionRepository) WithTx(tx *sql.Tx) *PositionRepository {
	return &PositionRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *PositionRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const positionColumns = `id, code, name, platform, holding_shares, cost_price,
    current_nav, last_update, day_change_pct, day_change_val`

func scanPosition(row interface{ Scan(...any) error }) (model.Position, error) {
	var p model.Position
	var lastUpdate string

	err := row.Scan(
		&p.ID,
		&p.Code,
		&p.Name,
		&p.Platform,
		&p.HoldingShares,
		&p.CostPrice,
		&p.CurrentNav,
		&lastUpdate,
		&p.DayChangePct,
		&p.DayChangeVal,
	)
	if err != nil {
		return model.Position{}, err
	}

	if p.LastUpdate, err = ParseTime(lastUpdate); err != nil {
		return model.Position{}, fmt.Errorf("failed to parse position last_update: %w", err)
	}
	return p, nil
}

// GetPositions retrieves positions from the database, optionally filtered by
// platform. Returns an empty slice if no positions match.
func (r *PositionRepository) GetPositions(filter model.PositionFilter) ([]model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position WHERE 1=1`
	var args []any

	if filter.Platform != "" {
		query += " AND platform = ?"
		args = append(args, filter.Platform)
	}
	query += " ORDER BY created_at"

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query position table: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}

	for rows.Next() {
		p, err := scanPosition(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position table results: %w", err)
		}
		positions = append(positions, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating position table: %w", err)
	}

	return positions, nil
}

// GetPosition retrieves a single position by its ID.
func (r *PositionRepository) GetPosition(positionID string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position WHERE id = ?`

	p, err := scanPosition(r.getQuerier().QueryRow(query, positionID))
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to query position: %w", err)
	}

	return p, nil
}

// GetPositionByCode retrieves the first position holding the given fund
// code. Used as the last-resort NAV source when the vendor is unreachable.
func (r *PositionRepository) GetPositionByCode(code string) (model.Position, error) {
	query := `SELECT ` + positionColumns + ` FROM position WHERE code = ? ORDER BY created_at LIMIT 1`

	p, err := scanPosition(r.getQuerier().QueryRow(query, code))
	if err == sql.ErrNoRows {
		return model.Position{}, apperrors.ErrPositionNotFound
	}
	if err != nil {
		return model.Position{}, fmt.Errorf("failed to query position by code: %w", err)
	}

	return p, nil
}

// CreatePosition inserts a new position record.
func (r *PositionRepository) CreatePosition(p model.Position) error {
	query := `
        INSERT INTO position (` + positionColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query,
		p.ID,
		p.Code,
		p.Name,
		p.Platform,
		p.HoldingShares,
		p.CostPrice,
		p.CurrentNav,
		p.LastUpdate.Format("2006-01-02"),
		p.DayChangePct,
		p.DayChangeVal,
	)
	if err != nil {
		return fmt.Errorf("failed to insert position: %w", err)
	}
	return nil
}

// UpdateHolding updates the persisted entry fields of a position: shares,
// cost basis and platform. NAV fields are owned by the refresh path.
func (r *PositionRepository) UpdateHolding(positionID string, shares, costPrice float64, platform string) error {
	query := `
        UPDATE position
        SET holding_shares = ?, cost_price = ?, platform = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().Exec(query, shares, costPrice, platform, positionID)
	if err != nil {
		return fmt.Errorf("failed to update position: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrPositionNotFound)
}

// UpdateNav applies a market data refresh to a position.
func (r *PositionRepository) UpdateNav(update model.NavUpdate) error {
	query := `
        UPDATE position
        SET current_nav = ?, last_update = ?, day_change_pct = ?, day_change_val = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().Exec(query,
		update.CurrentNav,
		update.LastUpdate.Format("2006-01-02"),
		update.DayChangePct,
		update.DayChangeVal,
		update.PositionID,
	)
	if err != nil {
		return fmt.Errorf("failed to update position nav: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrPositionNotFound)
}

// UpdatePlatform rewrites the platform string on every position that
// references oldName. Used by the account rename cascade; the caller wraps
// this in a transaction together with the account update.
func (r *PositionRepository) UpdatePlatform(oldName, newName string) (int64, error) {
	result, err := r.getQuerier().Exec(
		`UPDATE position SET platform = ? WHERE platform = ?`, newName, oldName,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to rewrite position platforms: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count rewritten positions: %w", err)
	}
	return affected, nil
}

// DeletePosition removes a position by its ID.
func (r *PositionRepository) DeletePosition(positionID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM position WHERE id = ?`, positionID)
	if err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return requireRowAffected(result, apperrors.ErrPositionNotFound)
}

// requireRowAffected converts a zero-row write into the given not-found error.
func requireRowAffected(result sql.Result, notFound error) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}
