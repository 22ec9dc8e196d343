package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/request"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/repository"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/valuation"
)

// PositionService handles position-related business logic operations.
type PositionService struct {
	positionRepo *repository.PositionRepository
}

// NewPositionService creates a new PositionService with the provided repository dependencies.
func NewPositionService(positionRepo *repository.PositionRepository) *PositionService {
	return &PositionService{
		positionRepo: positionRepo,
	}
}

// GetPositions retrieves positions, optionally filtered by platform.
func (s *PositionService) GetPositions(platform string) ([]model.Position, error) {
	return s.positionRepo.GetPositions(model.PositionFilter{Platform: platform})
}

// GetPosition retrieves a single position by its ID.
func (s *PositionService) GetPosition(positionID string) (model.Position, error) {
	return s.positionRepo.GetPosition(positionID)
}

// GetSummary aggregates the (optionally platform-filtered) positions into
// portfolio totals. The summary is recomputed from the stored positions on
// every call, never cached.
func (s *PositionService) GetSummary(platform string) (model.PortfolioSummary, error) {
	positions, err := s.positionRepo.GetPositions(model.PositionFilter{Platform: platform})
	if err != nil {
		return model.PortfolioSummary{}, fmt.Errorf("failed to load positions for summary: %w", err)
	}
	return valuation.Summarize(positions), nil
}

// applyEdits feeds the provided raw field texts through the entry calculator
// as serialized single-field edits, in fixed derivation order: amount first
// (derives shares), then shares, then unit cost (derives gain), then gain
// (back-solves cost). Untouched fields keep whatever the entry derived.
func applyEdits(entry *valuation.Entry, amount, shares, unitCost, gain *string) {
	if amount != nil {
		entry.AmountChanged(*amount)
	}
	if shares != nil {
		entry.SharesChanged(*shares)
	}
	if unitCost != nil {
		entry.UnitCostChanged(*unitCost)
	}
	if gain != nil {
		entry.GainChanged(*gain)
	}
}

// CreatePosition runs the request's raw entry fields through the calculator
// and persists the committed (shares, cost) pair together with the fund's
// current market data. The day gain value is derived from the percentage so
// the stored pair starts out consistent.
func (s *PositionService) CreatePosition(req request.CreatePositionRequest, dayChangePct float64, navDate time.Time) (model.Position, error) {
	entry := valuation.NewEntry(req.CurrentNav)
	applyEdits(entry, req.Amount, req.Shares, req.UnitCost, req.Gain)

	shares, costPrice, err := entry.Commit()
	if err != nil {
		return model.Position{}, err
	}

	position := model.Position{
		ID:            uuid.NewString(),
		Code:          req.Code,
		Name:          req.Name,
		Platform:      req.Platform,
		HoldingShares: shares,
		CostPrice:     costPrice,
		CurrentNav:    req.CurrentNav,
		LastUpdate:    navDate,
		DayChangePct:  dayChangePct,
		DayChangeVal:  valuation.DayGainValue(shares*req.CurrentNav, dayChangePct),
	}

	if err := s.positionRepo.CreatePosition(position); err != nil {
		return model.Position{}, err
	}

	return position, nil
}

// UpdatePosition re-derives the entry form from the stored position, applies
// the request's edits and persists the committed result. Amount and gain are
// never stored; they remain derivable from (shares, cost, nav).
func (s *PositionService) UpdatePosition(positionID string, req request.UpdatePositionRequest) (model.Position, error) {
	position, err := s.positionRepo.GetPosition(positionID)
	if err != nil {
		return model.Position{}, err
	}

	entry := valuation.EditEntry(position.HoldingShares, position.CostPrice, position.CurrentNav)
	applyEdits(entry, req.Amount, req.Shares, req.UnitCost, req.Gain)

	shares, costPrice, err := entry.Commit()
	if err != nil {
		return model.Position{}, err
	}

	platform := position.Platform
	if req.Platform != nil {
		platform = *req.Platform
	}

	if err := s.positionRepo.UpdateHolding(positionID, shares, costPrice, platform); err != nil {
		return model.Position{}, err
	}

	position.HoldingShares = shares
	position.CostPrice = costPrice
	position.Platform = platform
	return position, nil
}

// PreviewEntry applies one reactive edit to the given form state and returns
// the recomputed entry. Nothing is persisted; this exposes the calculator to
// form frontends that do not reimplement it.
func (s *PositionService) PreviewEntry(req request.EntryPreviewRequest) *valuation.Entry {
	entry := &valuation.Entry{
		CurrentNav: req.CurrentNav,
		Amount:     valuation.ParseField(req.Amount),
		Shares:     valuation.ParseField(req.Shares),
		UnitCost:   valuation.ParseField(req.UnitCost),
		Gain:       valuation.ParseField(req.Gain),
	}

	switch req.EditedField {
	case "amount":
		entry.AmountChanged(req.EditedValue)
	case "shares":
		entry.SharesChanged(req.EditedValue)
	case "unitCost":
		entry.UnitCostChanged(req.EditedValue)
	case "gain":
		entry.GainChanged(req.EditedValue)
	}

	return entry
}

// DeletePosition removes a position.
func (s *PositionService) DeletePosition(positionID string) error {
	return s.positionRepo.DeletePosition(positionID)
}
