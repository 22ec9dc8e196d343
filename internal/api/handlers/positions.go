package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/request"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/response"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/model"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/validation"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/valuation"
)

// PositionHandler handles HTTP requests for position endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the positionService.
type PositionHandler struct {
	positionService *service.PositionService
	fundService     *service.FundService
	refreshService  *service.RefreshService
}

// NewPositionHandler creates a new PositionHandler with the provided service dependencies.
func NewPositionHandler(
	positionService *service.PositionService,
	fundService *service.FundService,
	refreshService *service.RefreshService,
) *PositionHandler {
	return &PositionHandler{
		positionService: positionService,
		fundService:     fundService,
		refreshService:  refreshService,
	}
}

// PositionResponse represents a single position in API responses.
type PositionResponse struct {
	ID            string  `json:"id"`
	Code          string  `json:"code"`
	Name          string  `json:"name"`
	Platform      string  `json:"platform"`
	HoldingShares float64 `json:"holdingShares"`
	CostPrice     float64 `json:"costPrice"`
	CurrentNav    float64 `json:"currentNav"`
	LastUpdate    string  `json:"lastUpdate"`
	DayChangePct  float64 `json:"dayChangePct"`
	DayChangeVal  float64 `json:"dayChangeVal"`
	MarketValue   float64 `json:"marketValue"`
	HoldingGain   float64 `json:"holdingGain"`
}

func toPositionResponse(p model.Position) PositionResponse {
	return PositionResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Platform:      p.Platform,
		HoldingShares: p.HoldingShares,
		CostPrice:     p.CostPrice,
		CurrentNav:    p.CurrentNav,
		LastUpdate:    p.LastUpdate.Format("2006-01-02"),
		DayChangePct:  p.DayChangePct,
		DayChangeVal:  p.DayChangeVal,
		MarketValue:   p.HoldingShares * p.CurrentNav,
		HoldingGain:   p.HoldingShares * (p.CurrentNav - p.CostPrice),
	}
}

// Positions handles GET requests to retrieve all positions, optionally
// filtered by platform.
//
// Endpoint: GET /api/positions?platform=
// Response: 200 OK with array of PositionResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) Positions(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")

	positions, err := h.positionService.GetPositions(platform)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	resp := make([]PositionResponse, len(positions))
	for i, p := range positions {
		resp[i] = toPositionResponse(p)
	}

	response.RespondJSON(w, http.StatusOK, resp)
}

// GetPosition handles GET requests to retrieve a single position by ID.
//
// Endpoint: GET /api/positions/{uuid}
// Response: 200 OK with PositionResponse
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if retrieval fails
func (h *PositionHandler) GetPosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	position, err := h.positionService.GetPosition(positionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrievePositions.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toPositionResponse(position))
}

// Summary handles GET requests to aggregate all positions into portfolio totals.
//
// Endpoint: GET /api/positions/summary?platform=
// Response: 200 OK with PortfolioSummary
// Error: 500 Internal Server Error if aggregation fails
func (h *PositionHandler) Summary(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")

	summary, err := h.positionService.GetSummary(platform)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToGetSummary.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summary)
}

// CreatePosition handles POST requests to create a new position.
// The raw entry fields run through the entry calculator server-side; the
// fund's latest market data is looked up so the stored position starts out
// with a fresh NAV snapshot. When the vendor is unreachable the client's
// NAV is kept as-is.
//
// Endpoint: POST /api/positions
// Request Body: CreatePositionRequest
// Response: 201 Created with PositionResponse
// Error: 400 Bad Request if validation or the entry commit fails
// Error: 500 Internal Server Error if creation fails
func (h *PositionHandler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	dayChangePct := 0.0
	navDate := time.Now().UTC()
	if common, err := h.fundService.CurrentNav(r.Context(), req.Code); err == nil {
		req.CurrentNav = common.Nav
		dayChangePct = common.NavChangePercent
		if d, err := time.Parse("2006-01-02", common.NavDate); err == nil {
			navDate = d
		}
	}

	position, err := h.positionService.CreatePosition(req, dayChangePct, navDate)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidNav) || errors.Is(err, apperrors.ErrInvalidShares) {
			response.RespondError(w, http.StatusBadRequest, "invalid position entry", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to create position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusCreated, toPositionResponse(position))
}

// UpdatePosition handles PUT requests to edit an existing position.
// Provided raw fields are applied as entry edits on top of the stored state.
//
// Endpoint: PUT /api/positions/{uuid}
// Request Body: UpdatePositionRequest (all fields optional)
// Response: 200 OK with updated PositionResponse
// Error: 400 Bad Request if validation or the entry commit fails
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if update fails
func (h *PositionHandler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.UpdatePositionRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateUpdatePosition(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	position, err := h.positionService.UpdatePosition(positionID, req)
	if err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrInvalidNav) || errors.Is(err, apperrors.ErrInvalidShares) {
			response.RespondError(w, http.StatusBadRequest, "invalid position entry", err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to update position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, toPositionResponse(position))
}

// DeletePosition handles DELETE requests to remove a position.
//
// Endpoint: DELETE /api/positions/{uuid}
// Response: 204 No Content on successful deletion
// Error: 404 Not Found if position not found
// Error: 500 Internal Server Error if deletion fails
func (h *PositionHandler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	positionID := chi.URLParam(r, "uuid")

	if err := h.positionService.DeletePosition(positionID); err != nil {
		if errors.Is(err, apperrors.ErrPositionNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrPositionNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to delete position", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// EntryFieldResponse represents one form field after recomputation.
type EntryFieldResponse struct {
	Raw   string  `json:"raw"`
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// EntryPreviewResponse represents the recomputed entry form state.
type EntryPreviewResponse struct {
	CurrentNav float64            `json:"currentNav"`
	Amount     EntryFieldResponse `json:"amount"`
	Shares     EntryFieldResponse `json:"shares"`
	UnitCost   EntryFieldResponse `json:"unitCost"`
	Gain       EntryFieldResponse `json:"gain"`
}

func toFieldResponse(f valuation.Field) EntryFieldResponse {
	return EntryFieldResponse{Raw: f.Raw, Value: f.Value, Valid: f.Valid}
}

// PreviewEntry handles POST requests to run one reactive edit through the
// entry calculator without persisting anything. Clients send the current
// form contents plus the single field being changed and get the recomputed
// form back, so they never need to reimplement the derivation rules.
//
// Endpoint: POST /api/positions/preview
// Request Body: EntryPreviewRequest
// Response: 200 OK with EntryPreviewResponse
// Error: 400 Bad Request if validation fails
func (h *PositionHandler) PreviewEntry(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.EntryPreviewRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateEntryPreview(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	entry := h.positionService.PreviewEntry(req)

	response.RespondJSON(w, http.StatusOK, EntryPreviewResponse{
		CurrentNav: entry.CurrentNav,
		Amount:     toFieldResponse(entry.Amount),
		Shares:     toFieldResponse(entry.Shares),
		UnitCost:   toFieldResponse(entry.UnitCost),
		Gain:       toFieldResponse(entry.Gain),
	})
}

// Refresh handles POST requests to refresh the NAV data of all positions.
// Concurrent refresh requests join the in-flight pass instead of issuing
// their own vendor calls.
//
// Endpoint: POST /api/positions/refresh
// Response: 200 OK with RefreshResult
// Error: 500 Internal Server Error if the pass fails entirely
func (h *PositionHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	result, err := h.refreshService.RefreshAll(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRefresh.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
