package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/response"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/apperrors"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
)

// FundHandler handles HTTP requests for fund lookup endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the fundService.
type FundHandler struct {
	fundService *service.FundService
}

// NewFundHandler creates a new FundHandler with the provided service dependency.
func NewFundHandler(fundService *service.FundService) *FundHandler {
	return &FundHandler{
		fundService: fundService,
	}
}

// Search handles GET requests to search funds by code or name fragment.
//
// Endpoint: GET /api/funds/search?q=
// Response: 200 OK with array of SearchFund
// Error: 400 Bad Request if the query is empty
// Error: 500 Internal Server Error if the vendor lookup fails
func (h *FundHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		response.RespondError(w, http.StatusBadRequest, "query parameter q is required", "")
		return
	}

	funds, err := h.fundService.SearchFunds(r.Context(), query)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSearchFunds.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, funds)
}

// Detail handles GET requests to retrieve a fund's detail view, combining
// the NAV snapshot with best-effort performance and holdings data.
//
// Endpoint: GET /api/funds/{code}
// Response: 200 OK with FundDetail
// Error: 404 Not Found if no NAV source knows the fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) Detail(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	detail, err := h.fundService.GetFundDetail(r.Context(), code)
	if err != nil {
		if errors.Is(err, apperrors.ErrFundNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFundNotFound.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to retrieve fund detail", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, detail)
}

// History handles GET requests to reconstruct a fund's historical NAV table
// from its cumulative-return series. Rows come back most-recent-first.
//
// Endpoint: GET /api/funds/{code}/history?range=1M|3M|6M|1Y|3Y|5Y&limit=
// Response: 200 OK with array of HistoryRow
// Error: 400 Bad Request if the range is unknown or the limit is not a number
// Error: 404 Not Found if no NAV source knows the fund
// Error: 500 Internal Server Error if retrieval fails
func (h *FundHandler) History(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	rangeKey := r.URL.Query().Get("range")
	if rangeKey == "" {
		rangeKey = "1M"
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			response.RespondError(w, http.StatusBadRequest, "limit must be a non-negative integer", raw)
			return
		}
		limit = parsed
	}

	rows, err := h.fundService.GetHistory(r.Context(), code, rangeKey, limit)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrInvalidDateRange):
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidDateRange.Error(), err.Error())
		case errors.Is(err, apperrors.ErrFundNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrFundNotFound.Error(), err.Error())
		default:
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveHistory.Error(), err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, rows)
}
