package handlers

import (
	"net/http"
	"strings"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/request"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/api/response"
	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/service"
)

// SettingHandler handles HTTP requests for system setting endpoints.
type SettingHandler struct {
	settingService *service.SettingService
}

// NewSettingHandler creates a new SettingHandler with the provided service dependency.
func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// VendorTokenStatusResponse reports whether a vendor API token is stored.
// The token itself is never returned.
type VendorTokenStatusResponse struct {
	Configured bool `json:"configured"`
}

// VendorTokenStatus handles GET requests to check whether a vendor API token
// is configured.
//
// Endpoint: GET /api/settings/vendor-token
// Response: 200 OK with VendorTokenStatusResponse
// Error: 500 Internal Server Error if the lookup fails
func (h *SettingHandler) VendorTokenStatus(w http.ResponseWriter, _ *http.Request) {
	configured, err := h.settingService.HasVendorToken()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to check vendor token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, VendorTokenStatusResponse{Configured: configured})
}

// SetVendorToken handles PUT requests to store the market data vendor API
// token. The token is encrypted at rest.
//
// Endpoint: PUT /api/settings/vendor-token
// Request Body: VendorTokenRequest (token)
// Response: 204 No Content on success
// Error: 400 Bad Request if the token is empty
// Error: 500 Internal Server Error if storage fails
func (h *SettingHandler) SetVendorToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.VendorTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if strings.TrimSpace(req.Token) == "" {
		response.RespondError(w, http.StatusBadRequest, "token is required", "")
		return
	}

	if err := h.settingService.SetVendorToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store vendor token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
