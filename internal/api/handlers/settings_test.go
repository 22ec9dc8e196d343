package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/testutil"
)

func setupSettingHandler(t *testing.T) *SettingHandler {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return NewSettingHandler(testutil.NewTestSettingService(t, db))
}

func TestSettingHandler_VendorToken(t *testing.T) {
	t.Run("reports unconfigured before a token is stored", func(t *testing.T) {
		handler := setupSettingHandler(t)

		req := httptest.NewRequest(http.MethodGet, "/api/settings/vendor-token", nil)
		w := httptest.NewRecorder()

		handler.VendorTokenStatus(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response VendorTokenStatusResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.Configured {
			t.Error("Expected configured=false before storing a token")
		}
	})

	t.Run("stores a token and reports configured", func(t *testing.T) {
		handler := setupSettingHandler(t)

		put := httptest.NewRequest(http.MethodPut, "/api/settings/vendor-token", strings.NewReader(`{"token": "secret-token"}`))
		w := httptest.NewRecorder()

		handler.SetVendorToken(w, put)

		if w.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}

		get := httptest.NewRequest(http.MethodGet, "/api/settings/vendor-token", nil)
		w = httptest.NewRecorder()

		handler.VendorTokenStatus(w, get)

		var response VendorTokenStatusResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Configured {
			t.Error("Expected configured=true after storing a token")
		}

		// The raw token is never echoed back
		if strings.Contains(w.Body.String(), "secret-token") {
			t.Error("Response leaked the stored token")
		}
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		handler := setupSettingHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/api/settings/vendor-token", strings.NewReader(`{"token": "  "}`))
		w := httptest.NewRecorder()

		handler.SetVendorToken(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}
