package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yangjibao/Fund-Holdings-Tracker-Backend/internal/testutil"
)

func setupPositionHandler(t *testing.T, market *testutil.MockMarketClient) (*PositionHandler, *sql.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	positionService := testutil.NewTestPositionService(t, db)
	fundService := testutil.NewTestFundService(t, db, market)
	refreshService := testutil.NewTestRefreshService(t, db, market, 2)
	return NewPositionHandler(positionService, fundService, refreshService), db
}

func TestPositionHandler_Positions(t *testing.T) {
	t.Run("returns all positions", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		testutil.NewPosition().WithHolding(100, 2.0).WithNav(2.5).Build(t, db)
		testutil.NewPosition().Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response []PositionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 2 {
			t.Fatalf("Expected 2 positions, got %d", len(response))
		}
	})

	t.Run("derived fields are included", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		testutil.NewPosition().WithHolding(100, 2.0).WithNav(2.5).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/positions", nil)
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		var response []PositionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 {
			t.Fatalf("Expected 1 position, got %d", len(response))
		}
		if response[0].MarketValue != 250 {
			t.Errorf("MarketValue = %v, want 250", response[0].MarketValue)
		}
		if response[0].HoldingGain != 50 {
			t.Errorf("HoldingGain = %v, want 50", response[0].HoldingGain)
		}
	})

	t.Run("filters by platform query parameter", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		testutil.NewPosition().WithPlatform("Alipay").Build(t, db)
		testutil.NewPosition().WithPlatform("Bank").Build(t, db)

		req := testutil.NewRequestWithQueryParams(http.MethodGet, "/api/positions", map[string]string{
			"platform": "Alipay",
		})
		w := httptest.NewRecorder()

		handler.Positions(w, req)

		var response []PositionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if len(response) != 1 || response[0].Platform != "Alipay" {
			t.Errorf("Expected only the Alipay position, got %+v", response)
		}
	})
}

func TestPositionHandler_Summary(t *testing.T) {
	t.Run("returns aggregated totals", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		testutil.NewPosition().WithHolding(20, 1.0).WithNav(1.05).WithDayChange(5.0, 1.0).Build(t, db)

		req := httptest.NewRequest(http.MethodGet, "/api/positions/summary", nil)
		w := httptest.NewRecorder()

		handler.Summary(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]float64
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["totalAssets"] != 21 {
			t.Errorf("totalAssets = %v, want 21", response["totalAssets"])
		}
		if response["totalDayGain"] != 1 {
			t.Errorf("totalDayGain = %v, want 1", response["totalDayGain"])
		}
	})
}

func TestPositionHandler_CreatePosition(t *testing.T) {
	t.Run("creates a position from raw entry fields", func(t *testing.T) {
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(2.5, "2025-03-04", 1.0))
		handler, _ := setupPositionHandler(t, market)

		body := `{
			"code": "002001",
			"name": "Test Growth Fund",
			"platform": "Alipay",
			"currentNav": 2.5,
			"amount": "250",
			"unitCost": "2.0"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/positions", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var response PositionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.HoldingShares != 100 {
			t.Errorf("HoldingShares = %v, want 100", response.HoldingShares)
		}
		if response.LastUpdate != "2025-03-04" {
			t.Errorf("LastUpdate = %s, want the vendor NAV date", response.LastUpdate)
		}
	})

	t.Run("rejects an invalid body", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		req := httptest.NewRequest(http.MethodPost, "/api/positions", strings.NewReader("{not json"))
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("rejects missing required fields", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		req := httptest.NewRequest(http.MethodPost, "/api/positions", strings.NewReader(`{"name": "x"}`))
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("rejects an uncommittable entry", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		// No shares and no amount: nothing to commit
		body := `{"code": "002001", "name": "Test", "platform": "Alipay", "currentNav": 2.5}`
		req := httptest.NewRequest(http.MethodPost, "/api/positions", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.CreatePosition(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPositionHandler_UpdatePosition(t *testing.T) {
	t.Run("applies entry edits", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		position := testutil.NewPosition().WithHolding(100, 2.0).WithNav(2.5).Build(t, db)

		req := testutil.NewJSONRequestWithURLParams(
			http.MethodPut,
			"/api/positions/"+position.ID,
			map[string]string{"uuid": position.ID},
			`{"amount": "300"}`,
		)
		w := httptest.NewRecorder()

		handler.UpdatePosition(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response PositionResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response.HoldingShares != 120 {
			t.Errorf("HoldingShares = %v, want 120", response.HoldingShares)
		}
	})

	t.Run("returns 404 for an unknown position", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		id := testutil.MakeID()
		req := testutil.NewJSONRequestWithURLParams(
			http.MethodPut,
			"/api/positions/"+id,
			map[string]string{"uuid": id},
			`{"amount": "300"}`,
		)
		w := httptest.NewRecorder()

		handler.UpdatePosition(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPositionHandler_DeletePosition(t *testing.T) {
	t.Run("deletes and returns 204", func(t *testing.T) {
		handler, db := setupPositionHandler(t, testutil.NewMockMarketClient())

		position := testutil.NewPosition().Build(t, db)

		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/positions/"+position.ID,
			map[string]string{"uuid": position.ID},
		)
		w := httptest.NewRecorder()

		handler.DeletePosition(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("returns 404 for an unknown position", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(
			http.MethodDelete,
			"/api/positions/"+id,
			map[string]string{"uuid": id},
		)
		w := httptest.NewRecorder()

		handler.DeletePosition(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}

func TestPositionHandler_PreviewEntry(t *testing.T) {
	t.Run("recomputes the form for one edit", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		body := `{
			"currentNav": 2.5,
			"unitCost": "2.0",
			"editedField": "amount",
			"editedValue": "250"
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/positions/preview", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.PreviewEntry(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response EntryPreviewResponse
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if !response.Shares.Valid || response.Shares.Value != 100 {
			t.Errorf("Shares = %+v, want valid 100", response.Shares)
		}
		if response.Amount.Raw != "250" {
			t.Errorf("Amount.Raw = %q, want the edit echoed back", response.Amount.Raw)
		}
	})

	t.Run("rejects an unknown edited field", func(t *testing.T) {
		handler, _ := setupPositionHandler(t, testutil.NewMockMarketClient())

		body := `{"currentNav": 2.5, "editedField": "navPrice", "editedValue": "1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/positions/preview", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.PreviewEntry(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestPositionHandler_Refresh(t *testing.T) {
	t.Run("refreshes all positions", func(t *testing.T) {
		market := testutil.NewMockMarketClient().
			WithCommonData("002001", testutil.MakeCommonData(2.625, "2025-03-04", 5.0))
		handler, db := setupPositionHandler(t, market)

		testutil.NewPosition().WithCode("002001").WithHolding(100, 2.0).WithNav(2.5).Build(t, db)

		req := httptest.NewRequest(http.MethodPost, "/api/positions/refresh", nil)
		w := httptest.NewRecorder()

		handler.Refresh(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var response map[string]any
		//nolint:errcheck // Test assertion - decode failure would cause test to fail anyway
		json.NewDecoder(w.Body).Decode(&response)

		if response["updated"] != float64(1) {
			t.Errorf("updated = %v, want 1", response["updated"])
		}
	})
}
