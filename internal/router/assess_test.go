package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"nomassess/internal/assess"
	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
)

func testEngine(t *testing.T, loaded bool) http.Handler {
	t.Helper()
	client := &inventory.StaticClient{}
	if loaded {
		tbl, err := inventory.FromCSV([][]string{
			{"PLA ID", "Transport NE", "GE_1G", "GE_10G", "25GE", "MYCOM LOOP NORMAL UTILIZATION"},
			{"100", "NE-A", "10", "4", "0", "75%"},
			{"100", "NE-B", "2", "0", "0", "10%"},
		})
		if err != nil {
			t.Fatalf("inventory: %v", err)
		}
		client.Table = tbl
	} else {
		client.Err = inventory.ErrSnapshotUnavailable
	}
	store := inventory.NewStore(client, 1, 0, zap.NewNop())
	if loaded {
		if err := store.Refresh(context.Background()); err != nil {
			t.Fatalf("refresh: %v", err)
		}
	}
	assessor := assess.NewAssessor(store, assess.DefaultVerdictConfig(), 1, zap.NewNop())
	handler := NewAssessHandler(assessor, nomination.NewFetcher(0), zap.NewNop())
	return NewEngine(handler)
}

func postJSON(t *testing.T, engine http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandleAssessInlineRows(t *testing.T) {
	engine := testEngine(t, true)
	body := `{"rows":[{"PLA ID":"100","GE Port Demand":"1","10GE Port Demand":"0"}]}`
	rec := postJSON(t, engine, "/api/v1/assess", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		RunID   string           `json:"run_id"`
		Records []map[string]any `json:"records"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.RunID == "" || len(resp.Records) != 1 {
		t.Fatalf("unexpected response: %s", rec.Body.String())
	}
	if resp.Records[0]["Node Assessment"] != "With Headroom" {
		t.Fatalf("unexpected verdict: %v", resp.Records[0]["Node Assessment"])
	}
	if resp.Records[0]["Loop Assessment"] != "Requires Loop Upgrade" {
		t.Fatalf("unexpected loop verdict: %v", resp.Records[0]["Loop Assessment"])
	}
}

func TestHandleAssessCSVDownload(t *testing.T) {
	engine := testEngine(t, true)
	body := `{"rows":[{"PLA ID":"100","GE Port Demand":"1"}]}`
	rec := postJSON(t, engine, "/api/v1/assess?format=csv", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "Node Assessment") {
		t.Fatalf("csv missing verdict column: %s", rec.Body.String())
	}
}

func TestHandleAssessInvalidChoice(t *testing.T) {
	engine := testEngine(t, true)
	body := `{"rows":[{"PLA ID":"100"}],"choices":{"100":"NE-C"}}`
	rec := postJSON(t, engine, "/api/v1/assess", body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expect 400 for invalid choice, got %d", rec.Code)
	}
}

func TestHandleAssessWithoutInventory(t *testing.T) {
	engine := testEngine(t, false)
	body := `{"rows":[{"PLA ID":"100"}]}`
	rec := postJSON(t, engine, "/api/v1/assess", body)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expect 503 without inventory, got %d", rec.Code)
	}
}

func TestHandleAssessRequiresInput(t *testing.T) {
	engine := testEngine(t, true)
	rec := postJSON(t, engine, "/api/v1/assess", `{}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expect 400 for empty request, got %d", rec.Code)
	}
}

func TestHandlePreflight(t *testing.T) {
	engine := testEngine(t, true)
	body := `{"rows":[{"PLA ID":"100"}]}`
	rec := postJSON(t, engine, "/api/v1/assess/preflight", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Ambiguities []assess.Ambiguity `json:"ambiguities"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Ambiguities) != 1 || resp.Ambiguities[0].PlaID != "100" {
		t.Fatalf("unexpected ambiguities: %s", rec.Body.String())
	}
}

func TestHealthEndpoint(t *testing.T) {
	engine := testEngine(t, true)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expect 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}
