package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/skuubrain/Solscanner/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

type stubEngine struct {
	runResult domain.ScanResult
	runErr    error
	runParams domain.ScanParams
	trackRec  domain.WalletRecord
	trackErr  error
	tracked   []domain.WalletRecord
	flagged   []domain.ConsensusEntry
}

func (s *stubEngine) Run(ctx context.Context, params domain.ScanParams) (domain.ScanResult, error) {
	s.runParams = params
	return s.runResult, s.runErr
}

func (s *stubEngine) TrackWallet(ctx context.Context, wallet string) (domain.WalletRecord, error) {
	return s.trackRec, s.trackErr
}

func (s *stubEngine) TrackedWallets() []domain.WalletRecord {
	return s.tracked
}

func (s *stubEngine) TrackedCount() int {
	return len(s.tracked)
}

func (s *stubEngine) FlaggedTokens(ctx context.Context) []domain.ConsensusEntry {
	return s.flagged
}

func newTestRouter(engine ScanEngine, apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(trace.NewNoopTracerProvider().Tracer("test"), engine, apiKey)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func TestHealth(t *testing.T) {
	engine := &stubEngine{
		tracked: []domain.WalletRecord{{Wallet: "w1"}},
		flagged: []domain.ConsensusEntry{{Mint: "m1"}, {Mint: "m2"}},
	}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("expected healthy status, got %v", body["status"])
	}
	if body["tracked_wallets"].(float64) != 1 || body["flagged_tokens"].(float64) != 2 {
		t.Errorf("unexpected counts in %v", body)
	}
}

func TestTriggerScan(t *testing.T) {
	engine := &stubEngine{
		runResult: domain.ScanResult{
			Discovered: 3,
			Scanned:    2,
			Skipped:    1,
			Flagged:    []domain.ConsensusEntry{{Mint: "m1", HolderCount: 2}},
			Errors:     []string{"wallet w3: upstream 500"},
		},
	}
	r := newTestRouter(engine, "")

	payload := bytes.NewBufferString(`{"discovery_mode":"trending","min_holders":3}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", payload)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if engine.runParams.Discovery != domain.DiscoverTrending || engine.runParams.MinHolders != 3 {
		t.Errorf("params not passed through, got %+v", engine.runParams)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("expected 1 flagged token, got %v", body["count"])
	}
}

func TestTriggerScanNoBody(t *testing.T) {
	engine := &stubEngine{runResult: domain.ScanResult{Flagged: []domain.ConsensusEntry{}}}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for empty body, got %d: %s", w.Code, w.Body.String())
	}
}

func TestTriggerScanBadJSON(t *testing.T) {
	r := newTestRouter(&stubEngine{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", bytes.NewBufferString(`{"min_holders":"two"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestTriggerScanEngineError(t *testing.T) {
	engine := &stubEngine{runErr: fmt.Errorf("min_holders must be at least 1, got -1")}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/scan", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestGetWallets(t *testing.T) {
	engine := &stubEngine{tracked: []domain.WalletRecord{{Wallet: "w1"}, {Wallet: "w2"}}}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["count"].(float64) != 2 {
		t.Errorf("expected 2 wallets, got %v", body["count"])
	}
}

func TestRefreshWallet(t *testing.T) {
	engine := &stubEngine{trackRec: domain.WalletRecord{Wallet: "w1", Delta: domain.StatusSoldPartially}}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wallets/w1/refresh", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var rec domain.WalletRecord
	if err := json.Unmarshal(w.Body.Bytes(), &rec); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if rec.Delta != domain.StatusSoldPartially {
		t.Errorf("expected delta in response, got %+v", rec)
	}
}

func TestRefreshWalletUpstreamError(t *testing.T) {
	engine := &stubEngine{trackErr: fmt.Errorf("upstream timeout")}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/wallets/w1/refresh", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", w.Code)
	}
}

func TestGetFlaggedTokens(t *testing.T) {
	engine := &stubEngine{flagged: []domain.ConsensusEntry{{Mint: "m1", HolderCount: 3}}}
	r := newTestRouter(engine, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/tokens/flagged", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if body["count"].(float64) != 1 {
		t.Errorf("expected 1 flagged token, got %v", body["count"])
	}
}

func TestNilEngineReturns503(t *testing.T) {
	r := newTestRouter(nil, "")

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/scan"},
		{http.MethodGet, "/api/wallets"},
		{http.MethodPost, "/api/wallets/w1/refresh"},
		{http.MethodGet, "/api/tokens/flagged"},
	}
	for _, p := range paths {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(p.method, p.path, nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("%s %s: expected 503, got %d", p.method, p.path, w.Code)
		}
	}
}

func TestAPIKeyAuth(t *testing.T) {
	engine := &stubEngine{}
	r := newTestRouter(engine, "secret")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("missing key: expected 401, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
	req.Header.Set("X-API-Key", "wrong")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("wrong key: expected 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/wallets", nil)
	req.Header.Set("X-API-Key", "secret")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid key: expected 200, got %d", w.Code)
	}

	// Health stays open regardless of auth config.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("health: expected 200, got %d", w.Code)
	}
}
