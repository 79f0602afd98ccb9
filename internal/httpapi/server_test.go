package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"stagehand/internal/domain"
	"stagehand/internal/feed"
	"stagehand/internal/live"
	"stagehand/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	source := feed.NewSimSource(65000, 7, 5*time.Millisecond)
	manager := live.NewManager(source, "VIX75", 10000)
	t.Cleanup(manager.StopAll)

	s := NewServer(db, db, db, source, manager, "VIX75", 10000, 20, slog.Default())
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any, out any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encoding request: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
	return resp
}

func TestBlocksEndpoint(t *testing.T) {
	ts := newTestServer(t)

	var resp BlocksResponse
	doJSON(t, "GET", ts.URL+"/api/blocks", nil, &resp)

	if len(resp.Blocks) != 7 {
		t.Errorf("got %d blocks, want 7", len(resp.Blocks))
	}
	if len(resp.Categories) != 3 {
		t.Errorf("got %d categories, want 3", len(resp.Categories))
	}
}

func TestStrategyLifecycle(t *testing.T) {
	ts := newTestServer(t)

	body := SaveStrategyRequest{Blocks: []domain.StrategyBlock{
		{ID: "rsi-gate", Category: domain.CategoryEntry, Params: map[string]float64{"threshold": 30, "period": 14}},
		{ID: "stop-loss", Category: domain.CategoryDefense, Params: map[string]float64{"percentage": 2}},
	}}

	var saved domain.Strategy
	resp := doJSON(t, "PUT", ts.URL+"/api/strategies/encore", body, &saved)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("save status = %d, want 200", resp.StatusCode)
	}
	if saved.Name != "encore" || len(saved.Blocks) != 2 {
		t.Errorf("saved = %+v, want encore with 2 blocks", saved)
	}

	var got domain.Strategy
	doJSON(t, "GET", ts.URL+"/api/strategies/encore", nil, &got)
	if got.Name != "encore" {
		t.Errorf("get name = %q, want encore", got.Name)
	}

	var list StrategiesResponse
	doJSON(t, "GET", ts.URL+"/api/strategies", nil, &list)
	if len(list.Strategies) != 1 {
		t.Errorf("got %d strategies, want 1", len(list.Strategies))
	}

	resp = doJSON(t, "DELETE", ts.URL+"/api/strategies/encore", nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", resp.StatusCode)
	}
	resp = doJSON(t, "GET", ts.URL+"/api/strategies/encore", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete status = %d, want 404", resp.StatusCode)
	}
}

func TestSaveStrategyValidation(t *testing.T) {
	ts := newTestServer(t)

	// stop-loss is a defense block; posting it as entry must be rejected.
	body := SaveStrategyRequest{Blocks: []domain.StrategyBlock{
		{ID: "stop-loss", Category: domain.CategoryEntry, Params: map[string]float64{"percentage": 2}},
	}}
	resp := doJSON(t, "PUT", ts.URL+"/api/strategies/bad", body, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want 422", resp.StatusCode)
	}
}

func TestBacktestEndpoint(t *testing.T) {
	ts := newTestServer(t)

	req := BacktestRequest{
		Blocks: []domain.StrategyBlock{
			{ID: "rsi-gate", Category: domain.CategoryEntry, Params: map[string]float64{"threshold": 45, "period": 14}},
			{ID: "stop-loss", Category: domain.CategoryDefense, Params: map[string]float64{"percentage": 2}},
			{ID: "take-profit", Category: domain.CategoryDefense, Params: map[string]float64{"percentage": 5}},
		},
		Candles: 200,
	}

	var resp BacktestResponse
	httpResp := doJSON(t, "POST", ts.URL+"/api/backtest", req, &resp)
	if httpResp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", httpResp.StatusCode)
	}
	if resp.RunID == 0 {
		t.Error("run ID not assigned")
	}
	if resp.Candles != 200 {
		t.Errorf("candles = %d, want 200", resp.Candles)
	}
	if resp.Result.Balance == 0 {
		t.Error("result balance is zero")
	}

	// The run is retrievable by ID.
	var full domain.BacktestResult
	doJSON(t, "GET", fmt.Sprintf("%s/api/results/%d", ts.URL, resp.RunID), nil, &full)
	if full.Balance != resp.Result.Balance {
		t.Errorf("stored balance %v != returned %v", full.Balance, resp.Result.Balance)
	}

	var runs ResultsResponse
	doJSON(t, "GET", ts.URL+"/api/results", nil, &runs)
	if len(runs.Runs) != 1 {
		t.Errorf("got %d runs, want 1", len(runs.Runs))
	}
}

func TestBacktestRequiresStrategy(t *testing.T) {
	ts := newTestServer(t)

	resp := doJSON(t, "POST", ts.URL+"/api/backtest", BacktestRequest{}, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	resp = doJSON(t, "POST", ts.URL+"/api/backtest", BacktestRequest{Strategy: "ghost"}, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("unknown strategy status = %d, want 404", resp.StatusCode)
	}
}

func TestDeploymentLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Save a strategy to deploy.
	body := SaveStrategyRequest{Blocks: []domain.StrategyBlock{
		{ID: "ma-cross", Category: domain.CategoryEntry},
		{ID: "stop-loss", Category: domain.CategoryDefense, Params: map[string]float64{"percentage": 2}},
	}}
	doJSON(t, "PUT", ts.URL+"/api/strategies/roadshow", body, nil)

	var status live.Status
	resp := doJSON(t, "POST", ts.URL+"/api/deployments/roadshow", nil, &status)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("deploy status = %d, want 200", resp.StatusCode)
	}
	if status.Strategy != "roadshow" || status.Balance != 10000 {
		t.Errorf("status = %+v, want roadshow at 10000", status)
	}

	// Second deploy conflicts.
	resp = doJSON(t, "POST", ts.URL+"/api/deployments/roadshow", nil, nil)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("double deploy status = %d, want 409", resp.StatusCode)
	}

	var deployments DeploymentsResponse
	doJSON(t, "GET", ts.URL+"/api/deployments", nil, &deployments)
	if len(deployments.Deployments) != 1 {
		t.Errorf("got %d deployments, want 1", len(deployments.Deployments))
	}

	resp = doJSON(t, "DELETE", ts.URL+"/api/deployments/roadshow", nil, nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("stop status = %d, want 204", resp.StatusCode)
	}
	resp = doJSON(t, "DELETE", ts.URL+"/api/deployments/roadshow", nil, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("stop again status = %d, want 404", resp.StatusCode)
	}
}

func TestLeaderboardEndpoints(t *testing.T) {
	ts := newTestServer(t)

	for name, pnl := range map[string]float64{"ava": 120, "ben": 340} {
		resp := doJSON(t, "POST", ts.URL+"/api/leaderboard",
			domain.LeaderboardEntry{Name: name, PnL: pnl, WinRate: 50, Trades: 4}, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("submit %s status = %d, want 201", name, resp.StatusCode)
		}
	}

	// Nameless submissions are rejected.
	resp := doJSON(t, "POST", ts.URL+"/api/leaderboard", domain.LeaderboardEntry{PnL: 10}, nil)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("nameless submit status = %d, want 422", resp.StatusCode)
	}

	var board LeaderboardResponse
	doJSON(t, "GET", ts.URL+"/api/leaderboard", nil, &board)
	if len(board.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(board.Entries))
	}
	if board.Entries[0].Name != "ben" || board.Entries[0].Rank != 1 {
		t.Errorf("top entry = %+v, want ben at rank 1", board.Entries[0])
	}
}

func TestCORSPreflightAndHeaders(t *testing.T) {
	ts := newTestServer(t)

	req, _ := http.NewRequest("OPTIONS", ts.URL+"/api/blocks", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("allow-origin = %q, want *", got)
	}
}
