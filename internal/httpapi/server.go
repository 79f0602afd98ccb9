// Package httpapi serves the REST API: the block catalog, strategy CRUD,
// backtest runs, deployments, and the leaderboard.
package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"stagehand/internal/blocks"
	"stagehand/internal/domain"
	"stagehand/internal/engine"
	"stagehand/internal/feed"
	"stagehand/internal/live"
	"stagehand/internal/store"
)

// Candles fed to a backtest when the request doesn't say.
const defaultBacktestCandles = 500

// Server serves the show's HTTP API.
type Server struct {
	strategies  store.StrategyStore
	results     store.ResultStore
	leaderboard store.LeaderboardStore
	source      feed.CandleSource
	manager     *live.Manager

	symbol           string
	startingBalance  float64
	leaderboardLimit int
	log              *slog.Logger
}

// NewServer creates the HTTP API server.
func NewServer(
	strategies store.StrategyStore,
	results store.ResultStore,
	leaderboard store.LeaderboardStore,
	source feed.CandleSource,
	manager *live.Manager,
	symbol string,
	startingBalance float64,
	leaderboardLimit int,
	log *slog.Logger,
) *Server {
	return &Server{
		strategies:       strategies,
		results:          results,
		leaderboard:      leaderboard,
		source:           source,
		manager:          manager,
		symbol:           symbol,
		startingBalance:  startingBalance,
		leaderboardLimit: leaderboardLimit,
		log:              log,
	}
}

// RegisterRoutes registers all API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/blocks", s.handleBlocks)
	mux.HandleFunc("GET /api/strategies", s.handleListStrategies)
	mux.HandleFunc("GET /api/strategies/{name}", s.handleGetStrategy)
	mux.HandleFunc("PUT /api/strategies/{name}", s.handleSaveStrategy)
	mux.HandleFunc("DELETE /api/strategies/{name}", s.handleDeleteStrategy)
	mux.HandleFunc("POST /api/backtest", s.handleBacktest)
	mux.HandleFunc("GET /api/results", s.handleListResults)
	mux.HandleFunc("GET /api/results/{id}", s.handleGetResult)
	mux.HandleFunc("GET /api/deployments", s.handleListDeployments)
	mux.HandleFunc("POST /api/deployments/{name}", s.handleDeploy)
	mux.HandleFunc("DELETE /api/deployments/{name}", s.handleStopDeployment)
	mux.HandleFunc("GET /api/leaderboard", s.handleLeaderboard)
	mux.HandleFunc("POST /api/leaderboard", s.handleSubmitScore)
}

// Handler returns an http.Handler with CORS middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return corsMiddleware(mux)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Block catalog
// ---------------------------------------------------------------------------

func (s *Server) handleBlocks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, BlocksResponse{
		Blocks:     blocks.Catalog,
		Categories: blocks.CategoryLabels,
	})
}

// ---------------------------------------------------------------------------
// Strategies
// ---------------------------------------------------------------------------

func (s *Server) handleListStrategies(w http.ResponseWriter, r *http.Request) {
	all, err := s.strategies.ListStrategies(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list strategies")
		return
	}
	if all == nil {
		all = []domain.Strategy{}
	}
	writeJSON(w, StrategiesResponse{Strategies: all})
}

func (s *Server) handleGetStrategy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	strat, err := s.strategies.GetStrategy(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("strategy %q not found", name))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load strategy")
		return
	}
	writeJSON(w, strat)
}

func (s *Server) handleSaveStrategy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	var req SaveStrategyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	strat := domain.Strategy{Name: name, Blocks: req.Blocks}
	if err := blocks.Validate(strat); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	strat = blocks.Normalize(strat)

	if err := s.strategies.SaveStrategy(r.Context(), strat); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save strategy")
		return
	}
	s.log.Info("strategy saved", "name", name, "blocks", len(strat.Blocks))
	writeJSON(w, strat)
}

func (s *Server) handleDeleteStrategy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if err := s.strategies.DeleteStrategy(r.Context(), name); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete strategy")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Backtests
// ---------------------------------------------------------------------------

func (s *Server) handleBacktest(w http.ResponseWriter, r *http.Request) {
	var req BacktestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	var strat domain.Strategy
	switch {
	case req.Strategy != "":
		saved, err := s.strategies.GetStrategy(r.Context(), req.Strategy)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, fmt.Sprintf("strategy %q not found", req.Strategy))
				return
			}
			writeError(w, http.StatusInternalServerError, "failed to load strategy")
			return
		}
		strat = *saved
	case len(req.Blocks) > 0:
		strat = domain.Strategy{Name: "ad-hoc", Blocks: req.Blocks}
		if err := blocks.Validate(strat); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		strat = blocks.Normalize(strat)
	default:
		writeError(w, http.StatusBadRequest, "strategy name or blocks required")
		return
	}

	symbol := req.Symbol
	if symbol == "" {
		symbol = s.symbol
	}
	candleCount := req.Candles
	if candleCount <= 0 {
		candleCount = defaultBacktestCandles
	}
	balance := req.StartingBalance
	if balance <= 0 {
		balance = s.startingBalance
	}

	candles, err := s.source.History(r.Context(), symbol, candleCount)
	if err != nil {
		writeError(w, http.StatusBadGateway, fmt.Sprintf("loading candles for %s: %v", symbol, err))
		return
	}

	started := time.Now()
	result := engine.Run(strat.Blocks, candles, balance)
	s.log.Info("backtest complete",
		"strategy", strat.Name,
		"symbol", symbol,
		"candles", len(candles),
		"trades", result.TradeCount,
		"pnl", result.TotalPnL,
		"elapsed", time.Since(started).Round(time.Millisecond),
	)

	runID, err := s.results.SaveResult(r.Context(), strat.Name, symbol, result)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to persist result")
		return
	}

	writeJSON(w, BacktestResponse{
		RunID:    runID,
		Strategy: strat.Name,
		Symbol:   symbol,
		Candles:  len(candles),
		Result:   result,
	})
}

func (s *Server) handleListResults(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.results.ListResults(r.Context(), r.URL.Query().Get("strategy"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list results")
		return
	}
	if runs == nil {
		runs = []store.RunSummary{}
	}
	writeJSON(w, ResultsResponse{Runs: runs})
}

func (s *Server) handleGetResult(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	result, err := s.results.GetResult(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("run %d not found", id))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load result")
		return
	}
	writeJSON(w, result)
}

// ---------------------------------------------------------------------------
// Deployments
// ---------------------------------------------------------------------------

func (s *Server) handleListDeployments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, DeploymentsResponse{Deployments: s.manager.Statuses()})
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	strat, err := s.strategies.GetStrategy(r.Context(), name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, fmt.Sprintf("strategy %q not found", name))
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load strategy")
		return
	}

	// The deployment must outlive this request.
	session, err := s.manager.Deploy(context.WithoutCancel(r.Context()), *strat)
	if err != nil {
		writeError(w, http.StatusConflict, err.Error())
		return
	}
	writeJSON(w, session.Status())
}

func (s *Server) handleStopDeployment(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if !s.manager.Stop(name) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("strategy %q is not deployed", name))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ---------------------------------------------------------------------------
// Leaderboard
// ---------------------------------------------------------------------------

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	limit := s.leaderboardLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	entries, err := s.leaderboard.TopScores(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load leaderboard")
		return
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	writeJSON(w, LeaderboardResponse{Entries: entries})
}

func (s *Server) handleSubmitScore(w http.ResponseWriter, r *http.Request) {
	var entry domain.LeaderboardEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if entry.Name == "" {
		writeError(w, http.StatusUnprocessableEntity, "name required")
		return
	}
	if err := s.leaderboard.SubmitScore(r.Context(), entry); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to submit score")
		return
	}
	s.log.Info("score submitted", "name", entry.Name, "pnl", entry.PnL)
	w.WriteHeader(http.StatusCreated)
}
