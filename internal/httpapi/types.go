package httpapi

import (
	"stagehand/internal/blocks"
	"stagehand/internal/domain"
	"stagehand/internal/live"
	"stagehand/internal/store"
)

// BlocksResponse carries the block catalog and category display labels.
type BlocksResponse struct {
	Blocks     []blocks.Definition             `json:"blocks"`
	Categories map[domain.BlockCategory]string `json:"categories"`
}

// StrategiesResponse lists saved strategies.
type StrategiesResponse struct {
	Strategies []domain.Strategy `json:"strategies"`
}

// SaveStrategyRequest is the body of PUT /api/strategies/{name}.
type SaveStrategyRequest struct {
	Blocks []domain.StrategyBlock `json:"blocks"`
}

// BacktestRequest is the body of POST /api/backtest. Either a saved
// strategy name or an inline block list must be given.
type BacktestRequest struct {
	Strategy        string                 `json:"strategy,omitempty"`
	Blocks          []domain.StrategyBlock `json:"blocks,omitempty"`
	Symbol          string                 `json:"symbol,omitempty"`
	Candles         int                    `json:"candles,omitempty"`
	StartingBalance float64                `json:"starting_balance,omitempty"`
}

// BacktestResponse is the outcome of a backtest run.
type BacktestResponse struct {
	RunID    int64                 `json:"run_id"`
	Strategy string                `json:"strategy"`
	Symbol   string                `json:"symbol"`
	Candles  int                   `json:"candles"`
	Result   domain.BacktestResult `json:"result"`
}

// ResultsResponse lists stored backtest run summaries.
type ResultsResponse struct {
	Runs []store.RunSummary `json:"runs"`
}

// DeploymentsResponse lists the running deployments.
type DeploymentsResponse struct {
	Deployments []live.Status `json:"deployments"`
}

// LeaderboardResponse lists ranked leaderboard entries.
type LeaderboardResponse struct {
	Entries []domain.LeaderboardEntry `json:"entries"`
}
