// Package store defines storage interfaces for persisting and retrieving
// candles, strategies, backtest results, and leaderboard scores.
package store

import (
	"context"
	"time"

	"stagehand/internal/domain"
)

// CandleStore persists and retrieves OHLC candle history.
type CandleStore interface {
	// WriteCandles persists a batch of candles for a symbol.
	WriteCandles(ctx context.Context, symbol string, candles []domain.Candle) error

	// ReadCandles returns candles for the symbol within [start, end],
	// ascending by timestamp.
	ReadCandles(ctx context.Context, symbol string, start, end time.Time) ([]domain.Candle, error)

	// ListSymbols returns all distinct symbols with stored candles.
	ListSymbols(ctx context.Context) ([]string, error)
}

// StrategyStore persists player-assembled strategies.
type StrategyStore interface {
	// SaveStrategy inserts or updates a strategy, keyed by name.
	SaveStrategy(ctx context.Context, s domain.Strategy) error

	// GetStrategy retrieves a strategy by name.
	GetStrategy(ctx context.Context, name string) (*domain.Strategy, error)

	// ListStrategies returns all saved strategies, most recently updated
	// first.
	ListStrategies(ctx context.Context) ([]domain.Strategy, error)

	// DeleteStrategy removes a strategy by name.
	DeleteStrategy(ctx context.Context, name string) error
}

// ResultStore persists backtest run results.
type ResultStore interface {
	// SaveResult records a completed backtest run for a strategy and
	// returns the run ID.
	SaveResult(ctx context.Context, strategyName, symbol string, res domain.BacktestResult) (int64, error)

	// GetResult retrieves a run by ID.
	GetResult(ctx context.Context, id int64) (*domain.BacktestResult, error)

	// ListResults returns recent run summaries for a strategy, newest
	// first, up to limit. An empty strategyName matches all strategies.
	ListResults(ctx context.Context, strategyName string, limit int) ([]RunSummary, error)
}

// RunSummary is a stored backtest run without its full trade log.
type RunSummary struct {
	ID           int64     `json:"id"`
	StrategyName string    `json:"strategy_name"`
	Symbol       string    `json:"symbol"`
	Balance      float64   `json:"balance"`
	TotalPnL     float64   `json:"total_pnl"`
	TradeCount   int       `json:"trade_count"`
	WinRate      float64   `json:"win_rate"`
	MaxDrawdown  float64   `json:"max_drawdown"`
	Sharpe       float64   `json:"sharpe"`
	CreatedAt    time.Time `json:"created_at"`
}

// LeaderboardStore persists the talent-show leaderboard.
type LeaderboardStore interface {
	// SubmitScore records a score for a performer name, replacing any
	// earlier entry with a lower PnL.
	SubmitScore(ctx context.Context, entry domain.LeaderboardEntry) error

	// TopScores returns the best entries ranked by PnL descending, with
	// Rank populated, up to limit.
	TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
}
