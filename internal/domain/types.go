// Package domain defines the shared data types for the stagehand platform:
// candles, strategy blocks, trades, positions, and backtest results.
package domain

import "time"

// Candle is a single OHLC price bar. Timestamp is Unix milliseconds.
// Candle sequences are ascending by timestamp with no duplicates, and are
// treated as read-only by the evaluation engine.
type Candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume,omitempty"`
}

// Time returns the candle timestamp as a time.Time.
func (c Candle) Time() time.Time {
	return time.UnixMilli(c.Timestamp)
}

// BlockCategory classifies a strategy block by its role in the routine.
type BlockCategory string

const (
	CategoryEntry   BlockCategory = "entry"
	CategoryDefense BlockCategory = "defense"
	CategorySizing  BlockCategory = "sizing"
)

// StrategyBlock is one named, parameterized unit of trading logic. The ID
// selects the rule (e.g. "rsi-gate", "stop-loss") and Params carries the
// rule-specific numeric parameters.
type StrategyBlock struct {
	ID       string             `json:"id"`
	Category BlockCategory      `json:"category"`
	Params   map[string]float64 `json:"params"`
}

// Param returns the named parameter, or def when the key is absent.
func (b StrategyBlock) Param(key string, def float64) float64 {
	if v, ok := b.Params[key]; ok {
		return v
	}
	return def
}

// Strategy is an ordered list of blocks under a user-chosen name. Block
// order is significant: exit rules are checked in sequence and the first
// match wins.
type Strategy struct {
	Name      string          `json:"name"`
	Blocks    []StrategyBlock `json:"blocks"`
	CreatedAt time.Time       `json:"created_at,omitempty"`
	UpdatedAt time.Time       `json:"updated_at,omitempty"`
}

// TradeAction marks a trade log entry as an entry or an exit.
type TradeAction string

const (
	ActionEnter TradeAction = "ENTER"
	ActionExit  TradeAction = "EXIT"
)

// ExitReason identifies which defense rule closed a position.
type ExitReason string

const (
	ReasonStopLoss     ExitReason = "stop_loss"
	ReasonTakeProfit   ExitReason = "take_profit"
	ReasonTrailingStop ExitReason = "trailing_stop"
)

// Trade is one entry in the append-only trade log produced by a backtest
// or a live deployment. PnL fields are only set on EXIT records.
type Trade struct {
	Action    TradeAction `json:"action"`
	Reason    ExitReason  `json:"reason,omitempty"`
	Price     float64     `json:"price"`
	Size      float64     `json:"size,omitempty"`
	PnL       float64     `json:"pnl,omitempty"`
	PnLPct    float64     `json:"pnl_pct,omitempty"`
	Index     int         `json:"index"`
	Timestamp int64       `json:"timestamp"`
}

// Position is the single open position tracked by the backtest driver and
// the live session. The engine does not pyramid or partially exit.
type Position struct {
	EntryPrice float64 `json:"entry_price"`
	Size       float64 `json:"size"`
	EntryIndex int     `json:"entry_index"`
}

// BacktestResult is the aggregate outcome of one backtest run.
type BacktestResult struct {
	Trades      []Trade `json:"trades"`
	Balance     float64 `json:"balance"`
	TotalPnL    float64 `json:"total_pnl"`
	TradeCount  int     `json:"trade_count"`
	WinRate     float64 `json:"win_rate"`
	MaxDrawdown float64 `json:"max_drawdown"`
	Sharpe      float64 `json:"sharpe"`
}

// DecisionAction is the per-candle verdict of a live strategy step.
type DecisionAction string

const (
	DecisionEnter DecisionAction = "ENTER"
	DecisionExit  DecisionAction = "EXIT"
	DecisionHold  DecisionAction = "HOLD"
)

// Decision is the outcome of evaluating one incoming candle during a live
// deployment, consumed by an external order-execution collaborator.
type Decision struct {
	Action  DecisionAction `json:"action"`
	Price   float64        `json:"price,omitempty"`
	Size    float64        `json:"size,omitempty"`
	Reason  ExitReason     `json:"reason,omitempty"`
	PnL     float64        `json:"pnl,omitempty"`
	Message string         `json:"message,omitempty"`
}

// LeaderboardEntry is one ranked row on the talent-show leaderboard.
type LeaderboardEntry struct {
	Rank      int       `json:"rank"`
	Name      string    `json:"name"`
	PnL       float64   `json:"pnl"`
	WinRate   float64   `json:"win_rate"`
	Trades    int       `json:"trades"`
	Sharpe    float64   `json:"sharpe"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}
