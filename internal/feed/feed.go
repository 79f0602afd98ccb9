// Package feed provides candle sources for the show: a synthetic market
// generator for offline play and an Alpaca-backed source for real history.
package feed

import (
	"context"

	"stagehand/internal/domain"
)

// CandleSource supplies market candles to backtests and live deployments.
type CandleSource interface {
	// Name returns the source identifier.
	Name() string

	// History returns the most recent limit candles for the symbol,
	// ascending by timestamp.
	History(ctx context.Context, symbol string, limit int) ([]domain.Candle, error)

	// Subscribe returns a channel of live candles for the symbol. The
	// channel is closed when ctx is cancelled.
	Subscribe(ctx context.Context, symbol string) (<-chan domain.Candle, error)
}
