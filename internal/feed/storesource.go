package feed

import (
	"context"
	"fmt"
	"time"

	"stagehand/internal/domain"
	"stagehand/internal/store"
)

// Compile-time interface check.
var _ CandleSource = (*StoreSource)(nil)

// StoreSource serves previously backfilled candles from the candle store.
// It has no live feed; Subscribe returns an error.
type StoreSource struct {
	store store.CandleStore
}

// NewStoreSource creates a StoreSource reading from the given store.
func NewStoreSource(cs store.CandleStore) *StoreSource {
	return &StoreSource{store: cs}
}

// Name returns the source identifier.
func (s *StoreSource) Name() string { return "store" }

// History returns the most recent limit stored candles for the symbol.
func (s *StoreSource) History(ctx context.Context, symbol string, limit int) ([]domain.Candle, error) {
	// One year back covers any realistic backtest window.
	end := time.Now().UTC()
	start := end.AddDate(-1, 0, 0)

	candles, err := s.store.ReadCandles(ctx, symbol, start, end)
	if err != nil {
		return nil, err
	}
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// Subscribe is not supported for stored data.
func (s *StoreSource) Subscribe(_ context.Context, symbol string) (<-chan domain.Candle, error) {
	return nil, fmt.Errorf("store source has no live feed for %s", symbol)
}
