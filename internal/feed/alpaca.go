package feed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"stagehand/internal/domain"
	"stagehand/internal/store"
	"stagehand/internal/util"
)

// Compile-time interface check.
var _ CandleSource = (*AlpacaSource)(nil)

// Alpaca free tier allows 200 requests per minute.
const alpacaRequestsPerMinute = 200

// AlpacaSource serves minute candles from the Alpaca market-data API. Live
// subscriptions poll the latest bar once per interval; the free data plan
// has no candle WebSocket for crypto pairs.
type AlpacaSource struct {
	client   *marketdata.Client
	interval time.Duration
	limiter  *util.RateLimiter
	log      *slog.Logger
}

// NewAlpacaSource creates an AlpacaSource with the given credentials.
// dataURL overrides the default market-data endpoint when non-empty.
func NewAlpacaSource(apiKey, apiSecret, dataURL string, interval time.Duration) *AlpacaSource {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &AlpacaSource{
		client:   marketdata.NewClient(opts),
		interval: interval,
		limiter:  util.NewRateLimiter(alpacaRequestsPerMinute),
		log:      slog.Default().With("source", "alpaca"),
	}
}

// Name returns the source identifier.
func (s *AlpacaSource) Name() string { return "alpaca" }

// History fetches the most recent limit one-minute bars for the symbol.
func (s *AlpacaSource) History(ctx context.Context, symbol string, limit int) ([]domain.Candle, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	end := time.Now().UTC()
	start := end.Add(-time.Duration(limit*3) * time.Minute)

	var bars []marketdata.Bar
	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		bars, err = s.client.GetBars(symbol, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneMin,
			Start:     start,
			End:       end,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("GetBars %s: %w", symbol, err)
	}

	candles := barsToCandles(bars)
	if len(candles) > limit {
		candles = candles[len(candles)-limit:]
	}
	return candles, nil
}

// Subscribe polls the latest bar once per interval and emits a candle
// whenever a new bar timestamp appears.
func (s *AlpacaSource) Subscribe(ctx context.Context, symbol string) (<-chan domain.Candle, error) {
	ch := make(chan domain.Candle, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		var lastTS int64
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			if err := s.limiter.Wait(ctx); err != nil {
				return
			}
			bar, err := s.client.GetLatestBar(symbol, marketdata.GetLatestBarRequest{})
			if err != nil {
				s.log.Warn("latest bar fetch failed", "symbol", symbol, "err", err)
				continue
			}
			if bar == nil {
				continue
			}

			c := barToCandle(*bar)
			if c.Timestamp == lastTS {
				continue
			}
			lastTS = c.Timestamp

			select {
			case ch <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

func barToCandle(b marketdata.Bar) domain.Candle {
	return domain.Candle{
		Timestamp: b.Timestamp.UnixMilli(),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    float64(b.Volume),
	}
}

func barsToCandles(bars []marketdata.Bar) []domain.Candle {
	candles := make([]domain.Candle, 0, len(bars))
	for _, b := range bars {
		candles = append(candles, barToCandle(b))
	}
	return candles
}

// ---------------------------------------------------------------------------
// Backfiller: bulk history download into the Parquet store.
// ---------------------------------------------------------------------------

// Backfiller downloads candle history for a set of symbols and persists it,
// so backtests can run against real market data without hitting the API.
type Backfiller struct {
	client  *marketdata.Client
	store   store.CandleStore
	limiter *util.RateLimiter
	log     *slog.Logger
}

// NewBackfiller creates a Backfiller writing to the given candle store.
func NewBackfiller(apiKey, apiSecret, dataURL string, cs store.CandleStore) *Backfiller {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &Backfiller{
		client:  marketdata.NewClient(opts),
		store:   cs,
		limiter: util.NewRateLimiter(alpacaRequestsPerMinute),
		log:     slog.Default().With("component", "backfill"),
	}
}

// Run fetches one-minute bars for each symbol over [start, end] and writes
// them to the store. Symbols are fetched in one multi-bar request per batch
// to stay under the data API rate limit.
func (b *Backfiller) Run(ctx context.Context, symbols []string, start, end time.Time) error {
	if len(symbols) == 0 {
		return nil
	}
	runStart := time.Now()

	if err := b.limiter.Wait(ctx); err != nil {
		return err
	}

	var multiBars map[string][]marketdata.Bar
	err := util.Retry(ctx, 3, time.Second, func() error {
		var err error
		multiBars, err = b.client.GetMultiBars(symbols, marketdata.GetBarsRequest{
			TimeFrame: marketdata.OneMin,
			Start:     start,
			End:       end,
		})
		return err
	})
	if err != nil {
		return fmt.Errorf("GetMultiBars: %w", err)
	}

	var total int
	for symbol, bars := range multiBars {
		candles := barsToCandles(bars)
		if len(candles) == 0 {
			continue
		}
		if err := b.store.WriteCandles(ctx, strings.ToUpper(symbol), candles); err != nil {
			return fmt.Errorf("writing candles for %s: %w", symbol, err)
		}
		total += len(candles)
		b.log.Info("backfilled", "symbol", symbol, "candles", len(candles))
	}

	b.log.Info("backfill complete",
		"symbols", len(symbols),
		"candles", total,
		"elapsed", time.Since(runStart).Round(time.Millisecond),
	)
	return nil
}
