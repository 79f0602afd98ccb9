package feed

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"stagehand/internal/domain"
	"stagehand/internal/sim"
)

// Compile-time interface check.
var _ CandleSource = (*SimSource)(nil)

// SimSource serves candles from the synthetic market generator. One
// generator runs per subscribed symbol so each symbol gets its own
// continuous price path.
type SimSource struct {
	basePrice float64
	seed      int64
	interval  time.Duration
	log       *slog.Logger

	mu   sync.Mutex
	gens map[string]*sim.Generator
}

// NewSimSource creates a SimSource emitting one candle per interval.
func NewSimSource(basePrice float64, seed int64, interval time.Duration) *SimSource {
	if interval <= 0 {
		interval = time.Second
	}
	return &SimSource{
		basePrice: basePrice,
		seed:      seed,
		interval:  interval,
		log:       slog.Default().With("source", "sim"),
		gens:      make(map[string]*sim.Generator),
	}
}

// Name returns the source identifier.
func (s *SimSource) Name() string { return "sim" }

// generator returns the shared generator for a symbol, creating it on first
// use. The seed is offset by the symbol so different symbols walk different
// paths.
func (s *SimSource) generator(symbol string) *sim.Generator {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, ok := s.gens[symbol]
	if !ok {
		seed := s.seed
		for _, r := range symbol {
			seed = seed*31 + int64(r)
		}
		g = sim.NewGenerator(s.basePrice, seed)
		s.gens[symbol] = g
	}
	return g
}

// History generates the most recent limit candles for the symbol. The
// generator is shared with any active subscription, so the walk happens
// under the same lock as the ticker goroutine.
func (s *SimSource) History(_ context.Context, symbol string, limit int) ([]domain.Candle, error) {
	g := s.generator(symbol)
	s.mu.Lock()
	defer s.mu.Unlock()
	return g.History(limit), nil
}

// Subscribe emits one synthetic candle per interval until ctx is cancelled.
func (s *SimSource) Subscribe(ctx context.Context, symbol string) (<-chan domain.Candle, error) {
	g := s.generator(symbol)
	ch := make(chan domain.Candle, 1)

	go func() {
		defer close(ch)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				c := g.Next()
				s.mu.Unlock()

				select {
				case ch <- c:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	s.log.Debug("subscribed", "symbol", symbol, "interval", s.interval)
	return ch, nil
}
