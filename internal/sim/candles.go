// Package sim generates a synthetic candle series for rehearsal
// deployments when no live market feed is configured. The walk combines a
// slow sinusoidal trend with uniform noise, which looks plausible on a
// chart and reliably produces both winning and losing routines.
package sim

import (
	"math"
	"math/rand"
	"time"

	"stagehand/internal/domain"
)

const (
	volatility  = 0.003
	trendPeriod = 20
)

// Generator produces successive simulated candles from a seeded random
// source. It is not safe for concurrent use; give each deployment its own
// Generator.
type Generator struct {
	rng   *rand.Rand
	price float64
	tick  int
	now   func() time.Time
}

// NewGenerator creates a Generator starting at basePrice. The same seed
// and base price always produce the same series.
func NewGenerator(basePrice float64, seed int64) *Generator {
	return &Generator{
		rng:   rand.New(rand.NewSource(seed)),
		price: basePrice,
		now:   time.Now,
	}
}

// Next produces the next candle in the series. The close becomes the next
// candle's open.
func (g *Generator) Next() domain.Candle {
	trend := math.Sin(float64(g.tick)/trendPeriod) * 0.001
	change := (g.rng.Float64()-0.5)*2*volatility + trend

	open := g.price
	close := open * (1 + change)
	high := math.Max(open, close) * (1 + g.rng.Float64()*volatility)
	low := math.Min(open, close) * (1 - g.rng.Float64()*volatility)

	g.price = round2(close)
	g.tick++

	return domain.Candle{
		Timestamp: g.now().UnixMilli(),
		Open:      round2(open),
		High:      round2(high),
		Low:       round2(low),
		Close:     round2(close),
		Volume:    round2(g.rng.Float64() * 1000),
	}
}

// History produces n candles in one call, for seeding a warm-up window
// before live ticks start.
func (g *Generator) History(n int) []domain.Candle {
	out := make([]domain.Candle, n)
	for i := range out {
		out[i] = g.Next()
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
