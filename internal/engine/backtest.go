package engine

import (
	"math"

	"stagehand/internal/domain"
)

// Backtest driver constants: bars 0..warmupBars-1 are skipped so the
// indicators have history, and the evaluation window never reaches further
// back than lookbackBars bars behind the current one.
const (
	warmupBars   = 20
	lookbackBars = 50
)

// DefaultStartingBalance is used when the caller passes a non-positive
// starting balance.
const DefaultStartingBalance = 10000

// Run walks the candle series bar by bar, applies the strategy's entry and
// exit rules, and aggregates realized trades into a BacktestResult.
//
// At most one position is open at a time. A position still open when the
// series ends is left unrealized: it produces no EXIT trade and the final
// balance excludes it. All state is local to the call, so Run is safe to
// invoke concurrently over different inputs.
func Run(strategyBlocks []domain.StrategyBlock, candles []domain.Candle, startingBalance float64) domain.BacktestResult {
	if startingBalance <= 0 {
		startingBalance = DefaultStartingBalance
	}

	trades := []domain.Trade{}
	balance := startingBalance
	maxBalance := startingBalance
	maxDrawdown := 0.0
	var position *domain.Position

	for i := warmupBars; i < len(candles); i++ {
		start := i - lookbackBars
		if start < 0 {
			start = 0
		}
		window := candles[start : i+1]
		currentPrice := candles[i].Close

		if position == nil {
			if EvaluateEntry(strategyBlocks, window) {
				size := PositionSize(strategyBlocks, balance)
				position = &domain.Position{
					EntryPrice: currentPrice,
					Size:       size,
					EntryIndex: i,
				}
				trades = append(trades, domain.Trade{
					Action:    domain.ActionEnter,
					Price:     currentPrice,
					Size:      size,
					Index:     i,
					Timestamp: candles[i].Timestamp,
				})
			}
			continue
		}

		check := CheckExit(strategyBlocks, position.EntryPrice, currentPrice)
		if !check.ShouldExit {
			continue
		}

		profit := position.Size * (check.PnLPct / 100)
		balance += profit
		if balance > maxBalance {
			maxBalance = balance
		}
		dd := (maxBalance - balance) / maxBalance * 100
		if dd > maxDrawdown {
			maxDrawdown = dd
		}

		trades = append(trades, domain.Trade{
			Action:    domain.ActionExit,
			Reason:    check.Reason,
			Price:     currentPrice,
			PnL:       profit,
			PnLPct:    check.PnLPct,
			Index:     i,
			Timestamp: candles[i].Timestamp,
		})
		position = nil
	}

	wins, totalExits := 0, 0
	for _, t := range trades {
		if t.Action != domain.ActionExit {
			continue
		}
		totalExits++
		if t.PnL > 0 {
			wins++
		}
	}
	winRate := 0.0
	if totalExits > 0 {
		winRate = math.Round(float64(wins) / float64(totalExits) * 100)
	}

	return domain.BacktestResult{
		Trades:      trades,
		Balance:     balance,
		TotalPnL:    balance - startingBalance,
		TradeCount:  totalExits,
		WinRate:     winRate,
		MaxDrawdown: math.Round(maxDrawdown*10) / 10,
		Sharpe:      sharpe(trades),
	}
}

// sharpe computes the dimensionless return/volatility score over the EXIT
// trades' percentage returns: mean divided by the Bessel-corrected sample
// standard deviation, rounded to two decimals. It is not annualized and
// subtracts no risk-free rate. It exists to rank routines, not to price
// them. Fewer than two returns, or zero variance, yields 0.
func sharpe(trades []domain.Trade) float64 {
	var returns []float64
	for _, t := range trades {
		if t.Action == domain.ActionExit {
			returns = append(returns, t.PnLPct)
		}
	}
	if len(returns) < 2 {
		return 0
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)

	stdDev := math.Sqrt(variance)
	if stdDev == 0 {
		return 0
	}
	return math.Round(mean/stdDev*100) / 100
}
