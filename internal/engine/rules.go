// Package engine evaluates assembled block strategies: entry and exit rule
// checks, position sizing, the bar-by-bar backtest driver, and the
// single-step evaluator used by live deployments.
//
// Everything in this package is pure and allocation-local. A caller may
// run any number of evaluations concurrently over different inputs.
package engine

import (
	"stagehand/internal/blocks"
	"stagehand/internal/domain"
	"stagehand/internal/indicator"
)

// EvaluateEntry reports whether the strategy's entry blocks agree that a
// position should be opened against the given trailing price window.
//
// Semantics: with fewer than two closes, or with no entry-category blocks
// at all, the answer is false. Otherwise every entry block's condition must
// hold (AND), checked in list order with short-circuiting. Entry blocks
// with an unrecognized ID pass automatically.
func EvaluateEntry(strategyBlocks []domain.StrategyBlock, window []domain.Candle) bool {
	if len(window) < 2 {
		return false
	}
	closes := make([]float64, len(window))
	for i, c := range window {
		closes[i] = c.Close
	}

	hasEntry := false
	for _, b := range strategyBlocks {
		if b.Category != domain.CategoryEntry {
			continue
		}
		hasEntry = true

		switch b.ID {
		case blocks.IDRSIGate:
			rsi := indicator.RSI(closes, indicator.DefaultRSIPeriod)
			if rsi >= b.Param("threshold", 30) {
				return false
			}
		case blocks.IDMACross:
			fast, fastOK := indicator.SMA(closes, int(b.Param("fast", 9)))
			slow, slowOK := indicator.SMA(closes, int(b.Param("slow", 21)))
			if !fastOK || !slowOK || fast <= slow {
				return false
			}
		case blocks.IDMACDSignal:
			res := indicator.MACD(closes,
				int(b.Param("fast", indicator.DefaultMACDFast)),
				int(b.Param("slow", indicator.DefaultMACDSlow)),
				int(b.Param("signal", indicator.DefaultMACDSignal)))
			if res.MACD <= 0 {
				return false
			}
		default:
			// Unknown entry blocks are non-blocking.
		}
	}
	return hasEntry
}

// defaultSizingPct is the fraction of balance committed when no
// position-size block is present.
const defaultSizingPct = 10

// PositionSize returns the currency amount to commit to a new position:
// balance times the position-size block's percentage, or 10% of balance
// when the strategy has no such block. Only the first position-size block
// is consulted.
func PositionSize(strategyBlocks []domain.StrategyBlock, balance float64) float64 {
	pct := float64(defaultSizingPct)
	for _, b := range strategyBlocks {
		if b.ID == blocks.IDPositionSize {
			pct = b.Param("percentage", defaultSizingPct)
			break
		}
	}
	return balance * (pct / 100)
}

// ExitCheck is the outcome of scanning the exit rules for an open position.
// PnLPct is always populated, whether or not an exit fired.
type ExitCheck struct {
	ShouldExit bool
	Reason     domain.ExitReason
	PnLPct     float64
}

// CheckExit scans the strategy's blocks in list order and returns the first
// exit rule that fires for the open position, along with the current
// percentage P&L.
//
// The scan deliberately covers ALL blocks, not just defense-category ones:
// a stop-loss block filed under a creative category still protects the
// position. First match wins, so a stop-loss listed before a take-profit
// pre-empts it even when both thresholds are crossed on the same bar. The
// trailing-stop rule has no high-water mark here; it triggers exactly
// like a stop-loss on the configured percentage.
func CheckExit(strategyBlocks []domain.StrategyBlock, entryPrice, currentPrice float64) ExitCheck {
	pnlPct := (currentPrice - entryPrice) / entryPrice * 100

	for _, b := range strategyBlocks {
		switch b.ID {
		case blocks.IDStopLoss:
			if pnlPct <= -b.Param("percentage", 2) {
				return ExitCheck{ShouldExit: true, Reason: domain.ReasonStopLoss, PnLPct: pnlPct}
			}
		case blocks.IDTakeProfit:
			if pnlPct >= b.Param("percentage", 5) {
				return ExitCheck{ShouldExit: true, Reason: domain.ReasonTakeProfit, PnLPct: pnlPct}
			}
		case blocks.IDTrailingStop:
			if pnlPct <= -b.Param("percentage", 3) {
				return ExitCheck{ShouldExit: true, Reason: domain.ReasonTrailingStop, PnLPct: pnlPct}
			}
		}
	}
	return ExitCheck{PnLPct: pnlPct}
}
