package engine

import (
	"fmt"
	"strings"

	"stagehand/internal/domain"
)

// Stepper evaluates a strategy one candle at a time for live deployments.
// It holds the open-position state between steps; everything else is
// recomputed from the window the caller supplies.
//
// A Stepper is NOT safe for concurrent use. Live sessions serialize calls
// to Step per strategy instance, which is the intended discipline: one
// evaluation completes before the next candle is processed, and stopping a
// deployment simply stops delivering candles.
type Stepper struct {
	blocks     []domain.StrategyBlock
	position   *domain.Position
	pnl        float64
	tradeCount int
}

// NewStepper creates a Stepper for the given block list. The blocks are
// treated as an immutable snapshot.
func NewStepper(strategyBlocks []domain.StrategyBlock) *Stepper {
	return &Stepper{blocks: strategyBlocks}
}

// Position returns the currently open position, or nil when flat.
func (s *Stepper) Position() *domain.Position { return s.position }

// PnL returns the cumulative realized profit and loss.
func (s *Stepper) PnL() float64 { return s.pnl }

// TradeCount returns the number of positions opened so far.
func (s *Stepper) TradeCount() int { return s.tradeCount }

// Step evaluates the strategy against the trailing window, whose last
// candle is the newest. It returns an ENTER decision when flat and all
// entry conditions agree, an EXIT decision when an exit rule fires for the
// open position, and HOLD otherwise. balance is used for sizing new
// positions.
func (s *Stepper) Step(window []domain.Candle, balance float64) domain.Decision {
	if len(window) < 2 {
		return domain.Decision{Action: domain.DecisionHold, Message: "Gathering market intel..."}
	}
	currentPrice := window[len(window)-1].Close

	if s.position == nil {
		if EvaluateEntry(s.blocks, window) {
			size := PositionSize(s.blocks, balance)
			s.position = &domain.Position{EntryPrice: currentPrice, Size: size}
			s.tradeCount++
			return domain.Decision{
				Action:  domain.DecisionEnter,
				Price:   currentPrice,
				Size:    size,
				Message: "Gates opened! Entering position...",
			}
		}
		return domain.Decision{Action: domain.DecisionHold, Message: "Holding strong..."}
	}

	check := CheckExit(s.blocks, s.position.EntryPrice, currentPrice)
	if check.ShouldExit {
		profit := s.position.Size * (check.PnLPct / 100)
		s.pnl += profit
		s.position = nil
		return domain.Decision{
			Action:  domain.DecisionExit,
			Reason:  check.Reason,
			Price:   currentPrice,
			PnL:     profit,
			Message: fmt.Sprintf("%s! P&L: $%.2f", reasonTitle(check.Reason), profit),
		}
	}
	return domain.Decision{Action: domain.DecisionHold, Message: "Holding strong..."}
}

// reasonTitle renders an exit reason as display text ("stop_loss" →
// "Stop Loss").
func reasonTitle(r domain.ExitReason) string {
	words := strings.Split(string(r), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
