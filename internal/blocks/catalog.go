// Package blocks defines the catalog of strategy blocks players can pick
// from, and validates assembled strategies against it.
package blocks

import (
	"fmt"

	"stagehand/internal/domain"
)

// Block rule identifiers. The engine switches on these.
const (
	IDRSIGate      = "rsi-gate"
	IDMACross      = "ma-cross"
	IDMACDSignal   = "macd-signal"
	IDStopLoss     = "stop-loss"
	IDTakeProfit   = "take-profit"
	IDTrailingStop = "trailing-stop"
	IDPositionSize = "position-size"
)

// Definition describes one catalog entry: the rule it selects, its category,
// the display copy shown in the builder, and the default parameters.
type Definition struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Category      domain.BlockCategory `json:"category"`
	Description   string               `json:"description"`
	DefaultParams map[string]float64   `json:"params"`
}

// Catalog is the full set of blocks, in builder display order.
var Catalog = []Definition{
	{
		ID:            IDRSIGate,
		Name:          "RSI Momentum",
		Category:      domain.CategoryEntry,
		Description:   "A classic move! Enter the stage when momentum shifts.",
		DefaultParams: map[string]float64{"threshold": 30},
	},
	{
		ID:            IDMACross,
		Name:          "Signal Cross",
		Category:      domain.CategoryEntry,
		Description:   "Wait for the perfect intersection before you debut.",
		DefaultParams: map[string]float64{"fast": 9, "slow": 21},
	},
	{
		ID:            IDMACDSignal,
		Name:          "Trend Diver",
		Category:      domain.CategoryEntry,
		Description:   "Dive into the trend when the signals diverge.",
		DefaultParams: map[string]float64{"fast": 12, "slow": 26, "signal": 9},
	},
	{
		ID:            IDStopLoss,
		Name:          "Safety Net",
		Category:      domain.CategoryDefense,
		Description:   "Keep your routine safe by exiting at a set threshold.",
		DefaultParams: map[string]float64{"percentage": 2},
	},
	{
		ID:            IDTakeProfit,
		Name:          "Standing Ovation",
		Category:      domain.CategoryDefense,
		Description:   "Lock in your score when you hit your target gain!",
		DefaultParams: map[string]float64{"percentage": 5},
	},
	{
		ID:            IDTrailingStop,
		Name:          "Spotlight Follower",
		Category:      domain.CategoryDefense,
		Description:   "Stay in the spotlight, but keep a safety net behind you.",
		DefaultParams: map[string]float64{"percentage": 3},
	},
	{
		ID:            IDPositionSize,
		Name:          "Stage Manager",
		Category:      domain.CategorySizing,
		Description:   "Decide how much of the stage you want to own.",
		DefaultParams: map[string]float64{"percentage": 10},
	},
}

// CategoryLabels maps categories to their builder display labels.
var CategoryLabels = map[domain.BlockCategory]string{
	domain.CategoryEntry:   "Inbound Moves",
	domain.CategoryDefense: "Safety Nets",
	domain.CategorySizing:  "Stage Presence",
}

// requiredParams lists the parameter keys each rule needs to evaluate.
var requiredParams = map[string][]string{
	IDRSIGate:      {"threshold"},
	IDMACross:      {"fast", "slow"},
	IDMACDSignal:   {},
	IDStopLoss:     {"percentage"},
	IDTakeProfit:   {"percentage"},
	IDTrailingStop: {"percentage"},
	IDPositionSize: {"percentage"},
}

// Lookup returns the catalog definition for a block ID. The second return
// value indicates whether the ID is known.
func Lookup(id string) (Definition, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Validate checks a strategy against the catalog: every known block must
// carry its required parameter keys, and its category must match the
// catalog. Unknown block IDs are allowed: the engine treats them as
// no-ops, so rejecting them here would change evaluation behavior.
func Validate(s domain.Strategy) error {
	if s.Name == "" {
		return fmt.Errorf("strategy has no name")
	}
	for i, b := range s.Blocks {
		def, known := Lookup(b.ID)
		if !known {
			continue
		}
		if b.Category != def.Category {
			return fmt.Errorf("block %d (%s): category %q, catalog says %q", i, b.ID, b.Category, def.Category)
		}
		for _, key := range requiredParams[b.ID] {
			if _, ok := b.Params[key]; !ok {
				return fmt.Errorf("block %d (%s): missing required param %q", i, b.ID, key)
			}
		}
	}
	return nil
}

// Normalize fills in catalog default parameters for any known block that
// omits them, returning a copy. The input strategy is not modified.
func Normalize(s domain.Strategy) domain.Strategy {
	out := s
	out.Blocks = make([]domain.StrategyBlock, len(s.Blocks))
	for i, b := range s.Blocks {
		nb := b
		def, known := Lookup(b.ID)
		if known {
			params := make(map[string]float64, len(def.DefaultParams))
			for k, v := range def.DefaultParams {
				params[k] = v
			}
			for k, v := range b.Params {
				params[k] = v
			}
			nb.Params = params
			if nb.Category == "" {
				nb.Category = def.Category
			}
		}
		out.Blocks[i] = nb
	}
	return out
}
