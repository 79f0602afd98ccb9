// Package leaderboard ranks show results and formats them for terminal
// display.
package leaderboard

import (
	"fmt"
	"strings"

	"stagehand/internal/domain"
)

// Billing tiers by leaderboard rank.
const (
	TierHeadliner  = "HEADLINER"
	TierMainAct    = "MAIN ACT"
	TierOpeningAct = "OPENING ACT"
	TierEnsemble   = "ENSEMBLE"
)

// Tier returns the billing tier for a leaderboard rank (1-based).
func Tier(rank int) string {
	switch {
	case rank == 1:
		return TierHeadliner
	case rank <= 3:
		return TierMainAct
	case rank <= 10:
		return TierOpeningAct
	default:
		return TierEnsemble
	}
}

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatMoney formats a dollar amount, using K/M suffixes for large values.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	switch {
	case v >= 1e6:
		return fmt.Sprintf("%s$%.1fM", sign, v/1e6)
	case v >= 1e4:
		return fmt.Sprintf("%s$%.1fK", sign, v/1e3)
	default:
		return fmt.Sprintf("%s$%.2f", sign, v)
	}
}

// FormatPnL formats a profit-and-loss figure with an explicit sign.
func FormatPnL(v float64) string {
	if v >= 0 {
		return "+" + FormatMoney(v)
	}
	return FormatMoney(v)
}

// FormatWinRate formats a win-rate percentage.
func FormatWinRate(v float64) string {
	return fmt.Sprintf("%.0f%%", v)
}

// Row is one display-ready leaderboard line.
type Row struct {
	Rank    int
	Tier    string
	Name    string
	PnL     string
	WinRate string
	Trades  string
	Sharpe  string
}

// Rows converts ranked entries into display rows.
func Rows(entries []domain.LeaderboardEntry) []Row {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, Row{
			Rank:    e.Rank,
			Tier:    Tier(e.Rank),
			Name:    e.Name,
			PnL:     FormatPnL(e.PnL),
			WinRate: FormatWinRate(e.WinRate),
			Trades:  FormatInt(e.Trades),
			Sharpe:  fmt.Sprintf("%.2f", e.Sharpe),
		})
	}
	return rows
}
