package leaderboard

import (
	"testing"

	"stagehand/internal/domain"
)

func TestTier(t *testing.T) {
	cases := []struct {
		rank int
		want string
	}{
		{1, TierHeadliner},
		{2, TierMainAct},
		{3, TierMainAct},
		{4, TierOpeningAct},
		{10, TierOpeningAct},
		{11, TierEnsemble},
	}
	for _, c := range cases {
		if got := Tier(c.rank); got != c.want {
			t.Errorf("Tier(%d) = %q, want %q", c.rank, got, c.want)
		}
	}
}

func TestFormatInt(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, c := range cases {
		if got := FormatInt(c.n); got != c.want {
			t.Errorf("FormatInt(%d) = %q, want %q", c.n, got, c.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{12.5, "$12.50"},
		{9999, "$9999.00"},
		{10000, "$10.0K"},
		{2500000, "$2.5M"},
		{-340.25, "-$340.25"},
	}
	for _, c := range cases {
		if got := FormatMoney(c.v); got != c.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", c.v, got, c.want)
		}
	}
}

func TestFormatPnL(t *testing.T) {
	if got := FormatPnL(340); got != "+$340.00" {
		t.Errorf("FormatPnL(340) = %q, want +$340.00", got)
	}
	if got := FormatPnL(-60); got != "-$60.00" {
		t.Errorf("FormatPnL(-60) = %q, want -$60.00", got)
	}
}

func TestRows(t *testing.T) {
	entries := []domain.LeaderboardEntry{
		{Rank: 1, Name: "ben", PnL: 340, WinRate: 70, Trades: 12, Sharpe: 1.41},
		{Rank: 2, Name: "ava", PnL: -60, WinRate: 25, Trades: 4, Sharpe: -0.2},
	}
	rows := Rows(entries)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Tier != TierHeadliner || rows[0].PnL != "+$340.00" {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Tier != TierMainAct || rows[1].PnL != "-$60.00" {
		t.Errorf("row 1 = %+v", rows[1])
	}
	if rows[1].Sharpe != "-0.20" {
		t.Errorf("sharpe = %q, want -0.20", rows[1].Sharpe)
	}
}
