package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"stagehand/internal/domain"
)

func testCandles(start time.Time, n int) []domain.Candle {
	candles := make([]domain.Candle, n)
	price := 100.0
	for i := range candles {
		candles[i] = domain.Candle{
			Timestamp: start.Add(time.Duration(i) * time.Minute).UnixMilli(),
			Open:      price,
			High:      price + 1,
			Low:       price - 1,
			Close:     price + 0.5,
			Volume:    10,
		}
		price += 0.5
	}
	return candles
}

func TestParquetStorePath(t *testing.T) {
	ps := NewParquetStore("/data")

	got := ps.candlePath("vix75", 2026)
	want := filepath.Join("/data", "candles", "VIX75", "2026.parquet")
	if got != want {
		t.Errorf("candlePath mismatch:\n  got  %s\n  want %s", got, want)
	}
}

func TestParquetStoreWriteRead(t *testing.T) {
	ctx := context.Background()
	ps := NewParquetStore(t.TempDir())

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	candles := testCandles(start, 10)
	if err := ps.WriteCandles(ctx, "VIX75", candles); err != nil {
		t.Fatalf("WriteCandles: %v", err)
	}

	got, err := ps.ReadCandles(ctx, "VIX75", start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("ReadCandles: %v", err)
	}
	if len(got) != len(candles) {
		t.Fatalf("got %d candles, want %d", len(got), len(candles))
	}
	for i, c := range got {
		if c.Timestamp != candles[i].Timestamp {
			t.Errorf("candle %d: timestamp %d, want %d", i, c.Timestamp, candles[i].Timestamp)
		}
		if c.Close != candles[i].Close {
			t.Errorf("candle %d: close %v, want %v", i, c.Close, candles[i].Close)
		}
	}

	// Range filter should trim to the requested window.
	partial, err := ps.ReadCandles(ctx, "VIX75", start.Add(2*time.Minute), start.Add(5*time.Minute))
	if err != nil {
		t.Fatalf("ReadCandles partial: %v", err)
	}
	if len(partial) != 4 {
		t.Errorf("partial read: got %d candles, want 4", len(partial))
	}
}

func TestParquetStoreMergeDedup(t *testing.T) {
	ctx := context.Background()
	ps := NewParquetStore(t.TempDir())

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	first := testCandles(start, 5)
	if err := ps.WriteCandles(ctx, "VIX75", first); err != nil {
		t.Fatalf("first write: %v", err)
	}

	// Overlapping batch: same timestamps with revised closes, plus two new.
	second := testCandles(start.Add(3*time.Minute), 4)
	for i := range second {
		second[i].Close = 999
	}
	if err := ps.WriteCandles(ctx, "VIX75", second); err != nil {
		t.Fatalf("second write: %v", err)
	}

	got, err := ps.ReadCandles(ctx, "VIX75", start, start.Add(time.Hour))
	if err != nil {
		t.Fatalf("ReadCandles: %v", err)
	}
	if len(got) != 7 {
		t.Fatalf("merged read: got %d candles, want 7", len(got))
	}
	// New records replace old ones at the same timestamp.
	if got[3].Close != 999 {
		t.Errorf("candle 3 close = %v, want 999 (incoming record should win)", got[3].Close)
	}
	// Ascending order after merge.
	for i := 1; i < len(got); i++ {
		if got[i].Timestamp <= got[i-1].Timestamp {
			t.Errorf("candles out of order at %d: %d <= %d", i, got[i].Timestamp, got[i-1].Timestamp)
		}
	}
}

func TestParquetStoreListSymbols(t *testing.T) {
	ctx := context.Background()
	ps := NewParquetStore(t.TempDir())

	symbols, err := ps.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols empty: %v", err)
	}
	if len(symbols) != 0 {
		t.Errorf("expected no symbols, got %v", symbols)
	}

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, sym := range []string{"VIX75", "BOOM500", "CRASH300"} {
		if err := ps.WriteCandles(ctx, sym, testCandles(start, 2)); err != nil {
			t.Fatalf("WriteCandles %s: %v", sym, err)
		}
	}

	symbols, err = ps.ListSymbols(ctx)
	if err != nil {
		t.Fatalf("ListSymbols: %v", err)
	}
	want := []string{"BOOM500", "CRASH300", "VIX75"}
	if len(symbols) != len(want) {
		t.Fatalf("got %v, want %v", symbols, want)
	}
	for i := range want {
		if symbols[i] != want[i] {
			t.Errorf("symbol %d: got %s, want %s", i, symbols[i], want[i])
		}
	}
}

func openTestDB(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStrategyRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	strat := domain.Strategy{
		Name: "comeback-tour",
		Blocks: []domain.StrategyBlock{
			{ID: "rsi-gate", Category: domain.CategoryEntry, Params: map[string]float64{"threshold": 30, "period": 14}},
			{ID: "stop-loss", Category: domain.CategoryDefense, Params: map[string]float64{"percentage": 2}},
		},
	}
	if err := s.SaveStrategy(ctx, strat); err != nil {
		t.Fatalf("SaveStrategy: %v", err)
	}

	got, err := s.GetStrategy(ctx, "comeback-tour")
	if err != nil {
		t.Fatalf("GetStrategy: %v", err)
	}
	if got.Name != strat.Name {
		t.Errorf("name = %q, want %q", got.Name, strat.Name)
	}
	if len(got.Blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(got.Blocks))
	}
	if got.Blocks[0].Params["threshold"] != 30 {
		t.Errorf("threshold = %v, want 30", got.Blocks[0].Params["threshold"])
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Errorf("timestamps not set: created=%v updated=%v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestSQLiteStrategyUpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	strat := domain.Strategy{
		Name:   "encore",
		Blocks: []domain.StrategyBlock{{ID: "macd-signal", Category: domain.CategoryEntry}},
	}
	if err := s.SaveStrategy(ctx, strat); err != nil {
		t.Fatalf("first save: %v", err)
	}
	first, err := s.GetStrategy(ctx, "encore")
	if err != nil {
		t.Fatalf("get after first save: %v", err)
	}

	strat.Blocks = append(strat.Blocks, domain.StrategyBlock{ID: "take-profit", Category: domain.CategoryDefense})
	if err := s.SaveStrategy(ctx, strat); err != nil {
		t.Fatalf("second save: %v", err)
	}
	second, err := s.GetStrategy(ctx, "encore")
	if err != nil {
		t.Fatalf("get after second save: %v", err)
	}

	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on update: %v -> %v", first.CreatedAt, second.CreatedAt)
	}
	if len(second.Blocks) != 2 {
		t.Errorf("got %d blocks after update, want 2", len(second.Blocks))
	}
}

func TestSQLiteStrategyListAndDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	for _, name := range []string{"opener", "headliner"} {
		err := s.SaveStrategy(ctx, domain.Strategy{
			Name:   name,
			Blocks: []domain.StrategyBlock{{ID: "ma-cross", Category: domain.CategoryEntry}},
		})
		if err != nil {
			t.Fatalf("SaveStrategy %s: %v", name, err)
		}
	}

	all, err := s.ListStrategies(ctx)
	if err != nil {
		t.Fatalf("ListStrategies: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("got %d strategies, want 2", len(all))
	}

	if err := s.DeleteStrategy(ctx, "opener"); err != nil {
		t.Fatalf("DeleteStrategy: %v", err)
	}
	if _, err := s.GetStrategy(ctx, "opener"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected sql.ErrNoRows after delete, got %v", err)
	}
}

func TestSQLiteResultRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	res := domain.BacktestResult{
		Trades: []domain.Trade{
			{Action: domain.ActionEnter, Price: 100, Size: 1000, Index: 21},
			{Action: domain.ActionExit, Reason: domain.ReasonTakeProfit, Price: 106, PnL: 60, PnLPct: 6, Index: 30},
		},
		Balance:     10060,
		TotalPnL:    60,
		TradeCount:  2,
		WinRate:     100,
		MaxDrawdown: 0,
		Sharpe:      1.2,
	}
	id, err := s.SaveResult(ctx, "comeback-tour", "VIX75", res)
	if err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if id == 0 {
		t.Fatal("SaveResult returned zero ID")
	}

	got, err := s.GetResult(ctx, id)
	if err != nil {
		t.Fatalf("GetResult: %v", err)
	}
	if got.Balance != res.Balance || got.TotalPnL != res.TotalPnL || got.Sharpe != res.Sharpe {
		t.Errorf("result mismatch: got %+v, want %+v", got, res)
	}
	if len(got.Trades) != 2 {
		t.Fatalf("got %d trades, want 2", len(got.Trades))
	}
	if got.Trades[1].Reason != domain.ReasonTakeProfit {
		t.Errorf("trade reason = %q, want %q", got.Trades[1].Reason, domain.ReasonTakeProfit)
	}
}

func TestSQLiteListResults(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	for i := 0; i < 3; i++ {
		res := domain.BacktestResult{Balance: 10000 + float64(i), TotalPnL: float64(i)}
		if _, err := s.SaveResult(ctx, "comeback-tour", "VIX75", res); err != nil {
			t.Fatalf("SaveResult %d: %v", i, err)
		}
	}
	if _, err := s.SaveResult(ctx, "encore", "VIX75", domain.BacktestResult{Balance: 9000}); err != nil {
		t.Fatalf("SaveResult other: %v", err)
	}

	runs, err := s.ListResults(ctx, "comeback-tour", 2)
	if err != nil {
		t.Fatalf("ListResults: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2 (limit)", len(runs))
	}
	// Newest first: the last insert carries the highest PnL.
	if runs[0].TotalPnL != 2 {
		t.Errorf("first run PnL = %v, want 2", runs[0].TotalPnL)
	}

	all, err := s.ListResults(ctx, "", 10)
	if err != nil {
		t.Fatalf("ListResults all: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("got %d runs across strategies, want 4", len(all))
	}
}

func TestSQLiteLeaderboardKeepsBestScore(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	if err := s.SubmitScore(ctx, domain.LeaderboardEntry{Name: "ava", PnL: 250, WinRate: 60, Trades: 10}); err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	// Worse score is ignored.
	if err := s.SubmitScore(ctx, domain.LeaderboardEntry{Name: "ava", PnL: -40, WinRate: 20, Trades: 4}); err != nil {
		t.Fatalf("SubmitScore worse: %v", err)
	}
	// Better score replaces.
	if err := s.SubmitScore(ctx, domain.LeaderboardEntry{Name: "ava", PnL: 400, WinRate: 70, Trades: 12}); err != nil {
		t.Fatalf("SubmitScore better: %v", err)
	}

	top, err := s.TopScores(ctx, 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != 1 {
		t.Fatalf("got %d entries, want 1", len(top))
	}
	if top[0].PnL != 400 {
		t.Errorf("PnL = %v, want 400 (best score kept)", top[0].PnL)
	}
	if top[0].WinRate != 70 {
		t.Errorf("WinRate = %v, want 70", top[0].WinRate)
	}
}

func TestSQLiteLeaderboardRanking(t *testing.T) {
	ctx := context.Background()
	s := openTestDB(t)

	scores := map[string]float64{"ava": 120, "ben": 340, "cleo": -15}
	for name, pnl := range scores {
		if err := s.SubmitScore(ctx, domain.LeaderboardEntry{Name: name, PnL: pnl}); err != nil {
			t.Fatalf("SubmitScore %s: %v", name, err)
		}
	}

	top, err := s.TopScores(ctx, 2)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("got %d entries, want 2 (limit)", len(top))
	}
	if top[0].Name != "ben" || top[0].Rank != 1 {
		t.Errorf("rank 1: got %s/%d, want ben/1", top[0].Name, top[0].Rank)
	}
	if top[1].Name != "ava" || top[1].Rank != 2 {
		t.Errorf("rank 2: got %s/%d, want ava/2", top[1].Name, top[1].Rank)
	}
}
