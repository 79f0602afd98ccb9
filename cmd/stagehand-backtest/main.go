package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"stagehand/internal/config"
	"stagehand/internal/engine"
	"stagehand/internal/feed"
	"stagehand/internal/leaderboard"
	"stagehand/internal/store"
	"stagehand/internal/util"
)

func main() {
	var (
		strategyName = flag.String("strategy", "", "saved strategy name to run (required)")
		symbol       = flag.String("symbol", "VIX75", "symbol to backtest")
		candleCount  = flag.Int("candles", 500, "number of candles to run over")
		useStored    = flag.Bool("stored", false, "read candles from the parquet store instead of generating them")
		save         = flag.Bool("save", true, "persist the run result")
	)
	flag.Parse()

	if *strategyName == "" {
		flag.Usage()
		os.Exit(1)
	}

	cfgPath := "config/stagehand.yaml"
	if p := os.Getenv("STAGEHAND_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = config.Default()
	} else if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	util.SetDefault(util.NewLogger(cfg.Logging.Level, cfg.Logging.Format))

	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening sqlite store: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	strat, err := db.GetStrategy(ctx, *strategyName)
	if err != nil {
		log.Fatalf("loading strategy %q: %v", *strategyName, err)
	}

	var source feed.CandleSource
	if *useStored {
		source = feed.NewStoreSource(store.NewParquetStore(cfg.Storage.DataDir))
	} else {
		source = feed.NewSimSource(cfg.Simulation.BasePrice, cfg.Simulation.Seed, 0)
	}

	candles, err := source.History(ctx, *symbol, *candleCount)
	if err != nil {
		log.Fatalf("loading candles: %v", err)
	}
	if len(candles) == 0 {
		log.Fatalf("no candles available for %s", *symbol)
	}

	result := engine.Run(strat.Blocks, candles, cfg.Show.StartingBalance)

	fmt.Printf("strategy:  %s (%d blocks)\n", strat.Name, len(strat.Blocks))
	fmt.Printf("symbol:    %s (%d candles, source %s)\n", *symbol, len(candles), source.Name())
	fmt.Printf("balance:   %s -> %s\n",
		leaderboard.FormatMoney(cfg.Show.StartingBalance),
		leaderboard.FormatMoney(result.Balance))
	fmt.Printf("pnl:       %s\n", leaderboard.FormatPnL(result.TotalPnL))
	fmt.Printf("trades:    %d (win rate %s)\n", result.TradeCount, leaderboard.FormatWinRate(result.WinRate))
	fmt.Printf("drawdown:  %.1f%%\n", result.MaxDrawdown)
	fmt.Printf("sharpe:    %.2f\n", result.Sharpe)

	if *save {
		runID, err := db.SaveResult(ctx, strat.Name, *symbol, result)
		if err != nil {
			log.Fatalf("saving result: %v", err)
		}
		fmt.Printf("saved run #%d\n", runID)
	}
}
