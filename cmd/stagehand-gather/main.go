package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"stagehand/internal/config"
	"stagehand/internal/feed"
	"stagehand/internal/store"
	"stagehand/internal/util"
)

func main() {
	var (
		symbols = flag.String("symbols", "", "comma-separated symbols to backfill (required)")
		days    = flag.Int("days", 7, "days of one-minute history to fetch")
	)
	flag.Parse()

	if *symbols == "" {
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

	if cfg.Alpaca.APIKey == "" {
		log.Fatal("alpaca credentials required for backfill (set APCA_API_KEY_ID)")
	}

	ps := store.NewParquetStore(cfg.Storage.DataDir)
	backfiller := feed.NewBackfiller(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret, cfg.Alpaca.DataURL, ps)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -*days)

	list := strings.Split(*symbols, ",")
	for i := range list {
		list[i] = strings.ToUpper(strings.TrimSpace(list[i]))
	}

	if err := backfiller.Run(ctx, list, start, end); err != nil {
		log.Fatalf("backfill error: %v", err)
	}
}
