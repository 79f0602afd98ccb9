package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"stagehand/internal/config"
	"stagehand/internal/feed"
	"stagehand/internal/httpapi"
	"stagehand/internal/live"
	"stagehand/internal/store"
	"stagehand/internal/util"
)

// The synthetic index every show runs on unless configured otherwise.
const defaultSymbol = "VIX75"

func main() {
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

	logger := util.NewLogger(cfg.Logging.Level, cfg.Logging.Format)
	util.SetDefault(logger)

	// Storage.
	db, err := store.NewSQLiteStore(cfg.Storage.SQLitePath)
	if err != nil {
		log.Fatalf("opening sqlite store: %v", err)
	}
	defer db.Close()

	// Candle source: Alpaca when credentials are configured, otherwise the
	// synthetic market.
	var source feed.CandleSource
	if cfg.Alpaca.APIKey != "" {
		source = feed.NewAlpacaSource(cfg.Alpaca.APIKey, cfg.Alpaca.APISecret,
			cfg.Alpaca.DataURL, time.Duration(cfg.Simulation.IntervalS)*time.Second)
	} else {
		source = feed.NewSimSource(cfg.Simulation.BasePrice, cfg.Simulation.Seed,
			time.Duration(cfg.Simulation.IntervalS)*time.Second)
	}
	logger.Info("candle source ready", "source", source.Name())

	manager := live.NewManager(source, defaultSymbol, cfg.Show.StartingBalance)
	defer manager.StopAll()

	api := httpapi.NewServer(db, db, db, source, manager, defaultSymbol,
		cfg.Show.StartingBalance, cfg.Show.LeaderboardLimit, logger)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: api.Handler(),
	}

	grpcServer := grpc.NewServer()
	live.NewServer(manager, logger).RegisterGRPC(grpcServer)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logger.Info("HTTP API listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.GRPCPort)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			logger.Error("gRPC listen error", "error", err)
			return
		}
		logger.Info("gRPC show feed listening", "addr", addr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	grpcServer.GracefulStop()
}
