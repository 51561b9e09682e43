// Package main - Entry point for the quote pricing server
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"quote-pricing/adapters/cache"
	"quote-pricing/adapters/constants"
	"quote-pricing/api"
	"quote-pricing/core/engine"
	"quote-pricing/internal/config"
	"quote-pricing/internal/logging"
)

const version = "1.0.0"

func main() {
	cfgPath := flag.String("config", "", "config file (JSON); QUOTE_* environment variables override it")
	addr := flag.String("addr", "", "listen address (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logging.Fatal("load config", zap.Error(err))
	}
	if err := logging.Initialize(cfg.Logging); err != nil {
		logging.Fatal("initialize logging", zap.Error(err))
	}
	defer logging.Sync()
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	if err := run(cfg); err != nil {
		logging.Error("server stopped", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := constants.LoadRegistry(cfg.Pricing)
	if err != nil {
		return err
	}
	table := tables.Active()

	store, err := cache.NewStore(ctx, cfg.Cache)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	server := api.NewServer(api.Options{
		Version: version,
		Tables:  tables,
		Quoter:  cache.NewQuoter(engine.New(), store, cfg.Cache.KeyPrefix),
		Metrics: reg,
	})

	logging.Info("quote pricing server starting",
		zap.String("version", version),
		zap.String("table_version", table.Version),
		zap.String("table_hash", table.Hash().Hex()),
		zap.String("cache", cfg.Cache.Backend),
	)

	return server.ListenAndServe(ctx, cfg.Server.Addr,
		time.Duration(cfg.Server.ReadTimeoutSeconds)*time.Second,
		time.Duration(cfg.Server.WriteTimeoutSeconds)*time.Second,
	)
}
