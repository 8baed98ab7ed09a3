package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/songzhibin97/chainpulse/internal/ai"
	"github.com/songzhibin97/chainpulse/internal/ai/anthropic"
	"github.com/songzhibin97/chainpulse/internal/ai/openai"
	"github.com/songzhibin97/chainpulse/internal/assistant"
	"github.com/songzhibin97/chainpulse/internal/configs"
	"github.com/songzhibin97/chainpulse/internal/data"
	"github.com/songzhibin97/chainpulse/internal/data/allium"
	"github.com/songzhibin97/chainpulse/internal/data/collector"
	"github.com/songzhibin97/chainpulse/internal/data/collector/binance"
	"github.com/songzhibin97/chainpulse/internal/data/storage"
	"github.com/songzhibin97/chainpulse/internal/projection"
	"github.com/songzhibin97/chainpulse/internal/risk"
	"github.com/songzhibin97/chainpulse/internal/scheduler"
	"github.com/songzhibin97/chainpulse/internal/server"
	"github.com/songzhibin97/chainpulse/internal/wallet"
	"github.com/songzhibin97/chainpulse/internal/whale"
)

const shutdownTimeout = 10 * time.Second

type DashboardSystem struct {
	scheduler *scheduler.Scheduler
	server    *server.Server
	store     data.KVStore
}

func NewDashboardSystem(sched *scheduler.Scheduler, srv *server.Server, store data.KVStore) *DashboardSystem {
	return &DashboardSystem{
		scheduler: sched,
		server:    srv,
		store:     store,
	}
}

// Run 启动定时任务与 HTTP 服务, ctx 取消后优雅退出
func (s *DashboardSystem) Run(ctx context.Context) error {
	if err := s.scheduler.Start(ctx); err != nil {
		return err
	}
	log.Debug("scheduler started")

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
	case runErr = <-errCh:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.Error("Error shutting down http server", "err", err)
	}
	s.scheduler.Stop()
	if err := s.store.Close(); err != nil {
		log.Error("Error closing storage", "err", err)
	}

	return runErr
}

var (
	flagconf string

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     slog.LevelDebug,
	}))
)

func init() {
	flag.StringVar(&flagconf, "conf", "", "config path, eg: -conf config.yaml")
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelDebug
	}
	return level
}

func main() {
	flag.Parse()

	// 加载配置
	config, err := configs.Load(flagconf)
	if err != nil {
		log.Error("Error loading config", "err", err)
		return
	}

	log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true,
		Level:     parseLevel(config.LogLevel),
	}))
	slog.SetDefault(log)

	log.Debug("Loaded config", "provider", config.AIConfig.Provider, "storage", config.Storage.Driver)

	if config.Proxy != "" {
		_ = os.Setenv("HTTP_PROXY", config.Proxy)
		_ = os.Setenv("HTTPS_PROXY", config.Proxy)
		log.Debug("set proxy ok", "proxy", config.Proxy)
	}

	// 初始化各个组件
	alliumClient := allium.NewClient(config.Allium.BaseURL, config.Allium.APIKey, configs.Duration(config.Allium.Timeout, 10*time.Second))

	var sources []data.PriceSource
	for _, name := range config.Prices.Sources {
		switch strings.ToLower(name) {
		case "allium":
			sources = append(sources, alliumClient)
		case "binance":
			sources = append(sources, binance.NewBinanceDataSource())
		default:
			log.Warn("unknown price source, skipped", "source", name)
		}
	}
	if len(sources) == 0 {
		sources = append(sources, alliumClient)
	}

	table := collector.NewPriceTable()
	updater := collector.NewMultiSourceUpdater(sources, table, log)

	log.Debug("init price updater", "sources", len(sources))

	store, err := storage.New(config.Storage)
	if err != nil {
		log.Error("Error creating storage", "err", err)
		return
	}

	log.Debug("init storage", "driver", config.Storage.Driver)

	var (
		chat  ai.ChatClient
		proxy server.Forwarder
	)
	switch config.AIConfig.Provider {
	case "openai":
		chat = openai.NewClient(config.AIConfig.APIKey, config.AIConfig.ModelType, config.AIConfig.UpstreamURL)
	default:
		client := anthropic.NewClient(
			config.AIConfig.APIKey,
			config.AIConfig.ProxyURL,
			config.AIConfig.UpstreamURL,
			configs.Duration(config.AIConfig.Timeout, 120*time.Second),
			log,
		)
		chat, proxy = client, client
	}

	log.Debug("init ai client", "provider", config.AIConfig.Provider, "model", config.AIConfig.ModelType)

	model, mcpURL := config.AIConfig.ModelType, config.AIConfig.MCPURL
	whales := whale.NewFeed(chat, model, mcpURL, whale.NewGenerator(table), log)

	handler := &server.Handler{
		Prices:      updater,
		Wallet:      wallet.NewService(alliumClient, log),
		Whales:      whales,
		Drawdowns:   risk.NewDrawdownAnalyzer(table),
		Projections: projection.NewService(store, table, log),
		Assistant:   assistant.New(chat, model, mcpURL, log),
		Proxy:       proxy,
	}

	sched := scheduler.New(scheduler.IntervalsFromConfig(config), updater, whales, log)
	srv := server.New(config.Server, handler, log)

	system := NewDashboardSystem(sched, srv, store)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := system.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("System error", "err", err)
		return
	}

	log.Info("chainpulse stopped")
}
