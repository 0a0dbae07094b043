package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"upbitmonitor/config"
	"upbitmonitor/internal/monitor/runner"
	"upbitmonitor/logger"
	"upbitmonitor/pkg/telegram"
	"upbitmonitor/pkg/upbit"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

func main() {
	// viper config (+ .env via godotenv autoload)
	cfg := config.Load()

	// zap logger
	log, err := logger.New(cfg.Log)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer log.Sync()

	// Telegram credentials are a hard precondition; everything after this is
	// best-effort. Exit code 2 lets the scheduler distinguish a
	// misconfigured job from soft runtime failures.
	if err := cfg.Telegram.Resolve(cfg.Env); err != nil {
		log.Error("telegram credentials missing", zap.Error(err))
		log.Sync()
		os.Exit(2)
	}

	notifier, err := telegram.New(cfg.Telegram.BotToken, cfg.Telegram.Timeout)
	if err != nil {
		log.Error("failed to create telegram client", zap.Error(err))
		log.Sync()
		os.Exit(2)
	}

	market := upbit.NewRESTClient(cfg.Upbit.BaseURL, cfg.Upbit.Timeout)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// run one monitor invocation; the external scheduler provides the cadence
	if err := runner.New(cfg, log, market, notifier).Run(ctx); err != nil {
		log.Error("monitor run failed", zap.Error(err))
	}
}
