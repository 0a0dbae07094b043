package config

import (
	"testing"
	"time"
)

// go test -v --run TestLoadDefaults
func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Upbit.BaseURL != "https://api.upbit.com" {
		t.Errorf("unexpected upbit base url: %s", cfg.Upbit.BaseURL)
	}
	if cfg.Upbit.Timeout != 10*time.Second {
		t.Errorf("unexpected upbit timeout: %s", cfg.Upbit.Timeout)
	}
	if cfg.Monitor.SnapshotFile != "snapshot_coins.json" {
		t.Errorf("unexpected snapshot file: %s", cfg.Monitor.SnapshotFile)
	}
	if cfg.Monitor.RiseThreshold != 5.0 {
		t.Errorf("unexpected rise threshold: %f", cfg.Monitor.RiseThreshold)
	}
	if cfg.Monitor.ReportCutoffMinute != 15 {
		t.Errorf("unexpected report cutoff minute: %d", cfg.Monitor.ReportCutoffMinute)
	}
	if cfg.Monitor.QuoteCurrency != "KRW" {
		t.Errorf("unexpected quote currency: %s", cfg.Monitor.QuoteCurrency)
	}
}

// go test -v --run TestTelegramResolve
func TestTelegramResolve(t *testing.T) {
	cfg := TelegramConfig{BotToken: "tok", ChatID: "42"}
	if err := cfg.Resolve("dev"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	missing := TelegramConfig{ChatID: "42"}
	if err := missing.Resolve("dev"); err == nil {
		t.Fatal("expected error for missing bot token")
	}

	missing = TelegramConfig{BotToken: "tok"}
	if err := missing.Resolve("dev"); err == nil {
		t.Fatal("expected error for missing chat id")
	}
}
