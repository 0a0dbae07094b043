package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env      string         `mapstructure:"env"` // "dev" or "prod"
	Upbit    UpbitConfig    `mapstructure:"upbit"`
	Telegram TelegramConfig `mapstructure:"telegram"`
	Monitor  MonitorConfig  `mapstructure:"monitor"`
	Log      LogConfig      `mapstructure:"log"`
}

type UpbitConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// MonitorConfig carries the detection and reporting knobs. Defaults match
// the values the job has always run with.
type MonitorConfig struct {
	SnapshotFile       string  `mapstructure:"snapshot_file"`        // set of symbols already reported this window
	FirstRunFile       string  `mapstructure:"first_run_file"`       // marker created after the welcome message
	LockFile           string  `mapstructure:"lock_file"`            // PID lock guarding against overlapping runs
	QuoteCurrency      string  `mapstructure:"quote_currency"`       // market filter, e.g. "KRW"
	RiseThreshold      float64 `mapstructure:"rise_threshold"`       // percent change that counts as a riser
	ReportCutoffMinute int     `mapstructure:"report_cutoff_minute"` // minutes-of-hour below this trigger a report
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// Load loads application configuration using Viper.
// Defaults cover every key, config.yaml is optional, and environment
// variables override both (e.g. TELEGRAM_BOT_TOKEN, MONITOR_RISE_THRESHOLD).
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	setDefaults(v)

	// Support environment variables with dot notation (e.g., TELEGRAM_CHAT_ID)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the job is usually configured
		// entirely through the environment.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("failed to read config: %v", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")

	v.SetDefault("upbit.base_url", "https://api.upbit.com")
	v.SetDefault("upbit.timeout", 10*time.Second)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
	v.SetDefault("telegram.timeout", 10*time.Second)

	v.SetDefault("monitor.snapshot_file", "snapshot_coins.json")
	v.SetDefault("monitor.first_run_file", ".first_run_complete")
	v.SetDefault("monitor.lock_file", ".upbitmonitor.lock")
	v.SetDefault("monitor.quote_currency", "KRW")
	v.SetDefault("monitor.rise_threshold", 5.0)
	v.SetDefault("monitor.report_cutoff_minute", 15)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_file", "")
	v.SetDefault("log.environment", "dev")
}
