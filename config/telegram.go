package config

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// TelegramConfig defines the credentials and timeout for the notification
// channel. BotToken and ChatID normally come from the environment
// (TELEGRAM_BOT_TOKEN / TELEGRAM_CHAT_ID); in prod they may instead live in
// AWS SSM Parameter Store.
type TelegramConfig struct {
	BotToken string        `mapstructure:"bot_token"`
	ChatID   string        `mapstructure:"chat_id"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Resolve fills in missing credentials from SSM Parameter Store when
// running in the prod environment, then verifies both are present.
// Missing credentials are a fatal precondition for the whole invocation.
func (cfg *TelegramConfig) Resolve(env string) error {
	if env == "prod" {
		if cfg.BotToken == "" {
			cfg.BotToken = getParameterStoreValue("UPBIT_MONITOR_TELEGRAM_BOT_TOKEN", true)
		}
		if cfg.ChatID == "" {
			cfg.ChatID = getParameterStoreValue("UPBIT_MONITOR_TELEGRAM_CHAT_ID", true)
		}
	}

	if cfg.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}
	if cfg.ChatID == "" {
		return fmt.Errorf("TELEGRAM_CHAT_ID is not set")
	}
	return nil
}

func getParameterStoreValue(parameterName string, decrypt bool) string {
	baseCtx := context.Background()
	ctxWithTimeout, cancel := context.WithTimeout(baseCtx, 5*time.Second)
	defer cancel()

	cfg, err := config.LoadDefaultConfig(ctxWithTimeout)
	if err != nil {
		return ""
	}

	client := ssm.NewFromConfig(cfg)

	input := &ssm.GetParameterInput{
		Name:           &parameterName,
		WithDecryption: &decrypt,
	}

	result, err := client.GetParameter(ctxWithTimeout, input)
	if err != nil {
		return ""
	}

	if result.Parameter.Value == nil {
		return ""
	}

	return *result.Parameter.Value
}
