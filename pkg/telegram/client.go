package telegram

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-telegram/bot"
)

// Client is a thin send-only wrapper around the Telegram Bot API.
// The monitor never receives updates, so no polling is started.
type Client struct {
	bot *bot.Bot
}

func New(token string, timeout time.Duration) (*Client, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token cannot be empty")
	}

	opts := []bot.Option{
		bot.WithSkipGetMe(),
		bot.WithHTTPClient(timeout, &http.Client{Timeout: timeout}),
	}
	b, err := bot.New(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating telegram bot: %w", err)
	}

	return &Client{bot: b}, nil
}

// SendMessage delivers text to the given chat. The error result is
// deliberate: callers must decide to drop it, not forget it.
func (c *Client) SendMessage(ctx context.Context, chatID string, text string) error {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if _, err := c.bot.SendMessage(ctx, params); err != nil {
		return fmt.Errorf("send message to chat %s: %w", chatID, err)
	}
	return nil
}
