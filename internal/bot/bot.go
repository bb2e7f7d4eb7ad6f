package bot

import (
	"fmt"
	"time"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
)

func New(cfg Config, users *auth.Registry, processor Processor, tz *time.Location) (Bot, error) {
	switch cfg.Provider {
	case "telegram":
		return newTelegram(cfg.Token, users, processor, tz)
	case "discord":
		return newDiscord(cfg.Token, users, processor, tz)
	default:
		return nil, fmt.Errorf("unknown bot provider: %s", cfg.Provider)
	}
}

func NewTelegram(token string, users *auth.Registry, processor Processor, tz *time.Location) (Bot, error) {
	return newTelegram(token, users, processor, tz)
}

func NewDiscord(token string, users *auth.Registry, processor Processor, tz *time.Location) (Bot, error) {
	return newDiscord(token, users, processor, tz)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	return s[:max] + "..."
}
