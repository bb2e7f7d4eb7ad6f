package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
)

// Processor runs the capture pipeline for a downloaded voice note.
type Processor interface {
	Process(ctx context.Context, owner, logDate string, audio []byte, mimeType string) (*journal.DailyRecord, error)
}

// Bot is a chat capture channel: it listens for voice notes from registered
// users and pushes reminder messages back out.
type Bot interface {
	Start(ctx context.Context) error
	Send(chatID int64, message string) error
}

type Config struct {
	Provider string
	Token    string
}

type telegram struct {
	api       *tgbotapi.BotAPI
	users     *auth.Registry
	processor Processor
	tz        *time.Location
}

type discord struct {
	session   *discordgo.Session
	users     *auth.Registry
	processor Processor
	tz        *time.Location
	ctx       context.Context
}
