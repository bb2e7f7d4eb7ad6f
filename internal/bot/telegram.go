package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
)

const maxVoiceSize = 20 * 1024 * 1024 // 20MB limit for voice notes

func newTelegram(token string, users *auth.Registry, processor Processor, tz *time.Location) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &telegram{api: api, users: users, processor: processor, tz: tz}, nil
}

func (t *telegram) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := t.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}

			go t.handleMessage(ctx, update.Message)
		}
	}
}

func (t *telegram) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	user, ok := t.users.ByTelegramChat(msg.Chat.ID)
	if !ok {
		logger.Debug("message from unregistered chat", "chatID", msg.Chat.ID)
		return
	}

	var fileID, mimeType string

	switch {
	case msg.Voice != nil:
		fileID = msg.Voice.FileID
		mimeType = msg.Voice.MimeType
	case msg.Audio != nil:
		fileID = msg.Audio.FileID
		mimeType = msg.Audio.MimeType
	default:
		t.reply(msg, "Send me a voice note and I'll journal it for you.")
		return
	}

	if mimeType == "" {
		mimeType = "audio/ogg"
	}

	logger.Info("voice note received", "owner", user.ID, "chatID", msg.Chat.ID)

	audio, err := t.downloadFile(fileID)
	if err != nil {
		logger.Error("voice download failed", "error", err)
		t.reply(msg, "Couldn't download that voice note.")
		return
	}

	logDate := time.Now().In(t.tz).Format(journal.DateFormat)

	rec, err := t.processor.Process(ctx, user.ID, logDate, audio, mimeType)
	if err != nil {
		logger.Error("pipeline failed", "owner", user.ID, "error", err)
		t.reply(msg, "Something went wrong: "+truncate(err.Error(), 200))
		return
	}

	t.reply(msg, journal.Summary(rec))
}

func (t *telegram) reply(msg *tgbotapi.Message, text string) {
	reply := tgbotapi.NewMessage(msg.Chat.ID, text)
	reply.ReplyToMessageID = msg.MessageID

	if _, err := t.api.Send(reply); err != nil {
		logger.Error("send failed", "error", err)
	}
}

func (t *telegram) Send(chatID int64, message string) error {
	msg := tgbotapi.NewMessage(chatID, message)
	_, err := t.api.Send(msg)
	if err != nil {
		logger.Error("proactive send failed", "error", err, "chatID", chatID)
	}
	return err
}

func (t *telegram) downloadFile(fileID string) ([]byte, error) {
	file, err := t.api.GetFile(tgbotapi.FileConfig{FileID: fileID})
	if err != nil {
		return nil, err
	}

	url := file.Link(t.api.Token)

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed: HTTP %d", resp.StatusCode)
	}

	return io.ReadAll(io.LimitReader(resp.Body, maxVoiceSize))
}
