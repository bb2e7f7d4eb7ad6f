package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/Archit-bit/voice-diary-app/internal/auth"
	"github.com/Archit-bit/voice-diary-app/internal/journal"
	"github.com/Archit-bit/voice-diary-app/internal/logger"
)

func newDiscord(token string, users *auth.Registry, processor Processor, tz *time.Location) (Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	d := &discord{
		session:   session,
		users:     users,
		processor: processor,
		tz:        tz,
	}

	session.AddHandler(d.handleMessage)

	return d, nil
}

func (d *discord) Start(ctx context.Context) error {
	d.ctx = ctx

	if err := d.session.Open(); err != nil {
		return err
	}

	<-ctx.Done()
	return d.session.Close()
}

func (d *discord) Send(chatID int64, message string) error {
	channelID := fmt.Sprintf("%d", chatID)
	_, err := d.session.ChannelMessageSend(channelID, message)
	if err != nil {
		logger.Error("discord send failed", "error", err, "channelID", channelID)
	}
	return err
}

func (d *discord) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author.ID == s.State.User.ID {
		return
	}

	user, ok := d.users.ByDiscordUser(m.Author.ID)
	if !ok {
		logger.Debug("message from unregistered user", "author", m.Author.ID)
		return
	}

	attachment := firstAudioAttachment(m.Attachments)
	if attachment == nil {
		d.reply(s, m, "Send me a voice message and I'll journal it for you.")
		return
	}

	logger.Info("voice note received", "owner", user.ID, "channel", m.ChannelID)

	audio, err := downloadAttachment(attachment.URL)
	if err != nil {
		logger.Error("voice download failed", "error", err)
		d.reply(s, m, "Couldn't download that voice message.")
		return
	}

	logDate := time.Now().In(d.tz).Format(journal.DateFormat)

	rec, err := d.processor.Process(d.ctx, user.ID, logDate, audio, attachment.ContentType)
	if err != nil {
		logger.Error("pipeline failed", "owner", user.ID, "error", err)
		d.reply(s, m, "Something went wrong: "+truncate(err.Error(), 200))
		return
	}

	d.reply(s, m, journal.Summary(rec))
}

func (d *discord) reply(s *discordgo.Session, m *discordgo.MessageCreate, text string) {
	if _, err := s.ChannelMessageSendReply(m.ChannelID, text, m.Reference()); err != nil {
		logger.Error("discord reply failed", "error", err)
	}
}

func firstAudioAttachment(attachments []*discordgo.MessageAttachment) *discordgo.MessageAttachment {
	for _, a := range attachments {
		if strings.HasPrefix(a.ContentType, "audio/") {
			return a
		}
	}

	return nil
}

func downloadAttachment(url string) ([]byte, error) {
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
