package sender

import (
	"anekbot/internal/core/domain"
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

// TelegramBot is the subset of *bot.Bot the sender needs.
type TelegramBot interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

type Telegram struct {
	bot TelegramBot
}

func NewTelegram(bot TelegramBot) *Telegram {
	return &Telegram{bot: bot}
}

// TelegramMessageLimit is the maximum message length in characters.
const TelegramMessageLimit = 4096

func (s *Telegram) SendMessage(ctx context.Context, message *domain.Message, text string,
	mode domain.ParseMode) (int, error) {
	return s.send(ctx, message, text, mode, false)
}

func (s *Telegram) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	return s.send(ctx, message, text, domain.PlainText, true)
}

// send splits text at the Telegram limit and returns the ID of the last
// message sent. Only the first chunk quotes the original message.
func (s *Telegram) send(ctx context.Context, message *domain.Message, text string, mode domain.ParseMode,
	reply bool) (int, error) {
	var lastID int

	for i, chunk := range chunkText(text, TelegramMessageLimit) {
		params := &bot.SendMessageParams{
			ChatID:    message.ChatID,
			Text:      chunk,
			ParseMode: models.ParseMode(mode),
		}

		if reply && i == 0 {
			params.ReplyParameters = &models.ReplyParameters{
				MessageID: message.ID,
				ChatID:    message.ChatID,
			}
		}

		sent, err := s.bot.SendMessage(ctx, params)
		if err != nil {
			log.Error().Err(err).Int64("chatId", message.ChatID).Int("messageId", message.ID).
				Msg("failed to send message")
			return lastID, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
		}

		if sent != nil {
			lastID = sent.ID
		}
	}

	return lastID, nil
}

// chunkText splits text into pieces of at most limit runes.
func chunkText(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/limit+1)
	for len(runes) > 0 {
		n := min(limit, len(runes))
		chunks = append(chunks, string(runes[:n]))
		runes = runes[n:]
	}

	return chunks
}
