package handler

import (
	"anekbot/internal/core/domain"
	"context"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type MentionResponder interface {
	Respond(ctx context.Context, timeout time.Duration, message *domain.Message) (domain.Action, error)
}

// Mention receives every update no command matched and hands text messages
// to the mention service.
type Mention struct {
	responder MentionResponder
	timeout   time.Duration
}

func NewMention(responder MentionResponder, timeout time.Duration) *Mention {
	return &Mention{responder: responder, timeout: timeout}
}

func (m *Mention) Handle(ctx context.Context, _ *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}

	message := toMessage(update.Message)

	go func() {
		action, err := m.responder.Respond(ctx, m.timeout, message)
		if err != nil {
			log.Err(err).Int64("chatId", message.ChatID).Int("messageId", message.ID).Str("user", message.Username).
				Stringer("action", action).Msg("failed to respond to mention")
		}
	}()
}
