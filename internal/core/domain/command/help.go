package command

import (
	"anekbot/internal/core/domain"
	"anekbot/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Help answers /start and /help with the fixed usage message.
type Help struct {
	textSender port.TextSender
	command    string
}

func NewHelp(sender port.TextSender, command string) *Help {
	return &Help{textSender: sender, command: command}
}

func (h *Help) GetCommand() string {
	return h.command
}

func (h *Help) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", h.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := h.textSender.SendMessage(ctx, message, domain.UsageMessage, domain.HTML)
	if err != nil {
		return fmt.Errorf("error sending usage message: %w", err)
	}

	return nil
}
