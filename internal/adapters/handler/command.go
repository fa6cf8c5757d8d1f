package handler

import (
	"anekbot/internal/core/domain"
	"anekbot/internal/core/domain/command"
	"anekbot/internal/core/port"
	"context"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
)

type Command struct {
	commandRegistry port.CommandRegistry
	identity        port.Identity
	timeout         time.Duration
	fallback        bot.HandlerFunc
}

func NewCommand(commandRegistry port.CommandRegistry, identity port.Identity, timeout time.Duration) *Command {
	return &Command{commandRegistry: commandRegistry, identity: identity, timeout: timeout}
}

// WithFallback passes messages that start with "/" but name no registered
// command, or are addressed to another bot, on to h, so they are still
// treated as plain text.
func (c *Command) WithFallback(h bot.HandlerFunc) *Command {
	c.fallback = h
	return c
}

func (c *Command) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		log.Debug().Msg("update without message, skipping")
		return
	}

	message := toMessage(update.Message)

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("user", message.Username).
		Logger()

	l.Debug().Str("text", message.Text).Msg("received command")

	cmd, target := command.ParseCommand(message.Text)

	if target != "" {
		ours, err := c.addressedToUs(ctx, target)
		if err != nil {
			l.Err(err).Str("command", cmd).Msg("could not resolve bot handle, dropping command")
			return
		}
		if !ours {
			l.Debug().Str("command", cmd).Str("target", target).Msg("command addressed to another bot")
			c.forward(ctx, b, update)
			return
		}
	}

	commandHandler, err := c.commandRegistry.Get(cmd)
	if err != nil {
		l.Debug().Err(err).Str("command", cmd).Msg("no handler for command")
		c.forward(ctx, b, update)
		return
	}

	go func() {
		err := commandHandler.Respond(ctx, c.timeout, message)
		if err != nil {
			l.Err(err).Str("command", cmd).Msg("failed to respond to command")
		}
	}()
}

func (c *Command) addressedToUs(ctx context.Context, target string) (bool, error) {
	handle, err := c.identity.Username(ctx)
	if err != nil {
		return false, err
	}

	return strings.EqualFold(strings.TrimPrefix(handle, "@"), target), nil
}

func (c *Command) forward(ctx context.Context, b *bot.Bot, update *models.Update) {
	if c.fallback != nil {
		c.fallback(ctx, b, update)
	}
}

func toMessage(m *models.Message) *domain.Message {
	return &domain.Message{
		ID:       m.ID,
		ChatID:   m.Chat.ID,
		ChatKind: domain.ParseChatKind(string(m.Chat.Type)),
		Username: getUserNameFromMessage(m.From),
		Text:     m.Text,
	}
}

func getUserNameFromMessage(user *models.User) string {
	if user == nil {
		return ""
	}

	if user.Username == "" {
		return user.FirstName
	}

	return "@" + user.Username
}
