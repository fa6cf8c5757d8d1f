package service

import (
	"anekbot/internal/core/domain"
	"anekbot/internal/core/port"
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog/log"
)

// Mention reacts to group messages that address the bot by its handle.
type Mention struct {
	corpus     *domain.Corpus
	identity   port.Identity
	textSender port.TextSender
	intN       func(n int) int
}

func NewMention(corpus *domain.Corpus, identity port.Identity, sender port.TextSender) *Mention {
	return &Mention{corpus: corpus, identity: identity, textSender: sender, intN: rand.IntN}
}

// Respond classifies the message and sends the matching reply, if any. It
// returns the action taken so callers can log or test it. Messages that can
// never be answered are dropped before the bot handle is resolved.
func (m *Mention) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) (domain.Action, error) {
	if !domain.Addressable(message) {
		return domain.ActionIgnore, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("chatKind", string(message.ChatKind)).
		Str("user", message.Username).
		Logger()

	handle, err := m.identity.Username(ctx)
	if err != nil {
		return domain.ActionIgnore, fmt.Errorf("could not resolve bot handle: %w", err)
	}

	action := domain.Classify(message, handle)
	l.Debug().Stringer("action", action).Msg("classified message")

	var reply string

	switch action {
	case domain.ActionTellJoke:
		text, ok := m.corpus.PickRandom()
		if !ok {
			l.Warn().Err(domain.ErrEmptyCorpus).Msg("sending fallback")
			text = domain.NoJokesMentionReply
		}
		reply = text
	case domain.ActionAcknowledge:
		reply = domain.PickPhrase(m.intN, domain.MentionReplies)
	default:
		return action, nil
	}

	l.Info().Stringer("action", action).Msg("replying to mention")

	_, err = m.textSender.SendMessageReply(ctx, message, reply)
	if err != nil {
		return action, fmt.Errorf("%w: %w", domain.ErrSendingReplyFailed, err)
	}

	return action, nil
}
