package command

import (
	"anekbot/internal/core/domain"
	"anekbot/internal/core/port"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Joke answers /joke with a random joke in any kind of chat.
type Joke struct {
	corpus     *domain.Corpus
	textSender port.TextSender
	command    string
}

func NewJoke(corpus *domain.Corpus, sender port.TextSender, command string) *Joke {
	return &Joke{corpus: corpus, textSender: sender, command: command}
}

func (j *Joke) GetCommand() string {
	return j.command
}

func (j *Joke) Respond(ctx context.Context, timeout time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", j.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, ok := j.corpus.PickRandom()
	if !ok {
		l.Warn().Err(domain.ErrEmptyCorpus).Msg("sending fallback")
		text = domain.NoJokesCommandReply
	}

	_, err := j.textSender.SendMessage(ctx, message, text, domain.PlainText)
	if err != nil {
		return fmt.Errorf("error sending joke: %w", err)
	}

	return nil
}
