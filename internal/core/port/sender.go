package port

import (
	"anekbot/internal/core/domain"
	"context"
)

type TextSender interface {
	// SendMessage posts text into the chat of the given message without quoting it and returns the sent message ID.
	SendMessage(ctx context.Context, message *domain.Message, text string, mode domain.ParseMode) (int, error)
	// SendMessageReply sends a reply to a specified message with the given text and returns the sent message ID and
	// an error if any.
	SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error)
}
