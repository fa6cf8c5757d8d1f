package command

import (
	"anekbot/internal/core/domain"
	"context"

	"github.com/stretchr/testify/mock"
)

type MockSender struct {
	mock.Mock
}

func (m *MockSender) SendMessage(ctx context.Context, message *domain.Message, text string,
	mode domain.ParseMode) (int, error) {
	args := m.Called(ctx, message, text, mode)
	return args.Int(0), args.Error(1)
}

func (m *MockSender) SendMessageReply(ctx context.Context, message *domain.Message, text string) (int, error) {
	args := m.Called(ctx, message, text)
	return args.Int(0), args.Error(1)
}
