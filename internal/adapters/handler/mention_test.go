package handler

import (
	"anekbot/internal/core/domain"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockMentionResponder struct{ mock.Mock }

func (m *MockMentionResponder) Respond(ctx context.Context, timeout time.Duration,
	msg *domain.Message) (domain.Action, error) {
	args := m.Called(ctx, timeout, msg)
	return args.Get(0).(domain.Action), args.Error(1)
}

func TestMentionHandler_Handle(t *testing.T) {
	tests := []struct {
		name       string
		update     *models.Update
		respondErr error
		wantMsg    *domain.Message
	}{
		{
			name:   "no message in update",
			update: &models.Update{},
		},
		{
			name:   "message without text",
			update: makeUpdate("", "group"),
		},
		{
			name:   "group text is passed on",
			update: makeUpdate("@mybot привет", "group"),
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				ChatKind: domain.Group,
				Username: "@bob",
				Text:     "@mybot привет",
			},
		},
		{
			name:       "responder error is only logged",
			update:     makeUpdate("@mybot анекдот", "channel"),
			respondErr: errors.New("fail"),
			wantMsg: &domain.Message{
				ID:       1,
				ChatID:   100,
				ChatKind: domain.Other,
				Username: "@bob",
				Text:     "@mybot анекдот",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			responder := new(MockMentionResponder)
			if tc.wantMsg != nil {
				responder.On("Respond", mock.Anything, 2*time.Second, tc.wantMsg).
					Return(domain.ActionIgnore, tc.respondErr).Once()
			}

			NewMention(responder, 2*time.Second).Handle(t.Context(), nil, tc.update)

			// as the Respond() call is a goroutine, wait for finish
			time.Sleep(100 * time.Millisecond)

			if tc.wantMsg != nil {
				responder.AssertExpectations(t)
			} else {
				assert.Empty(t, responder.Calls)
			}
		})
	}
}
