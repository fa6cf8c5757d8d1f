package identity

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockBot struct {
	mock.Mock
}

func (m *MockBot) GetMe(ctx context.Context) (*models.User, error) {
	args := m.Called(ctx)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func TestTelegram_UsernameCached(t *testing.T) {
	mb := new(MockBot)
	mb.On("GetMe", mock.Anything).Return(&models.User{ID: 1, Username: "mybot"}, nil).Once()

	id := NewTelegram(mb)

	for range 3 {
		name, err := id.Username(t.Context())
		require.NoError(t, err)
		assert.Equal(t, "mybot", name)
	}

	mb.AssertNumberOfCalls(t, "GetMe", 1)
}

func TestTelegram_UsernameRetriesAfterFailure(t *testing.T) {
	mb := new(MockBot)
	mb.On("GetMe", mock.Anything).Return(nil, errors.New("network")).Once()
	mb.On("GetMe", mock.Anything).Return(&models.User{ID: 1, Username: "mybot"}, nil).Once()

	id := NewTelegram(mb)

	_, err := id.Username(t.Context())
	require.Error(t, err)

	name, err := id.Username(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "mybot", name)
	mb.AssertExpectations(t)
}

func TestTelegram_UsernameMissing(t *testing.T) {
	mb := new(MockBot)
	mb.On("GetMe", mock.Anything).Return(&models.User{ID: 1}, nil)

	_, err := NewTelegram(mb).Username(t.Context())
	require.Error(t, err)
}

func TestTelegram_UsernameConcurrent(t *testing.T) {
	mb := new(MockBot)
	mb.On("GetMe", mock.Anything).Return(&models.User{ID: 1, Username: "mybot"}, nil).Once()

	id := NewTelegram(mb)

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name, err := id.Username(context.Background())
			assert.NoError(t, err)
			assert.Equal(t, "mybot", name)
		}()
	}
	wg.Wait()

	mb.AssertNumberOfCalls(t, "GetMe", 1)
}

func TestTelegram_LookupDoesNotHoldLock(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	mb := new(MockBot)
	mb.On("GetMe", mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&models.User{ID: 1, Username: "mybot"}, nil).Once()

	id := NewTelegram(mb)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = id.Username(context.Background())
	}()

	<-started

	read := make(chan string, 1)
	go func() { read <- id.cached() }()

	select {
	case name := <-read:
		assert.Empty(t, name)
	case <-time.After(time.Second):
		t.Fatal("cache read blocked while getMe was in flight")
	}

	close(release)
	<-done

	assert.Equal(t, "mybot", id.cached())
	mb.AssertNumberOfCalls(t, "GetMe", 1)
}
