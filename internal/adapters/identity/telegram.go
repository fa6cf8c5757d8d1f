package identity

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

// MeGetter is satisfied by *bot.Bot.
type MeGetter interface {
	GetMe(ctx context.Context) (*models.User, error)
}

// Telegram resolves the bot's own username once and serves it from memory
// afterwards. A failed lookup is not cached. Concurrent cold lookups share a
// single getMe call and the lock is never held across it.
type Telegram struct {
	bot      MeGetter
	group    singleflight.Group
	mu       sync.RWMutex
	username string
}

func NewTelegram(bot MeGetter) *Telegram {
	return &Telegram{bot: bot}
}

func (t *Telegram) Username(ctx context.Context) (string, error) {
	if name := t.cached(); name != "" {
		return name, nil
	}

	v, err, _ := t.group.Do("getMe", func() (any, error) {
		if name := t.cached(); name != "" {
			return name, nil
		}

		me, err := t.bot.GetMe(ctx)
		if err != nil {
			return "", fmt.Errorf("error fetching bot identity: %w", err)
		}

		if me == nil || me.Username == "" {
			return "", errors.New("bot identity has no username")
		}

		log.Info().Str("username", me.Username).Int64("id", me.ID).Msg("resolved bot identity")

		t.mu.Lock()
		t.username = me.Username
		t.mu.Unlock()

		return me.Username, nil
	})
	if err != nil {
		return "", err
	}

	return v.(string), nil
}

func (t *Telegram) cached() string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.username
}
