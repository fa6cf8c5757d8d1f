package command

import (
	"anekbot/internal/core/port"
	"errors"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

var (
	ErrRegistryNotInitialized = errors.New("can't fetch command, registry not initialized")
	ErrCommandNotFound        = errors.New("command not found")
)

type Registry struct {
	commands map[string]port.Command
}

func (r *Registry) Register(handler port.Command) {
	if r.commands == nil {
		r.commands = make(map[string]port.Command)
	}

	log.Info().Str("handler", handler.GetCommand()).Msg("adding command handler to registry")
	r.commands[handler.GetCommand()] = handler
}

func (r *Registry) Get(command string) (port.Command, error) {
	log.Debug().Str("command", command).Msg("fetching command handler from registry")

	if r.commands == nil {
		return nil, ErrRegistryNotInitialized
	}

	handler, ok := r.commands[command]
	if !ok {
		return nil, ErrCommandNotFound
	}

	return handler, nil
}

// ListCommands returns the registered commands sorted by name.
func (r *Registry) ListCommands() []string {
	keys := make([]string, 0, len(r.commands))
	for k := range r.commands {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ParseCommand splits the first word of a message into the lowercased command
// and the bot name Telegram appends to commands in group chats
// ("/joke@MyBot" → "/joke", "MyBot"). target is empty when no bot is named.
func ParseCommand(text string) (cmd, target string) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", ""
	}

	cmd, target, _ = strings.Cut(fields[0], "@")
	return strings.ToLower(cmd), target
}
