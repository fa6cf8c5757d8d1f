package port

import "context"

type Identity interface {
	// Username returns the bot's own handle without the leading @.
	Username(ctx context.Context) (string, error)
}
