package command

import (
	"anekbot/internal/core/domain"
	"anekbot/internal/core/port"
	"context"
	"fmt"
	"runtime"
	"runtime/debug"
	"runtime/metrics"
	"time"

	"github.com/rs/zerolog/log"
)

type Debug struct {
	corpus     *domain.Corpus
	textSender port.TextSender
	command    string
	started    time.Time
}

func NewDebug(corpus *domain.Corpus, sender port.TextSender, command string) *Debug {
	return &Debug{corpus: corpus, textSender: sender, command: command, started: time.Now()}
}

func (d *Debug) GetCommand() string {
	return d.command
}

const kb = 1024
const debugTemplate = `jokes loaded: %d
uptime: %s
allocated mem: %d KB
goroutines running: %d
heap: %d KB
compiled with %s for %s-%s
`
const metricCount = 2

func (d *Debug) Respond(ctx context.Context, _ time.Duration, message *domain.Message) error {
	l := log.With().
		Int("messageId", message.ID).
		Int64("chatId", message.ChatID).
		Str("command", d.GetCommand()).
		Logger()

	l.Info().Msg("handling request")

	data := make([]metrics.Sample, metricCount)
	data[0] = metrics.Sample{Name: "/memory/classes/heap/objects:bytes"}
	data[1] = metrics.Sample{Name: "/memory/classes/total:bytes"}

	metrics.Read(data)

	var goos, goarch string
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			switch setting.Key {
			case "GOOS":
				goos = setting.Value
			case "GOARCH":
				goarch = setting.Value
			}
		}
	}

	_, err := d.textSender.SendMessageReply(ctx, message,
		fmt.Sprintf(
			debugTemplate,
			d.corpus.Len(),
			time.Since(d.started).Truncate(time.Second),
			data[1].Value.Uint64()/kb,
			runtime.NumGoroutine(),
			data[0].Value.Uint64()/kb,
			runtime.Version(), goos, goarch,
		))
	if err != nil {
		return err
	}

	return nil
}
