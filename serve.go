package main

import (
	"anekbot/internal/adapters/file"
	"anekbot/internal/adapters/handler"
	"anekbot/internal/adapters/identity"
	"anekbot/internal/adapters/sender"
	"anekbot/internal/config"
	"anekbot/internal/core/domain/command"
	"anekbot/internal/core/service"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newServeCmd(load func() config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Run: func(_ *cobra.Command, _ []string) {
			serve(load())
		},
	}
}

func serve(cfg config.Config) {
	log.Info().Msg("starting anekbot...")

	if err := cfg.RequireToken(); err != nil {
		log.Fatal().Err(err).Msg("set telegram.bot_token, ANEKBOT_TELEGRAM_BOT_TOKEN or BOT_TOKEN")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// a missing or broken file is logged by the store; the bot runs with an empty corpus
	corpus, _ := file.NewStore(cfg.JokesFile).Load()

	// the mention handler needs the bot client, so it is wired after bot.New
	var mentionHandler *handler.Mention

	opts := []bot.Option{
		bot.WithDefaultHandler(func(ctx context.Context, b *bot.Bot, update *models.Update) {
			mentionHandler.Handle(ctx, b, update)
		}),
	}

	b, err := bot.New(cfg.Telegram.BotToken, opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed initializing telegram bot")
	}

	s := sender.NewTelegram(b)
	id := identity.NewTelegram(b)

	mentionHandler = handler.NewMention(service.NewMention(corpus, id, s), cfg.Handler.Timeout)

	commandRegistry := &command.Registry{}
	commandRegistry.Register(command.NewHelp(s, "/start"))
	commandRegistry.Register(command.NewHelp(s, "/help"))
	commandRegistry.Register(command.NewJoke(corpus, s, "/joke"))
	commandRegistry.Register(command.NewDebug(corpus, s, "/debug"))

	commandHandler := handler.NewCommand(commandRegistry, id, cfg.Handler.Timeout).WithFallback(mentionHandler.Handle)

	b.RegisterHandler(bot.HandlerTypeMessageText, "/", bot.MatchTypePrefix, commandHandler.Handle)

	log.Info().Int("jokes", corpus.Len()).Strs("commands", commandRegistry.ListCommands()).Msg("bot listening")
	b.Start(ctx)
	log.Info().Msg("bot stopped")
}
