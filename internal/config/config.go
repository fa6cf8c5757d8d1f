// Package config resolves settings for both the bot and the scraper from
// defaults, an optional config.toml, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "ANEKBOT"
	defaultConfigName = "config"
	defaultJokesFile  = "jokes.json"
	defaultScrapeURL  = "https://www.maximonline.ru/entertainment/" +
		"100-luchshikh-anekdotov-za-desyat-let-2010-2019-id476643/"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/91.0.4472.124 Safari/537.36"
	defaultBlockClass = "ds-article-content__block_text"
)

var ErrMissingToken = errors.New("telegram bot token is not set")

type Config struct {
	LogLevel  string
	JokesFile string

	Telegram TelegramConfig
	Handler  HandlerConfig
	Scraper  ScraperConfig
}

type TelegramConfig struct {
	BotToken string
}

type HandlerConfig struct {
	Timeout time.Duration
}

type ScraperConfig struct {
	URL        string
	UserAgent  string
	Timeout    time.Duration
	JitterMin  time.Duration
	JitterMax  time.Duration
	BlockClass string
}

// Load reads the configuration. Precedence: defaults < config file < .env < environment.
// An explicit path must exist; without one a config.toml in the working
// directory is used if present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("could not read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("telegram.bot_token", envPrefix+"_TELEGRAM_BOT_TOKEN", "BOT_TOKEN"); err != nil {
		return Config{}, fmt.Errorf("could not bind token env: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(defaultConfigName)
		v.SetConfigType("toml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("could not read config file: %w", err)
		}
	}

	cfg := Config{
		LogLevel:  v.GetString("bot.log_level"),
		JokesFile: v.GetString("jokes.file"),
		Telegram: TelegramConfig{
			BotToken: strings.TrimSpace(v.GetString("telegram.bot_token")),
		},
		Handler: HandlerConfig{
			Timeout: v.GetDuration("handler.timeout"),
		},
		Scraper: ScraperConfig{
			URL:        v.GetString("scraper.url"),
			UserAgent:  v.GetString("scraper.user_agent"),
			Timeout:    v.GetDuration("scraper.timeout"),
			JitterMin:  v.GetDuration("scraper.jitter_min"),
			JitterMax:  v.GetDuration("scraper.jitter_max"),
			BlockClass: v.GetString("scraper.block_class"),
		},
	}

	return cfg, cfg.validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.log_level", "info")
	v.SetDefault("jokes.file", defaultJokesFile)
	v.SetDefault("handler.timeout", 30*time.Second)
	v.SetDefault("scraper.url", defaultScrapeURL)
	v.SetDefault("scraper.user_agent", defaultUserAgent)
	v.SetDefault("scraper.timeout", 20*time.Second)
	v.SetDefault("scraper.jitter_min", 500*time.Millisecond)
	v.SetDefault("scraper.jitter_max", 1500*time.Millisecond)
	v.SetDefault("scraper.block_class", defaultBlockClass)
}

func (c Config) validate() error {
	if c.Handler.Timeout <= 0 {
		return fmt.Errorf("handler.timeout must be positive, got %s", c.Handler.Timeout)
	}
	if c.Scraper.Timeout <= 0 {
		return fmt.Errorf("scraper.timeout must be positive, got %s", c.Scraper.Timeout)
	}
	if c.Scraper.JitterMin < 0 || c.Scraper.JitterMax < 0 {
		return errors.New("scraper jitter must not be negative")
	}
	if c.Scraper.URL == "" {
		return errors.New("scraper.url must be set")
	}
	return nil
}

// RequireToken reports ErrMissingToken when the bot cannot authenticate.
func (c Config) RequireToken() error {
	if c.Telegram.BotToken == "" {
		return ErrMissingToken
	}
	return nil
}

// Level maps the configured log level onto zerolog, defaulting to info.
func (c Config) Level() zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
