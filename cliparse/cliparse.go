package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/danielhkuo/word-sprint/auth"
)

// salt for secrets derived from the bot token
const webhookSecretSalt = "word-sprint-webhook"

type Config struct {
	Port           int
	DatabaseURL    string
	DatabaseType   string
	BotToken       string
	AdminIDs       []int64
	WebhookURL     string
	WebhookSecret  string
	Timezone       string
	Location       *time.Location
	DigestSchedule string
	AutoExpire     bool
	Debug          bool
	LogFile        string
}

// UseWebhook reports whether updates arrive over HTTP instead of long polling.
func (c Config) UseWebhook() bool {
	return c.WebhookURL != ""
}

type flags struct {
	Port         int     `short:"p" env:"PORT" default:"3318" help:"Server port."`
	DatabaseURL  string  `short:"d" name:"database-url" env:"DATABASE_URL" help:"Database URL."`
	DatabaseType string  `short:"t" name:"database-type" env:"DATABASE_TYPE" default:"sqlite" help:"Database type (sqlite or postgres)."`
	Token        string  `name:"token" env:"TELEGRAM_TOKEN" help:"Telegram bot token (prefer env)."`
	Admins       []int64 `name:"admin" env:"ADMIN_IDS" sep:"," help:"Admin user ids, comma separated."`

	WebhookURL    string `name:"webhook-url" env:"WEBHOOK_URL" help:"Public webhook URL; empty means long polling."`
	WebhookSecret string `name:"webhook-secret" env:"WEBHOOK_SECRET" help:"Webhook secret token (prefer env)."`

	Timezone   string `name:"tz" env:"TIMEZONE" default:"UTC" help:"Time zone for the daily digest."`
	Digest     string `name:"digest" env:"DIGEST_SCHEDULE" default:"0 0 * * *" help:"Cron schedule of the daily digest."`
	AutoExpire bool   `name:"auto-expire" env:"AUTO_EXPIRE" help:"Close sprints automatically after their end time."`

	Debug   bool   `name:"debug" env:"DEBUG" help:"Verbose logging."`
	LogFile string `name:"log-file" env:"LOG_FILE" help:"Also write logs to this rotating file."`
}

// LoadDotEnv loads variables from a .env file if one exists. Variables that
// are already set keep their values.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags parses CLI flags, falling back to environment variables.
func ParseFlags(args []string) (Config, error) {
	var f flags
	parser, err := kong.New(&f,
		kong.Name("word-sprint"),
		kong.Description("Telegram bot for timed word sprints."),
	)
	if err != nil {
		return Config{}, err
	}
	if _, err := parser.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:           f.Port,
		DatabaseURL:    f.DatabaseURL,
		DatabaseType:   f.DatabaseType,
		BotToken:       f.Token,
		AdminIDs:       f.Admins,
		WebhookURL:     f.WebhookURL,
		WebhookSecret:  f.WebhookSecret,
		Timezone:       f.Timezone,
		DigestSchedule: f.Digest,
		AutoExpire:     f.AutoExpire,
		Debug:          f.Debug,
		LogFile:        f.LogFile,
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, errors.New("invalid port")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	// Secrets - MUST be provided
	if cfg.BotToken == "" {
		return Config{}, errors.New("TELEGRAM_TOKEN required")
	}

	// Older deployments set a single ADMIN_ID
	if len(cfg.AdminIDs) == 0 {
		if single := strings.TrimSpace(os.Getenv("ADMIN_ID")); single != "" {
			id, err := strconv.ParseInt(single, 10, 64)
			if err != nil {
				return Config{}, errors.New("invalid ADMIN_ID env variable")
			}
			cfg.AdminIDs = []int64{id}
		}
	}
	if len(cfg.AdminIDs) == 0 {
		return Config{}, errors.New("at least one admin id required (use --admin or ADMIN_IDS env)")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Config{}, fmt.Errorf("invalid time zone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc

	if cfg.UseWebhook() && cfg.WebhookSecret == "" {
		cfg.WebhookSecret = auth.DeriveWebhookSecret(cfg.BotToken, webhookSecretSalt)
	}

	return cfg, nil
}
