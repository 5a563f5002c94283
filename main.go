package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	_ "time/tzdata"

	"github.com/danielhkuo/word-sprint/auth"
	"github.com/danielhkuo/word-sprint/bot"
	"github.com/danielhkuo/word-sprint/cliparse"
	"github.com/danielhkuo/word-sprint/db"
	"github.com/danielhkuo/word-sprint/filter"
	"github.com/danielhkuo/word-sprint/logging"
	"github.com/danielhkuo/word-sprint/models"
	"github.com/danielhkuo/word-sprint/router"
	"github.com/danielhkuo/word-sprint/scheduler"
	"github.com/danielhkuo/word-sprint/sprint"
	"github.com/danielhkuo/word-sprint/store"
	"github.com/danielhkuo/word-sprint/telegram"
)

func main() {
	if err := cliparse.LoadDotEnv(".env"); err != nil {
		slog.Error("Error loading .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	_, logCloser := logging.Setup(logging.Config{Debug: cfg.Debug, LogFile: cfg.LogFile})
	defer logCloser.Close()

	// Connect to the database and create the schema
	dialect, err := db.ParseDialect(cfg.DatabaseType)
	if err != nil {
		slog.Error("invalid database type", "error", err)
		os.Exit(1)
	}
	dbConn, err := db.Open(dialect, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database setup failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()
	slog.Info("Database schema ready", "type", dialect)

	admins := auth.NewAdminList(cfg.AdminIDs)
	svc := sprint.NewService(store.New(dbConn, dialect), filter.NewDefaultValidator(), admins, cfg.Location)

	client, err := telegram.New(cfg.BotToken, cfg.Debug)
	if err != nil {
		slog.Error("telegram login failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Authorized on Telegram", "bot", client.Username(), "admins", admins.Len())

	dispatcher := bot.NewDispatcher(svc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sched, err := scheduler.New(scheduler.Config{
		Location:       cfg.Location,
		DigestSchedule: cfg.DigestSchedule,
		AutoExpire:     cfg.AutoExpire,
	}, svc, client, admins.IDs())
	if err != nil {
		slog.Error("scheduler setup failed", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// Receive updates
	if cfg.UseWebhook() {
		if err := client.SetWebhook(cfg.WebhookURL, cfg.WebhookSecret); err != nil {
			slog.Error("webhook registration failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Webhook registered", "url", cfg.WebhookURL)
	} else {
		go func() {
			err := client.Poll(ctx, func(ctx context.Context, msg models.InboundMessage) {
				dispatcher.Handle(ctx, msg, client)
			})
			if err != nil {
				slog.Error("polling stopped", "error", err)
				stop()
			}
		}()
	}

	// Create router
	mux := router.NewRouter(svc, dispatcher, client, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "webhook", cfg.UseWebhook())
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
