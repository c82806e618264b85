package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	"github.com/terraincognita07/kalender/internal/api"
	"github.com/terraincognita07/kalender/internal/cli"
	"github.com/terraincognita07/kalender/internal/config"
	"github.com/terraincognita07/kalender/internal/db"
	"github.com/terraincognita07/kalender/internal/logger"
	"github.com/terraincognita07/kalender/internal/notify"
	"github.com/terraincognita07/kalender/internal/scheduler"
	"github.com/terraincognita07/kalender/internal/services"
)

const usage = `usage: kalender [command]

commands:
  serve           run the HTTP API and reminder scheduler (default)
  set-password    set the owner password interactively
  reset-password  replace the owner password with a temporary one
  status          print today's cycle summary`

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.Log.Fatal(err)
	}
}

func run(args []string) error {
	command, err := parseCommand(args)
	if err != nil {
		return err
	}

	cfg, err := config.Load(command == "serve")
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	log := logger.Init(cfg.LogLevel, cfg.Environment)
	time.Local = cfg.Location

	database, err := db.OpenSQLite(cfg.DBPath, log)
	if err != nil {
		return fmt.Errorf("database init failed: %w", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			log.WithError(err).Warn("close database")
		}
	}()

	repos := db.NewRepositories(database)
	periods := services.NewPeriodService(repos.Intervals, repos.Settings, cfg.Location, services.WithLogger(log))
	auth := services.NewAuthService(repos.Owners)

	ctx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch command {
	case "set-password":
		return cli.RunSetPasswordCommand(ctx, auth, cli.TerminalPasswordReader(os.Stdin, os.Stdout), os.Stdout)
	case "reset-password":
		return cli.RunResetPasswordCommand(ctx, auth, os.Stdout)
	case "status":
		return cli.RunStatusCommand(ctx, periods, os.Stdout)
	}

	handler, err := api.NewHandler(api.Services{
		Periods:  periods,
		Settings: services.NewSettingsService(repos.Settings),
		Auth:     auth,
	}, cfg.SecretKey, log)
	if err != nil {
		return fmt.Errorf("handler init failed: %w", err)
	}

	sender, err := newReminderSender(cfg, log)
	if err != nil {
		return err
	}
	reminders := services.NewReminderService(periods, repos.Settings, repos.Deliveries, sender)
	reminderScheduler := scheduler.NewReminderScheduler(reminders, cfg.ReminderCron, cfg.Location, log)
	if err := reminderScheduler.Start(); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		reminderScheduler.Stop(stopCtx)
	}()

	requestLog := log.WriterLevel(logrus.InfoLevel)
	defer requestLog.Close()
	app := newApp(handler, requestLog)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.WithFields(logrus.Fields{
		"port": cfg.Port,
		"db":   cfg.DBPath,
		"tz":   cfg.Location.String(),
	}).Info("kalender listening")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("server exited: %w", err)
	}
	return nil
}

func parseCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "serve", nil
	}
	if len(args) > 1 {
		return "", fmt.Errorf("unexpected arguments %v\n%s", args[1:], usage)
	}
	switch args[0] {
	case "serve", "set-password", "reset-password", "status":
		return args[0], nil
	default:
		return "", fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}

func newApp(handler *api.Handler, requestLog io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Kalender",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New(fiberlogger.Config{Output: requestLog}))
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	return app
}

func newReminderSender(cfg *config.Config, log *logrus.Logger) (services.ReminderSender, error) {
	if !cfg.TelegramEnabled() {
		log.Info("telegram not configured, reminders go to the log")
		return notify.NewLogSender(log), nil
	}
	sender, err := notify.NewTelegramSender(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		return nil, err
	}
	return sender, nil
}
