package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vindevops99/telegram-chat-bot/internal/bot"
	"github.com/vindevops99/telegram-chat-bot/internal/config"
	"github.com/vindevops99/telegram-chat-bot/internal/db"
	"github.com/vindevops99/telegram-chat-bot/internal/dialog"
	"github.com/vindevops99/telegram-chat-bot/internal/payment"
	"github.com/vindevops99/telegram-chat-bot/internal/repo"
	"github.com/vindevops99/telegram-chat-bot/internal/report"
)

func main() {
	cfg := config.MustLoad()

	logger := mustLogger(cfg.LogLevel)
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := db.MustConnect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, db.Migrations()); err != nil {
		sugar.Fatalw("migrations", "err", err)
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		sugar.Fatalw("bot init", "err", err)
	}
	botAPI.Debug = false

	if cfg.BankAccount == "" {
		sugar.Warn("BANK_ACCOUNT not configured, payment QR codes will be skipped")
	}

	loc := cfg.Location()
	rSales := repo.NewSales(pool)
	rExpenses := repo.NewExpenses(pool)
	rStats := repo.NewStats(pool)

	qr := payment.NewVietQR(cfg.BankCode, cfg.BankAccount)
	agg := report.NewAggregator(rSales, rExpenses, cfg.ReportDir, sugar)
	sessions := dialog.NewStore(cfg.SessionTTL)
	engine := dialog.NewEngine(sessions, rSales, rExpenses, qr, agg, loc, sugar)

	h := bot.NewHandler(botAPI, engine, rStats, sugar)

	// Graceful shutdown
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	// Session janitor
	go engine.RunJanitor(ctx, time.Minute)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	sugar.Infow("bot started", "username", botAPI.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			sugar.Info("shutdown")
			return
		case upd := <-updates:
			h.HandleUpdate(ctx, upd)
		}
	}
}

func mustLogger(level string) *zap.Logger {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		log.Fatalf("LOG_LEVEL: %v", err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	return logger
}
