package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/accounts-transfer-service/internal/api"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/config"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/events/kafka"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/events/redis"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/ledger"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/logger"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/notification"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/storage/memory"
	"github.com/sheikh-saqib/accounts-transfer-service/internal/storage/postgres"
)

func main() {
	cfg, envFileLoaded := config.Load()

	log, err := logger.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !envFileLoaded {
		log.Debug("no .env file found, relying on environment")
	}

	store := memory.NewMemoryAccountStore()
	if cfg.DatabaseURL != "" {
		seedAccounts(log, cfg.DatabaseURL, store)
	}

	deliverer, closeDeliverer := buildDeliverer(cfg, log)
	dispatcher := notification.NewDispatcher(deliverer, log.Named("notifications"), notification.DispatcherConfig{
		Workers:   cfg.NotifyWorkers,
		QueueSize: cfg.NotifyQueueSize,
	})

	ledgerService := ledger.NewLedger(store, dispatcher, log.Named("ledger"), ledger.WithCurrencyLabel(cfg.CurrencyLabel))
	app := api.NewApp(ledgerService, log.Named("api"))

	go func() {
		log.Info("starting server", zap.String("port", cfg.Port), zap.String("notifier", cfg.Notifier))
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("server stopped", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}
	dispatcher.Close()
	if err := closeDeliverer(); err != nil {
		log.Error("notifier shutdown", zap.Error(err))
	}
}

func seedAccounts(log *zap.Logger, databaseURL string, store *memory.MemoryAccountStore) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := postgres.Open(ctx, databaseURL)
	if err != nil {
		log.Fatal("connect to postgres", zap.Error(err))
	}
	defer db.Close()

	n, err := postgres.NewAccountSeeder(db).Seed(ctx, store)
	if err != nil {
		log.Fatal("seed accounts", zap.Error(err))
	}
	log.Info("accounts seeded from postgres", zap.Int("count", n))
}

func buildDeliverer(cfg *config.Config, log *zap.Logger) (notification.Deliverer, func() error) {
	switch cfg.Notifier {
	case config.NotifierKafka:
		p := kafka.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return p, p.Close
	case config.NotifierRedis:
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		return redis.NewPublisher(client, cfg.RedisChannelPrefix), client.Close
	case config.NotifierLog:
	default:
		log.Warn("unknown notifier, falling back to log", zap.String("notifier", cfg.Notifier))
	}
	return notification.NewLogDeliverer(log.Named("notifications")), func() error { return nil }
}
