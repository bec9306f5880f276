package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"go.uber.org/zap"

	"opsbus/internal/app/config"
	httpapi "opsbus/internal/app/http"
	"opsbus/internal/app/http/handler"
	"opsbus/internal/app/natsrpc"
	"opsbus/internal/app/rpc"
	"opsbus/internal/domain/event"
	"opsbus/internal/domain/stats"
	"opsbus/internal/domain/subscription"
	"opsbus/internal/infrastructure/async"
	"opsbus/internal/infrastructure/db/pg"
	"opsbus/internal/infrastructure/logging"
	"opsbus/internal/infrastructure/notify"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		log.Fatal("db open error", zap.Error(err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		log.Fatal("db ping error", zap.Error(err))
	}

	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatal("goose dialect error", zap.Error(err))
	}
	if err := goose.Up(db, "migrations"); err != nil {
		log.Fatal("goose up error", zap.Error(err))
	}

	uow := pg.NewTxManager(db)

	pool := async.NewWorkerPool(ctx, cfg.EventWorkers, log)
	defer pool.Shutdown()

	eventRepo := pg.NewEventRepository(db)
	subRepo := pg.NewSubscriptionRepository(db)
	statsRepo := pg.NewStatsRepository(db)

	registry := event.NewRegistry()
	registry.Register("NOTIFICATION", notify.NewLogHandler(log))
	if cfg.WebhookURL != "" {
		registry.Register("WEBHOOK", notify.NewWebhookHandler(cfg.WebhookURL))
	}

	bus := event.NewService(uow, eventRepo, subRepo, registry, pool, log, cfg.HandlerTimeout)
	rpcSvc := rpc.NewService(bus, log)
	subSvc := subscription.NewService(uow, subRepo)
	statsSvc := stats.NewService(statsRepo)

	h := handler.New(bus, rpcSvc, subSvc, statsSvc, log)
	router := httpapi.NewRouter(h, log)

	if cfg.NATSURL != "" {
		consumer, err := natsrpc.NewConsumer(cfg.NATSURL, rpcSvc, log)
		if err != nil {
			log.Fatal("nats connect error", zap.Error(err))
		}
		if err := consumer.Start(); err != nil {
			log.Fatal("nats subscribe error", zap.Error(err))
		}
		defer consumer.Close()
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", zap.Error(err))
	}
}
