package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/caredesk/clinic-platform/internal/config"
	"github.com/caredesk/clinic-platform/internal/db"
	"github.com/caredesk/clinic-platform/internal/logging"
	"github.com/caredesk/clinic-platform/internal/notification"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("dev", "notify-worker")
		bootLog.Fatal().Err(err).Msg("config load error")
	}

	log := logging.New(cfg.Env, "notify-worker")
	log.Info().
		Dur("interval", cfg.WorkerInterval).
		Int("batch_size", cfg.WorkerBatchSize).
		Msg("notify-worker starting up")

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgCtx, cancelPg := context.WithTimeout(rootCtx, 10*time.Second)
	pgPool, err := db.ConnectPostgres(pgCtx, cfg.PostgresDSN)
	cancelPg()
	if err != nil {
		log.Fatal().Err(err).Msg("postgres connection error")
	}
	defer pgPool.Close()
	log.Info().Msg("connected to Postgres")

	publisher, err := notification.NewAMQPPublisher(cfg.AMQPURL, cfg.NotifyExchange)
	if err != nil {
		log.Fatal().Err(err).Msg("amqp connection error")
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("error closing amqp publisher")
		}
	}()
	log.Info().Str("exchange", cfg.NotifyExchange).Msg("connected to AMQP broker")

	dispatcher := notification.NewDispatcher(
		notification.NewPgRepository(pgPool),
		publisher,
		cfg.WorkerBatchSize,
		log,
	)

	ticker := time.NewTicker(cfg.WorkerInterval)
	defer ticker.Stop()

	// Drain once at startup so a restart does not wait a full interval.
	runOnce(rootCtx, dispatcher, log)

	for {
		select {
		case <-rootCtx.Done():
			log.Info().Msg("shutting down notify-worker")
			return
		case <-ticker.C:
			runOnce(rootCtx, dispatcher, log)
		}
	}
}

func runOnce(ctx context.Context, d *notification.Dispatcher, log zerolog.Logger) {
	runCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	sent, err := d.DispatchOnce(runCtx)
	if err != nil {
		log.Error().Err(err).Msg("dispatch run failed")
		return
	}
	if sent > 0 {
		log.Info().Int("sent", sent).Msg("dispatched notifications")
	}
}
