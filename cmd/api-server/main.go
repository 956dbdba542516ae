package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/caredesk/clinic-platform/internal/api"
	"github.com/caredesk/clinic-platform/internal/appointment"
	"github.com/caredesk/clinic-platform/internal/clinic"
	"github.com/caredesk/clinic-platform/internal/config"
	"github.com/caredesk/clinic-platform/internal/db"
	"github.com/caredesk/clinic-platform/internal/logging"
	"github.com/caredesk/clinic-platform/internal/notification"
	"github.com/caredesk/clinic-platform/internal/patient"
	"github.com/caredesk/clinic-platform/internal/redisclient"
	"github.com/caredesk/clinic-platform/internal/schedule"
	"github.com/caredesk/clinic-platform/internal/staff"
	"github.com/caredesk/clinic-platform/internal/whatsapp"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logging.New("dev", "api-server")
		bootLog.Fatal().Err(err).Msg("config load error")
	}

	log := logging.New(cfg.Env, "api-server")
	log.Info().Str("env", cfg.Env).Str("http_port", cfg.HTTPPort).Msg("api-server starting up")

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

	rdb, err := redisclient.NewRedisClient(cfg.RedisAddr, cfg.RedisUsername, cfg.RedisPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection error")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("error closing redis")
		}
	}()
	log.Info().Msg("connected to Redis")

	staffSvc := staff.NewService(staff.NewPgRepository(pgPool))
	scheduleSvc := schedule.NewService(schedule.NewPgRepository(pgPool), staffSvc)
	clinicSvc := clinic.NewService(clinic.NewPgRepository(pgPool))
	patientSvc := patient.NewService(patient.NewPgRepository(pgPool))
	notifySvc := notification.NewService(notification.NewPgRepository(pgPool), staffSvc)

	locker := redisclient.NewRedisBookingLocker(rdb, cfg.BookingLockTTL)
	apptSvc := appointment.NewService(
		appointment.NewPgRepository(pgPool),
		scheduleSvc,
		notifySvc,
		locker,
		log.With().Str("component", "booking").Logger(),
	)

	waSvc := whatsapp.NewService(
		clinicSvc,
		apptSvc,
		notifySvc,
		log.With().Str("component", "whatsapp").Logger(),
	)

	router := api.NewRouter(api.RouterConfig{
		Appointments:  apptSvc,
		Schedules:     scheduleSvc,
		Clinics:       clinicSvc,
		Patients:      patientSvc,
		Staff:         staffSvc,
		Notifications: notifySvc,
		WhatsApp:      waSvc,
		PgPool:        pgPool,
		Redis:         rdb,
		JWTSecret:     cfg.JWTSecret,
		Env:           cfg.Env,
		Version:       version,
		Log:           log,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("http server error")
		}
	}()

	<-rootCtx.Done()
	log.Info().Msg("shutting down api-server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
